package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	got, err := s.MultiGet(ctx, []string{"a", "b"})
	if err != nil {
		t.Fatalf("MultiGet empty: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty store, got %v", got)
	}

	if err := s.MultiSet(ctx, map[string]string{"a": "1", "b": "2", "c": "3"}); err != nil {
		t.Fatalf("MultiSet: %v", err)
	}
	if err := s.MultiSet(ctx, map[string]string{"b": "two"}); err != nil {
		t.Fatalf("MultiSet overwrite: %v", err)
	}
	got, err = s.MultiGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("MultiGet: %v", err)
	}
	if len(got) != 2 || got["a"] != "1" || got["b"] != "two" {
		t.Fatalf("unexpected values %v", got)
	}

	for i := 0; i < 2; i++ {
		if err := s.MultiRemove(ctx, []string{"a", "b"}); err != nil {
			t.Fatalf("MultiRemove #%d: %v", i+1, err)
		}
	}
	got, err = s.MultiGet(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("MultiGet after remove: %v", err)
	}
	if len(got) != 1 || got["c"] != "3" {
		t.Fatalf("expected only c to survive, got %v", got)
	}
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	exerciseStore(t, NewFile(path))

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected session file on disk: %v", err)
	}
}

func TestFileSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	if err := NewFile(path).MultiSet(ctx, map[string]string{"userId": "u1"}); err != nil {
		t.Fatalf("MultiSet: %v", err)
	}
	got, err := NewFile(path).MultiGet(ctx, []string{"userId"})
	if err != nil {
		t.Fatalf("MultiGet: %v", err)
	}
	if got["userId"] != "u1" {
		t.Fatalf("expected persisted value, got %v", got)
	}
}

func TestFileMissingDirectoryReadsEmpty(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "absent", "session.json"))
	got, err := f.MultiGet(context.Background(), []string{"userId"})
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty read, got %v, %v", got, err)
	}
}

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	exerciseStore(t, s)
}

func TestSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.MultiSet(context.Background(), map[string]string{"role": "driver"}); err != nil {
		t.Fatalf("MultiSet: %v", err)
	}
	_ = s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	got, err := s.MultiGet(context.Background(), []string{"role"})
	if err != nil || got["role"] != "driver" {
		t.Fatalf("expected persisted role, got %v, %v", got, err)
	}
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("CHOONPAAN_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CHOONPAAN_TEST_REDIS_ADDR not set")
	}
	client, err := DialRedis(context.Background(), addr, "", 0)
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	exerciseStore(t, WithPrefix(NewRedis(client), "test/"+uuid.NewString()+"/"))
}

func TestWithPrefixIsolates(t *testing.T) {
	ctx := context.Background()
	inner := NewMemory()
	a := WithPrefix(inner, "sessions/a/")
	b := WithPrefix(inner, "sessions/b/")

	if err := a.MultiSet(ctx, map[string]string{"userId": "ua"}); err != nil {
		t.Fatalf("MultiSet: %v", err)
	}
	if err := b.MultiSet(ctx, map[string]string{"userId": "ub"}); err != nil {
		t.Fatalf("MultiSet: %v", err)
	}
	if err := b.MultiRemove(ctx, []string{"userId"}); err != nil {
		t.Fatalf("MultiRemove: %v", err)
	}

	got, _ := a.MultiGet(ctx, []string{"userId"})
	if got["userId"] != "ua" {
		t.Fatalf("expected a untouched, got %v", got)
	}
	raw, _ := inner.MultiGet(ctx, []string{"sessions/a/userId", "sessions/b/userId"})
	if len(raw) != 1 || raw["sessions/a/userId"] != "ua" {
		t.Fatalf("unexpected raw entries %v", raw)
	}
	exerciseStore(t, WithPrefix(NewMemory(), "p/"))
}
