package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikios34/choonpaan/auth"
	"github.com/mikios34/choonpaan/session/kvstore"
)

type clock struct{ t time.Time }

func newClock() *clock { return &clock{t: time.Unix(1_700_000_000, 0)} }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func openAndBootstrap(t *testing.T, r *Registry, id string) *Manager {
	t.Helper()
	m, err := r.Open(context.Background(), id)
	if err != nil {
		t.Fatalf("Open %s: %v", id, err)
	}
	if _, err := m.Bootstrap(context.Background(), auth.Principal{ID: id, Email: id + "@example.com"}, driverResolution(id)); err != nil {
		t.Fatalf("Bootstrap %s: %v", id, err)
	}
	return m
}

func TestRegistryReclaimsExpiredScopes(t *testing.T) {
	ctx := context.Background()
	c := newClock()
	r := NewRegistry(kvstore.NewMemory(), time.Hour)
	r.now = c.now

	old := openAndBootstrap(t, r, "old")
	c.advance(30 * time.Minute)
	young := openAndBootstrap(t, r, "young")
	c.advance(45 * time.Minute)
	openAndBootstrap(t, r, "new")

	if st, err := old.Restore(ctx); err != nil || st != nil {
		t.Fatalf("expected expired scope reclaimed, got %+v, %v", st, err)
	}
	if st, err := young.Restore(ctx); err != nil || st == nil || st.UserID != "young" {
		t.Fatalf("expected unexpired scope kept, got %+v, %v", st, err)
	}
	if n, err := r.Len(ctx); err != nil || n != 2 {
		t.Fatalf("expected 2 tracked scopes, got %d, %v", n, err)
	}
}

func TestRegistryRelease(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(kvstore.NewMemory(), time.Hour)
	m := openAndBootstrap(t, r, "s1")

	if err := r.Release(ctx, "s1"); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if st, _ := m.Restore(ctx); st != nil {
		t.Fatalf("expected released scope cleared, got %+v", st)
	}
	if n, _ := r.Len(ctx); n != 0 {
		t.Fatalf("expected empty index, got %d", n)
	}
	if err := r.Release(ctx, "unknown"); err != nil {
		t.Fatalf("expected releasing an unknown scope to succeed, got %v", err)
	}
}

func TestRegistryOpenFailsOnWriteError(t *testing.T) {
	r := NewRegistry(failingKV{kvstore.NewMemory()}, time.Hour)
	if _, err := r.Open(context.Background(), "s1"); err == nil {
		t.Fatalf("expected error when the index cannot be written")
	}
}

func TestRegistryUnreadableIndexIsDiscarded(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	if err := kv.MultiSet(ctx, map[string]string{indexKey: "{not json"}); err != nil {
		t.Fatalf("MultiSet: %v", err)
	}
	r := NewRegistry(kv, time.Hour)
	if _, err := r.Open(ctx, "s1"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if n, _ := r.Len(ctx); n != 1 {
		t.Fatalf("expected fresh index with 1 scope, got %d", n)
	}
}

// Repeated logins against the file store keep it bounded once earlier
// tokens have expired.
func TestRegistryFileStoreStaysBounded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	c := newClock()
	r := NewRegistry(kvstore.NewFile(path), time.Hour)
	r.now = c.now

	for i := 0; i < 50; i++ {
		openAndBootstrap(t, r, fmt.Sprintf("login-%02d", i))
		c.advance(2 * time.Hour)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var all map[string]string
	if err := json.Unmarshal(data, &all); err != nil {
		t.Fatalf("decoding store: %v", err)
	}
	if want := len(stateKeys) + 1; len(all) != want {
		t.Fatalf("expected %d keys after 50 expired logins, got %d", want, len(all))
	}
	if _, ok := all[scopePrefix("login-49")+"userId"]; !ok {
		t.Fatalf("expected the latest scope to remain, got keys %v", all)
	}
}
