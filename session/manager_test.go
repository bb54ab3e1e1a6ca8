package session

import (
	"context"
	"errors"
	"testing"

	"github.com/mikios34/choonpaan/auth"
	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/role"
	"github.com/mikios34/choonpaan/session/kvstore"
)

type failingKV struct{ kvstore.Store }

var errDisk = errors.New("disk full")

func (failingKV) MultiSet(context.Context, map[string]string) error { return errDisk }

func driverResolution(id string) role.Resolution {
	return role.Resolution{Role: entity.RoleDriver, Record: entity.ProfileRecord{ID: id, UserType: entity.UserTypeDriver}}
}

func TestBootstrapRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kvstore.NewMemory())

	st, err := m.Bootstrap(ctx, auth.Principal{ID: "d1", Email: "d@example.com"}, driverResolution("d1"))
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	got, err := m.Restore(ctx)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got == nil || *got != *st {
		t.Fatalf("expected %+v, got %+v", st, got)
	}
	if !got.IsLoggedIn || got.Role != entity.RoleDriver || got.UserID != "d1" || got.UserEmail != "d@example.com" {
		t.Fatalf("unexpected restored state %+v", got)
	}
}

func TestBootstrapOverwrites(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kvstore.NewMemory())
	if _, err := m.Bootstrap(ctx, auth.Principal{ID: "d1", Email: "d@example.com"}, driverResolution("d1")); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	admin := role.Resolution{Role: entity.RoleAdmin, Record: entity.ProfileRecord{ID: "a1"}}
	if _, err := m.Bootstrap(ctx, auth.Principal{ID: "a1", Email: "a@example.com"}, admin); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	got, _ := m.Restore(ctx)
	if got == nil || got.Role != entity.RoleAdmin || got.UserID != "a1" {
		t.Fatalf("expected admin session, got %+v", got)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kvstore.NewMemory())
	if _, err := m.Bootstrap(ctx, auth.Principal{ID: "d1"}, driverResolution("d1")); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := m.Clear(ctx); err != nil {
			t.Fatalf("Clear #%d: %v", i+1, err)
		}
		got, err := m.Restore(ctx)
		if err != nil || got != nil {
			t.Fatalf("after Clear #%d expected no session, got %+v, %v", i+1, got, err)
		}
	}
}

func TestRestoreRejectsIncompleteState(t *testing.T) {
	ctx := context.Background()
	cases := map[string]map[string]string{
		"empty":         {},
		"not logged in": {KeyIsLoggedIn: "false", KeyUserID: "u1", KeyRole: "user"},
		"missing user":  {KeyIsLoggedIn: "true", KeyRole: "user"},
		"unknown role":  {KeyIsLoggedIn: "true", KeyUserID: "u1", KeyRole: "courier"},
		"missing role":  {KeyIsLoggedIn: "true", KeyUserID: "u1"},
	}
	for name, entries := range cases {
		kv := kvstore.NewMemory()
		if err := kv.MultiSet(ctx, entries); err != nil {
			t.Fatalf("%s: seed: %v", name, err)
		}
		got, err := NewManager(kv).Restore(ctx)
		if err != nil || got != nil {
			t.Fatalf("%s: expected absent session, got %+v, %v", name, got, err)
		}
	}
}

func TestBootstrapFailureLeavesPriorState(t *testing.T) {
	ctx := context.Background()
	mem := kvstore.NewMemory()
	if _, err := NewManager(mem).Bootstrap(ctx, auth.Principal{ID: "u1"}, role.Resolution{Role: entity.RoleUser}); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	m := NewManager(failingKV{mem})
	if _, err := m.Bootstrap(ctx, auth.Principal{ID: "d1"}, driverResolution("d1")); !errors.Is(err, errDisk) {
		t.Fatalf("expected disk error, got %v", err)
	}
	got, _ := m.Restore(ctx)
	if got == nil || got.UserID != "u1" || got.Role != entity.RoleUser {
		t.Fatalf("expected prior session intact, got %+v", got)
	}
}
