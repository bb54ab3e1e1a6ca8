package app

import (
	"context"
	"path/filepath"
	"testing"

	accountpkg "github.com/mikios34/choonpaan/account"
	"github.com/mikios34/choonpaan/config"
	"github.com/mikios34/choonpaan/entity"
)

func memoryConfig() config.Config {
	cfg := config.Default()
	cfg.SessionBackend = config.SessionMemory
	return cfg
}

func TestBuildMemory(t *testing.T) {
	ctx := context.Background()
	a, err := Build(ctx, memoryConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer a.Close()

	if a.TokenVerifier != nil {
		t.Fatalf("no firebase app configured, expected nil verifier")
	}
	form := accountpkg.RegisterForm{Email: "u@example.com", Name: "Hana", Password: "secret1", ConfirmPassword: "secret1", UserType: entity.UserTypeUser}
	if _, err := a.Accounts.Register(ctx, form); err != nil {
		t.Fatalf("Register: %v", err)
	}

	one := a.ScopedSessions("one")
	two := a.ScopedSessions("two")
	if _, err := a.Accounts.Login(ctx, one, accountpkg.Credentials{Email: "u@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if st, _ := one.Restore(ctx); st == nil || st.Role != entity.RoleUser {
		t.Fatalf("expected user session in scope one, got %+v", st)
	}
	if st, _ := two.Restore(ctx); st != nil {
		t.Fatalf("scope two should be empty, got %+v", st)
	}
	if st, _ := a.DeviceSessions().Restore(ctx); st != nil {
		t.Fatalf("device scope should be empty, got %+v", st)
	}
}

func TestBuildSQLiteSessions(t *testing.T) {
	cfg := memoryConfig()
	cfg.SessionBackend = config.SessionSQLite
	cfg.SessionPath = filepath.Join(t.TempDir(), "session.db")
	a, err := Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.StoreBackend = config.StorePostgres
	if _, err := Build(context.Background(), cfg); err == nil {
		t.Fatalf("expected missing DATABASE_URL to fail")
	}
}
