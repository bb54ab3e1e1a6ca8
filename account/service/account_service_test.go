package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	accountpkg "github.com/mikios34/choonpaan/account"
	"github.com/mikios34/choonpaan/auth"
	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/role"
	"github.com/mikios34/choonpaan/session"
	"github.com/mikios34/choonpaan/session/kvstore"
	"github.com/mikios34/choonpaan/store"
	"github.com/mikios34/choonpaan/store/repository"
)

type fixture struct {
	svc      accountpkg.Service
	identity *auth.LocalIdentity
	repo     *repository.MemoryStore
	sessions *session.Manager
}

func newFixture() *fixture {
	identity := auth.NewLocalIdentity().WithCost(bcrypt.MinCost)
	repo := repository.NewMemoryStore()
	return &fixture{
		svc:      NewAccountService(auth.NewAuthenticator(identity), role.NewResolver(repo), repo),
		identity: identity,
		repo:     repo,
		sessions: session.NewManager(kvstore.NewMemory()),
	}
}

func driverForm() accountpkg.RegisterForm {
	return accountpkg.RegisterForm{
		Email:           "driver@example.com",
		Name:            "Dawit",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		UserType:        entity.UserTypeDriver,
	}
}

func TestRegisterDriverThenLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	reg, err := f.svc.Register(ctx, driverForm())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	stored, err := f.repo.Get(ctx, entity.Drivers, reg.Principal.ID)
	if err != nil {
		t.Fatalf("expected drivers/%s: %v", reg.Principal.ID, err)
	}
	if stored.Status != entity.DriverPending || stored.UserType != entity.UserTypeDriver || stored.Name != "Dawit" {
		t.Fatalf("unexpected driver record %+v", stored)
	}
	if _, err := f.repo.Get(ctx, entity.Users, reg.Principal.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected no users record, got %v", err)
	}

	// registration alone persists no session
	if st, _ := f.sessions.Restore(ctx); st != nil {
		t.Fatalf("expected no session after register, got %+v", st)
	}

	res, err := f.svc.Login(ctx, f.sessions, accountpkg.Credentials{Email: "driver@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Resolution.Role != entity.RoleDriver || res.Resolution.Record.Status != entity.DriverPending {
		t.Fatalf("unexpected resolution %+v", res.Resolution)
	}
	st, err := f.sessions.Restore(ctx)
	if err != nil || st == nil {
		t.Fatalf("expected restored session, got %+v, %v", st, err)
	}
	if st.Role != entity.RoleDriver || st.UserID != reg.Principal.ID || st.UserEmail != "driver@example.com" {
		t.Fatalf("unexpected session %+v", st)
	}

	if err := f.svc.Logout(ctx, f.sessions, res.Session); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok := res.Session.Principal(); ok {
		t.Fatalf("expected auth session signed out")
	}
	if st, _ := f.sessions.Restore(ctx); st != nil {
		t.Fatalf("expected no session after logout, got %+v", st)
	}
	if err := f.svc.Logout(ctx, f.sessions, res.Session); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	form := driverForm()
	form.UserType = entity.UserTypeUser

	reg, err := f.svc.Register(ctx, form)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	rec, err := f.repo.Get(ctx, entity.Users, reg.Principal.ID)
	if err != nil {
		t.Fatalf("expected users record: %v", err)
	}
	if rec.Status != "" {
		t.Fatalf("users carry no status, got %q", rec.Status)
	}
}

func TestRegisterValidationSkipsProvider(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	form := driverForm()
	form.ConfirmPassword = "different"

	var ve *entity.ValidationError
	if _, err := f.svc.Register(ctx, form); !errors.As(err, &ve) || ve.Kind != entity.PasswordMismatch {
		t.Fatalf("expected mismatch, got %v", err)
	}
	// the account was never created, so signing up again succeeds
	if _, err := f.identity.SignUp(ctx, form.Email, "secret1"); err != nil {
		t.Fatalf("expected email to be free, got %v", err)
	}
}

func TestLoginOrphanedPrincipal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	if _, err := f.identity.SignUp(ctx, "ghost@example.com", "secret1"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	res, err := f.svc.Login(ctx, f.sessions, accountpkg.Credentials{Email: "ghost@example.com", Password: "secret1"})
	if !errors.Is(err, role.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
	var ae *auth.Error
	if errors.As(err, &ae) {
		t.Fatalf("credentials were valid; got auth error %v", ae)
	}
	if res != nil {
		t.Fatalf("expected no login result, got %+v", res)
	}
	if st, _ := f.sessions.Restore(ctx); st != nil {
		t.Fatalf("expected no session, got %+v", st)
	}
}

func TestFailedLoginKeepsPriorSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	if _, err := f.svc.Register(ctx, driverForm()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := f.svc.Login(ctx, f.sessions, accountpkg.Credentials{Email: "driver@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err := f.svc.Login(ctx, f.sessions, accountpkg.Credentials{Email: "driver@example.com", Password: "wrong-pass"})
	var ae *auth.Error
	if !errors.As(err, &ae) || ae.Kind != auth.KindInvalidCredentials {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	st, _ := f.sessions.Restore(ctx)
	if st == nil || st.Role != entity.RoleDriver {
		t.Fatalf("expected prior driver session intact, got %+v", st)
	}
}

func TestLoginRequiresFields(t *testing.T) {
	f := newFixture()
	var ve *entity.ValidationError
	if _, err := f.svc.Login(context.Background(), f.sessions, accountpkg.Credentials{Email: "a@example.com"}); !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestEstablishAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	if err := f.repo.Set(ctx, entity.Admins, "a1", entity.ProfileRecord{ID: "a1", Name: "Ada", UserType: entity.UserTypeAdmin}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	res, err := f.svc.Establish(ctx, f.sessions, auth.Principal{ID: "a1", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("Establish: %v", err)
	}
	if res.State.Role != entity.RoleAdmin || res.State.UserEmail != "ada@example.com" {
		t.Fatalf("unexpected state %+v", res.State)
	}
}
