package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	accountpkg "github.com/mikios34/choonpaan/account"
	"github.com/mikios34/choonpaan/auth"
	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/session"
	"github.com/mikios34/choonpaan/store"
)

// accountService implements account.Service.
type accountService struct {
	auth     *auth.Authenticator
	resolver accountpkg.Resolver
	repo     store.Repository
}

// NewAccountService constructs an account.Service.
func NewAccountService(a *auth.Authenticator, resolver accountpkg.Resolver, repo store.Repository) accountpkg.Service {
	return &accountService{auth: a, resolver: resolver, repo: repo}
}

// Register creates the principal and writes its profile record under the
// collection for the chosen user type. Drivers start pending. No session is
// persisted; the client logs in afterwards.
func (s *accountService) Register(ctx context.Context, form accountpkg.RegisterForm) (*accountpkg.RegisterResult, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	email := strings.TrimSpace(form.Email)

	sess, err := s.auth.SignUp(ctx, email, form.Password)
	if err != nil {
		return nil, err
	}
	defer sess.SignOut()
	p, _ := sess.Principal()

	rec := entity.ProfileRecord{
		ID:       p.ID,
		Name:     strings.TrimSpace(form.Name),
		Email:    email,
		UserType: form.UserType,
	}
	coll := entity.Users
	if form.UserType == entity.UserTypeDriver {
		coll = entity.Drivers
		rec.Status = entity.DriverPending
	}
	if err := s.repo.Set(ctx, coll, p.ID, rec); err != nil {
		// the principal exists without a profile and will resolve to no role
		log.Printf("register: principal %s created but profile write failed: %v", p.ID, err)
		return nil, fmt.Errorf("saving profile: %w", err)
	}
	log.Printf("register: principal %s registered as %s", p.ID, form.UserType)
	return &accountpkg.RegisterResult{Principal: p, Record: rec}, nil
}

// Login signs in, resolves the role and persists the session. On any failure
// the persisted session is left as it was and no auth session is returned.
func (s *accountService) Login(ctx context.Context, sessions *session.Manager, creds accountpkg.Credentials) (*accountpkg.LoginResult, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	sess, err := s.auth.SignIn(ctx, strings.TrimSpace(creds.Email), creds.Password)
	if err != nil {
		return nil, err
	}
	res, err := s.establish(ctx, sessions, sess)
	if err != nil {
		sess.SignOut()
		return nil, err
	}
	return res, nil
}

func (s *accountService) Establish(ctx context.Context, sessions *session.Manager, p auth.Principal) (*accountpkg.LoginResult, error) {
	sess := auth.NewSession(p)
	res, err := s.establish(ctx, sessions, sess)
	if err != nil {
		sess.SignOut()
		return nil, err
	}
	return res, nil
}

func (s *accountService) establish(ctx context.Context, sessions *session.Manager, sess *auth.Session) (*accountpkg.LoginResult, error) {
	p, ok := sess.Principal()
	if !ok {
		return nil, fmt.Errorf("session already signed out")
	}
	resolution, err := s.resolver.Resolve(ctx, p.ID)
	if err != nil {
		log.Printf("login: principal %s not resolved: %v", p.ID, err)
		return nil, err
	}
	st, err := sessions.Bootstrap(ctx, p, *resolution)
	if err != nil {
		return nil, err
	}
	log.Printf("login: principal %s resolved to %s", p.ID, resolution.Role)
	return &accountpkg.LoginResult{Session: sess, State: *st, Resolution: *resolution}, nil
}

// Logout signs the session out and clears the persisted state. Both steps
// are idempotent.
func (s *accountService) Logout(ctx context.Context, sessions *session.Manager, sess *auth.Session) error {
	sess.SignOut()
	return sessions.Clear(ctx)
}
