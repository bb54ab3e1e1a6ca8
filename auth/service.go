package auth

import (
	"context"
	"sync"
)

// Principal is an authenticated identity as issued by the identity provider.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	// IDToken is the provider's token for the principal, when it issues one.
	IDToken string `json:"-"`
}

// IdentityProvider verifies and creates email/password credentials.
// Callers validate that email and password are non-empty before calling.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*Principal, error)
	SignUp(ctx context.Context, email, password string) (*Principal, error)
}

// Authenticator hands out an explicit Session per successful sign-in or
// sign-up. There is no process-wide "current user".
type Authenticator struct {
	provider IdentityProvider
}

func NewAuthenticator(provider IdentityProvider) *Authenticator {
	return &Authenticator{provider: provider}
}

// SignIn verifies credentials and returns a session for the principal.
func (a *Authenticator) SignIn(ctx context.Context, email, password string) (*Session, error) {
	p, err := a.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return NewSession(*p), nil
}

// SignUp creates a principal and returns a session for it.
func (a *Authenticator) SignUp(ctx context.Context, email, password string) (*Session, error) {
	p, err := a.provider.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return NewSession(*p), nil
}

// Session carries the signed-in principal for one client. It is created on
// sign-in or sign-up and cleared by SignOut. The zero value is signed out.
type Session struct {
	mu        sync.RWMutex
	principal *Principal
}

func NewSession(p Principal) *Session {
	return &Session{principal: &p}
}

// Principal returns the signed-in principal, or false after SignOut.
func (s *Session) Principal() (Principal, bool) {
	if s == nil {
		return Principal{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil {
		return Principal{}, false
	}
	return *s.principal, true
}

// SignOut clears the session. Signing out twice is a no-op.
func (s *Session) SignOut() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.principal = nil
	s.mu.Unlock()
}
