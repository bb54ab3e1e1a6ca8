package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type localAccount struct {
	id   string
	hash []byte
}

// LocalIdentity is an in-process identity provider for development and
// tests. Accounts vanish when the process exits.
type LocalIdentity struct {
	mu       sync.RWMutex
	accounts map[string]localAccount // by lowercased email
	cost     int
}

func NewLocalIdentity() *LocalIdentity {
	return &LocalIdentity{accounts: make(map[string]localAccount), cost: bcrypt.DefaultCost}
}

// WithCost lowers the bcrypt cost; tests use bcrypt.MinCost.
func (l *LocalIdentity) WithCost(cost int) *LocalIdentity {
	l.cost = cost
	return l
}

func (l *LocalIdentity) SignUp(ctx context.Context, email, password string) (*Principal, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindNetwork, Err: err}
	}
	if len(password) < 6 {
		return nil, invalidCredentials("WEAK_PASSWORD : Password should be at least 6 characters", nil)
	}
	key := strings.ToLower(strings.TrimSpace(email))
	hash, err := bcrypt.GenerateFromPassword([]byte(password), l.cost)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Err: err}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.accounts[key]; exists {
		return nil, invalidCredentials("EMAIL_EXISTS", nil)
	}
	acct := localAccount{id: uuid.NewString(), hash: hash}
	l.accounts[key] = acct
	return &Principal{ID: acct.id, Email: email}, nil
}

func (l *LocalIdentity) SignIn(ctx context.Context, email, password string) (*Principal, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindNetwork, Err: err}
	}
	key := strings.ToLower(strings.TrimSpace(email))
	l.mu.RLock()
	acct, ok := l.accounts[key]
	l.mu.RUnlock()
	if !ok {
		return nil, invalidCredentials("INVALID_LOGIN_CREDENTIALS", nil)
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(password)); err != nil {
		return nil, invalidCredentials("INVALID_LOGIN_CREDENTIALS", err)
	}
	return &Principal{ID: acct.id, Email: email}, nil
}
