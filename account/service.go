package account

import (
	"context"
	"strings"

	"github.com/mikios34/choonpaan/auth"
	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/role"
	"github.com/mikios34/choonpaan/session"
)

// RegisterForm is the state of the registration form.
type RegisterForm struct {
	Email           string          `json:"email"`
	Name            string          `json:"name"`
	Password        string          `json:"password"`
	ConfirmPassword string          `json:"confirmPassword"`
	UserType        entity.UserType `json:"userType"`
}

// Validate checks the form in field order and returns the first problem.
// It has no side effects.
func (f RegisterForm) Validate() error {
	switch {
	case strings.TrimSpace(f.Email) == "":
		return entity.Required("email")
	case strings.TrimSpace(f.Name) == "":
		return entity.Required("name")
	case f.Password == "":
		return entity.Required("password")
	case f.ConfirmPassword == "":
		return entity.Required("confirmPassword")
	case f.Password != f.ConfirmPassword:
		return &entity.ValidationError{Field: "confirmPassword", Kind: entity.PasswordMismatch}
	case f.UserType != entity.UserTypeUser && f.UserType != entity.UserTypeDriver:
		return &entity.ValidationError{Field: "userType", Kind: entity.InvalidUserType}
	}
	return nil
}

// Credentials are the login form fields.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate rejects empty fields before any provider call.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return entity.Required("email")
	}
	if c.Password == "" {
		return entity.Required("password")
	}
	return nil
}

// RegisterResult is a successful registration.
type RegisterResult struct {
	Principal auth.Principal       `json:"principal"`
	Record    entity.ProfileRecord `json:"record"`
}

// LoginResult is a successful login. State was built from Resolution.
type LoginResult struct {
	Session    *auth.Session       `json:"-"`
	State      entity.SessionState `json:"session"`
	Resolution role.Resolution     `json:"resolution"`
}

// Resolver resolves a principal id to its role.
type Resolver interface {
	Resolve(ctx context.Context, principalID string) (*role.Resolution, error)
}

// Service runs the registration, login and logout flows. Login and logout
// take the session manager of the device they act for.
type Service interface {
	Register(ctx context.Context, form RegisterForm) (*RegisterResult, error)
	Login(ctx context.Context, sessions *session.Manager, creds Credentials) (*LoginResult, error)
	// Establish resolves and persists a session for a principal that was
	// authenticated elsewhere, such as by a verified ID token.
	Establish(ctx context.Context, sessions *session.Manager, p auth.Principal) (*LoginResult, error)
	Logout(ctx context.Context, sessions *session.Manager, s *auth.Session) error
}
