package auth

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// provider error codes that mean the credentials themselves were rejected
var credentialCodes = map[string]bool{
	"EMAIL_NOT_FOUND":           true,
	"INVALID_PASSWORD":          true,
	"INVALID_LOGIN_CREDENTIALS": true,
	"USER_DISABLED":             true,
	"EMAIL_EXISTS":              true,
	"WEAK_PASSWORD":             true,
	"INVALID_EMAIL":             true,
	"MISSING_PASSWORD":          true,
}

// FirebaseIdentity signs principals in and up through the Firebase
// Identity Toolkit using the project's web API key.
type FirebaseIdentity struct {
	svc *identitytoolkit.Service
}

// NewFirebaseIdentity builds a provider for the project that owns apiKey.
// Extra options (for example option.WithEndpoint) are applied after the key.
func NewFirebaseIdentity(ctx context.Context, apiKey string, opts ...option.ClientOption) (*FirebaseIdentity, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("firebase web api key is required")
	}
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := identitytoolkit.NewService(ctx, all...)
	if err != nil {
		return nil, err
	}
	return &FirebaseIdentity{svc: svc}, nil
}

func (f *FirebaseIdentity) SignIn(ctx context.Context, email, password string) (*Principal, error) {
	resp, err := f.svc.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, classifyProviderError(err)
	}
	return principalFrom(resp.LocalId, resp.Email, email, resp.IdToken), nil
}

func (f *FirebaseIdentity) SignUp(ctx context.Context, email, password string) (*Principal, error) {
	resp, err := f.svc.Relyingparty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    email,
		Password: password,
	}).Context(ctx).Do()
	if err != nil {
		return nil, classifyProviderError(err)
	}
	return principalFrom(resp.LocalId, resp.Email, email, resp.IdToken), nil
}

func principalFrom(localID, email, requested, idToken string) *Principal {
	if email == "" {
		email = requested
	}
	return &Principal{ID: localID, Email: email, IDToken: idToken}
}

// classifyProviderError maps identity toolkit failures onto Error kinds.
// Messages look like "WEAK_PASSWORD : Password should be at least 6 characters".
func classifyProviderError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		code, _, _ := strings.Cut(gerr.Message, " ")
		if credentialCodes[code] {
			return invalidCredentials(gerr.Message, err)
		}
		if gerr.Code == http.StatusServiceUnavailable || gerr.Code == http.StatusGatewayTimeout {
			return &Error{Kind: KindNetwork, Message: gerr.Message, Err: err}
		}
		return &Error{Kind: KindUnknown, Message: gerr.Message, Err: err}
	}
	if isNetwork(err) {
		return &Error{Kind: KindNetwork, Err: err}
	}
	return &Error{Kind: KindUnknown, Err: err}
}

func isNetwork(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}
