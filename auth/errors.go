package auth

import (
	"fmt"
)

// Kind classifies an identity provider failure.
type Kind string

const (
	KindInvalidCredentials Kind = "invalid-credentials"
	KindNetwork            Kind = "network"
	KindUnknown            Kind = "unknown"
)

// Error is a failed identity provider call. Message is the provider's own
// text, passed through to the user-facing layer.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("auth %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("auth %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func invalidCredentials(msg string, err error) *Error {
	return &Error{Kind: KindInvalidCredentials, Message: msg, Err: err}
}
