package entity

import "fmt"

// ValidationKind classifies a rejected input.
type ValidationKind string

const (
	EmptyField       ValidationKind = "empty-field"
	PasswordMismatch ValidationKind = "password-mismatch"
	InvalidUserType  ValidationKind = "invalid-user-type"
)

// ValidationError reports client-side input that was rejected before any
// remote call was made.
type ValidationError struct {
	Field string
	Kind  ValidationKind
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case EmptyField:
		return fmt.Sprintf("%s is required", e.Field)
	case PasswordMismatch:
		return "password and confirm password do not match"
	case InvalidUserType:
		return fmt.Sprintf("%s must be user or driver", e.Field)
	}
	return fmt.Sprintf("invalid %s", e.Field)
}

// Required returns an empty-field validation error for field.
func Required(field string) *ValidationError {
	return &ValidationError{Field: field, Kind: EmptyField}
}
