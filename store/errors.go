package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/mikios34/choonpaan/entity"
)

var (
	// ErrNotFound indicates no record exists under the requested key.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidKey indicates a record id that cannot be used as a store key.
	ErrInvalidKey = errors.New("invalid record key")
)

// Kind classifies a remote store failure.
type Kind string

const (
	KindNetwork Kind = "network"
	KindUnknown Kind = "unknown"
)

// Error is a failed remote store call. It wraps the backend error.
type Error struct {
	Kind       Kind
	Op         string
	Collection entity.Collection
	ID         string
	Err        error
}

func (e *Error) Error() string {
	path := string(e.Collection)
	if e.ID != "" {
		path += "/" + e.ID
	}
	return fmt.Sprintf("store %s %s: %v", e.Op, path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap turns a backend error into a *Error, classifying transport failures
// and timeouts as network errors. It returns nil for a nil err and passes
// ErrNotFound and existing *Error values through unchanged.
func Wrap(op string, collection entity.Collection, id string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	kind := KindUnknown
	if IsNetwork(err) {
		kind = KindNetwork
	}
	return &Error{Kind: kind, Op: op, Collection: collection, ID: id, Err: err}
}

// IsNetwork reports whether err is a transport failure or a timeout.
func IsNetwork(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}

// CheckKey rejects ids that are empty or contain characters the realtime
// database does not allow in a key.
func CheckKey(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidKey)
	}
	if strings.ContainsAny(id, "/.#$[]") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, id)
	}
	return nil
}
