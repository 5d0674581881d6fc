// Package common defines shared constants and sentinel errors used across
// client and server layers of catsocial. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrConflict   = errors.New("conflict")

	// Service-level errors.
	ErrorInternal   = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation error")

	// ErrStorage marks unexpected store failures. Mutations are atomic, so
	// callers may retry.
	ErrStorage = errors.New("storage failure")
)

// Error is a domain error: a kind (one of the sentinels above) plus a single
// human-readable message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Errorf builds an *Error of the given kind.
//
//	return common.Errorf(common.ErrForbidden, "collection %s belongs to another user", id)
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Storage wraps an unexpected store error into ErrStorage, keeping domain
// errors as they are.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{ErrorNotFound, ErrConflict, ErrUnauthorized, ErrForbidden, ErrValidation, ErrStorage} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%s: %w: %v", op, ErrStorage, err)
}

// Message returns the human-readable message of a domain error, or the
// kind's text when err is a bare sentinel.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Msg
	}
	return err.Error()
}
