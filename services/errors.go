package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidTransition  = errors.New("invalid state or already updated")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
	ErrUnavailable        = errors.New("service unavailable")
)

// Error pairs a sentinel with the message shown to the client.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func newErr(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error { return newErr(ErrNotFound, format, args...) }
func conflict(format string, args ...any) error { return newErr(ErrConflict, format, args...) }
func forbidden(format string, args ...any) error { return newErr(ErrForbidden, format, args...) }
func invalid(format string, args ...any) error { return newErr(ErrValidation, format, args...) }
func badCreds(format string, args ...any) error { return newErr(ErrInvalidCredentials, format, args...) }
func unavailable(format string, args ...any) error { return newErr(ErrUnavailable, format, args...) }
