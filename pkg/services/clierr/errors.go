// Package clierr defines the outcome kinds every CLI operation reports and
// renders them as the single line printed to the operator.
package clierr

import (
	"errors"
	"fmt"
)

// Outcome kinds. Match with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrQuotaExceeded   = errors.New("quota exceeded")
	// ErrNotOwned covers both "does not exist" and "not managed by this CLI".
	ErrNotOwned   = errors.New("not managed by this CLI")
	ErrAborted    = errors.New("aborted")
	ErrResolution = errors.New("resolution failed")
	ErrRemote     = errors.New("remote call failed")
)

// Error pairs an outcome kind with a human readable message and the underlying
// cause, if any.
type Error struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s (%s)", e.Msg, e.Cause)
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func New(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind error, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Cause: cause}
}

func InvalidArgument(format string, args ...any) error {
	return New(ErrInvalidArgument, format, args...)
}

func NotOwned(format string, args ...any) error {
	return New(ErrNotOwned, format, args...)
}

func Remote(cause error, format string, args ...any) error {
	return Wrap(ErrRemote, cause, format, args...)
}

// Kind returns the outcome kind carried by err, or nil when err is not one of
// ours.
func Kind(err error) error {
	for _, kind := range []error{ErrInvalidArgument, ErrQuotaExceeded, ErrNotOwned, ErrAborted, ErrResolution, ErrRemote} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Pretty formats err the way it is shown to the operator.
func Pretty(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrAborted) {
		return fmt.Sprintf("Aborted: %s.", message(err))
	}
	return fmt.Sprintf("Error: %s.", message(err))
}

func message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}
