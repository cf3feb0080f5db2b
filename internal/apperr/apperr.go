// Package apperr defines the typed errors the business layer returns to the
// HTTP layer. Everything that is not one of these kinds is treated as an
// opaque server fault.
package apperr

import "errors"

type Kind int

const (
	// NotFound: a referenced account, job or application does not exist.
	NotFound Kind = iota
	// InvalidState: the operation is forbidden for the current status,
	// e.g. applying to a closed job or withdrawing past reviewing.
	InvalidState
	// Conflict: a uniqueness rule was violated, e.g. duplicate application,
	// duplicate saved job, duplicate account email.
	Conflict
	// Unauthorized: identity or role mismatch.
	Unauthorized
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "error"
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an Error with a user-visible message.
func E(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf reports the kind of err and whether err is a typed business error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err is a typed business error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
