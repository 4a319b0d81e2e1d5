// Package apierr carries the failure taxonomy shared by every operation:
// a referenced entity is missing, a uniqueness rule was violated, a
// structured argument failed to parse, or the store itself failed. Handlers
// translate the kind into an HTTP status; the response body is always the
// uniform {"error": message} shape.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindValidation
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindStorage:
		return "storage"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("api error (%s)", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the kind onto the HTTP status the handler should emit.
func (e *Error) Status() int {
	if e == nil {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Err: errors.New(msg)}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Err: errors.New(msg)}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Err: errors.New(msg)}
}

// Storage wraps an underlying persistence fault, preserving its message.
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Err: err}
}

// KindOf reports the kind of err, or zero when err is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return 0
}

// Coerce returns err as an *Error, wrapping unknown errors as storage
// faults so no failure escapes the taxonomy.
func Coerce(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Storage(err)
}
