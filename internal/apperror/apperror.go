// Package apperror carries the error taxonomy shared by every usecase.
// Handlers map kinds to transport status codes; usecases never do.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindPermissionDenied
	KindNotFound
	KindInvalidInput
	KindTypeMismatch
	KindConflict
	KindInvalidState
	KindInconsistent
	KindPartialFailure
)

func (k Kind) String() string {
	switch k {
	case KindPermissionDenied:
		return "permission_denied"
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindTypeMismatch:
		return "type_mismatch"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindInconsistent:
		return "inconsistent"
	case KindPartialFailure:
		return "partial_failure"
	default:
		return "unknown"
	}
}

type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

func PermissionDenied(msg string) *Error { return New(KindPermissionDenied, msg) }
func NotFound(msg string) *Error         { return New(KindNotFound, msg) }
func InvalidInput(msg string) *Error     { return New(KindInvalidInput, msg) }
func TypeMismatch(msg string) *Error     { return New(KindTypeMismatch, msg) }
func Conflict(msg string) *Error         { return New(KindConflict, msg) }
func InvalidState(msg string) *Error     { return New(KindInvalidState, msg) }
func Inconsistent(msg string) *Error     { return New(KindInconsistent, msg) }

// KindOf reports the kind of err, walking the wrap chain. Errors that do not
// originate from this package report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }

// HTTPStatus maps an error kind to its transport status. Used only at the
// handler edge.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindPermissionDenied:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidInput, KindTypeMismatch:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindInvalidState:
		return http.StatusUnprocessableEntity
	case KindInconsistent, KindPartialFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
