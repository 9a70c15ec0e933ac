package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an application error independently of its HTTP status.
type Kind string

const (
	KindUnauthenticated   Kind = "unauthenticated"
	KindForbidden         Kind = "forbidden"
	KindNotFound          Kind = "not_found"
	KindValidationFailure Kind = "validation_failure"
	KindDuplicate         Kind = "duplicate"
	KindUpstreamFailure   Kind = "upstream_failure"
)

// Error is the error type returned by repositories, guards and handlers.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, never sent to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Unauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, Message: "unauthorized access"}
}

func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Message: "forbidden access"}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Validation(message string, err error) *Error {
	return &Error{Kind: KindValidationFailure, Message: message, Err: err}
}

func Duplicate(message string, err error) *Error {
	return &Error{Kind: KindDuplicate, Message: message, Err: err}
}

func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstreamFailure, Message: message, Err: err}
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps a kind to the status code sent to clients.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidationFailure:
		return http.StatusBadRequest
	case KindDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// kindForStatus is used for errors raised by echo itself (404 route, 405, bind failures).
func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthenticated
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindDuplicate
	case status >= 400 && status < 500:
		return KindValidationFailure
	default:
		return KindUpstreamFailure
	}
}
