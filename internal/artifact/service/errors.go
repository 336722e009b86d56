package service

import "errors"

// ErrorKind classifies service failures, the HTTP boundary maps each kind to
// one status code.
type ErrorKind string

const (
	KindBadRequest  ErrorKind = "bad_request"
	KindNotFound    ErrorKind = "not_found"
	KindServerError ErrorKind = "server_error"
)

// Error service error with a user facing message
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
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

// KindOf returns the kind of err, errors not produced by the service are
// server errors.
func KindOf(err error) ErrorKind {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind
	}
	return KindServerError
}

func newError(kind ErrorKind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}
