package services

import "errors"

// ErrorKind classifies a failure the way callers are expected to react to it.
type ErrorKind string

const (
	KindUnauthenticated    ErrorKind = "unauthenticated"
	KindInvalidArgument    ErrorKind = "invalid-argument"
	KindNotFound           ErrorKind = "not-found"
	KindPreconditionFailed ErrorKind = "precondition-failed"
	KindInternal           ErrorKind = "internal"
)

type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (err *Error) Error() string {
	if err.cause != nil {
		return err.Message + ": " + err.cause.Error()
	}
	return err.Message
}

func (err *Error) Unwrap() error {
	return err.cause
}

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func WrapInternal(cause error, message string) *Error {
	return &Error{Kind: KindInternal, Message: message, cause: cause}
}

// KindOf extracts the kind from any error; untyped errors count as internal.
func KindOf(err error) ErrorKind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return KindInternal
}
