package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failure that already knows how it is rendered
type Error struct {
	Status  int
	Message string
}

// Error implements error interface
func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with a formatted message
func New(status int, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

// BadRequest creates a 400 error
func BadRequest(format string, args ...any) *Error {
	return New(http.StatusBadRequest, format, args...)
}

// Internal creates a 500 error
func Internal(format string, args ...any) *Error {
	return New(http.StatusInternalServerError, format, args...)
}

// MethodNotAllowed creates the 405 error for method
func MethodNotAllowed(method string) *Error {
	return New(http.StatusMethodNotAllowed, "Method %s is not allowed", method)
}

// From converts err into an Error. Unknown errors become a 500 carrying err's message.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("%s", err.Error())
}
