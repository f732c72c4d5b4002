package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrAuthMissing is returned before any request is made when an
// authenticated call is attempted without a credential.
var ErrAuthMissing = errors.New("not logged in: authentication required")

// StatusError is a non-2xx response from the backend.
type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string // server supplied text, may be empty
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
}

// Temporary reports whether retrying the same request may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code >= 500 || e.Code == http.StatusTooManyRequests
}

// TransportError means the request never produced a response: connection
// refused, timeout, cancelled context.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
