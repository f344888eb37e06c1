package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors, one per backend operation. Every error returned by
// Client matches exactly one of them via errors.Is.
var (
	ErrLoadFailed   = errors.New("could not fetch contacts")
	ErrCreateFailed = errors.New("could not add contact")
	ErrDeleteFailed = errors.New("could not delete contact")
)

// StatusError reports a response whose status code the operation does
// not accept as success.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
}

// StatusCode returns the HTTP status of err when it wraps a StatusError,
// or 0 otherwise.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
