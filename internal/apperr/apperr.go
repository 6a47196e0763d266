// Package apperr carries the machine-readable codes returned to the UI.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failure that maps onto one HTTP status and one response code.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(status int, code string) *Error {
	return &Error{Status: status, Code: code}
}

func Wrap(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func BadRequest(code string) *Error {
	return New(http.StatusBadRequest, code)
}

func NotFound(code string) *Error {
	return New(http.StatusNotFound, code)
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// HasCode reports whether err carries code.
func HasCode(err error, code string) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
