package web

import "github.com/pkg/errors"

// Error carries an HTTP status and optional per-field messages alongside the
// underlying error so controllers can answer with the right condition instead
// of a generic failure.
type Error struct {
	Err    error
	Status int
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Err.Error()
}

// NewRequestError is used when a known error condition is encountered.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

// IsRequestError reports whether err (or anything it wraps) is a request
// error produced by this package.
func IsRequestError(err error) (*Error, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re, true
	}

	return nil, false
}
