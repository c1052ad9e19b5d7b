package models

import (
	"errors"
	"fmt"
)

// Backend error kinds.
var (
	ErrRequestFailed     = errors.New("request failed")
	ErrMalformedResponse = errors.New("malformed response")
	ErrAssigneeLookup    = errors.New("assignee lookup failed")
)

// BackendError is returned by issue backends. Kind is one of the sentinel
// errors above, Err is the upstream cause if any.
type BackendError struct {
	Backend string
	Op      string
	Kind    error
	Err     error
}

func (e *BackendError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Backend, e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *BackendError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// RequestFailed wraps a transport or decoding failure.
func RequestFailed(backend, op string, err error) error {
	return &BackendError{Backend: backend, Op: op, Kind: ErrRequestFailed, Err: err}
}

// MalformedResponse reports a response that lacks an expected field.
func MalformedResponse(backend, op, detail string) error {
	return &BackendError{Backend: backend, Op: op, Kind: ErrMalformedResponse, Err: errors.New(detail)}
}

// AssigneeLookupFailed reports that a username could not be resolved.
func AssigneeLookupFailed(backend, username string, err error) error {
	if err == nil {
		err = fmt.Errorf("no user named %q", username)
	}
	return &BackendError{Backend: backend, Op: "resolve assignee", Kind: ErrAssigneeLookup, Err: err}
}
