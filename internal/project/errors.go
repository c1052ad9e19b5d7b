package project

import (
	"errors"
	"fmt"
)

// Parse and resolve errors.
var (
	ErrUnrecognizedFormat = errors.New("unrecognized remote url format")
	ErrInvalidUTF8        = errors.New("remote url segment is not valid UTF-8")
	ErrEmptyField         = errors.New("remote url has an empty field")
	ErrUnsupportedDomain  = errors.New("unsupported domain")
)

// ParseError is returned by ParseRemote. Kind is one of ErrUnrecognizedFormat,
// ErrInvalidUTF8 or ErrEmptyField.
type ParseError struct {
	Kind  error
	Input string
	// Field names the offending segment: "domain", "owner" or "repository".
	Field string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrUnrecognizedFormat:
		return fmt.Sprintf("couldn't parse 'origin' remote %q: %v", e.Input, e.Kind)
	case ErrInvalidUTF8, ErrEmptyField:
		return fmt.Sprintf("couldn't parse 'origin' remote %q: %v (%s)", e.Input, e.Kind, e.Field)
	default:
		return fmt.Sprintf("couldn't parse 'origin' remote %q", e.Input)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// UnsupportedDomainError is returned by Resolve when no backend owns a domain.
type UnsupportedDomainError struct {
	Domain   string
	Expected string
}

func (e *UnsupportedDomainError) Error() string {
	return fmt.Sprintf("couldn't find credentials for %s, only %s and github.com are supported", e.Domain, e.Expected)
}

func (e *UnsupportedDomainError) Unwrap() error {
	return ErrUnsupportedDomain
}
