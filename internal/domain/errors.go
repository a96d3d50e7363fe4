package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFlightNotFound    = errors.New("flight not found")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrPrivilegeNotFound = errors.New("privilege not found")
)

var (
	ErrTicketAlreadyCanceled = errors.New("ticket already canceled")
)

var (
	ErrValidation = errors.New("validation error")
)

type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// ValidationError carries per-field problems with client input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Description)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ServiceError reports a failed call to a backing service: a transport
// error, a timeout or an unexpected status code.
type ServiceError struct {
	Service    string
	Op         string
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Service, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Service, e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
