package eventbrite

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrNotFound indicates the remote resource does not exist
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthorized indicates the token was rejected
	ErrUnauthorized = errors.New("unauthorized: invalid token")
	// ErrNoMorePages is returned by Pagination.NextPage on the last page
	ErrNoMorePages = errors.New("no more pages available")
)

// APIError represents a non-2xx response from the Eventbrite API
type APIError struct {
	StatusCode int
	// ErrorCode is Eventbrite's symbolic error, e.g. NOT_FOUND or ARGUMENTS_ERROR
	ErrorCode string
	Message   string
	Body      string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("eventbrite API error: status %d: %s: %s", e.StatusCode, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("eventbrite API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Is lets errors.Is match an APIError against ErrNotFound and ErrUnauthorized
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.IsNotFound()
	case ErrUnauthorized:
		return e.IsUnauthorized()
	}
	return false
}

// UnsupportedTypeError is returned when no handler is registered for a resource type
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("type %q is not currently supported", e.Type)
}

// UnsupportedOperationError is returned when a handler does not implement an operation
type UnsupportedOperationError struct {
	Resource  string
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s does not support %s", e.Resource, e.Operation)
}

// InvalidArgumentError is returned when a required value is missing or empty
type InvalidArgumentError struct {
	Argument string
	Reason   string
}

func (e *InvalidArgumentError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid argument %q: value is required", e.Argument)
	}
	return fmt.Sprintf("invalid argument %q: %s", e.Argument, e.Reason)
}

func unsupported(resource, operation string) error {
	return &UnsupportedOperationError{Resource: resource, Operation: operation}
}

func required(argument string) error {
	return &InvalidArgumentError{Argument: argument}
}
