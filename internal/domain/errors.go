// Package domain defines the core types and errors of the admin console.
package domain

import "fmt"

// NotFoundError indicates a resource was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError indicates a conflict (e.g., duplicate identifier).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// UpstreamError indicates the data server answered with an unexpected status.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("data server returned HTTP %d: %s", e.StatusCode, e.Message)
}

// PartialFailureError reports a batch operation that stopped part way.
// Completed holds the number of items written before Err occurred; those
// writes are not rolled back.
type PartialFailureError struct {
	Completed int
	Total     int
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%d of %d operations completed: %v", e.Completed, e.Total, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError with a formatted message.
func ErrConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}
