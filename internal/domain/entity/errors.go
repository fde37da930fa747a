package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrSourceNotFound indicates that a requested source id is not registered.
	ErrSourceNotFound = errors.New("source not found")

	// ErrSourceInactive indicates that the source is registered but disabled.
	ErrSourceInactive = errors.New("source is inactive")

	// ErrCircuitOpen indicates that an execution was short-circuited by the
	// source's circuit breaker without contacting the source.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrSourceUnavailable indicates that the source could not be reached
	// (network failure or timeout) after the retry policy was exhausted.
	ErrSourceUnavailable = errors.New("source unavailable")
)

// ValidationError represents a field-level validation failure.
// It filters a single record or input value and is never fatal to a run.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ConfigurationError represents a malformed SourceDescriptor.
// It is fatal at registration time: a descriptor that fails validation is
// rejected before it can affect any execution.
type ConfigurationError struct {
	SourceID string
	Reason   string
}

// Error returns a formatted error message for the configuration error.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid source configuration '%s': %s", e.SourceID, e.Reason)
}
