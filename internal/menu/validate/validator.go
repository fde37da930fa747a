// Package validate checks extraction candidates against the Offering
// invariants. Validation is the only gate through which a candidate becomes
// a surfaced Offering: invalid records are discarded with diagnostics, never
// repaired.
package validate

import (
	"fmt"

	"lunch-radar/internal/domain/entity"
)

// Result is the outcome of validating a single record.
type Result struct {
	IsValid bool
	Errors  []string
}

// RecordError ties the validation errors of a rejected record to its index
// in the original batch.
type RecordError struct {
	Index  int      `json:"index"`
	Errors []string `json:"errors"`
}

// BatchResult partitions a candidate batch into valid offerings and
// per-record diagnostics for the rejects.
type BatchResult struct {
	Valid   []entity.Offering
	Invalid []RecordError
	Total   int
}

// Record validates a single offering candidate against the domain
// invariants. It is a pure function and idempotent: a record that passed
// once passes again with no errors.
func Record(o entity.Offering) Result {
	var errs []string

	if o.Name == "" {
		errs = append(errs, "name is required")
	}
	if o.Price < 0 {
		errs = append(errs, fmt.Sprintf("price must be non-negative, got %d", o.Price))
	}
	if !o.Weekday.IsValid() {
		errs = append(errs, fmt.Sprintf("weekday %q is not a serving day", o.Weekday))
	}
	if o.Week < 1 || o.Week > 53 {
		errs = append(errs, fmt.Sprintf("week must be in [1, 53], got %d", o.Week))
	}
	if o.SourceName == "" {
		errs = append(errs, "source name is required")
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// Batch validates a candidate list, keeping valid records in input order and
// collecting {index, errors} diagnostics for the rejects.
func Batch(records []entity.Offering) BatchResult {
	result := BatchResult{Total: len(records)}

	for i, record := range records {
		r := Record(record)
		if r.IsValid {
			result.Valid = append(result.Valid, record)
			continue
		}
		result.Invalid = append(result.Invalid, RecordError{Index: i, Errors: r.Errors})
	}

	return result
}
