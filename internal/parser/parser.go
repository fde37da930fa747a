// Package parser defines the per-source parser contract and the generic
// execution wrapper every implementation runs under. A parser knows how to
// turn one source's document into offering candidates; the runner turns
// that into a well-formed ExecutionResult no matter what happens.
package parser

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"

	"lunch-radar/internal/domain/entity"
	"lunch-radar/internal/menu/validate"
)

// DocumentFetcher abstracts network retrieval and document-tree
// construction. FetchNode returns the subtree matching selector (the whole
// document when selector is empty) or a nil selection when nothing matches.
// The extraction engine itself never performs network I/O.
type DocumentFetcher interface {
	FetchNode(ctx context.Context, url, selector string) (*goquery.Selection, error)
}

// MenuParser is the per-source knowledge object: locator, strategies and
// closure detection behind a uniform contract. Implementations are driven
// exclusively through a Runner.
type MenuParser interface {
	// Name returns the stable source id used for attribution and caching.
	Name() string

	// TargetURL returns the URL this parser scrapes.
	TargetURL() string

	// ProduceOfferings fetches and extracts offering candidates. A returned
	// error means the source could not be processed at all; an empty
	// production with closure diagnostics is a normal outcome.
	ProduceOfferings(ctx context.Context) (*Production, error)
}

// Production is the raw output of one ProduceOfferings call, before the
// batch validator has run.
type Production struct {
	Records           []entity.Offering
	Strategy          string
	Closed            bool
	ClosureIndicators []string
}

// Error codes surfaced in ExecutionError.
const (
	CodeSourceUnavailable = "SOURCE_UNAVAILABLE"
	CodeParseFailed       = "PARSE_FAILED"
	CodeCircuitOpen       = "CIRCUIT_OPEN"
)

// ExecutionResult is the envelope every execution returns, successful or
// not. It is produced once and never mutated after return.
type ExecutionResult struct {
	Success   bool              `json:"success"`
	Source    string            `json:"source"`
	URL       string            `json:"url"`
	Offerings []entity.Offering `json:"offerings"`
	Metadata  ExecutionMetadata `json:"metadata"`
	Error     *ExecutionError   `json:"error,omitempty"`
}

// ExecutionMetadata carries extraction and validation diagnostics.
// ValidCount always equals len(ExecutionResult.Offerings).
type ExecutionMetadata struct {
	TotalExtracted    int                    `json:"total_extracted"`
	ValidCount        int                    `json:"valid_count"`
	InvalidCount      int                    `json:"invalid_count"`
	ValidationErrors  []validate.RecordError `json:"validation_errors,omitempty"`
	Strategy          string                 `json:"strategy,omitempty"`
	Closed            bool                   `json:"closed"`
	ClosureIndicators []string               `json:"closure_indicators,omitempty"`
	DurationMs        int64                  `json:"duration_ms"`
	Timestamp         time.Time              `json:"timestamp"`
}

// ExecutionError describes a failed execution.
type ExecutionError struct {
	Message             string    `json:"message"`
	Code                string    `json:"code"`
	Timestamp           time.Time `json:"timestamp"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
}
