package parser

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"lunch-radar/internal/domain/entity"
	"lunch-radar/internal/menu/validate"
)

// unhealthyAfter is the consecutive-failure count at which a runner reports
// the source as unhealthy.
const unhealthyAfter = 3

// Health is a point-in-time view of a runner's bookkeeping.
type Health struct {
	TotalRequests       uint64 `json:"total_requests"`
	SuccessfulRequests  uint64 `json:"successful_requests"`
	ConsecutiveFailures int    `json:"consecutive_failures"`
	Healthy             bool   `json:"healthy"`
}

// Runner is the mandatory execution wrapper for a MenuParser. It times the
// call, validates the produced batch, maintains per-instance health
// bookkeeping across calls, and never lets an error escape: a failing
// ProduceOfferings becomes a well-formed ExecutionResult with Success=false.
type Runner struct {
	parser MenuParser

	mu                  sync.Mutex
	totalRequests       uint64
	successfulRequests  uint64
	consecutiveFailures int
}

// NewRunner wraps a MenuParser in its execution runner.
func NewRunner(p MenuParser) *Runner {
	return &Runner{parser: p}
}

// Parser returns the wrapped MenuParser.
func (r *Runner) Parser() MenuParser {
	return r.parser
}

// Execute runs one full parse-validate cycle and always returns a
// well-formed result.
func (r *Runner) Execute(ctx context.Context) ExecutionResult {
	start := time.Now()

	production, err := r.parser.ProduceOfferings(ctx)
	if err != nil {
		failures := r.recordOutcome(false)
		slog.Warn("source execution failed",
			slog.String("source", r.parser.Name()),
			slog.String("url", r.parser.TargetURL()),
			slog.Int("consecutive_failures", failures),
			slog.Any("error", err))

		return ExecutionResult{
			Success: false,
			Source:  r.parser.Name(),
			URL:     r.parser.TargetURL(),
			Metadata: ExecutionMetadata{
				DurationMs: time.Since(start).Milliseconds(),
				Timestamp:  time.Now(),
			},
			Error: &ExecutionError{
				Message:             err.Error(),
				Code:                classifyError(err),
				Timestamp:           time.Now(),
				ConsecutiveFailures: failures,
			},
		}
	}

	batch := validate.Batch(production.Records)
	r.recordOutcome(true)

	slog.Info("source execution completed",
		slog.String("source", r.parser.Name()),
		slog.String("strategy", production.Strategy),
		slog.Int("extracted", batch.Total),
		slog.Int("valid", len(batch.Valid)),
		slog.Int("invalid", len(batch.Invalid)),
		slog.Bool("closed", production.Closed))

	return ExecutionResult{
		Success:   true,
		Source:    r.parser.Name(),
		URL:       r.parser.TargetURL(),
		Offerings: batch.Valid,
		Metadata: ExecutionMetadata{
			TotalExtracted:    batch.Total,
			ValidCount:        len(batch.Valid),
			InvalidCount:      len(batch.Invalid),
			ValidationErrors:  batch.Invalid,
			Strategy:          production.Strategy,
			Closed:            production.Closed,
			ClosureIndicators: production.ClosureIndicators,
			DurationMs:        time.Since(start).Milliseconds(),
			Timestamp:         time.Now(),
		},
	}
}

// Health returns the runner's current bookkeeping. A source is healthy
// while its consecutive-failure streak stays below the threshold.
func (r *Runner) Health() Health {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Health{
		TotalRequests:       r.totalRequests,
		SuccessfulRequests:  r.successfulRequests,
		ConsecutiveFailures: r.consecutiveFailures,
		Healthy:             r.consecutiveFailures < unhealthyAfter,
	}
}

// recordOutcome updates the per-instance counters and returns the current
// consecutive-failure streak.
func (r *Runner) recordOutcome(success bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.totalRequests++
	if success {
		r.successfulRequests++
		r.consecutiveFailures = 0
	} else {
		r.consecutiveFailures++
	}
	return r.consecutiveFailures
}

func classifyError(err error) string {
	if errors.Is(err, entity.ErrSourceUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) {
		return CodeSourceUnavailable
	}
	return CodeParseFailed
}
