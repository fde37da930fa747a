// Package orchestrator owns the source registry and runs parser executions
// behind per-source circuit breakers, individually or as bounded-concurrency
// batches. All breaker state lives on the orchestrator instance; there is no
// ambient process-wide state.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"lunch-radar/internal/domain/entity"
	"lunch-radar/internal/parser"
)

// DefaultMaxConcurrency bounds a batch wave when the caller does not choose
// a limit.
const DefaultMaxConcurrency = 3

// errExecutionFailed marks a structured failure result so the breaker
// counts it; it never leaves this package.
var errExecutionFailed = errors.New("source execution failed")

// registration ties a descriptor to its runner and breaker. Executions for
// one id are serialized through execGate, so the breaker and runner
// bookkeeping are never touched concurrently for the same source.
type registration struct {
	descriptor entity.SourceDescriptor
	runner     *parser.Runner
	breaker    *sourceBreaker
	execGate   chan struct{}
}

// Orchestrator is the registry of source parsers. Register and Deregister
// manage descriptor lifecycle; ExecuteSource and ExecuteAll run them behind
// their breakers.
type Orchestrator struct {
	fetcher parser.DocumentFetcher

	mu       sync.RWMutex
	registry map[string]*registration
	order    []string
}

// New creates an empty orchestrator using fetcher for all registered
// parsers.
func New(fetcher parser.DocumentFetcher) *Orchestrator {
	return &Orchestrator{
		fetcher:  fetcher,
		registry: make(map[string]*registration),
	}
}

// Register validates the descriptor, builds its parser, and adds it to the
// registry. A malformed descriptor or a duplicate id is rejected with a
// ConfigurationError before it can affect execution.
func (o *Orchestrator) Register(d entity.SourceDescriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}

	p, err := parser.New(d, o.fetcher)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if _, exists := o.registry[d.ID]; exists {
		return &entity.ConfigurationError{SourceID: d.ID, Reason: "already registered"}
	}

	gate := make(chan struct{}, 1)
	gate <- struct{}{}
	o.registry[d.ID] = &registration{
		descriptor: d,
		runner:     parser.NewRunner(p),
		breaker:    newSourceBreaker(d.ID, d.Resilience),
		execGate:   gate,
	}
	o.order = append(o.order, d.ID)

	slog.Info("source registered",
		slog.String("source", d.ID),
		slog.String("url", d.TargetURL),
		slog.Bool("active", d.Active))
	return nil
}

// Deregister removes a source and its breaker state.
func (o *Orchestrator) Deregister(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, exists := o.registry[id]; !exists {
		return fmt.Errorf("deregister %s: %w", id, entity.ErrSourceNotFound)
	}
	delete(o.registry, id)
	for i, known := range o.order {
		if known == id {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}

	slog.Info("source deregistered", slog.String("source", id))
	return nil
}

// Sources returns the registered descriptors in registration order.
func (o *Orchestrator) Sources() []entity.SourceDescriptor {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]entity.SourceDescriptor, 0, len(o.order))
	for _, id := range o.order {
		out = append(out, o.registry[id].descriptor)
	}
	return out
}

// ExecuteSource runs one source through its circuit breaker and returns a
// structured result. The returned error is reserved for registry problems
// (unknown or inactive id); execution failures are reported inside the
// result, never as an error.
func (o *Orchestrator) ExecuteSource(ctx context.Context, id string) (parser.ExecutionResult, error) {
	o.mu.RLock()
	reg, exists := o.registry[id]
	o.mu.RUnlock()

	if !exists {
		return parser.ExecutionResult{}, fmt.Errorf("execute %s: %w", id, entity.ErrSourceNotFound)
	}
	if !reg.descriptor.Active {
		return parser.ExecutionResult{}, fmt.Errorf("execute %s: %w", id, entity.ErrSourceInactive)
	}

	// Serialize executions per id; the breaker's state is only ever driven
	// by one execution at a time for its own source.
	<-reg.execGate
	defer func() { reg.execGate <- struct{}{} }()

	raw, err := reg.breaker.Execute(func() (interface{}, error) {
		result := reg.runner.Execute(ctx)
		if !result.Success {
			return result, errExecutionFailed
		}
		return result, nil
	})

	if err != nil {
		if shortCircuited(err) {
			return o.circuitOpenResult(reg), nil
		}
		// The runner produced a structured failure; hand it through.
		if result, ok := raw.(parser.ExecutionResult); ok {
			return result, nil
		}
		return parser.ExecutionResult{}, err
	}

	return raw.(parser.ExecutionResult), nil
}

// circuitOpenResult synthesizes the result for a short-circuited execution.
// The parser is never invoked in this path.
func (o *Orchestrator) circuitOpenResult(reg *registration) parser.ExecutionResult {
	snapshot := reg.breaker.Snapshot()
	now := time.Now()

	return parser.ExecutionResult{
		Success: false,
		Source:  reg.descriptor.ID,
		URL:     reg.descriptor.TargetURL,
		Metadata: parser.ExecutionMetadata{
			Timestamp: now,
		},
		Error: &parser.ExecutionError{
			Message: fmt.Sprintf("circuit breaker open, next attempt at %s",
				snapshot.NextAttemptTime.Format(time.RFC3339)),
			Code:                parser.CodeCircuitOpen,
			Timestamp:           now,
			ConsecutiveFailures: int(snapshot.FailureCount),
		},
	}
}

// ExecuteOptions controls a batch run.
type ExecuteOptions struct {
	// MaxConcurrency bounds each wave; DefaultMaxConcurrency when <= 0.
	MaxConcurrency int

	// ContinueOnError keeps the batch going past failed sources, collecting
	// every result. When false, the first failure aborts remaining waves.
	ContinueOnError bool
}

// DefaultExecuteOptions returns the standard batch settings.
func DefaultExecuteOptions() ExecuteOptions {
	return ExecuteOptions{
		MaxConcurrency:  DefaultMaxConcurrency,
		ContinueOnError: true,
	}
}

// ExecuteAll runs every active source in sequential waves of at most
// MaxConcurrency executions. Within a wave all executions run concurrently
// with all-settled semantics: one failing source never cancels its
// siblings. Results are collected in submission order.
func (o *Orchestrator) ExecuteAll(ctx context.Context, opts ExecuteOptions) ([]parser.ExecutionResult, error) {
	maxConcurrency := opts.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}

	o.mu.RLock()
	ids := make([]string, 0, len(o.order))
	for _, id := range o.order {
		if o.registry[id].descriptor.Active {
			ids = append(ids, id)
		}
	}
	o.mu.RUnlock()

	results := make([]parser.ExecutionResult, len(ids))

	for waveStart := 0; waveStart < len(ids); waveStart += maxConcurrency {
		waveEnd := waveStart + maxConcurrency
		if waveEnd > len(ids) {
			waveEnd = len(ids)
		}

		g := new(errgroup.Group)
		for i := waveStart; i < waveEnd; i++ {
			g.Go(func() error {
				result, err := o.ExecuteSource(ctx, ids[i])
				if err != nil {
					// Source vanished mid-batch; degrade to a structured
					// failure instead of aborting the wave.
					result = parser.ExecutionResult{
						Success: false,
						Source:  ids[i],
						Error: &parser.ExecutionError{
							Message:   err.Error(),
							Code:      parser.CodeParseFailed,
							Timestamp: time.Now(),
						},
					}
				}
				results[i] = result
				return nil
			})
		}
		_ = g.Wait()

		if !opts.ContinueOnError {
			for i := waveStart; i < waveEnd; i++ {
				if !results[i].Success {
					return results[:waveEnd], fmt.Errorf("source %s failed: %s",
						results[i].Source, results[i].Error.Message)
				}
			}
		}
	}

	return results, nil
}
