package orchestrator

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"lunch-radar/internal/domain/entity"
)

// BreakerState is the circuit breaker state exposed in snapshots.
type BreakerState string

const (
	StateClosed   BreakerState = "closed"
	StateOpen     BreakerState = "open"
	StateHalfOpen BreakerState = "half_open"
)

// BreakerSnapshot is a point-in-time view of one source's breaker.
// Snapshots are read-only projections; the breaker itself is the single
// source of truth.
type BreakerSnapshot struct {
	State              BreakerState `json:"state"`
	FailureCount       uint32       `json:"failure_count"`
	FailureThreshold   uint32       `json:"failure_threshold"`
	LastFailureTime    time.Time    `json:"last_failure_time,omitzero"`
	NextAttemptTime    time.Time    `json:"next_attempt_time,omitzero"`
	TotalRequests      uint64       `json:"total_requests"`
	SuccessfulRequests uint64       `json:"successful_requests"`
}

// sourceBreaker guards a single source. The state machine lives in
// gobreaker (consecutive-failure trip, single half-open trial, cooldown
// timeout); the wrapper keeps the bookkeeping gobreaker does not expose:
// failure streak, last failure and next attempt times, request totals.
type sourceBreaker struct {
	cfg entity.ResilienceConfig
	cb  *gobreaker.CircuitBreaker

	mu                 sync.Mutex
	failureCount       uint32
	lastFailureTime    time.Time
	nextAttemptTime    time.Time
	totalRequests      uint64
	successfulRequests uint64
}

func newSourceBreaker(name string, cfg entity.ResilienceConfig) *sourceBreaker {
	b := &sourceBreaker{cfg: cfg}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1, // exactly one trial in half-open
		Interval:    0, // never clear counts while closed; only success resets the streak
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("source", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			if to == gobreaker.StateOpen {
				b.noteOpened()
			}
		},
	}

	b.cb = gobreaker.NewCircuitBreaker(settings)
	return b
}

// Execute runs fn through the breaker. While the breaker is open and the
// cooldown has not elapsed, fn is never invoked and gobreaker.ErrOpenState
// is returned. Short-circuited attempts do not count into the request
// totals; only real invocations do.
func (b *sourceBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)
	if !shortCircuited(err) {
		b.recordOutcome(err == nil)
	}
	return result, err
}

// Snapshot returns the breaker's current state and counters.
func (b *sourceBreaker) Snapshot() BreakerSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return BreakerSnapshot{
		State:              mapState(b.cb.State()),
		FailureCount:       b.failureCount,
		FailureThreshold:   b.cfg.FailureThreshold,
		LastFailureTime:    b.lastFailureTime,
		NextAttemptTime:    b.nextAttemptTime,
		TotalRequests:      b.totalRequests,
		SuccessfulRequests: b.successfulRequests,
	}
}

func (b *sourceBreaker) recordOutcome(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.totalRequests++
	if success {
		b.successfulRequests++
		b.failureCount = 0
		return
	}
	b.failureCount++
	b.lastFailureTime = time.Now()
}

func (b *sourceBreaker) noteOpened() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextAttemptTime = time.Now().Add(b.cfg.Cooldown)
}

func shortCircuited(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func mapState(s gobreaker.State) BreakerState {
	switch s {
	case gobreaker.StateOpen:
		return StateOpen
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	default:
		return StateClosed
	}
}
