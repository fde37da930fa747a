package orchestrator

import (
	"lunch-radar/internal/parser"
)

// SourceStats combines one source's breaker snapshot with its runner
// health counters.
type SourceStats struct {
	Source  string          `json:"source"`
	Active  bool            `json:"active"`
	Breaker BreakerSnapshot `json:"breaker"`
	Health  parser.Health   `json:"health"`
}

// Stats is the aggregate view over every registered source.
type Stats struct {
	TotalParsers  int           `json:"total_parsers"`
	ActiveParsers int           `json:"active_parsers"`
	TotalRequests uint64        `json:"total_requests"`
	SuccessRate   float64       `json:"success_rate"`
	Sources       []SourceStats `json:"sources"`
}

// Stats returns a point-in-time projection of registry, breaker, and
// runner state. It never mutates anything and is safe to call while a
// batch is in flight.
func (o *Orchestrator) Stats() Stats {
	o.mu.RLock()
	defer o.mu.RUnlock()

	stats := Stats{
		TotalParsers: len(o.order),
		Sources:      make([]SourceStats, 0, len(o.order)),
	}

	var successful uint64
	for _, id := range o.order {
		reg := o.registry[id]
		snapshot := reg.breaker.Snapshot()
		health := reg.runner.Health()

		if reg.descriptor.Active {
			stats.ActiveParsers++
		}
		stats.TotalRequests += snapshot.TotalRequests
		successful += snapshot.SuccessfulRequests

		stats.Sources = append(stats.Sources, SourceStats{
			Source:  id,
			Active:  reg.descriptor.Active,
			Breaker: snapshot,
			Health:  health,
		})
	}

	if stats.TotalRequests > 0 {
		stats.SuccessRate = float64(successful) / float64(stats.TotalRequests)
	}
	return stats
}
