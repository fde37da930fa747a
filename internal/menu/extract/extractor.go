package extract

import (
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"lunch-radar/internal/menu/normalize"
)

// Strategy names surfaced in execution metadata.
const (
	StrategyTable  = "table"
	StrategyModern = "modern"
)

// Config tunes the engine for one source. The zero value uses the default
// container selectors and rejects zero prices.
type Config struct {
	// ContainerSelectors overrides the locator's candidate list.
	ContainerSelectors []string

	// AllowZeroPrice accepts records whose price normalizes to zero.
	AllowZeroPrice bool
}

// Outcome is the result of running the extraction pipeline over a document.
// Zero candidates is not an error: Closed distinguishes an intentionally
// empty document from an extraction failure.
type Outcome struct {
	Candidates        []Candidate
	Strategy          string
	Closed            bool
	ClosureIndicators []string
}

// Engine runs the strategy fallback pipeline for one source configuration.
type Engine struct {
	cfg Config
}

// New creates an extraction engine with the given configuration.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Extract runs the pipeline over a document root: locate the menu
// container, try the table strategy, fall back to the modern-structure
// strategy, and classify a fully empty result via closure detection.
func (e *Engine) Extract(root *goquery.Selection) Outcome {
	container := LocateContainer(root, e.cfg.ContainerSelectors)
	if container == nil {
		// Nothing menu-like anywhere; classify against the whole document
		// so a site-wide closure notice is still recognized.
		return e.classifyEmpty(root)
	}

	if candidates := tableCandidates(container, e.cfg.AllowZeroPrice); len(candidates) > 0 {
		return Outcome{Candidates: candidates, Strategy: StrategyTable}
	}

	if candidates := modernCandidates(container, e.cfg.AllowZeroPrice); len(candidates) > 0 {
		return Outcome{Candidates: candidates, Strategy: StrategyModern}
	}

	return e.classifyEmpty(container)
}

func (e *Engine) classifyEmpty(sel *goquery.Selection) Outcome {
	closure := normalize.DetectClosure(sel.Text())
	if closure.Closed {
		slog.Debug("document classified as closed",
			slog.Any("indicators", closure.Indicators))
	}
	return Outcome{
		Closed:            closure.Closed,
		ClosureIndicators: closure.Indicators,
	}
}
