package parser

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"lunch-radar/internal/domain/entity"
	"lunch-radar/internal/menu/extract"
	"lunch-radar/internal/menu/normalize"
)

// weekMarker matches the "Vecka 29" / "Vecka 20250714" headers menu sites
// publish; the captured token is resolved by the week normalizer.
var weekMarker = regexp.MustCompile(`(?i)vecka\s+(\d{1,8})`)

// HTMLMenuParser is the selector-driven MenuParser for HTML menu pages.
// It fetches the document through the injected DocumentFetcher, runs the
// extraction engine, resolves the menu week, and attributes records to its
// source.
type HTMLMenuParser struct {
	descriptor entity.SourceDescriptor
	fetcher    DocumentFetcher
	engine     *extract.Engine
	now        func() time.Time
}

var _ MenuParser = (*HTMLMenuParser)(nil)

// NewHTMLMenuParser creates a parser for the given descriptor. The
// descriptor is expected to have passed Validate.
func NewHTMLMenuParser(d entity.SourceDescriptor, fetcher DocumentFetcher) *HTMLMenuParser {
	return &HTMLMenuParser{
		descriptor: d,
		fetcher:    fetcher,
		engine: extract.New(extract.Config{
			ContainerSelectors: d.Extraction.ContainerSelectors,
			AllowZeroPrice:     d.Extraction.AllowZeroPrice,
		}),
		now: time.Now,
	}
}

// Name returns the source id.
func (p *HTMLMenuParser) Name() string {
	return p.descriptor.ID
}

// TargetURL returns the scraped URL.
func (p *HTMLMenuParser) TargetURL() string {
	return p.descriptor.TargetURL
}

// ProduceOfferings fetches the source document and extracts offering
// candidates. An empty document with closure diagnostics is a normal
// production, not an error.
func (p *HTMLMenuParser) ProduceOfferings(ctx context.Context) (*Production, error) {
	root, err := p.fetcher.FetchNode(ctx, p.descriptor.TargetURL, "")
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	if root == nil || root.Length() == 0 {
		return nil, fmt.Errorf("%w: empty document from %s", entity.ErrSourceUnavailable, p.descriptor.TargetURL)
	}

	outcome := p.engine.Extract(root)
	week := p.resolveWeek(root.Text())

	records := make([]entity.Offering, 0, len(outcome.Candidates))
	for _, c := range outcome.Candidates {
		records = append(records, entity.Offering{
			Name:        c.Name,
			Description: c.Description,
			Price:       c.Price,
			Weekday:     c.Weekday,
			Week:        week,
			SourceName:  p.descriptor.ID,
		})
	}

	return &Production{
		Records:           records,
		Strategy:          outcome.Strategy,
		Closed:            outcome.Closed,
		ClosureIndicators: outcome.ClosureIndicators,
	}, nil
}

// resolveWeek picks the menu week: a configured override wins, then the
// document's week marker, then the current ISO week.
func (p *HTMLMenuParser) resolveWeek(documentText string) int {
	if w := p.descriptor.Extraction.WeekOverride; w != 0 {
		return w
	}
	if m := weekMarker.FindStringSubmatch(documentText); m != nil {
		return normalize.ResolveWeek(m[1], p.now())
	}
	return normalize.CurrentWeek(p.now())
}
