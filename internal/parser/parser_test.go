package parser_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"lunch-radar/internal/domain/entity"
	"lunch-radar/internal/parser"
)

// stubFetcher serves a fixed HTML document without any network I/O.
type stubFetcher struct {
	html string
	err  error
}

func (s *stubFetcher) FetchNode(_ context.Context, _ string, selector string) (*goquery.Selection, error) {
	if s.err != nil {
		return nil, s.err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s.html))
	if err != nil {
		return nil, err
	}
	if selector == "" {
		return doc.Selection, nil
	}
	match := doc.Find(selector)
	if match.Length() == 0 {
		return nil, nil
	}
	return match, nil
}

const weekMenuFixture = `<!DOCTYPE html>
<html><body>
<div id="lunch-menu">
  <h2>Vecka 20250714</h2>
  <table><tr><td>Köttbullar</td><td>med potatismos</td><td>125 kr</td></tr></table>
  <table><tr><td>Pannbiff</td><td>med stekt lök</td><td>125 kr</td></tr></table>
  <table><tr><td>Stekt fisk</td><td>med remouladsås</td><td>135 kr</td></tr></table>
  <table><tr><td>Ärtsoppa</td><td>med pannkakor</td><td>110:-</td></tr></table>
  <table><tr><td>Fläskfilé</td><td>med klyftpotatis</td><td>139 kr</td></tr></table>
</div>
</body></html>`

func htmlDescriptor() entity.SourceDescriptor {
	d := entity.SourceDescriptor{
		ID:          "bistro-k",
		DisplayName: "Bistro K",
		TargetURL:   "https://bistro-k.example.se/lunch",
		Active:      true,
	}
	if err := d.Validate(); err != nil {
		panic(err)
	}
	return d
}

// A "Vecka 20250714" header with one three-cell row per weekday table must
// produce five offerings, one per weekday, all in ISO week 29.
func TestHTMLMenuParser_WeekHeaderScenario(t *testing.T) {
	p := parser.NewHTMLMenuParser(htmlDescriptor(), &stubFetcher{html: weekMenuFixture})

	production, err := p.ProduceOfferings(context.Background())
	if err != nil {
		t.Fatalf("ProduceOfferings() error = %v", err)
	}
	if len(production.Records) != 5 {
		t.Fatalf("len(Records) = %d, want 5", len(production.Records))
	}

	seen := make(map[entity.Weekday]bool)
	for _, record := range production.Records {
		if record.Week != 29 {
			t.Errorf("record %q week = %d, want 29", record.Name, record.Week)
		}
		if record.SourceName != "bistro-k" {
			t.Errorf("record %q source = %q, want %q", record.Name, record.SourceName, "bistro-k")
		}
		seen[record.Weekday] = true
	}
	if len(seen) != 5 {
		t.Errorf("distinct weekdays = %d, want 5", len(seen))
	}
}

func TestHTMLMenuParser_WeekOverride(t *testing.T) {
	d := htmlDescriptor()
	d.Extraction.WeekOverride = 12
	p := parser.NewHTMLMenuParser(d, &stubFetcher{html: weekMenuFixture})

	production, err := p.ProduceOfferings(context.Background())
	if err != nil {
		t.Fatalf("ProduceOfferings() error = %v", err)
	}
	for _, record := range production.Records {
		if record.Week != 12 {
			t.Errorf("record %q week = %d, want 12", record.Name, record.Week)
		}
	}
}

func TestHTMLMenuParser_FetchError(t *testing.T) {
	fetchErr := errors.New("connection refused")
	p := parser.NewHTMLMenuParser(htmlDescriptor(), &stubFetcher{err: fetchErr})

	_, err := p.ProduceOfferings(context.Background())
	if err == nil {
		t.Fatal("ProduceOfferings() error = nil, want fetch error")
	}
	if !errors.Is(err, fetchErr) {
		t.Errorf("error = %v, want wrapped %v", err, fetchErr)
	}
}

func TestHTMLMenuParser_ClosedSource(t *testing.T) {
	p := parser.NewHTMLMenuParser(htmlDescriptor(), &stubFetcher{html: `<html><body>
		<div id="lunch-menu"><h2>Lunchmeny</h2><p>Semesterstängt V.29-32, åter vecka 33.</p></div>
	</body></html>`})

	production, err := p.ProduceOfferings(context.Background())
	if err != nil {
		t.Fatalf("ProduceOfferings() error = %v", err)
	}
	if len(production.Records) != 0 {
		t.Errorf("len(Records) = %d, want 0", len(production.Records))
	}
	if !production.Closed {
		t.Error("Closed = false, want true")
	}
}

func TestFactory_UnknownKind(t *testing.T) {
	d := htmlDescriptor()
	d.ParserKind = "pdf"

	_, err := parser.New(d, &stubFetcher{})
	if err == nil {
		t.Fatal("New() error = nil, want ConfigurationError")
	}
	var cfgErr *entity.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("error type = %T, want *ConfigurationError", err)
	}
}

// stubParser lets runner tests script successes and failures directly.
type stubParser struct {
	name    string
	produce func(ctx context.Context) (*parser.Production, error)
}

func (s *stubParser) Name() string      { return s.name }
func (s *stubParser) TargetURL() string { return "https://" + s.name + ".example.se" }
func (s *stubParser) ProduceOfferings(ctx context.Context) (*parser.Production, error) {
	return s.produce(ctx)
}

func offering(name string, day entity.Weekday) entity.Offering {
	return entity.Offering{
		Name:       name,
		Price:      120,
		Weekday:    day,
		Week:       29,
		SourceName: "stub",
	}
}

func TestRunner_Success(t *testing.T) {
	bad := offering("Trasig", entity.Tuesday)
	bad.Week = 99

	runner := parser.NewRunner(&stubParser{
		name: "stub",
		produce: func(context.Context) (*parser.Production, error) {
			return &parser.Production{
				Records:  []entity.Offering{offering("Köttbullar", entity.Monday), bad},
				Strategy: "table",
			}, nil
		},
	})

	result := runner.Execute(context.Background())

	if !result.Success {
		t.Fatalf("Success = false, error = %+v", result.Error)
	}
	if len(result.Offerings) != 1 {
		t.Fatalf("len(Offerings) = %d, want 1 (invalid record filtered)", len(result.Offerings))
	}
	if result.Metadata.ValidCount != len(result.Offerings) {
		t.Errorf("ValidCount = %d, want %d", result.Metadata.ValidCount, len(result.Offerings))
	}
	if result.Metadata.TotalExtracted != 2 || result.Metadata.InvalidCount != 1 {
		t.Errorf("metadata = %+v", result.Metadata)
	}
	if len(result.Metadata.ValidationErrors) != 1 {
		t.Errorf("len(ValidationErrors) = %d, want 1", len(result.Metadata.ValidationErrors))
	}
}

func TestRunner_FailureIsStructured(t *testing.T) {
	runner := parser.NewRunner(&stubParser{
		name: "stub",
		produce: func(context.Context) (*parser.Production, error) {
			return nil, errors.New("selector blew up")
		},
	})

	result := runner.Execute(context.Background())

	if result.Success {
		t.Fatal("Success = true, want false")
	}
	if result.Error == nil {
		t.Fatal("Error = nil, want populated")
	}
	if result.Error.Message == "" || result.Error.Code == "" {
		t.Errorf("Error = %+v, want message and code", result.Error)
	}
	if result.Error.ConsecutiveFailures != 1 {
		t.Errorf("ConsecutiveFailures = %d, want 1", result.Error.ConsecutiveFailures)
	}
	if len(result.Offerings) != 0 {
		t.Errorf("len(Offerings) = %d, want 0", len(result.Offerings))
	}
}

func TestRunner_ErrorClassification(t *testing.T) {
	runner := parser.NewRunner(&stubParser{
		name: "stub",
		produce: func(context.Context) (*parser.Production, error) {
			return nil, entity.ErrSourceUnavailable
		},
	})

	result := runner.Execute(context.Background())
	if result.Error == nil || result.Error.Code != parser.CodeSourceUnavailable {
		t.Errorf("Error = %+v, want code %s", result.Error, parser.CodeSourceUnavailable)
	}
}

func TestRunner_HealthBookkeeping(t *testing.T) {
	var fail bool
	runner := parser.NewRunner(&stubParser{
		name: "stub",
		produce: func(context.Context) (*parser.Production, error) {
			if fail {
				return nil, errors.New("boom")
			}
			return &parser.Production{}, nil
		},
	})

	runner.Execute(context.Background())
	health := runner.Health()
	if health.TotalRequests != 1 || health.SuccessfulRequests != 1 || !health.Healthy {
		t.Fatalf("health after success = %+v", health)
	}

	fail = true
	for i := 0; i < 3; i++ {
		runner.Execute(context.Background())
	}
	health = runner.Health()
	if health.ConsecutiveFailures != 3 {
		t.Errorf("ConsecutiveFailures = %d, want 3", health.ConsecutiveFailures)
	}
	if health.Healthy {
		t.Error("Healthy = true after 3 consecutive failures, want false")
	}
	if health.TotalRequests != 4 || health.SuccessfulRequests != 1 {
		t.Errorf("health = %+v", health)
	}

	fail = false
	runner.Execute(context.Background())
	health = runner.Health()
	if health.ConsecutiveFailures != 0 || !health.Healthy {
		t.Errorf("health after recovery = %+v", health)
	}
}

func TestRunner_DurationRecorded(t *testing.T) {
	runner := parser.NewRunner(&stubParser{
		name: "stub",
		produce: func(context.Context) (*parser.Production, error) {
			time.Sleep(5 * time.Millisecond)
			return &parser.Production{}, nil
		},
	})

	result := runner.Execute(context.Background())
	if result.Metadata.DurationMs < 5 {
		t.Errorf("DurationMs = %d, want >= 5", result.Metadata.DurationMs)
	}
	if result.Metadata.Timestamp.IsZero() {
		t.Error("Timestamp is zero")
	}
}
