package entity

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Parser kinds understood by the parser factory.
const (
	// ParserKindHTML is the selector-driven HTML menu parser. It is the
	// default when a descriptor leaves ParserKind empty.
	ParserKindHTML = "html"
)

// SourceDescriptor describes one configured external menu provider.
// Descriptors are owned by the orchestrator's registry: created at
// registration, removed on deregistration.
type SourceDescriptor struct {
	ID          string           `json:"id" yaml:"id"`
	DisplayName string           `json:"display_name" yaml:"display_name"`
	TargetURL   string           `json:"target_url" yaml:"target_url"`
	ParserKind  string           `json:"parser_kind" yaml:"parser_kind"`
	Active      bool             `json:"active" yaml:"active"`
	Resilience  ResilienceConfig `json:"resilience" yaml:"resilience"`
	Extraction  ExtractionConfig `json:"extraction" yaml:"extraction"`
}

// ResilienceConfig controls the circuit breaker guarding a single source.
type ResilienceConfig struct {
	// FailureThreshold is the number of consecutive failed executions that
	// trips the breaker from closed to open.
	FailureThreshold uint32 `json:"failure_threshold" yaml:"failure_threshold"`

	// Cooldown is how long the breaker stays open before a single trial
	// execution is allowed through.
	Cooldown time.Duration `json:"cooldown" yaml:"cooldown"`
}

// UnmarshalYAML accepts cooldown as a Go duration string ("2m", "90s").
func (r *ResilienceConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		FailureThreshold uint32 `yaml:"failure_threshold"`
		Cooldown         string `yaml:"cooldown"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	r.FailureThreshold = raw.FailureThreshold
	if raw.Cooldown != "" {
		d, err := time.ParseDuration(raw.Cooldown)
		if err != nil {
			return fmt.Errorf("cooldown: %w", err)
		}
		r.Cooldown = d
	}
	return nil
}

// DefaultResilienceConfig returns the breaker settings used when a source
// descriptor does not override them.
func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		FailureThreshold: 5,
		Cooldown:         5 * time.Minute,
	}
}

// ExtractionConfig carries optional per-source hints for the extraction
// engine. Zero values mean the engine's defaults apply.
type ExtractionConfig struct {
	// ContainerSelectors overrides the ordered candidate list used by the
	// container locator, most specific first.
	ContainerSelectors []string `json:"container_selectors,omitempty" yaml:"container_selectors,omitempty"`

	// WeekOverride pins the week number instead of resolving it from the
	// document header. Used by sources that never publish a week marker.
	WeekOverride int `json:"week_override,omitempty" yaml:"week_override,omitempty"`

	// AllowZeroPrice permits records whose price normalizes to zero, for
	// sources that publish subsidised or included lunches.
	AllowZeroPrice bool `json:"allow_zero_price,omitempty" yaml:"allow_zero_price,omitempty"`
}

// validParserKinds is the set of parser kinds the factory can build.
var validParserKinds = map[string]bool{
	ParserKindHTML: true,
}

// Validate checks the descriptor for well-formedness.
// Violations are returned as *ConfigurationError and must reject the
// descriptor at registration time.
func (d *SourceDescriptor) Validate() error {
	if d.ID == "" {
		return &ConfigurationError{SourceID: d.ID, Reason: "id is required"}
	}
	if d.DisplayName == "" {
		return &ConfigurationError{SourceID: d.ID, Reason: "display_name is required"}
	}
	if err := ValidateURL(d.TargetURL); err != nil {
		return &ConfigurationError{SourceID: d.ID, Reason: fmt.Sprintf("target_url: %v", err)}
	}

	if d.ParserKind == "" {
		d.ParserKind = ParserKindHTML
	}
	if !validParserKinds[d.ParserKind] {
		return &ConfigurationError{SourceID: d.ID, Reason: fmt.Sprintf("unknown parser_kind: %s", d.ParserKind)}
	}

	if d.Resilience == (ResilienceConfig{}) {
		d.Resilience = DefaultResilienceConfig()
	}
	if d.Resilience.FailureThreshold == 0 {
		return &ConfigurationError{SourceID: d.ID, Reason: "resilience.failure_threshold must be positive"}
	}
	if d.Resilience.Cooldown <= 0 {
		return &ConfigurationError{SourceID: d.ID, Reason: "resilience.cooldown must be positive"}
	}

	if w := d.Extraction.WeekOverride; w != 0 && (w < 1 || w > 53) {
		return &ConfigurationError{SourceID: d.ID, Reason: fmt.Sprintf("extraction.week_override out of range: %d", w)}
	}

	return nil
}
