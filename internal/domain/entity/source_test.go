package entity

import (
	"errors"
	"testing"
	"time"
)

func validDescriptor() SourceDescriptor {
	return SourceDescriptor{
		ID:          "bistro-k",
		DisplayName: "Bistro K",
		TargetURL:   "https://bistro-k.example.se/lunch",
		ParserKind:  ParserKindHTML,
		Active:      true,
		Resilience: ResilienceConfig{
			FailureThreshold: 3,
			Cooldown:         time.Minute,
		},
	}
}

func TestSourceDescriptor_Validate_OK(t *testing.T) {
	d := validDescriptor()
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
}

func TestSourceDescriptor_Validate_Defaults(t *testing.T) {
	d := validDescriptor()
	d.ParserKind = ""
	d.Resilience = ResilienceConfig{}

	if err := d.Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if d.ParserKind != ParserKindHTML {
		t.Errorf("ParserKind = %q, want %q", d.ParserKind, ParserKindHTML)
	}
	if d.Resilience != DefaultResilienceConfig() {
		t.Errorf("Resilience = %+v, want defaults", d.Resilience)
	}
}

func TestSourceDescriptor_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SourceDescriptor)
	}{
		{"empty id", func(d *SourceDescriptor) { d.ID = "" }},
		{"empty display name", func(d *SourceDescriptor) { d.DisplayName = "" }},
		{"empty url", func(d *SourceDescriptor) { d.TargetURL = "" }},
		{"bad scheme", func(d *SourceDescriptor) { d.TargetURL = "ftp://bistro-k.example.se" }},
		{"unknown parser kind", func(d *SourceDescriptor) { d.ParserKind = "pdf" }},
		{"zero threshold", func(d *SourceDescriptor) { d.Resilience.FailureThreshold = 0 }},
		{"negative cooldown", func(d *SourceDescriptor) { d.Resilience.Cooldown = -time.Second }},
		{"week override out of range", func(d *SourceDescriptor) { d.Extraction.WeekOverride = 54 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDescriptor()
			tt.mutate(&d)

			err := d.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil, want ConfigurationError")
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("error type = %T, want *ConfigurationError", err)
			}
		})
	}
}

func TestWeekday_IsValid(t *testing.T) {
	for _, w := range Weekdays() {
		if !w.IsValid() {
			t.Errorf("Weekday(%q).IsValid() = false, want true", w)
		}
	}
	if Weekday("lördag").IsValid() {
		t.Error(`Weekday("lördag").IsValid() = true, want false`)
	}
	if Weekday("").IsValid() {
		t.Error(`Weekday("").IsValid() = true, want false`)
	}
}
