package normalize

import "testing"

func TestDetectClosure(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		closed bool
	}{
		{"vacation notice", "Vi har semesterstängt och öppnar igen i augusti", true},
		{"plain closed", "Restaurangen är stängd denna vecka", true},
		{"english closed", "We are closed for the summer", true},
		{"maintenance", "Stängt för underhåll", true},
		{"week range", "Semesterstängt V.29-32", true},
		{"week range spaced", "Uppehåll v 29 - 32", true},
		{"regular menu text", "Måndag: Köttbullar med potatismos 125 kr", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectClosure(tt.text)
			if got.Closed != tt.closed {
				t.Errorf("DetectClosure(%q).Closed = %v, want %v", tt.text, got.Closed, tt.closed)
			}
			if tt.closed && len(got.Indicators) == 0 {
				t.Error("closed result carries no indicators")
			}
			if !tt.closed && len(got.Indicators) != 0 {
				t.Errorf("open result carries indicators: %v", got.Indicators)
			}
		})
	}
}

func TestDetectClosure_WeekRangeIndicator(t *testing.T) {
	got := DetectClosure("Semesterstängt V.29-32")
	found := false
	for _, ind := range got.Indicators {
		if ind == "V.29-32" {
			found = true
		}
	}
	if !found {
		t.Errorf("Indicators = %v, want to contain %q", got.Indicators, "V.29-32")
	}
}
