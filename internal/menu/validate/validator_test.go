package validate

import (
	"testing"

	"lunch-radar/internal/domain/entity"
)

func validOffering() entity.Offering {
	return entity.Offering{
		Name:        "Köttbullar",
		Description: "med potatismos och lingon",
		Price:       125,
		Weekday:     entity.Monday,
		Week:        29,
		SourceName:  "bistro-k",
	}
}

func TestRecord_Valid(t *testing.T) {
	r := Record(validOffering())
	if !r.IsValid {
		t.Fatalf("Record() = invalid, errors = %v", r.Errors)
	}
	if len(r.Errors) != 0 {
		t.Errorf("Errors = %v, want empty", r.Errors)
	}
}

func TestRecord_Idempotent(t *testing.T) {
	o := validOffering()
	first := Record(o)
	second := Record(o)

	if !first.IsValid || !second.IsValid {
		t.Fatalf("re-validation changed outcome: first=%v second=%v", first.IsValid, second.IsValid)
	}
	if len(second.Errors) != 0 {
		t.Errorf("second pass errors = %v, want empty", second.Errors)
	}
}

func TestRecord_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entity.Offering)
	}{
		{"empty name", func(o *entity.Offering) { o.Name = "" }},
		{"negative price", func(o *entity.Offering) { o.Price = -1 }},
		{"bad weekday", func(o *entity.Offering) { o.Weekday = "söndag" }},
		{"week too low", func(o *entity.Offering) { o.Week = 0 }},
		{"week too high", func(o *entity.Offering) { o.Week = 54 }},
		{"empty source", func(o *entity.Offering) { o.SourceName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOffering()
			tt.mutate(&o)

			r := Record(o)
			if r.IsValid {
				t.Fatal("Record() = valid, want invalid")
			}
			if len(r.Errors) == 0 {
				t.Error("invalid result carries no errors")
			}
		})
	}
}

func TestRecord_ZeroPriceAccepted(t *testing.T) {
	o := validOffering()
	o.Price = 0
	if r := Record(o); !r.IsValid {
		t.Errorf("Record() with zero price = invalid, errors = %v", r.Errors)
	}
}

func TestBatch(t *testing.T) {
	good := validOffering()
	bad := validOffering()
	bad.Name = ""

	result := Batch([]entity.Offering{good, bad, good})

	if result.Total != 3 {
		t.Errorf("Total = %d, want 3", result.Total)
	}
	if len(result.Valid) != 2 {
		t.Errorf("len(Valid) = %d, want 2", len(result.Valid))
	}
	if len(result.Invalid) != 1 {
		t.Fatalf("len(Invalid) = %d, want 1", len(result.Invalid))
	}
	if result.Invalid[0].Index != 1 {
		t.Errorf("Invalid[0].Index = %d, want 1", result.Invalid[0].Index)
	}
	if len(result.Invalid[0].Errors) == 0 {
		t.Error("Invalid[0].Errors is empty")
	}
}

func TestBatch_Empty(t *testing.T) {
	result := Batch(nil)
	if result.Total != 0 || len(result.Valid) != 0 || len(result.Invalid) != 0 {
		t.Errorf("Batch(nil) = %+v, want empty", result)
	}
}
