package entity

// Weekday is one of the five serving days a lunch menu covers.
// The canonical values are the lowercase Swedish day names, which is what
// the source sites publish; the normalize package maps English names and
// common abbreviations onto these.
type Weekday string

const (
	Monday    Weekday = "måndag"
	Tuesday   Weekday = "tisdag"
	Wednesday Weekday = "onsdag"
	Thursday  Weekday = "torsdag"
	Friday    Weekday = "fredag"
)

// Weekdays returns the serving days in menu order, Monday first.
// The table extraction strategy relies on this ordering to map the n-th
// table in a document to the n-th weekday.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}
}

// IsValid reports whether w is one of the five serving days.
func (w Weekday) IsValid() bool {
	switch w {
	case Monday, Tuesday, Wednesday, Thursday, Friday:
		return true
	}
	return false
}

// Offering is one structured lunch record extracted from a source document.
// Offerings are only constructed from extraction candidates that passed the
// record validator; they are never mutated afterwards. Price is in whole
// kronor.
type Offering struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int     `json:"price"`
	Weekday     Weekday `json:"weekday"`
	Week        int     `json:"week"`
	SourceName  string  `json:"source_name"`
}
