package models

import (
	"strings"
	"time"
)

// CrimeRecord represents a single incident from the source dataset.
// Records are built once at load time and never mutated afterwards.
type CrimeRecord struct {
	Lat        float64    `json:"lat"`
	Lng        float64    `json:"lng"`
	CrimeType  string     `json:"crime_type"`
	OccurredAt *time.Time `json:"date"` // nil when the source date could not be parsed
	Location   string     `json:"location,omitempty"`
}

// HasDate reports whether the record carries a parseable occurrence date.
func (r CrimeRecord) HasDate() bool {
	return r.OccurredAt != nil
}

// Categories is the fixed set of recognized crime categories
// (Toronto MCI categories). Anything else normalizes to CategoryOther.
var Categories = []string{
	"Assault",
	"Auto Theft",
	"Break and Enter",
	"Robbery",
	"Theft Over",
}

// CategoryOther is the fallback bucket for unrecognized category strings.
const CategoryOther = "Other"

// NormalizeCategory maps a raw category string onto the fixed category set
// using case-insensitive matching.
func NormalizeCategory(raw string) string {
	trimmed := strings.TrimSpace(raw)
	for _, c := range Categories {
		if strings.EqualFold(trimmed, c) {
			return c
		}
	}
	return CategoryOther
}
