package analysis

import (
	"strings"
	"time"
)

// DefaultSeverity is the fallback for categories missing from the severity table.
const DefaultSeverity = 0.5

// SeverityFor resolves a crime type against the severity table using
// case-insensitive substring matching, mirroring the category filter
// semantics. When several table keys match ("Theft" and "Auto Theft"),
// the longest key wins so the more specific entry applies.
func SeverityFor(table map[string]float64, crimeType string) float64 {
	lowered := strings.ToLower(crimeType)

	best := ""
	severity := DefaultSeverity
	for key, value := range table {
		if strings.Contains(lowered, strings.ToLower(key)) && len(key) > len(best) {
			best = key
			severity = value
		}
	}
	return severity
}

// Weight computes the heat intensity of an incident in [0.2, 1.0] from its
// severity and recency. Pure: the same inputs always produce the same
// output. now must be captured once per request so all weights in one
// response share the same reference time.
//
// With a date:   clamp(0.2, 1.0, 0.4*severity + 0.6*recency)
// where recency = 1 / (1 + ageDays/30), half-weight at 30 days old.
// Without a date: max(0.3, severity).
func Weight(table map[string]float64, crimeType string, occurredAt *time.Time, now time.Time) float64 {
	severity := SeverityFor(table, crimeType)

	if occurredAt == nil {
		if severity < 0.3 {
			return 0.3
		}
		return severity
	}

	ageDays := now.Sub(*occurredAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	recency := 1 / (1 + ageDays/30)

	w := 0.4*severity + 0.6*recency
	if w < 0.2 {
		return 0.2
	}
	if w > 1.0 {
		return 1.0
	}
	return w
}
