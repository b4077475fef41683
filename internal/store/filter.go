package store

import (
	"sort"
	"strings"

	"github.com/jstwx07/routeto-backend-go/internal/models"
)

// Apply evaluates the filter against a snapshot's records. Predicates are
// conjunctive. The bounding-box test does not handle antimeridian
// wraparound; irrelevant for a single-city dataset.
//
// Category matching is case-insensitive substring containment, so a query
// for "Theft" also matches "Auto Theft". That mirrors the original partial
// matching behavior and is intentional.
//
// Records with no parseable date are excluded from any date-filtered query
// and sort last when most-recent-first order is requested.
func Apply(snap *Snapshot, spec models.FilterSpec) []models.CrimeRecord {
	if snap == nil {
		return []models.CrimeRecord{}
	}

	wantType := strings.ToLower(spec.CrimeType)
	dateFiltered := spec.Start != nil || spec.End != nil

	// Without a sort, the scan can stop as soon as offset+limit rows match
	stopAt := -1
	if !spec.DateDesc && spec.Limit > 0 {
		stopAt = spec.Offset + spec.Limit
	}

	matched := make([]models.CrimeRecord, 0)
	for _, rec := range snap.Records {
		if spec.Viewport != nil && !spec.Viewport.Contains(rec.Lat, rec.Lng) {
			continue
		}
		if dateFiltered {
			if !rec.HasDate() {
				continue
			}
			if spec.Start != nil && rec.OccurredAt.Before(*spec.Start) {
				continue
			}
			if spec.End != nil && rec.OccurredAt.After(*spec.End) {
				continue
			}
		}
		if wantType != "" && !strings.Contains(strings.ToLower(rec.CrimeType), wantType) {
			continue
		}

		matched = append(matched, rec)
		if stopAt > 0 && len(matched) >= stopAt {
			break
		}
	}

	if spec.DateDesc {
		sort.SliceStable(matched, func(i, j int) bool {
			a, b := matched[i].OccurredAt, matched[j].OccurredAt
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.After(*b)
			}
		})
	}

	if spec.Offset > 0 {
		if spec.Offset >= len(matched) {
			return []models.CrimeRecord{}
		}
		matched = matched[spec.Offset:]
	}
	if spec.Limit > 0 && len(matched) > spec.Limit {
		matched = matched[:spec.Limit]
	}
	return matched
}
