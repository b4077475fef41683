package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstwx07/routeto-backend-go/internal/models"
)

func datePtr(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testSnapshot() *Snapshot {
	return &Snapshot{
		Generation: 1,
		Records: []models.CrimeRecord{
			{Lat: 43.65, Lng: -79.38, CrimeType: "Assault", OccurredAt: datePtr(2026, 1, 15)},
			{Lat: 43.65, Lng: -79.38, CrimeType: "Assault", OccurredAt: datePtr(2026, 3, 1)},
			{Lat: 43.70, Lng: -79.40, CrimeType: "Auto Theft", OccurredAt: datePtr(2026, 2, 10)},
			{Lat: 43.75, Lng: -79.30, CrimeType: "Robbery", OccurredAt: nil},
			{Lat: 43.80, Lng: -79.25, CrimeType: "Break and Enter", OccurredAt: datePtr(2025, 11, 5)},
		},
	}
}

func TestApplyNilSnapshot(t *testing.T) {
	out := Apply(nil, models.FilterSpec{})
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestApplyNoFilters(t *testing.T) {
	snap := testSnapshot()
	out := Apply(snap, models.FilterSpec{})
	assert.Len(t, out, len(snap.Records))
}

func TestApplyViewport(t *testing.T) {
	snap := testSnapshot()
	spec := models.FilterSpec{
		Viewport: &models.Viewport{MinLng: -79.39, MinLat: 43.60, MaxLng: -79.37, MaxLat: 43.68},
	}

	out := Apply(snap, spec)
	require.Len(t, out, 2)
	for _, rec := range out {
		assert.True(t, spec.Viewport.Contains(rec.Lat, rec.Lng))
		assert.Equal(t, "Assault", rec.CrimeType)
	}
}

func TestApplyViewportEdgeInclusive(t *testing.T) {
	snap := &Snapshot{Records: []models.CrimeRecord{
		{Lat: 43.65, Lng: -79.38, CrimeType: "Assault"},
	}}
	spec := models.FilterSpec{
		Viewport: &models.Viewport{MinLng: -79.38, MinLat: 43.65, MaxLng: -79.30, MaxLat: 43.70},
	}
	assert.Len(t, Apply(snap, spec), 1, "a point on the boundary is inside")
}

func TestApplyDateRangeInclusive(t *testing.T) {
	snap := testSnapshot()
	spec := models.FilterSpec{
		Start: datePtr(2026, 1, 15),
		End:   datePtr(2026, 2, 10),
	}

	out := Apply(snap, spec)
	require.Len(t, out, 2, "both endpoints are inclusive")
	assert.Equal(t, "Assault", out[0].CrimeType)
	assert.Equal(t, "Auto Theft", out[1].CrimeType)
}

func TestApplyDateFilterExcludesDateless(t *testing.T) {
	snap := testSnapshot()

	out := Apply(snap, models.FilterSpec{Start: datePtr(2020, 1, 1)})
	for _, rec := range out {
		assert.True(t, rec.HasDate(), "undated records never match a date-filtered query")
	}
	assert.Len(t, out, 4)
}

func TestApplyCategorySubstring(t *testing.T) {
	snap := testSnapshot()

	// "Theft" matches "Auto Theft" by substring containment
	out := Apply(snap, models.FilterSpec{CrimeType: "Theft"})
	require.Len(t, out, 1)
	assert.Equal(t, "Auto Theft", out[0].CrimeType)

	// Case-insensitive
	out = Apply(snap, models.FilterSpec{CrimeType: "assault"})
	assert.Len(t, out, 2)

	out = Apply(snap, models.FilterSpec{CrimeType: "Homicide"})
	assert.Empty(t, out)
}

func TestApplyConjunctive(t *testing.T) {
	snap := testSnapshot()
	spec := models.FilterSpec{
		Viewport:  &models.Viewport{MinLng: -79.50, MinLat: 43.0, MaxLng: -79.0, MaxLat: 44.0},
		Start:     datePtr(2026, 1, 1),
		CrimeType: "Assault",
	}

	out := Apply(snap, spec)
	assert.Len(t, out, 2, "every predicate must hold at once")
}

func TestApplyLimitOffset(t *testing.T) {
	snap := testSnapshot()

	out := Apply(snap, models.FilterSpec{Limit: 2})
	assert.Len(t, out, 2)

	out = Apply(snap, models.FilterSpec{Limit: 2, Offset: 4})
	assert.Len(t, out, 1)

	out = Apply(snap, models.FilterSpec{Offset: 99})
	assert.Empty(t, out)
}

func TestApplyDateDesc(t *testing.T) {
	snap := testSnapshot()

	out := Apply(snap, models.FilterSpec{DateDesc: true})
	require.Len(t, out, len(snap.Records))

	for i := 1; i < len(out); i++ {
		if out[i].OccurredAt == nil {
			continue
		}
		require.NotNil(t, out[i-1].OccurredAt, "dateless records sort last")
		assert.False(t, out[i-1].OccurredAt.Before(*out[i].OccurredAt), "order must be newest first")
	}
	assert.Nil(t, out[len(out)-1].OccurredAt)
}

func TestApplyDateDescWithLimit(t *testing.T) {
	snap := testSnapshot()

	// The sort must happen before the limit so the newest records survive
	out := Apply(snap, models.FilterSpec{DateDesc: true, Limit: 1})
	require.Len(t, out, 1)
	assert.Equal(t, datePtr(2026, 3, 1), out[0].OccurredAt)
}

func TestApplyDoesNotMutateSnapshot(t *testing.T) {
	snap := testSnapshot()
	before := make([]models.CrimeRecord, len(snap.Records))
	copy(before, snap.Records)

	Apply(snap, models.FilterSpec{DateDesc: true, CrimeType: "Assault", Limit: 1})
	assert.Equal(t, before, snap.Records)
}
