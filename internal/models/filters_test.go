package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBBox(t *testing.T) {
	v, err := ParseBBox("-79.5,43.6,-79.3,43.7")
	require.NoError(t, err)
	assert.Equal(t, &Viewport{MinLng: -79.5, MinLat: 43.6, MaxLng: -79.3, MaxLat: 43.7}, v)

	v, err = ParseBBox(" -79.5 , 43.6 , -79.3 , 43.7 ")
	require.NoError(t, err)
	assert.Equal(t, -79.5, v.MinLng, "whitespace around components is tolerated")
}

func TestParseBBoxInvalid(t *testing.T) {
	for _, input := range []string{
		"",
		"-79.5,43.6,-79.3",          // too few components
		"-79.5,43.6,-79.3,43.7,1",   // too many
		"-79.5,43.6,-79.3,abc",      // not a number
		"-79.3,43.6,-79.5,43.7",     // min lng > max lng
		"-79.5,43.7,-79.3,43.6",     // min lat > max lat
	} {
		_, err := ParseBBox(input)
		assert.True(t, IsValidation(err), "input %q should fail validation", input)
	}
}

func TestCrimeQuerySpecDefaults(t *testing.T) {
	spec, err := CrimeQuery{}.Spec(5000, 50000)
	require.NoError(t, err)
	assert.Equal(t, 5000, spec.Limit)
	assert.Nil(t, spec.Viewport)
	assert.False(t, spec.DateDesc)
}

func TestCrimeQuerySpecLimitClamp(t *testing.T) {
	spec, err := CrimeQuery{Limit: 999999}.Spec(5000, 50000)
	require.NoError(t, err)
	assert.Equal(t, 50000, spec.Limit, "the server-side cap always wins")

	spec, err = CrimeQuery{Limit: -5, Offset: -3}.Spec(5000, 50000)
	require.NoError(t, err)
	assert.Equal(t, 5000, spec.Limit)
	assert.Equal(t, 0, spec.Offset)
}

func TestCrimeQuerySpecDates(t *testing.T) {
	spec, err := CrimeQuery{Start: "2026-01-01", End: "2026-06-01"}.Spec(100, 100)
	require.NoError(t, err)
	require.NotNil(t, spec.Start)
	require.NotNil(t, spec.End)
	assert.True(t, spec.Start.Before(*spec.End))

	_, err = CrimeQuery{Start: "2026-06-01", End: "2026-01-01"}.Spec(100, 100)
	assert.True(t, IsValidation(err), "inverted ranges are rejected")

	_, err = CrimeQuery{Start: "January 1st"}.Spec(100, 100)
	assert.True(t, IsValidation(err))
}

func TestCrimeQuerySpecSort(t *testing.T) {
	spec, err := CrimeQuery{Sort: "date_desc"}.Spec(100, 100)
	require.NoError(t, err)
	assert.True(t, spec.DateDesc)

	_, err = CrimeQuery{Sort: "severity"}.Spec(100, 100)
	assert.True(t, IsValidation(err))
}

func TestClusterQuerySpecClamps(t *testing.T) {
	spec, k, maxPoints, err := ClusterQuery{}.Spec(30, 200, 50000, 200000)
	require.NoError(t, err)
	assert.Equal(t, 30, k)
	assert.Equal(t, 50000, maxPoints)
	assert.Equal(t, 0, spec.Limit, "clustering sees the full filtered set")

	_, k, maxPoints, err = ClusterQuery{K: 5000, MaxPoints: 7}.Spec(30, 200, 50000, 200000)
	require.NoError(t, err)
	assert.Equal(t, 200, k)
	assert.Equal(t, 100, maxPoints, "max_points has a working floor")
}

func TestCanonicalParamsStable(t *testing.T) {
	start := mustDate(t, "2026-01-01")
	spec := FilterSpec{
		Viewport:  &Viewport{MinLng: -79.5, MinLat: 43.6, MaxLng: -79.3, MaxLat: 43.7},
		Start:     start,
		CrimeType: "Assault",
		Limit:     100,
		DateDesc:  true,
	}

	params := spec.CanonicalParams()
	assert.Equal(t, "-79.500000,43.600000,-79.300000,43.700000", params["bbox"])
	assert.Equal(t, "2026-01-01T00:00:00Z", params["start"])
	assert.Equal(t, "assault", params["crime_type"], "category casing never splits the cache")
	assert.Equal(t, "100", params["limit"])
	assert.Equal(t, "date_desc", params["sort"])
	assert.NotContains(t, params, "offset", "zero values stay out of the key")
}

func mustDate(t *testing.T, s string) *time.Time {
	t.Helper()
	parsed, err := parseQueryDate("date", s)
	require.NoError(t, err)
	return parsed
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "Assault", NormalizeCategory("ASSAULT"))
	assert.Equal(t, "Auto Theft", NormalizeCategory("auto theft"))
	assert.Equal(t, "Break and Enter", NormalizeCategory(" Break and Enter "))
	assert.Equal(t, CategoryOther, NormalizeCategory("Mischief"))
	assert.Equal(t, CategoryOther, NormalizeCategory(""))
}

func TestSuggestedRadius(t *testing.T) {
	assert.Equal(t, 8.0, SuggestedRadius(1))
	assert.Equal(t, 8.0, SuggestedRadius(80))
	assert.Equal(t, 15.0, SuggestedRadius(150))
	assert.Equal(t, 30.0, SuggestedRadius(300))
	assert.Equal(t, 30.0, SuggestedRadius(100000))
}
