package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Viewport is an axis-aligned bounding box in WGS84 coordinates.
type Viewport struct {
	MinLng float64
	MinLat float64
	MaxLng float64
	MaxLat float64
}

// Contains reports whether the point lies inside the viewport (inclusive).
func (v Viewport) Contains(lat, lng float64) bool {
	return lng >= v.MinLng && lng <= v.MaxLng && lat >= v.MinLat && lat <= v.MaxLat
}

// ParseBBox parses a "minLng,minLat,maxLng,maxLat" query string.
func ParseBBox(s string) (*Viewport, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, &ValidationError{Field: "bbox", Reason: "expected minLng,minLat,maxLng,maxLat"}
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, &ValidationError{Field: "bbox", Reason: fmt.Sprintf("component %d is not a number", i+1)}
		}
		vals[i] = f
	}
	v := &Viewport{MinLng: vals[0], MinLat: vals[1], MaxLng: vals[2], MaxLat: vals[3]}
	if v.MinLng > v.MaxLng || v.MinLat > v.MaxLat {
		return nil, &ValidationError{Field: "bbox", Reason: "min must not exceed max on either axis"}
	}
	return v, nil
}

// FilterSpec is the validated, parsed form of an incident query. All
// predicates are conjunctive; unset fields mean "no restriction".
type FilterSpec struct {
	Viewport  *Viewport
	Start     *time.Time // inclusive
	End       *time.Time // inclusive
	CrimeType string     // case-insensitive substring match
	Limit     int
	Offset    int
	DateDesc  bool
}

// CanonicalParams returns the spec as a flat parameter map so equivalent
// queries produce identical cache keys regardless of parameter order.
func (s FilterSpec) CanonicalParams() map[string]string {
	params := make(map[string]string)
	if s.Viewport != nil {
		params["bbox"] = fmt.Sprintf("%.6f,%.6f,%.6f,%.6f",
			s.Viewport.MinLng, s.Viewport.MinLat, s.Viewport.MaxLng, s.Viewport.MaxLat)
	}
	if s.Start != nil {
		params["start"] = s.Start.UTC().Format(time.RFC3339)
	}
	if s.End != nil {
		params["end"] = s.End.UTC().Format(time.RFC3339)
	}
	if s.CrimeType != "" {
		params["crime_type"] = strings.ToLower(s.CrimeType)
	}
	if s.Limit > 0 {
		params["limit"] = strconv.Itoa(s.Limit)
	}
	if s.Offset > 0 {
		params["offset"] = strconv.Itoa(s.Offset)
	}
	if s.DateDesc {
		params["sort"] = "date_desc"
	}
	return params
}

var queryDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseQueryDate(field, s string) (*time.Time, error) {
	for _, layout := range queryDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, &ValidationError{Field: field, Reason: "unrecognized date format"}
}

// CrimeQuery carries the raw query parameters of the incident endpoints.
type CrimeQuery struct {
	Start     string `form:"start"`
	End       string `form:"end"`
	CrimeType string `form:"crime_type"`
	BBox      string `form:"bbox"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
	Sort      string `form:"sort"`
}

// Spec validates the raw query and produces a FilterSpec. The limit is
// clamped server-side to maxLimit regardless of the requested value.
func (q CrimeQuery) Spec(defaultLimit, maxLimit int) (FilterSpec, error) {
	spec := FilterSpec{CrimeType: strings.TrimSpace(q.CrimeType)}

	if q.BBox != "" {
		v, err := ParseBBox(q.BBox)
		if err != nil {
			return FilterSpec{}, err
		}
		spec.Viewport = v
	}
	if q.Start != "" {
		t, err := parseQueryDate("start", q.Start)
		if err != nil {
			return FilterSpec{}, err
		}
		spec.Start = t
	}
	if q.End != "" {
		t, err := parseQueryDate("end", q.End)
		if err != nil {
			return FilterSpec{}, err
		}
		spec.End = t
	}
	if spec.Start != nil && spec.End != nil && spec.Start.After(*spec.End) {
		return FilterSpec{}, &ValidationError{Field: "start", Reason: "start is after end"}
	}

	switch q.Sort {
	case "", "date_desc":
	default:
		return FilterSpec{}, &ValidationError{Field: "sort", Reason: "must be date_desc or empty"}
	}
	spec.DateDesc = q.Sort == "date_desc"

	spec.Limit = q.Limit
	if spec.Limit <= 0 {
		spec.Limit = defaultLimit
	}
	if spec.Limit > maxLimit {
		spec.Limit = maxLimit
	}
	spec.Offset = q.Offset
	if spec.Offset < 0 {
		spec.Offset = 0
	}
	return spec, nil
}

// ClusterQuery carries the raw query parameters of the cluster endpoint.
type ClusterQuery struct {
	Start     string `form:"start"`
	End       string `form:"end"`
	CrimeType string `form:"crime_type"`
	BBox      string `form:"bbox"`
	K         int    `form:"k"`
	MaxPoints int    `form:"max_points"`
}

// Spec validates the raw query, returning the incident filter plus the
// clamped k and max_points values.
func (q ClusterQuery) Spec(defaultK, maxK, defaultMaxPoints, maxMaxPoints int) (FilterSpec, int, int, error) {
	base := CrimeQuery{Start: q.Start, End: q.End, CrimeType: q.CrimeType, BBox: q.BBox}
	spec, err := base.Spec(0, 0)
	if err != nil {
		return FilterSpec{}, 0, 0, err
	}
	spec.Limit = 0 // clustering consumes the full filtered set, capped by max_points

	k := q.K
	if k <= 0 {
		k = defaultK
	}
	if k > maxK {
		k = maxK
	}

	maxPoints := q.MaxPoints
	if maxPoints <= 0 {
		maxPoints = defaultMaxPoints
	}
	if maxPoints < 100 {
		maxPoints = 100
	}
	if maxPoints > maxMaxPoints {
		maxPoints = maxMaxPoints
	}
	return spec, k, maxPoints, nil
}
