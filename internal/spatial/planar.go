package spatial

import (
	"math"
)

const metersPerDegree = 111320.0

// Projection maps WGS84 coordinates onto a local planar approximation in
// meters around a reference latitude. Valid at neighborhood scale; degrades
// over large extents or near the poles.
type Projection struct {
	refLat       float64
	refLng       float64
	metersPerLng float64
}

// NewProjection creates a local planar projection centered on the given point.
func NewProjection(refLat, refLng float64) Projection {
	return Projection{
		refLat:       refLat,
		refLng:       refLng,
		metersPerLng: metersPerDegree * math.Cos(refLat*math.Pi/180),
	}
}

// Project converts a point to local planar (x, y) meters.
func (pr Projection) Project(p Point) (float64, float64) {
	x := (p.Lng - pr.refLng) * pr.metersPerLng
	y := (p.Lat - pr.refLat) * metersPerDegree
	return x, y
}

// segmentDistance calculates the distance from point (px, py) to the segment
// (ax, ay)-(bx, by), all in planar meters.
func segmentDistance(px, py, ax, ay, bx, by float64) float64 {
	dx := bx - ax
	dy := by - ay

	segLenSq := dx*dx + dy*dy
	if segLenSq == 0 {
		return math.Hypot(px-ax, py-ay)
	}

	// Clamp the projection of the point onto the segment
	t := ((px-ax)*dx + (py-ay)*dy) / segLenSq
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}

// DistanceToPolyline calculates the minimum distance in meters from a point
// to a polyline, using the given planar projection.
func DistanceToPolyline(p Point, line []Point, pr Projection) float64 {
	if len(line) == 0 {
		return math.Inf(1)
	}

	px, py := pr.Project(p)

	if len(line) == 1 {
		ax, ay := pr.Project(line[0])
		return math.Hypot(px-ax, py-ay)
	}

	minDist := math.Inf(1)
	ax, ay := pr.Project(line[0])
	for i := 1; i < len(line); i++ {
		bx, by := pr.Project(line[i])
		if d := segmentDistance(px, py, ax, ay, bx, by); d < minDist {
			minDist = d
		}
		ax, ay = bx, by
	}

	return minDist
}
