package analysis

import (
	"fmt"
	"sort"

	"github.com/jstwx07/routeto-backend-go/internal/models"
	"github.com/jstwx07/routeto-backend-go/internal/spatial"
	"github.com/jstwx07/routeto-backend-go/internal/stats"
)

// epsilonKm guards the density division for degenerate (near zero length)
// routes.
const epsilonKm = 0.01

// AnalyzeRoutes scores each candidate by the incidents falling within
// bufferM meters of its polyline and ranks candidates by incident density
// per kilometer, ascending. The sort is stable: ties keep the original
// candidate order. weights must be parallel to incidents.
//
// A malformed candidate (fewer than two vertices) is reported with a
// failure marker and rank -1; it does not abort the rest of the batch.
// An empty candidate list is an error (ErrNoRoutes), distinct from a valid
// analysis that found zero nearby incidents.
func AnalyzeRoutes(candidates []models.RouteCandidate, incidents []models.CrimeRecord, weights []float64, bufferM float64) ([]models.RouteAnalysis, error) {
	if len(candidates) == 0 {
		return nil, models.ErrNoRoutes
	}

	analyses := make([]models.RouteAnalysis, len(candidates))
	for i, cand := range candidates {
		analyses[i] = scoreCandidate(i, cand, incidents, weights, bufferM)
	}

	// Rank the valid candidates by density, stable on ties
	valid := make([]int, 0, len(analyses))
	for i := range analyses {
		if !analyses[i].Failed {
			valid = append(valid, i)
		}
	}
	sort.SliceStable(valid, func(a, b int) bool {
		return analyses[valid[a]].DensityPerKm < analyses[valid[b]].DensityPerKm
	})
	for rank, idx := range valid {
		analyses[idx].SafetyRank = rank
	}

	return analyses, nil
}

func scoreCandidate(id int, cand models.RouteCandidate, incidents []models.CrimeRecord, weights []float64, bufferM float64) models.RouteAnalysis {
	coords := cand.Geometry.Coordinates
	if len(coords) < 2 {
		return models.RouteAnalysis{
			RouteID:    id,
			SafetyRank: -1,
			Failed:     true,
			Error:      fmt.Sprintf("polyline needs at least 2 vertices, got %d", len(coords)),
		}
	}

	line := make([]spatial.Point, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			return models.RouteAnalysis{
				RouteID:    id,
				SafetyRank: -1,
				Failed:     true,
				Error:      "polyline vertex is not a [lng, lat] pair",
			}
		}
		line = append(line, spatial.Point{Lat: c[1], Lng: c[0]})
	}

	lengthKm := cand.DistanceMeters / 1000
	if lengthKm <= 0 {
		lengthKm = spatial.PathLength(line) / 1000
	}
	effectiveKm := lengthKm
	if effectiveKm < epsilonKm {
		effectiveKm = epsilonKm
	}

	// Planar approximation around the route's own centroid latitude keeps
	// the per-incident distance test cheap
	center := spatial.Centroid(line)
	proj := spatial.NewProjection(center.Lat, center.Lng)

	count := 0
	totalWeight := 0.0
	for i, rec := range incidents {
		p := spatial.Point{Lat: rec.Lat, Lng: rec.Lng}
		if spatial.DistanceToPolyline(p, line, proj) <= bufferM {
			count++
			if i < len(weights) {
				totalWeight += weights[i]
			}
		}
	}

	riskScore := totalWeight / effectiveKm
	return models.RouteAnalysis{
		RouteID:       id,
		IncidentCount: count,
		DensityPerKm:  float64(count) / effectiveKm,
		TotalWeight:   totalWeight,
		RiskScore:     riskScore,
		RiskLevel:     riskLevel(riskScore),
		LengthKm:      lengthKm,
	}
}

func riskLevel(score float64) string {
	switch {
	case score < 1.0:
		return "low"
	case score < 3.0:
		return "medium"
	case score < 6.0:
		return "high"
	default:
		return "very_high"
	}
}

// CompareRoutes summarizes analyzed candidates: which is safest, fastest
// and shortest, the risk score spread, and a plain-language recommendation.
// Failed candidates are excluded from the summary.
func CompareRoutes(analyses []models.RouteAnalysis, candidates []models.RouteCandidate) models.RouteComparison {
	var safest, fastest, shortest *models.RouteAnalysis
	var scores []float64

	for i := range analyses {
		a := &analyses[i]
		if a.Failed {
			continue
		}
		scores = append(scores, a.RiskScore)
		if safest == nil || a.SafetyRank < safest.SafetyRank {
			safest = a
		}
		if shortest == nil || a.LengthKm < shortest.LengthKm {
			shortest = a
		}
		if fastest == nil || candidates[a.RouteID].DurationSeconds < candidates[fastest.RouteID].DurationSeconds {
			fastest = a
		}
	}

	if safest == nil {
		return models.RouteComparison{TotalRoutes: len(analyses)}
	}

	return models.RouteComparison{
		TotalRoutes:     len(analyses),
		SafestRouteID:   safest.RouteID,
		FastestRouteID:  fastest.RouteID,
		ShortestRouteID: shortest.RouteID,
		RiskScoreRange: models.RangeSummary{
			Min: stats.Min(scores),
			Max: stats.Max(scores),
			Avg: stats.Mean(scores),
		},
		Recommendation: recommendation(safest, fastest, candidates),
	}
}

func recommendation(safest, fastest *models.RouteAnalysis, candidates []models.RouteCandidate) string {
	safestDur := candidates[safest.RouteID].DurationSeconds
	fastestDur := candidates[fastest.RouteID].DurationSeconds

	timePenalty := 0.0
	if fastestDur > 0 {
		timePenalty = (safestDur - fastestDur) / fastestDur
	}

	switch {
	case timePenalty < 0.2:
		return fmt.Sprintf("Take route %d - safest option with minimal time penalty", safest.RouteID)
	case safest.RiskScore < 2.0:
		return fmt.Sprintf("Take route %d - low risk, worth the extra time", safest.RouteID)
	case safest.RiskScore > 5.0:
		return fmt.Sprintf("Consider route %d if time is critical, but be aware of higher crime risk", fastest.RouteID)
	default:
		return fmt.Sprintf("Route %d recommended for safety, route %d for speed", safest.RouteID, fastest.RouteID)
	}
}
