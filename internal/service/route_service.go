package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jstwx07/routeto-backend-go/internal/analysis"
	"github.com/jstwx07/routeto-backend-go/internal/cache"
	"github.com/jstwx07/routeto-backend-go/internal/config"
	"github.com/jstwx07/routeto-backend-go/internal/models"
	"github.com/jstwx07/routeto-backend-go/internal/routing"
	"github.com/jstwx07/routeto-backend-go/internal/store"
)

// RouteResult pairs a candidate's geometry with its risk analysis.
type RouteResult struct {
	RouteID  int                  `json:"route_id"`
	Geometry models.Feature       `json:"geometry"`
	Analysis models.RouteAnalysis `json:"analysis"`
}

// RouteReport is the full route-analysis response payload.
type RouteReport struct {
	Routes     []RouteResult          `json:"routes"`
	Comparison models.RouteComparison `json:"comparison"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// RouteService scores route candidates against the incident snapshot.
// Candidates come either from the request body or from the external
// routing provider.
type RouteService struct {
	store  *store.Store
	cache  *cache.Cache
	cfg    *config.Config
	router *routing.Client
}

// NewRouteService creates a new route service
func NewRouteService(st *store.Store, ca *cache.Cache, cfg *config.Config, router *routing.Client) *RouteService {
	return &RouteService{store: st, cache: ca, cfg: cfg, router: router}
}

// AnalyzeCandidates scores caller-supplied candidates. Not cached: the
// candidate geometries arrive in the request body, so there is no compact
// canonical key for them.
func (s *RouteService) AnalyzeCandidates(req models.RouteAnalyzeRequest) (*RouteReport, error) {
	buffer := s.clampBuffer(req.BufferM)
	spec, err := models.CrimeQuery{Start: req.Start, End: req.End, CrimeType: req.CrimeType}.Spec(0, 0)
	if err != nil {
		return nil, err
	}
	return s.buildReport(req.Candidates, spec, buffer, map[string]interface{}{
		"source": "caller",
	})
}

// AnalyzeBetween fetches walking route alternatives from the routing
// provider and scores them, caching the full report by query parameters.
func (s *RouteService) AnalyzeBetween(ctx context.Context, q models.RouteAnalyzeQuery) (*cache.Entry, error) {
	if q.StartLat == 0 || q.StartLng == 0 || q.EndLat == 0 || q.EndLng == 0 {
		return nil, &models.ValidationError{Field: "start_lat", Reason: "start_lat, start_lng, end_lat and end_lng are all required"}
	}

	buffer := s.clampBuffer(q.BufferM)
	spec, err := models.CrimeQuery{Start: q.Start, End: q.End, CrimeType: q.CrimeType}.Spec(0, 0)
	if err != nil {
		return nil, err
	}

	snap := s.store.Snapshot()
	params := spec.CanonicalParams()
	params["start_lat"] = fmt.Sprintf("%.6f", q.StartLat)
	params["start_lng"] = fmt.Sprintf("%.6f", q.StartLng)
	params["end_lat"] = fmt.Sprintf("%.6f", q.EndLat)
	params["end_lng"] = fmt.Sprintf("%.6f", q.EndLng)
	params["buffer_m"] = fmt.Sprintf("%.0f", buffer)
	key := cache.Key("routes", generation(snap), params)

	entry, _, err := s.cache.GetOrCompute(key, s.cfg.RoutesTTL, func() ([]byte, error) {
		candidates, err := s.router.WalkingRoutes(ctx, q.StartLat, q.StartLng, q.EndLat, q.EndLng)
		if err != nil {
			return nil, err
		}
		report, err := s.buildReport(candidates, spec, buffer, map[string]interface{}{
			"source":      "osrm",
			"start_point": map[string]float64{"lat": q.StartLat, "lng": q.StartLng},
			"end_point":   map[string]float64{"lat": q.EndLat, "lng": q.EndLng},
		})
		if err != nil {
			return nil, err
		}
		return json.Marshal(report)
	})
	return entry, err
}

func (s *RouteService) buildReport(candidates []models.RouteCandidate, spec models.FilterSpec, buffer float64, metadata map[string]interface{}) (*RouteReport, error) {
	snap := s.store.Snapshot()
	incidents := store.Apply(snap, spec)

	now := time.Now().UTC()
	weights := make([]float64, len(incidents))
	for i, rec := range incidents {
		weights[i] = analysis.Weight(s.cfg.Severity, rec.CrimeType, rec.OccurredAt, now)
	}

	analyses, err := analysis.AnalyzeRoutes(candidates, incidents, weights, buffer)
	if err != nil {
		return nil, err
	}
	comparison := analysis.CompareRoutes(analyses, candidates)

	results := make([]RouteResult, len(analyses))
	for i, a := range analyses {
		results[i] = RouteResult{
			RouteID: a.RouteID,
			Geometry: models.NewLineFeature(candidates[i].Geometry.Coordinates, map[string]interface{}{
				"route_id":         a.RouteID,
				"risk_score":       a.RiskScore,
				"risk_level":       a.RiskLevel,
				"incidents":        a.IncidentCount,
				"density_per_km":   a.DensityPerKm,
				"length_km":        a.LengthKm,
				"safety_rank":      a.SafetyRank,
				"buffer_meters":    buffer,
				"distance_meters":  candidates[i].DistanceMeters,
				"duration_seconds": candidates[i].DurationSeconds,
			}),
			Analysis: a,
		}
	}

	metadata["buffer_meters"] = buffer
	metadata["total_routes"] = len(results)
	metadata["safest_index"] = comparison.SafestRouteID
	if spec.CrimeType != "" {
		metadata["crime_type_filter"] = spec.CrimeType
	}

	return &RouteReport{Routes: results, Comparison: comparison, Metadata: metadata}, nil
}

func (s *RouteService) clampBuffer(buffer float64) float64 {
	if buffer == 0 {
		return s.cfg.DefaultBufferM
	}
	if buffer < s.cfg.MinBufferM {
		return s.cfg.MinBufferM
	}
	if buffer > s.cfg.MaxBufferM {
		return s.cfg.MaxBufferM
	}
	return buffer
}
