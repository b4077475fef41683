package models

// LineGeometry is a GeoJSON LineString as supplied by the routing provider.
// Coordinates are [lng, lat] pairs.
type LineGeometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// RouteCandidate is one route alternative from the external routing
// provider. The engine never computes geometries itself.
type RouteCandidate struct {
	Geometry        LineGeometry `json:"geometry"`
	DistanceMeters  float64      `json:"distance_meters"`
	DurationSeconds float64      `json:"duration_seconds"`
}

// RouteAnalysis is the risk assessment of a single candidate.
type RouteAnalysis struct {
	RouteID       int     `json:"route_id"`
	IncidentCount int     `json:"incidents"`
	DensityPerKm  float64 `json:"density_per_km"`
	TotalWeight   float64 `json:"total_weight"`
	RiskScore     float64 `json:"risk_score"`
	RiskLevel     string  `json:"risk_level"`
	LengthKm      float64 `json:"length_km"`
	SafetyRank    int     `json:"safety_rank"` // -1 for failed candidates
	Failed        bool    `json:"failed,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// RangeSummary summarizes a metric across candidates.
type RangeSummary struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// RouteComparison summarizes a batch of analyzed candidates.
type RouteComparison struct {
	TotalRoutes     int          `json:"total_routes"`
	SafestRouteID   int          `json:"safest_route_id"`
	FastestRouteID  int          `json:"fastest_route_id"`
	ShortestRouteID int          `json:"shortest_route_id"`
	RiskScoreRange  RangeSummary `json:"risk_score_range"`
	Recommendation  string       `json:"recommendation"`
}

// RouteAnalyzeRequest is the POST body for route analysis with
// caller-supplied candidate geometries.
type RouteAnalyzeRequest struct {
	Candidates []RouteCandidate `json:"candidates"`
	BufferM    float64          `json:"buffer_m"`
	Start      string           `json:"start,omitempty"`
	End        string           `json:"end,omitempty"`
	CrimeType  string           `json:"crime_type,omitempty"`
}

// RouteAnalyzeQuery is the GET form where candidates come from the
// external routing provider.
type RouteAnalyzeQuery struct {
	StartLat  float64 `form:"start_lat"`
	StartLng  float64 `form:"start_lng"`
	EndLat    float64 `form:"end_lat"`
	EndLng    float64 `form:"end_lng"`
	BufferM   float64 `form:"buffer_m"`
	CrimeType string  `form:"crime_type"`
	Start     string  `form:"start"`
	End       string  `form:"end"`
}
