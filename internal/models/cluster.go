package models

// Cluster is a derived spatial grouping of incidents. Recomputed per
// request; identified only by the query that produced it.
type Cluster struct {
	CenterLat float64 `json:"center_lat"`
	CenterLng float64 `json:"center_lng"`
	Count     int     `json:"count"`
	Radius    float64 `json:"radius"` // display hint in pixels, not meters
}

// SuggestedRadius maps a member count to a display radius, saturating at
// the bounds the map widget renders well.
func SuggestedRadius(count int) float64 {
	r := float64(count) / 10.0
	if r < 8 {
		r = 8
	}
	if r > 30 {
		r = 30
	}
	return r
}
