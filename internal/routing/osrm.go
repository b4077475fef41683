package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jstwx07/routeto-backend-go/internal/models"
)

// Client fetches walking route alternatives from an OSRM-compatible
// routing service. The engine itself never computes route geometries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an OSRM client against the given base URL
// (e.g. http://router.project-osrm.org).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Geometry models.LineGeometry `json:"geometry"`
		Distance float64             `json:"distance"`
		Duration float64             `json:"duration"`
	} `json:"routes"`
}

// WalkingRoutes requests foot-routing alternatives between two points and
// returns them as route candidates in provider order.
func (c *Client) WalkingRoutes(ctx context.Context, startLat, startLng, endLat, endLng float64) ([]models.RouteCandidate, error) {
	// OSRM wants lng,lat;lng,lat
	coords := fmt.Sprintf("%f,%f;%f,%f", startLng, startLat, endLng, endLat)

	query := url.Values{}
	query.Set("alternatives", "true")
	query.Set("geometries", "geojson")
	query.Set("overview", "full")
	query.Set("steps", "false")

	endpoint := fmt.Sprintf("%s/route/v1/foot/%s?%s", c.baseURL, coords, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch routes from OSRM: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OSRM returned status %d", resp.StatusCode)
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("invalid OSRM response: %w", err)
	}
	if body.Code != "Ok" {
		return nil, fmt.Errorf("OSRM error: %s", body.Message)
	}

	candidates := make([]models.RouteCandidate, 0, len(body.Routes))
	for _, r := range body.Routes {
		candidates = append(candidates, models.RouteCandidate{
			Geometry:        r.Geometry,
			DistanceMeters:  r.Distance,
			DurationSeconds: r.Duration,
		})
	}
	return candidates, nil
}
