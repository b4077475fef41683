package service

import (
	"encoding/json"
	"strconv"

	"github.com/jstwx07/routeto-backend-go/internal/analysis"
	"github.com/jstwx07/routeto-backend-go/internal/cache"
	"github.com/jstwx07/routeto-backend-go/internal/config"
	"github.com/jstwx07/routeto-backend-go/internal/models"
	"github.com/jstwx07/routeto-backend-go/internal/spatial"
	"github.com/jstwx07/routeto-backend-go/internal/store"
)

// ClusterService serves spatial cluster queries through the response cache.
type ClusterService struct {
	store *store.Store
	cache *cache.Cache
	cfg   *config.Config
}

// NewClusterService creates a new cluster service
func NewClusterService(st *store.Store, ca *cache.Cache, cfg *config.Config) *ClusterService {
	return &ClusterService{store: st, cache: ca, cfg: cfg}
}

// GetClusters returns the cached GeoJSON payload of k-partitioned cluster
// centroids over the filtered incident set.
func (s *ClusterService) GetClusters(q models.ClusterQuery) (*cache.Entry, error) {
	spec, k, maxPoints, err := q.Spec(
		s.cfg.ClusterKDefault, s.cfg.ClusterKMax,
		s.cfg.ClusterMaxPointsDefault, s.cfg.ClusterMaxPointsMax,
	)
	if err != nil {
		return nil, err
	}

	snap := s.store.Snapshot()
	params := spec.CanonicalParams()
	params["k"] = strconv.Itoa(k)
	params["max_points"] = strconv.Itoa(maxPoints)
	key := cache.Key("clusters", generation(snap), params)

	entry, _, err := s.cache.GetOrCompute(key, s.cfg.ClustersTTL, func() ([]byte, error) {
		records := store.Apply(snap, spec)

		points := make([]spatial.Point, len(records))
		for i, rec := range records {
			points[i] = spatial.Point{Lat: rec.Lat, Lng: rec.Lng}
		}
		points = analysis.Downsample(points, maxPoints)

		clusters := analysis.KMeans(points, k)
		features := make([]models.Feature, 0, len(clusters))
		for _, cl := range clusters {
			features = append(features, models.NewPointFeature(cl.CenterLng, cl.CenterLat, map[string]interface{}{
				"count":        cl.Count,
				"radius":       cl.Radius,
				"cluster_type": "crime_cluster",
			}))
		}
		return json.Marshal(models.NewFeatureCollection(features))
	})
	return entry, err
}
