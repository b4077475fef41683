package service

import (
	"encoding/json"
	"time"

	"github.com/jstwx07/routeto-backend-go/internal/analysis"
	"github.com/jstwx07/routeto-backend-go/internal/cache"
	"github.com/jstwx07/routeto-backend-go/internal/config"
	"github.com/jstwx07/routeto-backend-go/internal/models"
	"github.com/jstwx07/routeto-backend-go/internal/store"
)

// CrimeService serves incident feature queries through the response cache.
type CrimeService struct {
	store *store.Store
	cache *cache.Cache
	cfg   *config.Config
}

// NewCrimeService creates a new crime service
func NewCrimeService(st *store.Store, ca *cache.Cache, cfg *config.Config) *CrimeService {
	return &CrimeService{store: st, cache: ca, cfg: cfg}
}

// GetFeatures returns the cached GeoJSON payload for the query, computing
// it against the current snapshot on a miss.
func (s *CrimeService) GetFeatures(q models.CrimeQuery) (*cache.Entry, error) {
	spec, err := q.Spec(s.cfg.CrimeLimitDefault, s.cfg.CrimeLimitMax)
	if err != nil {
		return nil, err
	}

	snap := s.store.Snapshot()
	key := cache.Key("crimes", generation(snap), spec.CanonicalParams())

	entry, _, err := s.cache.GetOrCompute(key, s.cfg.CrimesTTL, func() ([]byte, error) {
		records := store.Apply(snap, spec)

		// One reference time for every weight in the response
		now := time.Now().UTC()

		features := make([]models.Feature, 0, len(records))
		for _, rec := range records {
			props := map[string]interface{}{
				"crime_type": rec.CrimeType,
				"weight":     analysis.Weight(s.cfg.Severity, rec.CrimeType, rec.OccurredAt, now),
			}
			if rec.OccurredAt != nil {
				props["date"] = rec.OccurredAt.Format(time.RFC3339)
			} else {
				props["date"] = nil
			}
			if rec.Location != "" {
				props["location"] = rec.Location
			}
			features = append(features, models.NewPointFeature(rec.Lng, rec.Lat, props))
		}
		return json.Marshal(models.NewFeatureCollection(features))
	})
	return entry, err
}

func generation(snap *store.Snapshot) uint64 {
	if snap == nil {
		return 0
	}
	return snap.Generation
}
