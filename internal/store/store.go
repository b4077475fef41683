package store

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jstwx07/routeto-backend-go/internal/config"
	"github.com/jstwx07/routeto-backend-go/internal/models"
)

// Snapshot is an immutable point-in-time view of the loaded dataset.
// Readers hold a snapshot for the duration of a computation; a reload
// publishes a fresh snapshot without touching the one in flight.
type Snapshot struct {
	Records    []models.CrimeRecord
	Generation uint64
	LoadedAt   time.Time
	Accepted   int
	Rejected   int
}

// Store owns the current dataset snapshot. Concurrent reads need no
// locking; Load is the only writer and publishes by atomic swap.
type Store struct {
	cfg  *config.Config
	snap atomic.Pointer[Snapshot]
	gen  atomic.Uint64
	mu   sync.Mutex // serializes concurrent loads
}

// New creates an empty store. Call Load before serving queries.
func New(cfg *config.Config) *Store {
	return &Store{cfg: cfg}
}

// Snapshot returns the current snapshot, or nil before the first Load.
func (s *Store) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Load reads, validates and normalizes the dataset at path, then publishes
// it as the new snapshot. On failure the previous snapshot stays in place.
func (s *Store) Load(path string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := readSource(s.cfg, path)
	if err != nil {
		return nil, &models.LoadError{Path: path, Err: err}
	}

	records := make([]models.CrimeRecord, 0, len(rows))
	rejected := 0
	for _, row := range rows {
		if !row.CoordsOK || !s.cfg.Region.Contains(row.Lat, row.Lng) {
			rejected++
			continue
		}
		records = append(records, models.CrimeRecord{
			Lat:        row.Lat,
			Lng:        row.Lng,
			CrimeType:  models.NormalizeCategory(row.Category),
			OccurredAt: ParseFlexibleDate(row.Date),
			Location:   row.Location,
		})
	}

	snap := &Snapshot{
		Records:    records,
		Generation: s.gen.Add(1),
		LoadedAt:   time.Now(),
		Accepted:   len(records),
		Rejected:   rejected,
	}
	s.snap.Store(snap)

	log.Printf("Dataset loaded from %s: %d rows accepted, %d rejected (generation %d)",
		path, snap.Accepted, snap.Rejected, snap.Generation)
	return snap, nil
}
