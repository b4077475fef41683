package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jstwx07/routeto-backend-go/internal/config"
	"github.com/jstwx07/routeto-backend-go/internal/database"
)

// sourceRow is a standardized row from any dataset source before
// validation and normalization.
type sourceRow struct {
	Lat      float64
	Lng      float64
	CoordsOK bool
	Category string
	Date     string
	Location string
}

func readSource(cfg *config.Config, path string) ([]sourceRow, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && cfg.DataURL != "" {
		log.Printf("Dataset not found at %s, downloading from %s", path, cfg.DataURL)
		if err := downloadFile(cfg.DataURL, path); err != nil {
			return nil, err
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite":
		return readSQLite(path)
	default:
		return readCSV(cfg, path)
	}
}

func readSQLite(path string) ([]sourceRow, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	incidents, err := database.ReadIncidents(db)
	if err != nil {
		return nil, err
	}

	rows := make([]sourceRow, len(incidents))
	for i, inc := range incidents {
		rows[i] = sourceRow{
			Lat:      inc.Lat,
			Lng:      inc.Lng,
			CoordsOK: true,
			Category: inc.Category,
			Date:     inc.OccurredAt,
			Location: inc.Location,
		}
	}
	return rows, nil
}

func readCSV(cfg *config.Config, path string) ([]sourceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows, they fail per-field below

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	latIdx, err := InferColumn(header, cfg.LatCol, []string{"Latitude", "latitude", "Y", "y"})
	if err != nil {
		return nil, err
	}
	lngIdx, err := InferColumn(header, cfg.LngCol, []string{"Longitude", "longitude", "X", "x"})
	if err != nil {
		return nil, err
	}
	dateIdx, err := InferColumn(header, cfg.DateCol, []string{"occurrence_date", "Date", "reported_date", "date_occured", "occurrenceyear"})
	if err != nil {
		return nil, err
	}
	typeIdx, err := InferColumn(header, cfg.TypeCol, []string{"offence", "offense", "category", "crime", "event_type"})
	if err != nil {
		return nil, err
	}
	// Location is optional free text
	locIdx, locErr := InferColumn(header, "LOCATION", []string{"location_text", "neighbourhood", "premises_type"})

	var rows []sourceRow
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		row := sourceRow{
			Category: field(rec, typeIdx),
			Date:     field(rec, dateIdx),
		}
		if locErr == nil {
			row.Location = field(rec, locIdx)
		}

		lat, errLat := strconv.ParseFloat(strings.TrimSpace(field(rec, latIdx)), 64)
		lng, errLng := strconv.ParseFloat(strings.TrimSpace(field(rec, lngIdx)), 64)
		if errLat == nil && errLng == nil {
			row.Lat, row.Lng, row.CoordsOK = lat, lng, true
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

// InferColumn resolves a column index from the header, trying the
// preferred name first (case-insensitively), then each alternate.
func InferColumn(header []string, preferred string, alts []string) (int, error) {
	lower := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, seen := lower[name]; !seen {
			lower[name] = i
		}
	}

	if idx, ok := lower[strings.ToLower(preferred)]; ok {
		return idx, nil
	}
	for _, a := range alts {
		if idx, ok := lower[strings.ToLower(a)]; ok {
			return idx, nil
		}
	}
	return -1, fmt.Errorf("column not found for %s", preferred)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// ParseFlexibleDate parses source dates across the formats seen in crime
// datasets. Returns nil for unparseable values; the row is retained as
// dateless rather than dropped.
func ParseFlexibleDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func downloadFile(url, dst string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dataset download returned status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("failed to write dataset file: %w", err)
	}
	return nil
}
