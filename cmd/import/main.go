package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jstwx07/routeto-backend-go/internal/config"
	"github.com/jstwx07/routeto-backend-go/internal/database"
	"github.com/jstwx07/routeto-backend-go/internal/store"
)

// 将 CSV 数据集导入 SQLite，便于服务从 .db 文件直接加载
func main() {
	csvPath := flag.String("csv", "./data/major_crime_indicators.csv", "source CSV file")
	dbPath := flag.String("db", "./data/crimes.db", "destination SQLite database")
	flag.Parse()

	cfg := config.Load()

	rows, err := readRows(cfg, *csvPath)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *csvPath, err)
	}

	db, err := database.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *dbPath, err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	if err := database.InsertIncidents(db, rows); err != nil {
		log.Fatalf("Failed to insert incidents: %v", err)
	}

	log.Printf("Imported %d incidents into %s", len(rows), *dbPath)
}

func readRows(cfg *config.Config, path string) ([]database.IncidentRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, err
	}

	latIdx, err := store.InferColumn(header, cfg.LatCol, []string{"Latitude", "latitude", "Y", "y"})
	if err != nil {
		return nil, err
	}
	lngIdx, err := store.InferColumn(header, cfg.LngCol, []string{"Longitude", "longitude", "X", "x"})
	if err != nil {
		return nil, err
	}
	dateIdx, err := store.InferColumn(header, cfg.DateCol, []string{"occurrence_date", "Date", "reported_date"})
	if err != nil {
		return nil, err
	}
	typeIdx, err := store.InferColumn(header, cfg.TypeCol, []string{"offence", "offense", "category", "crime"})
	if err != nil {
		return nil, err
	}
	locIdx, locErr := store.InferColumn(header, "LOCATION", []string{"location_text", "neighbourhood", "premises_type"})

	var rows []database.IncidentRow
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		lat, errLat := strconv.ParseFloat(strings.TrimSpace(cell(rec, latIdx)), 64)
		lng, errLng := strconv.ParseFloat(strings.TrimSpace(cell(rec, lngIdx)), 64)
		if errLat != nil || errLng != nil {
			continue
		}

		row := database.IncidentRow{
			Lat:        lat,
			Lng:        lng,
			Category:   cell(rec, typeIdx),
			OccurredAt: cell(rec, dateIdx),
		}
		if locErr == nil {
			row.Location = cell(rec, locIdx)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}
