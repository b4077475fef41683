package database

import (
	"database/sql"
	"fmt"
)

// IncidentRow is a raw incident as stored in the incidents table. Values
// are kept as-imported; normalization happens at load time in the store.
type IncidentRow struct {
	Lat        float64
	Lng        float64
	Category   string
	OccurredAt string
	Location   string
}

const incidentsSchema = `
	CREATE TABLE IF NOT EXISTS incidents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		category TEXT NOT NULL,
		occurred_at TEXT,
		location TEXT
	)
`

// EnsureSchema creates the incidents table if it does not exist.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(incidentsSchema); err != nil {
		return fmt.Errorf("failed to create incidents table: %w", err)
	}
	return nil
}

// InsertIncidents writes a batch of rows inside a single transaction.
func InsertIncidents(db *sql.DB, rows []IncidentRow) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO incidents (lat, lng, category, occurred_at, location) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(r.Lat, r.Lng, r.Category, r.OccurredAt, r.Location); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert incident: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit incidents: %w", err)
	}
	return nil
}

// ReadIncidents scans the whole incidents table in insertion order.
func ReadIncidents(db *sql.DB) ([]IncidentRow, error) {
	rows, err := db.Query("SELECT lat, lng, category, COALESCE(occurred_at, ''), COALESCE(location, '') FROM incidents ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	var out []IncidentRow
	for rows.Next() {
		var r IncidentRow
		if err := rows.Scan(&r.Lat, &r.Lng, &r.Category, &r.OccurredAt, &r.Location); err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
