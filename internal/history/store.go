// Package history persists received loadsheets to a local SQLite database so
// past flights survive restarts and can be reviewed or exported.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"loadmaster/internal/app"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Record is one archived loadsheet edition.
type Record struct {
	ID         int64
	Flight     string
	Type       app.LoadsheetType
	ReceivedAt time.Time
	Data       app.LoadsheetData
}

// Store archives loadsheets in a single SQLite table, the figures as a JSON
// blob alongside the queryable columns.
type Store struct {
	db *sql.DB
}

// NewStore opens (and if necessary initializes) the history database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, &app.ConfigurationError{Msg: "history database path is empty"}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS loadsheets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		flight TEXT NOT NULL,
		type TEXT NOT NULL,
		received_at TEXT NOT NULL,
		payload BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create loadsheets table: %w", err)
	}
	return &Store{db: db}, nil
}

// Save archives one received loadsheet.
func (s *Store) Save(ctx context.Context, flight string, typ app.LoadsheetType, data app.LoadsheetData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode loadsheet: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO loadsheets (flight, type, received_at, payload) VALUES (?, ?, ?, ?)`,
		flight, string(typ), time.Now().UTC().Format(time.RFC3339), payload)
	if err != nil {
		return fmt.Errorf("insert loadsheet: %w", err)
	}
	return nil
}

// Recent returns the newest records, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, flight, type, received_at, payload FROM loadsheets ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("select loadsheets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var (
			rec      Record
			typ      string
			received string
			payload  []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Flight, &typ, &received, &payload); err != nil {
			return nil, fmt.Errorf("scan loadsheet row: %w", err)
		}
		rec.Type = app.LoadsheetType(typ)
		if rec.ReceivedAt, err = time.Parse(time.RFC3339, received); err != nil {
			return nil, fmt.Errorf("parse received_at %q: %w", received, err)
		}
		if err := json.Unmarshal(payload, &rec.Data); err != nil {
			return nil, fmt.Errorf("decode loadsheet payload: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ForFlight returns all archived editions for one flight, oldest first.
func (s *Store) ForFlight(ctx context.Context, flight string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, flight, type, received_at, payload FROM loadsheets WHERE flight = ? ORDER BY id ASC`, flight)
	if err != nil {
		return nil, fmt.Errorf("select loadsheets for flight: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var (
			rec      Record
			typ      string
			received string
			payload  []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Flight, &typ, &received, &payload); err != nil {
			return nil, fmt.Errorf("scan loadsheet row: %w", err)
		}
		rec.Type = app.LoadsheetType(typ)
		if rec.ReceivedAt, err = time.Parse(time.RFC3339, received); err != nil {
			return nil, fmt.Errorf("parse received_at %q: %w", received, err)
		}
		if err := json.Unmarshal(payload, &rec.Data); err != nil {
			return nil, fmt.Errorf("decode loadsheet payload: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
