// Package localstore is a single-file SQLite history store used by the
// offline simulation harness. It holds only what the analytics need:
// finished workout records and generated weekly structures.
package localstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/claude/liftwise/internal/models"
)

// Store is an embedded workout history database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at dir/liftwise.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "liftwise.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS workout_records (
			id         TEXT PRIMARY KEY,
			date       TIMESTAMP NOT NULL,
			record     TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS weekly_structures (
			week_start TEXT PRIMARY KEY,
			structure  TEXT NOT NULL
		)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating store tables: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// AddWorkout appends a finished workout record.
func (s *Store) AddWorkout(rec models.WorkoutRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding workout record: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO workout_records (id, date, record) VALUES (?, ?, ?)`,
		rec.ID.String(), rec.Date.UTC(), string(data),
	)
	if err != nil {
		return fmt.Errorf("inserting workout record: %w", err)
	}
	return nil
}

// WorkoutsSince returns all records on or after the cutoff, newest first.
func (s *Store) WorkoutsSince(since time.Time) ([]models.WorkoutRecord, error) {
	rows, err := s.db.Query(
		`SELECT record FROM workout_records WHERE date >= ? ORDER BY date DESC`,
		since.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("querying workout records: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutRecord
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning workout record: %w", err)
		}
		var rec models.WorkoutRecord
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("decoding workout record: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// PutWeek stores the structure for its week, replacing any existing one.
func (s *Store) PutWeek(ws models.WeeklyStructure) error {
	data, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("encoding weekly structure: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO weekly_structures (week_start, structure) VALUES (?, ?)`,
		ws.WeekStartISO, string(data),
	)
	if err != nil {
		return fmt.Errorf("inserting weekly structure: %w", err)
	}
	return nil
}

// GetWeek retrieves the structure whose week starts on the given ISO
// date, or nil when none exists.
func (s *Store) GetWeek(weekStartISO string) (*models.WeeklyStructure, error) {
	var data string
	err := s.db.QueryRow(
		`SELECT structure FROM weekly_structures WHERE week_start = ?`,
		weekStartISO,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying weekly structure: %w", err)
	}

	var ws models.WeeklyStructure
	if err := json.Unmarshal([]byte(data), &ws); err != nil {
		return nil, fmt.Errorf("decoding weekly structure: %w", err)
	}
	return &ws, nil
}

// WeekCount reports how many structures are stored.
func (s *Store) WeekCount() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM weekly_structures`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting weekly structures: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
