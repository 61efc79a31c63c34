package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/claude/liftwise/internal/models"
	"github.com/jackc/pgx/v5"
)

// UpsertWeeklyStructure stores the structure for its week, replacing
// any existing row wholesale. One structure is current per user per
// ISO week.
func (db *DB) UpsertWeeklyStructure(ctx context.Context, userID int, weekStart time.Time, ws models.WeeklyStructure) error {
	days, err := json.Marshal(ws.Days)
	if err != nil {
		return fmt.Errorf("encoding weekly days: %w", err)
	}
	meta, err := json.Marshal(ws.Metadata)
	if err != nil {
		return fmt.Errorf("encoding weekly metadata: %w", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO weekly_structures (user_id, week_start, phase, days, metadata)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (user_id, week_start) DO UPDATE
		   SET phase = $3, days = $4, metadata = $5, updated_at = NOW()`,
		userID, weekStart, ws.Phase, days, meta)
	if err != nil {
		return fmt.Errorf("upserting weekly structure: %w", err)
	}
	return nil
}

// GetWeeklyStructure retrieves the structure for the week starting at
// weekStart, or nil when none has been generated.
func (db *DB) GetWeeklyStructure(ctx context.Context, userID int, weekStart time.Time) (*models.WeeklyStructure, error) {
	var ws models.WeeklyStructure
	var start time.Time
	var days, meta []byte
	err := db.Pool.QueryRow(ctx,
		`SELECT week_start, phase, days, metadata
		 FROM weekly_structures
		 WHERE user_id = $1 AND week_start = $2`,
		userID, weekStart).Scan(&start, &ws.Phase, &days, &meta)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying weekly structure: %w", err)
	}

	ws.WeekStartISO = start.UTC().Format("2006-01-02")
	if err := json.Unmarshal(days, &ws.Days); err != nil {
		return nil, fmt.Errorf("decoding weekly days: %w", err)
	}
	if err := json.Unmarshal(meta, &ws.Metadata); err != nil {
		return nil, fmt.Errorf("decoding weekly metadata: %w", err)
	}
	return &ws, nil
}
