package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/claude/liftwise/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UpsertPlanDay stores a generated day, replacing any existing plan
// for the same user and date. Regeneration is always a full replace.
func (db *DB) UpsertPlanDay(ctx context.Context, day models.WorkoutPlanDay) error {
	blocks, err := json.Marshal(day.Blocks)
	if err != nil {
		return fmt.Errorf("encoding plan blocks: %w", err)
	}
	tags, err := json.Marshal(day.FocusTags)
	if err != nil {
		return fmt.Errorf("encoding focus tags: %w", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO plan_days (id, user_id, date, day_index, focus_tags, blocks,
		 estimated_duration_min, adjusted_for_readiness, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (user_id, date) DO UPDATE
		   SET id = $1, day_index = $4, focus_tags = $5, blocks = $6,
		       estimated_duration_min = $7, adjusted_for_readiness = $8, created_at = $9`,
		day.ID, day.UserID, day.Date, day.DayIndex, tags, blocks,
		day.EstimatedDurationMin, day.AdjustedForReadiness, day.CreatedAt)
	if err != nil {
		return fmt.Errorf("upserting plan day: %w", err)
	}
	return nil
}

// GetPlanDayByDate retrieves the plan for a calendar date, or nil when
// none was generated.
func (db *DB) GetPlanDayByDate(ctx context.Context, userID int, date time.Time) (*models.WorkoutPlanDay, error) {
	return db.getPlanDay(ctx,
		`SELECT id, user_id, date, day_index, focus_tags, blocks,
		 estimated_duration_min, adjusted_for_readiness, created_at
		 FROM plan_days WHERE user_id = $1 AND date = $2`,
		userID, date)
}

// GetPlanDay retrieves a plan day by ID.
func (db *DB) GetPlanDay(ctx context.Context, userID int, id uuid.UUID) (*models.WorkoutPlanDay, error) {
	return db.getPlanDay(ctx,
		`SELECT id, user_id, date, day_index, focus_tags, blocks,
		 estimated_duration_min, adjusted_for_readiness, created_at
		 FROM plan_days WHERE user_id = $1 AND id = $2`,
		userID, id)
}

func (db *DB) getPlanDay(ctx context.Context, query string, args ...any) (*models.WorkoutPlanDay, error) {
	var day models.WorkoutPlanDay
	var tags, blocks []byte
	err := db.Pool.QueryRow(ctx, query, args...).Scan(
		&day.ID, &day.UserID, &day.Date, &day.DayIndex, &tags, &blocks,
		&day.EstimatedDurationMin, &day.AdjustedForReadiness, &day.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan day: %w", err)
	}

	if err := json.Unmarshal(tags, &day.FocusTags); err != nil {
		return nil, fmt.Errorf("decoding focus tags: %w", err)
	}
	if err := json.Unmarshal(blocks, &day.Blocks); err != nil {
		return nil, fmt.Errorf("decoding plan blocks: %w", err)
	}
	return &day, nil
}
