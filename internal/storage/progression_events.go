package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/liftwise/internal/models"
	"github.com/google/uuid"
)

// InsertProgressionEvents batch-inserts completed-set events. The log
// is append-only: duplicates are skipped. Returns count inserted.
func (db *DB) InsertProgressionEvents(ctx context.Context, userID int, events []models.PerformanceEvent) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}

	query := `INSERT INTO progression_events (id, user_id, plan_day_id, pattern, set_index, weight, reps, rpe, target_rpe, difficulty, created_at) VALUES `
	args := make([]any, 0, len(events)*11)
	valueStrings := make([]string, 0, len(events))

	for i, e := range events {
		base := i * 11
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10, base+11,
		))
		args = append(args, e.ID, userID, e.PlanDayID, e.Pattern, e.SetIndex,
			e.Weight, e.Reps, e.RPE, e.TargetRPE, e.Difficulty, e.CreatedAt)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting progression events: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryProgressionEvents retrieves the events for one plan day in set
// order.
func (db *DB) QueryProgressionEvents(ctx context.Context, userID int, planDayID uuid.UUID) ([]models.PerformanceEvent, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, plan_day_id, pattern, set_index, weight, reps, rpe, target_rpe, difficulty, created_at
		 FROM progression_events
		 WHERE user_id = $1 AND plan_day_id = $2
		 ORDER BY created_at ASC`,
		userID, planDayID)
	if err != nil {
		return nil, fmt.Errorf("querying progression events: %w", err)
	}
	defer rows.Close()

	var result []models.PerformanceEvent
	for rows.Next() {
		var e models.PerformanceEvent
		if err := rows.Scan(&e.ID, &e.PlanDayID, &e.Pattern, &e.SetIndex,
			&e.Weight, &e.Reps, &e.RPE, &e.TargetRPE, &e.Difficulty, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning progression event: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// QueryRecentProgressionEvents retrieves a user's events since a
// cutoff, newest first. Feeds the fatigue flags on recovery reports.
func (db *DB) QueryRecentProgressionEvents(ctx context.Context, userID int, since time.Time) ([]models.PerformanceEvent, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, plan_day_id, pattern, set_index, weight, reps, rpe, target_rpe, difficulty, created_at
		 FROM progression_events
		 WHERE user_id = $1 AND created_at >= $2
		 ORDER BY created_at DESC`,
		userID, since)
	if err != nil {
		return nil, fmt.Errorf("querying recent progression events: %w", err)
	}
	defer rows.Close()

	var result []models.PerformanceEvent
	for rows.Next() {
		var e models.PerformanceEvent
		if err := rows.Scan(&e.ID, &e.PlanDayID, &e.Pattern, &e.SetIndex,
			&e.Weight, &e.Reps, &e.RPE, &e.TargetRPE, &e.Difficulty, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning progression event: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
