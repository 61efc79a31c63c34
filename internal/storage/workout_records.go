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

// InsertWorkoutRecord inserts a finished workout. The history is
// append-only; a duplicate ID is skipped, not an error. Returns true
// if inserted.
func (db *DB) InsertWorkoutRecord(ctx context.Context, userID int, rec models.WorkoutRecord) (bool, error) {
	blocks, err := json.Marshal(rec.Blocks)
	if err != nil {
		return false, fmt.Errorf("encoding workout blocks: %w", err)
	}

	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO workout_records (id, user_id, plan_day_id, date, start_time, end_time, duration_sec,
		 blocks, total_volume, avg_rpe, avg_rest_sec, density_score, intensity_score)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		 ON CONFLICT DO NOTHING`,
		rec.ID, userID, rec.PlanDayID, rec.Date, rec.StartTime, rec.EndTime, rec.DurationSec,
		blocks, rec.TotalVolume, rec.AvgRPE, rec.AvgRestSec, rec.DensityScore, rec.IntensityScore)
	if err != nil {
		return false, fmt.Errorf("inserting workout record: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QueryWorkoutRecords retrieves a user's workouts in a time range,
// newest first.
func (db *DB) QueryWorkoutRecords(ctx context.Context, start, end time.Time, userID int) ([]models.WorkoutRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, plan_day_id, date, start_time, end_time, duration_sec,
		 blocks, total_volume, avg_rpe, avg_rest_sec, density_score, intensity_score
		 FROM workout_records
		 WHERE date >= $1 AND date < $2 AND user_id = $3
		 ORDER BY date DESC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workout records: %w", err)
	}
	defer rows.Close()

	return scanWorkoutRecords(rows)
}

// RecentWorkoutRecords retrieves a user's most recent workouts. The
// analytics windows only ever need the trailing 34 days, but callers
// pass their own cutoff.
func (db *DB) RecentWorkoutRecords(ctx context.Context, since time.Time, userID int) ([]models.WorkoutRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, plan_day_id, date, start_time, end_time, duration_sec,
		 blocks, total_volume, avg_rpe, avg_rest_sec, density_score, intensity_score
		 FROM workout_records
		 WHERE date >= $1 AND user_id = $2
		 ORDER BY date DESC`,
		since, userID)
	if err != nil {
		return nil, fmt.Errorf("querying recent workout records: %w", err)
	}
	defer rows.Close()

	return scanWorkoutRecords(rows)
}

// GetWorkoutRecord retrieves a single workout by ID.
func (db *DB) GetWorkoutRecord(ctx context.Context, id uuid.UUID, userID int) (*models.WorkoutRecord, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, plan_day_id, date, start_time, end_time, duration_sec,
		 blocks, total_volume, avg_rpe, avg_rest_sec, density_score, intensity_score
		 FROM workout_records
		 WHERE id = $1 AND user_id = $2`,
		id, userID)

	rec, err := scanWorkoutRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout record: %w", err)
	}
	return &rec, nil
}

func scanWorkoutRecords(rows pgx.Rows) ([]models.WorkoutRecord, error) {
	var result []models.WorkoutRecord
	for rows.Next() {
		rec, err := scanWorkoutRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workout record: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func scanWorkoutRecord(row pgx.Row) (models.WorkoutRecord, error) {
	var rec models.WorkoutRecord
	var blocks []byte
	err := row.Scan(&rec.ID, &rec.PlanDayID, &rec.Date, &rec.StartTime, &rec.EndTime, &rec.DurationSec,
		&blocks, &rec.TotalVolume, &rec.AvgRPE, &rec.AvgRestSec, &rec.DensityScore, &rec.IntensityScore)
	if err != nil {
		return rec, err
	}
	if len(blocks) > 0 {
		if err := json.Unmarshal(blocks, &rec.Blocks); err != nil {
			return rec, fmt.Errorf("decoding workout blocks: %w", err)
		}
	}
	return rec, nil
}
