package models

import (
	"time"

	"github.com/google/uuid"
)

// CompletedSet is one finished set inside a block summary.
type CompletedSet struct {
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	RPE       float64 `json:"rpe"`
	RestSec   float64 `json:"rest_sec"`
	Completed bool    `json:"completed"`
}

// BlockSummary is the per-block record kept on a finished workout.
// Pattern is tagged at creation time; Title keyword matching is only a
// fallback for records imported without tags.
type BlockSummary struct {
	Title          string          `json:"title"`
	Kind           BlockKind       `json:"kind"`
	Pattern        MovementPattern `json:"pattern,omitempty"`
	PrescribedSets int             `json:"prescribed_sets"`
	CompletedSets  []CompletedSet  `json:"completed_sets"`
	Volume         float64         `json:"volume"`
	AvgRPE         float64         `json:"avg_rpe"`
	AvgRestSec     float64         `json:"avg_rest_sec"`
}

// WorkoutRecord is one finished session. Immutable once created; the
// history store is append-only.
type WorkoutRecord struct {
	ID             uuid.UUID      `json:"id"`
	PlanDayID      uuid.UUID      `json:"plan_day_id"`
	Date           time.Time      `json:"date"`
	StartTime      time.Time      `json:"start_time"`
	EndTime        time.Time      `json:"end_time"`
	DurationSec    float64        `json:"duration_sec"`
	Blocks         []BlockSummary `json:"blocks"`
	TotalVolume    float64        `json:"total_volume"`
	AvgRPE         float64        `json:"avg_rpe"`
	AvgRestSec     float64        `json:"avg_rest_sec"`
	DensityScore   float64        `json:"density_score"`
	IntensityScore float64        `json:"intensity_score"`
}

// Day returns the record's calendar day in UTC.
func (w WorkoutRecord) Day() time.Time {
	return time.Date(w.Date.Year(), w.Date.Month(), w.Date.Day(), 0, 0, 0, 0, time.UTC)
}
