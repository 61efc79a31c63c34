package models

import (
	"time"

	"github.com/google/uuid"
)

// SetPrescription is one prescribed set within a strength block.
type SetPrescription struct {
	TargetReps       int     `json:"target_reps"`
	TargetRPE        float64 `json:"target_rpe"`
	TargetPercent1RM float64 `json:"target_percent_1rm"`
}

// StrengthPrescription is the main-lift payload of a strength block.
// A strength block with a nil prescription means no eligible exercise
// existed for the day; that is a sentinel, not an error.
type StrengthPrescription struct {
	ExerciseID string            `json:"exercise_id"`
	Sets       []SetPrescription `json:"sets"`
	WaveLabel  string            `json:"wave_label"`
	RPE        float64           `json:"rpe"`
	Percent1RM float64           `json:"percent_1rm"`
	OneRMUsed  float64           `json:"one_rm_used,omitempty"`
}

// AccessoryItem is one accessory exercise with a set count.
type AccessoryItem struct {
	ExerciseID string `json:"exercise_id"`
	Sets       int    `json:"sets"`
}

// ConditioningPrescription is the payload of a conditioning block.
type ConditioningPrescription struct {
	Mode        string `json:"mode"`
	WorkSeconds int    `json:"work_seconds"`
	RestSeconds int    `json:"rest_seconds"`
	Rounds      int    `json:"rounds"`
	TargetZone  string `json:"target_zone"`
}

// WorkoutBlock is one block of a plan day, discriminated by Kind.
// Only the payload matching Kind is populated.
type WorkoutBlock struct {
	Kind         BlockKind                 `json:"kind"`
	Title        string                    `json:"title"`
	Pattern      MovementPattern           `json:"pattern,omitempty"`
	Items        []string                  `json:"items,omitempty"`
	Strength     *StrengthPrescription     `json:"strength,omitempty"`
	Accessories  []AccessoryItem           `json:"accessories,omitempty"`
	Conditioning *ConditioningPrescription `json:"conditioning,omitempty"`
}

// WorkoutPlanDay is one generated training day. The plan store keys days
// by date; regenerating a date replaces its entry.
type WorkoutPlanDay struct {
	ID                   uuid.UUID      `json:"id"`
	UserID               int            `json:"user_id"`
	Date                 time.Time      `json:"date"`
	DayIndex             int            `json:"day_index"`
	FocusTags            []string       `json:"focus_tags"`
	Blocks               []WorkoutBlock `json:"blocks"`
	EstimatedDurationMin int            `json:"estimated_duration_min"`
	// AdjustedForReadiness is set when a session start applied a
	// recovery adjustment to this day. The stored blocks stay the
	// original prescription; the session carries the adjusted copy.
	AdjustedForReadiness bool           `json:"adjusted_for_readiness"`
	CreatedAt            time.Time      `json:"created_at"`
}

// StrengthBlock returns the day's strength block, or nil.
func (d *WorkoutPlanDay) StrengthBlock() *WorkoutBlock {
	for i := range d.Blocks {
		if d.Blocks[i].Kind == BlockStrength {
			return &d.Blocks[i]
		}
	}
	return nil
}
