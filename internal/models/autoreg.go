package models

import (
	"time"

	"github.com/google/uuid"
)

// PerformanceEvent is one completed set as seen by the auto-regulation
// engine. Immutable; appended to the progression event log.
type PerformanceEvent struct {
	ID         uuid.UUID       `json:"id"`
	PlanDayID  uuid.UUID       `json:"plan_day_id"`
	Pattern    MovementPattern `json:"pattern,omitempty"`
	SetIndex   int             `json:"set_index"`
	Weight     float64         `json:"weight"`
	Reps       int             `json:"reps"`
	RPE        float64         `json:"rpe"`
	TargetRPE  float64         `json:"target_rpe"`
	Difficulty SetDifficulty   `json:"difficulty,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AutoRegRecommendation is the engine's output for the set following a
// completed one. NextWeight of nil means no recommendation could be made.
type AutoRegRecommendation struct {
	NextWeight         *float64 `json:"next_weight"`
	NextReps           *int     `json:"next_reps"` // reps are never auto-adjusted
	Reason             string   `json:"reason"`
	PerformanceBoost   bool     `json:"performance_boost"`
	FatigueDetected    bool     `json:"fatigue_detected"`
	AutoDeloadSuggested bool    `json:"auto_deload_suggested"`
}

// SetSuggestion is a pending recommendation for a specific upcoming set.
// It is cleared if the user edits that set's weight directly or
// un-completes the set that produced it.
type SetSuggestion struct {
	BlockIndex int                   `json:"block_index"`
	SetIndex   int                   `json:"set_index"`
	Rec        AutoRegRecommendation `json:"rec"`
}
