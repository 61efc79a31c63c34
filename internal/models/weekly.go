package models

import "time"

// WeeklyDayStructure is the plan skeleton for one training day. Targets
// are always consistent with the parent week's phase and the pattern's
// fatigue level; they are never edited independently.
type WeeklyDayStructure struct {
	DateISO            string             `json:"date_iso"`
	DayOfWeek          time.Weekday       `json:"day_of_week"`
	MainPattern        MovementPattern    `json:"main_pattern"`
	MainLiftCategory   string             `json:"main_lift_category"`
	VolumeTarget       TargetLevel        `json:"volume_target"`
	IntensityTarget    TargetLevel        `json:"intensity_target"`
	ConditioningTarget ConditioningTarget `json:"conditioning_target"`
	Phase              PhaseType          `json:"phase"`
	FatigueProtected   bool               `json:"fatigue_protected"`
}

// WeeklyMetadata snapshots the inputs that produced a structure.
type WeeklyMetadata struct {
	ReadinessScore      float64         `json:"readiness_score"`
	Fatigue             FatigueAnalysis `json:"fatigue"`
	TrainingDaysPerWeek int             `json:"training_days_per_week"`
}

// WeeklyStructure is the skeleton for one ISO week. Exactly one
// structure is current per week; it is replaced wholesale on
// regeneration, never partially mutated.
type WeeklyStructure struct {
	WeekStartISO string               `json:"week_start_iso"`
	Days         []WeeklyDayStructure `json:"days"`
	Phase        PhaseType            `json:"phase"`
	Metadata     WeeklyMetadata       `json:"metadata"`
}

// WeekStart returns the Monday of the ISO week containing t, at midnight UTC.
func WeekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return t.AddDate(0, 0, -offset)
}
