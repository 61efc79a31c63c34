package engine

import (
	"time"

	"github.com/claude/liftwise/internal/models"
)

// ACWR zone boundaries, on the raw ratio scale. Deliberately tighter
// than the 0-100 fatigue-score bands used for per-pattern overrides.
const (
	acwrZoneUnder = 0.8
	acwrZoneHigh  = 1.2
)

// ClassifyACWRZone buckets a raw acute:chronic ratio.
func ClassifyACWRZone(ratio float64) models.ACWRZone {
	switch {
	case ratio < acwrZoneUnder:
		return models.ZoneUnder
	case ratio <= acwrZoneHigh:
		return models.ZoneOptimal
	default:
		return models.ZoneHigh
	}
}

// AnalyzeFatigue wraps the per-pattern fatigue scores and the ACWR ratio
// into one profile. Recomputed whenever the weekly structure is rebuilt.
func AnalyzeFatigue(history []models.WorkoutRecord, now time.Time) models.FatigueAnalysis {
	patterns := MovementPatternFatigue(history)
	ratio := ACWRRatio(AcuteLoad(history, now), ChronicLoad(history, now))
	return models.FatigueAnalysis{
		Squat:     patterns[models.PatternSquat],
		Hinge:     patterns[models.PatternHinge],
		Push:      patterns[models.PatternPush],
		Pull:      patterns[models.PatternPull],
		ACWRZone:  ClassifyACWRZone(ratio),
		ACWRValue: ratio,
	}
}
