package engine

import "github.com/claude/liftwise/internal/models"

// Readiness score bands.
const (
	readinessLowCutoff  = 40.0
	readinessHighCutoff = 70.0
	defaultScore        = 50.0
)

// ClassifyReadiness buckets a recovery score: below 40 is low, 40-69 is
// moderate, 70 and above is high. A nil score reads as an unmeasured
// athlete and defaults to moderate.
func ClassifyReadiness(score *float64) models.ReadinessCategory {
	s := defaultScore
	if score != nil {
		s = *score
	}
	switch {
	case s < readinessLowCutoff:
		return models.ReadinessLow
	case s < readinessHighCutoff:
		return models.ReadinessModerate
	default:
		return models.ReadinessHigh
	}
}
