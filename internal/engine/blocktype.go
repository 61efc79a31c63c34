package engine

import (
	"time"

	"github.com/claude/liftwise/internal/models"
)

// acwrDeloadRatio is the hard-safety threshold on the raw ratio scale.
const acwrDeloadRatio = 1.2

// InferBlockType decides the week's periodization phase. Safety
// overrides are evaluated in strict priority order before the 4-week
// cycle default; the result is recomputed each time the week rolls over.
func InferBlockType(readiness models.ReadinessAnalysis, fatigue models.FatigueAnalysis, weekStart time.Time) models.PhaseType {
	// 1. Overreaching: hard deload regardless of anything else.
	if fatigue.ACWRZone == models.ZoneHigh || fatigue.ACWRValue >= acwrDeloadRatio {
		return models.PhaseDeload
	}

	// 2. Poor recovery.
	if readiness.Score < readinessLowCutoff {
		return models.PhaseDeload
	}

	_, week := weekStart.ISOWeek()

	// 3. Undertrained but fresh: alternate building phases by week parity.
	if fatigue.ACWRZone == models.ZoneUnder && readiness.Category == models.ReadinessHigh {
		if week%2 == 0 {
			return models.PhaseAccumulation
		}
		return models.PhaseIntensification
	}

	// 4. Cyclic default over a 4-week mesocycle.
	switch week % 4 {
	case 0, 1:
		return models.PhaseAccumulation
	case 2:
		return models.PhaseIntensification
	default:
		return models.PhaseDeload
	}
}
