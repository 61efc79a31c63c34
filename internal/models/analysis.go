package models

// RecoveryBreakdown is the component scores behind a recovery score,
// kept for display. All values are 0-100 fatigue scores.
type RecoveryBreakdown struct {
	ACWRFatigue      float64            `json:"acwr_fatigue"`
	PatternFatigue   map[string]float64 `json:"pattern_fatigue"`
	IntensityFatigue float64            `json:"intensity_fatigue"`
	RestFatigue      float64            `json:"rest_fatigue"`
}

// ReadinessAnalysis is a recovery score with its category. Derived on
// demand, never persisted.
type ReadinessAnalysis struct {
	Score     float64           `json:"score"`
	Category  ReadinessCategory `json:"category"`
	Breakdown RecoveryBreakdown `json:"breakdown"`
}

// FatigueAnalysis is the per-pattern fatigue profile plus the ACWR zone.
// Squat/Hinge/Push/Pull are 0-100 fatigue scores; ACWRValue is the raw
// ratio on the 0.5-2.5 scale.
type FatigueAnalysis struct {
	Squat     float64  `json:"squat"`
	Hinge     float64  `json:"hinge"`
	Push      float64  `json:"push"`
	Pull      float64  `json:"pull"`
	ACWRZone  ACWRZone `json:"acwr_zone"`
	ACWRValue float64  `json:"acwr_value"`
}

// ForPattern returns the fatigue score for one of the core patterns.
func (f FatigueAnalysis) ForPattern(p MovementPattern) float64 {
	switch p {
	case PatternSquat:
		return f.Squat
	case PatternHinge:
		return f.Hinge
	case PatternPush:
		return f.Push
	case PatternPull:
		return f.Pull
	default:
		return 0
	}
}
