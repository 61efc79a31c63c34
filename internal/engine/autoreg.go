package engine

import (
	"math"

	"github.com/claude/liftwise/internal/models"
)

// AutoRegConfig bounds the per-set weight adjustments. Percentages are
// expressed as whole numbers (5 means 5%).
type AutoRegConfig struct {
	MaxIncreasePercent float64
	MaxDecreasePercent float64
	MinWeight          float64
	Increment          float64
	Epsilon            float64
}

// DefaultAutoRegConfig matches plate math on a standard barbell.
func DefaultAutoRegConfig() AutoRegConfig {
	return AutoRegConfig{
		MaxIncreasePercent: 5,
		MaxDecreasePercent: 10,
		MinWeight:          45,
		Increment:          2.5,
		Epsilon:            0.1,
	}
}

// AutoRegInput is one completed set plus its context.
type AutoRegInput struct {
	Weight        float64
	Reps          int
	RPE           float64
	TargetRPE     float64
	Difficulty    models.SetDifficulty // explicit flag; empty means derive from RPE deviation
	RecoveryScore float64
	Phase         models.PhaseType // empty when no weekly structure exists
	Pattern       models.MovementPattern
	SetIndex      int
	IsFinalSet    bool
}

// NextSetRecommendation computes a bounded weight recommendation for
// the set after the one just completed. A missing or non-positive
// weight yields a nil-weight recommendation with an explanatory reason,
// never an error.
func NextSetRecommendation(in AutoRegInput, cfg AutoRegConfig) models.AutoRegRecommendation {
	if in.Weight <= 0 {
		return models.AutoRegRecommendation{
			Reason: "no weight recorded for the completed set; nothing to adjust",
		}
	}

	recoveryBias := recoveryBias(in)
	difficultyBias := clamp(difficultyBias(in), -cfg.MaxDecreasePercent, cfg.MaxIncreasePercent)
	totalBias := clamp(recoveryBias+difficultyBias, -cfg.MaxDecreasePercent, cfg.MaxIncreasePercent)

	adjusted := in.Weight * (1 + totalBias/100)
	if in.Phase == models.PhaseDeload && totalBias > 0 {
		// Deload weeks never load up, whatever the performance says.
		adjusted = in.Weight
	}
	if in.IsFinalSet && totalBias > 0 {
		adjusted = math.Min(adjusted, in.Weight*1.025)
	}

	adjusted = math.Max(adjusted, cfg.MinWeight)
	adjusted = math.Round(adjusted/cfg.Increment) * cfg.Increment

	return models.AutoRegRecommendation{
		NextWeight:          &adjusted,
		Reason:              biasReason(totalBias, in),
		PerformanceBoost:    totalBias > 0 && in.RecoveryScore >= 85,
		FatigueDetected:     totalBias < 0 && in.Difficulty == models.DifficultyTooHard,
		AutoDeloadSuggested: in.RecoveryScore < 40 || (in.Phase == models.PhaseDeload && totalBias < 0),
	}
}

// ShouldSuggest reports whether a recommendation is worth surfacing:
// the next set's current weight must differ from the recommendation by
// more than epsilon, otherwise the suggestion is UI noise.
func ShouldSuggest(rec models.AutoRegRecommendation, currentNextWeight float64, cfg AutoRegConfig) bool {
	if rec.NextWeight == nil {
		return false
	}
	return math.Abs(*rec.NextWeight-currentNextWeight) > cfg.Epsilon
}

func recoveryBias(in AutoRegInput) float64 {
	switch {
	case in.Phase == models.PhaseDeload:
		return -5
	case in.RecoveryScore <= 40:
		return -5
	case in.RecoveryScore >= 85 && in.Phase == models.PhaseIntensification:
		return 2.5
	case in.RecoveryScore >= 85 && in.Phase == models.PhaseAccumulation:
		return 1.25
	default:
		return 0
	}
}

// difficultyBias prefers the explicit rating; otherwise it derives one
// from how far the reported RPE landed from the target.
func difficultyBias(in AutoRegInput) float64 {
	switch in.Difficulty {
	case models.DifficultyTooEasy:
		return 2.5
	case models.DifficultyTooHard:
		return -5
	}
	deviation := in.RPE - in.TargetRPE
	switch {
	case deviation <= -2:
		return 2.5
	case deviation >= 2:
		return -5
	case deviation <= -1:
		return 1.25
	case deviation >= 1:
		return -2.5
	default:
		return 0
	}
}

func biasReason(totalBias float64, in AutoRegInput) string {
	switch {
	case totalBias > 0:
		return "set came in easier than prescribed; small load increase"
	case totalBias < 0 && in.Phase == models.PhaseDeload:
		return "deload week: holding load down"
	case totalBias < 0:
		return "set ran harder than prescribed; backing the load off"
	default:
		return "performance on target; holding load"
	}
}
