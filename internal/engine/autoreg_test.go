package engine

import (
	"math"
	"testing"

	"github.com/claude/liftwise/internal/models"
)

// TestNextSetRecommendationHardSet verifies the reference case: a set
// at RPE 10 against a target of 8 with neutral recovery and no phase
// context backs off exactly 5%, landing on 95 from 100.
func TestNextSetRecommendationHardSet(t *testing.T) {
	rec := NextSetRecommendation(AutoRegInput{
		Weight: 100, Reps: 5, RPE: 10, TargetRPE: 8, RecoveryScore: 50,
	}, DefaultAutoRegConfig())

	if rec.NextWeight == nil {
		t.Fatal("nil recommendation, want 95")
	}
	if *rec.NextWeight != 95 {
		t.Errorf("next weight = %v, want 95", *rec.NextWeight)
	}
}

// TestNextSetRecommendationMissingWeight verifies missing input resolves
// to a nil recommendation with a reason, never an error or a zero weight.
func TestNextSetRecommendationMissingWeight(t *testing.T) {
	rec := NextSetRecommendation(AutoRegInput{Weight: 0, RPE: 8, TargetRPE: 8}, DefaultAutoRegConfig())
	if rec.NextWeight != nil {
		t.Errorf("next weight = %v, want nil", *rec.NextWeight)
	}
	if rec.Reason == "" {
		t.Error("missing-weight recommendation carries no reason")
	}
}

// TestNextSetRecommendationRoundingAndFloor verifies every emitted
// weight is a multiple of the increment and at least the floor.
func TestNextSetRecommendationRoundingAndFloor(t *testing.T) {
	cfg := DefaultAutoRegConfig()
	inputs := []AutoRegInput{
		{Weight: 47.5, RPE: 10, TargetRPE: 8, RecoveryScore: 30},
		{Weight: 101, RPE: 6, TargetRPE: 8, RecoveryScore: 90, Phase: models.PhaseIntensification},
		{Weight: 46, RPE: 10, TargetRPE: 7, RecoveryScore: 20},
		{Weight: 225, RPE: 8, TargetRPE: 8, RecoveryScore: 60},
	}
	for i, in := range inputs {
		rec := NextSetRecommendation(in, cfg)
		if rec.NextWeight == nil {
			t.Fatalf("case %d: nil recommendation", i)
		}
		w := *rec.NextWeight
		if w < cfg.MinWeight {
			t.Errorf("case %d: weight %v below floor %v", i, w, cfg.MinWeight)
		}
		if r := math.Mod(w, cfg.Increment); math.Abs(r) > 1e-9 && math.Abs(r-cfg.Increment) > 1e-9 {
			t.Errorf("case %d: weight %v not a multiple of %v", i, w, cfg.Increment)
		}
	}
}

// TestNextSetRecommendationDeloadNeverIncreases verifies positive bias
// is cancelled on deload weeks: next weight never exceeds base weight.
func TestNextSetRecommendationDeloadNeverIncreases(t *testing.T) {
	rec := NextSetRecommendation(AutoRegInput{
		Weight: 100, RPE: 5, TargetRPE: 8, RecoveryScore: 95, Phase: models.PhaseDeload,
	}, DefaultAutoRegConfig())
	if rec.NextWeight == nil {
		t.Fatal("nil recommendation")
	}
	if *rec.NextWeight > 100 {
		t.Errorf("deload next weight = %v, exceeds base 100", *rec.NextWeight)
	}
}

// TestNextSetRecommendationFinalSetCap verifies a positive adjustment
// on the final set is capped at 2.5%.
func TestNextSetRecommendationFinalSetCap(t *testing.T) {
	rec := NextSetRecommendation(AutoRegInput{
		Weight: 200, RPE: 5, TargetRPE: 8, RecoveryScore: 90,
		Phase: models.PhaseIntensification, IsFinalSet: true,
	}, DefaultAutoRegConfig())
	if rec.NextWeight == nil {
		t.Fatal("nil recommendation")
	}
	if *rec.NextWeight > 205 {
		t.Errorf("final-set next weight = %v, want at most 205 (+2.5%%)", *rec.NextWeight)
	}
}

// TestNextSetRecommendationExplicitDifficultyWins verifies an explicit
// difficulty flag overrides the RPE-deviation derivation.
func TestNextSetRecommendationExplicitDifficultyWins(t *testing.T) {
	// RPE deviation says too easy, flag says too hard; flag wins.
	rec := NextSetRecommendation(AutoRegInput{
		Weight: 100, RPE: 5, TargetRPE: 8, RecoveryScore: 50,
		Difficulty: models.DifficultyTooHard,
	}, DefaultAutoRegConfig())
	if rec.NextWeight == nil {
		t.Fatal("nil recommendation")
	}
	if *rec.NextWeight != 95 {
		t.Errorf("next weight = %v, want 95 from the explicit too_hard flag", *rec.NextWeight)
	}
}

// TestNextSetRecommendationFlags verifies the derived flags: an
// under-recovered athlete gets an auto-deload suggestion, and a hot
// performance on high recovery flags a boost.
func TestNextSetRecommendationFlags(t *testing.T) {
	rec := NextSetRecommendation(AutoRegInput{
		Weight: 100, RPE: 10, TargetRPE: 8, RecoveryScore: 30,
		Difficulty: models.DifficultyTooHard,
	}, DefaultAutoRegConfig())
	if !rec.AutoDeloadSuggested {
		t.Error("recovery 30: auto-deload not suggested")
	}
	if !rec.FatigueDetected {
		t.Error("negative bias on too_hard: fatigue not detected")
	}

	rec = NextSetRecommendation(AutoRegInput{
		Weight: 100, RPE: 6, TargetRPE: 8, RecoveryScore: 90, Phase: models.PhaseAccumulation,
	}, DefaultAutoRegConfig())
	if !rec.PerformanceBoost {
		t.Error("positive bias at recovery 90: performance boost not flagged")
	}
}

// TestShouldSuggest verifies the epsilon filter that suppresses
// redundant suggestions.
func TestShouldSuggest(t *testing.T) {
	cfg := DefaultAutoRegConfig()
	w := 95.0
	rec := models.AutoRegRecommendation{NextWeight: &w}
	if ShouldSuggest(rec, 95.05, cfg) {
		t.Error("suggestion within epsilon should be suppressed")
	}
	if !ShouldSuggest(rec, 100, cfg) {
		t.Error("meaningful difference should surface a suggestion")
	}
	if ShouldSuggest(models.AutoRegRecommendation{}, 100, cfg) {
		t.Error("nil-weight recommendation should never surface")
	}
}
