package models

import (
	"testing"
	"time"
)

// TestWeekStart verifies Monday-anchored week starts across a full week
// and a year boundary.
func TestWeekStart(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"monday maps to itself", time.Date(2026, 3, 16, 15, 30, 0, 0, time.UTC), "2026-03-16"},
		{"wednesday", time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), "2026-03-16"},
		{"sunday maps to preceding monday", time.Date(2026, 3, 22, 23, 59, 0, 0, time.UTC), "2026-03-16"},
		{"year boundary", time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), "2025-12-29"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := WeekStart(tc.in)
			if got.Format("2006-01-02") != tc.want {
				t.Errorf("WeekStart(%v) = %s, want %s", tc.in, got.Format("2006-01-02"), tc.want)
			}
			if got.Hour() != 0 || got.Minute() != 0 {
				t.Errorf("WeekStart(%v) not at midnight: %v", tc.in, got)
			}
		})
	}
}

// TestTargetLevelSteps verifies the step functions saturate at the bounds.
func TestTargetLevelSteps(t *testing.T) {
	if got := TargetLow.StepUp(); got != TargetMedium {
		t.Errorf("low.StepUp() = %s, want medium", got)
	}
	if got := TargetHigh.StepUp(); got != TargetHigh {
		t.Errorf("high.StepUp() = %s, want high", got)
	}
	if got := TargetHigh.StepDown(); got != TargetMedium {
		t.Errorf("high.StepDown() = %s, want medium", got)
	}
	if got := TargetLow.StepDown(); got != TargetLow {
		t.Errorf("low.StepDown() = %s, want low", got)
	}
}

// TestHasEquipment verifies the equipment check, including the
// bodyweight case of no requirements.
func TestHasEquipment(t *testing.T) {
	p := UserPreferences{EquipmentIDs: []string{"barbell", "rack"}}

	if !p.HasEquipment(nil) {
		t.Error("no requirements should always pass")
	}
	if !p.HasEquipment([]string{"barbell"}) {
		t.Error("owned equipment should pass")
	}
	if p.HasEquipment([]string{"barbell", "cable"}) {
		t.Error("missing one required item should fail")
	}
}

// TestFatigueForPattern verifies per-pattern lookup and the zero value
// for untracked patterns.
func TestFatigueForPattern(t *testing.T) {
	f := FatigueAnalysis{Squat: 80, Hinge: 60, Push: 40, Pull: 20}

	cases := []struct {
		pattern MovementPattern
		want    float64
	}{
		{PatternSquat, 80},
		{PatternHinge, 60},
		{PatternPush, 40},
		{PatternPull, 20},
		{PatternCarry, 0},
	}
	for _, tc := range cases {
		if got := f.ForPattern(tc.pattern); got != tc.want {
			t.Errorf("ForPattern(%s) = %f, want %f", tc.pattern, got, tc.want)
		}
	}
}

// TestStrengthBlock verifies the accessor finds the strength block and
// returns nil when a day has none.
func TestStrengthBlock(t *testing.T) {
	day := WorkoutPlanDay{Blocks: []WorkoutBlock{
		{Kind: BlockWarmup, Title: "Warmup"},
		{Kind: BlockStrength, Title: "Bench Press", Strength: &StrengthPrescription{ExerciseID: "bench-press"}},
	}}
	b := day.StrengthBlock()
	if b == nil {
		t.Fatal("expected strength block")
	}
	if b.Strength.ExerciseID != "bench-press" {
		t.Errorf("exercise = %q, want bench-press", b.Strength.ExerciseID)
	}

	restDay := WorkoutPlanDay{Blocks: []WorkoutBlock{{Kind: BlockConditioning}}}
	if restDay.StrengthBlock() != nil {
		t.Error("expected nil for a day without strength work")
	}
}
