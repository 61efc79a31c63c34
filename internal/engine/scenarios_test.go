package engine

import (
	"testing"

	"github.com/claude/liftwise/internal/catalog"
	"github.com/claude/liftwise/internal/models"
)

// TestScenarioFreshAthlete runs the pipeline for an athlete with no
// history and high readiness over 5 training days: the phase must be a
// building phase (never deload) and at least one day must push a target
// to high.
func TestScenarioFreshAthlete(t *testing.T) {
	fatigue := AnalyzeFatigue(nil, testNow)
	if fatigue.ACWRZone != models.ZoneUnder {
		t.Fatalf("empty history zone = %v, want under", fatigue.ACWRZone)
	}

	readiness := readinessAt(82)
	phase := InferBlockType(readiness, fatigue, testWeekStart)
	if phase == models.PhaseDeload {
		t.Fatalf("fresh athlete phase = deload, want a building phase")
	}

	ws := BuildWeeklyStructure(readiness, fatigue, 5, testWeekStart, phase)
	if len(ws.Days) != 5 {
		t.Errorf("days = %d, want 5", len(ws.Days))
	}
	found := false
	for _, d := range ws.Days {
		if d.VolumeTarget == models.TargetHigh || d.IntensityTarget == models.TargetHigh {
			found = true
		}
	}
	if !found {
		t.Error("no high-target day for a fresh high-readiness athlete")
	}
}

// TestScenarioPoorRecovery runs the pipeline at recovery 28: the phase
// must be deload, no generated day may carry a high target, and a
// strength prescription must land at 2 sets with RPE in [5,6].
func TestScenarioPoorRecovery(t *testing.T) {
	readiness := readinessAt(28)
	fatigue := models.FatigueAnalysis{ACWRZone: models.ZoneOptimal, ACWRValue: 1.0}

	phase := InferBlockType(readiness, fatigue, testWeekStart)
	if phase != models.PhaseDeload {
		t.Fatalf("phase = %v, want deload at recovery 28", phase)
	}

	ws := BuildWeeklyStructure(readiness, fatigue, 4, testWeekStart, phase)
	for i, d := range ws.Days {
		if d.VolumeTarget == models.TargetHigh || d.IntensityTarget == models.TargetHigh {
			t.Errorf("day %d has a high target on a deload week", i)
		}
	}

	plan := GenerateWorkoutDay(testPrefs(), testDate, 0, &ws.Days[0], catalog.Default(), 1)
	sb := plan.StrengthBlock()
	if sb == nil || sb.Strength == nil {
		t.Fatal("no strength prescription")
	}
	if len(sb.Strength.Sets) != 2 {
		t.Errorf("sets = %d, want 2 on deload", len(sb.Strength.Sets))
	}
	for _, s := range sb.Strength.Sets {
		if s.TargetRPE < 5 || s.TargetRPE > 6 {
			t.Errorf("RPE = %v, want within [5,6]", s.TargetRPE)
		}
	}
}

// TestScenarioAcuteSpike simulates a 7-day volume spike (~3600/day)
// over a ~1250 chronic baseline: the ratio must land at or above 1.2,
// the zone at high, and the inferred phase at deload regardless of the
// week's cycle position.
func TestScenarioAcuteSpike(t *testing.T) {
	var history []models.WorkoutRecord
	for i := 0; i < 7; i++ {
		history = append(history, record(i, 3600))
	}
	for i := 7; i <= 34; i += 2 {
		history = append(history, record(i, 1250))
	}

	fatigue := AnalyzeFatigue(history, testNow)
	if fatigue.ACWRValue < 1.2 {
		t.Fatalf("ACWR = %v, want >= 1.2", fatigue.ACWRValue)
	}
	if fatigue.ACWRZone != models.ZoneHigh {
		t.Fatalf("zone = %v, want high", fatigue.ACWRZone)
	}

	start := testWeekStart
	for i := 0; i < 4; i++ {
		week := start.AddDate(0, 0, 7*i)
		if got := InferBlockType(readinessAt(75), fatigue, week); got != models.PhaseDeload {
			t.Errorf("week %v: phase = %v, want deload under acute spike", week, got)
		}
	}
}
