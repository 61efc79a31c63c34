package engine

import (
	"testing"
	"time"

	"github.com/claude/liftwise/internal/catalog"
	"github.com/claude/liftwise/internal/models"
)

var testDate = time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)

func testPrefs() models.UserPreferences {
	p := models.DefaultPreferences()
	p.EquipmentIDs = []string{"barbell", "rack", "bench", "dumbbell", "rower"}
	return p
}

func structureDay(pattern models.MovementPattern, phase models.PhaseType, vol, intens models.TargetLevel, protected bool) *models.WeeklyDayStructure {
	return &models.WeeklyDayStructure{
		DateISO:            testDate.Format("2006-01-02"),
		MainPattern:        pattern,
		VolumeTarget:       vol,
		IntensityTarget:    intens,
		ConditioningTarget: models.ConditioningMixed,
		Phase:              phase,
		FatigueProtected:   protected,
	}
}

// TestGenerateWorkoutDayBlockOrder verifies the fixed assembly order:
// warmup, strength, accessory, conditioning, cooldown.
func TestGenerateWorkoutDayBlockOrder(t *testing.T) {
	day := structureDay(models.PatternSquat, models.PhaseAccumulation, models.TargetMedium, models.TargetMedium, false)
	plan := GenerateWorkoutDay(testPrefs(), testDate, 0, day, catalog.Default(), 1)

	var kinds []models.BlockKind
	for _, b := range plan.Blocks {
		kinds = append(kinds, b.Kind)
	}
	want := []models.BlockKind{models.BlockWarmup, models.BlockStrength, models.BlockAccessory, models.BlockConditioning, models.BlockCooldown}
	if len(kinds) != len(want) {
		t.Fatalf("block kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("block %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

// TestGenerateWorkoutDayFatigueProtected verifies the protection rules:
// no accessory block, sets clamped to [2,3], RPE clamped to [5,6].
func TestGenerateWorkoutDayFatigueProtected(t *testing.T) {
	day := structureDay(models.PatternHinge, models.PhaseAccumulation, models.TargetMedium, models.TargetMedium, true)
	plan := GenerateWorkoutDay(testPrefs(), testDate, 1, day, catalog.Default(), 1)

	for _, b := range plan.Blocks {
		if b.Kind == models.BlockAccessory {
			t.Error("fatigue-protected day has an accessory block")
		}
	}
	sb := plan.StrengthBlock()
	if sb == nil || sb.Strength == nil {
		t.Fatal("no strength prescription generated")
	}
	if n := len(sb.Strength.Sets); n < 2 || n > 3 {
		t.Errorf("sets = %d, want within [2,3]", n)
	}
	for _, s := range sb.Strength.Sets {
		if s.TargetRPE < 5 || s.TargetRPE > 6 {
			t.Errorf("set RPE = %v, want within [5,6]", s.TargetRPE)
		}
	}
}

// TestGenerateWorkoutDayDeload verifies the deload hard override:
// exactly 2 sets, RPE within [5,6], percent within [0.5,0.7].
func TestGenerateWorkoutDayDeload(t *testing.T) {
	day := structureDay(models.PatternSquat, models.PhaseDeload, models.TargetLow, models.TargetLow, false)
	plan := GenerateWorkoutDay(testPrefs(), testDate, 2, day, catalog.Default(), 1)

	sb := plan.StrengthBlock()
	if sb == nil || sb.Strength == nil {
		t.Fatal("no strength prescription generated")
	}
	if n := len(sb.Strength.Sets); n != 2 {
		t.Errorf("sets = %d, want 2", n)
	}
	for _, s := range sb.Strength.Sets {
		if s.TargetRPE < 5 || s.TargetRPE > 6 {
			t.Errorf("set RPE = %v, want within [5,6]", s.TargetRPE)
		}
		if s.TargetPercent1RM < 0.5 || s.TargetPercent1RM > 0.7 {
			t.Errorf("percent = %v, want within [0.5,0.7]", s.TargetPercent1RM)
		}
	}
}

// TestGenerateWorkoutDayDeterministic verifies exercise selection is a
// pure function of dayIndex: regenerating the same day picks the same
// exercise.
func TestGenerateWorkoutDayDeterministic(t *testing.T) {
	day := structureDay(models.PatternPush, models.PhaseAccumulation, models.TargetMedium, models.TargetMedium, false)
	a := GenerateWorkoutDay(testPrefs(), testDate, 2, day, catalog.Default(), 1)
	b := GenerateWorkoutDay(testPrefs(), testDate, 2, day, catalog.Default(), 1)

	sa, sb := a.StrengthBlock(), b.StrengthBlock()
	if sa.Strength.ExerciseID != sb.Strength.ExerciseID {
		t.Errorf("same dayIndex picked %q then %q", sa.Strength.ExerciseID, sb.Strength.ExerciseID)
	}
}

// TestGenerateWorkoutDayNoEquipmentSentinel verifies the explicit
// no-exercise sentinel: with no equipment at all, the strength block is
// emitted with a nil prescription and no accessory block follows.
func TestGenerateWorkoutDayNoEquipmentSentinel(t *testing.T) {
	prefs := testPrefs()
	prefs.EquipmentIDs = nil
	day := structureDay(models.PatternSquat, models.PhaseAccumulation, models.TargetMedium, models.TargetMedium, false)
	plan := GenerateWorkoutDay(prefs, testDate, 0, day, catalog.Default(), 1)

	sb := plan.StrengthBlock()
	if sb == nil {
		t.Fatal("strength block missing entirely; want a nil-prescription sentinel")
	}
	if sb.Strength != nil {
		t.Errorf("strength prescription = %+v, want nil sentinel", sb.Strength)
	}
	for _, b := range plan.Blocks {
		if b.Kind == models.BlockAccessory {
			t.Error("accessory block present with no strength main")
		}
	}
}

// TestGenerateWorkoutDayPatternFallback verifies the biomechanical
// fallback chain: with no squat-capable equipment but a trap bar, a
// squat day falls back to the hinge family.
func TestGenerateWorkoutDayPatternFallback(t *testing.T) {
	prefs := testPrefs()
	prefs.EquipmentIDs = []string{"trap-bar"}
	day := structureDay(models.PatternSquat, models.PhaseAccumulation, models.TargetMedium, models.TargetMedium, false)
	plan := GenerateWorkoutDay(prefs, testDate, 0, day, catalog.Default(), 1)

	sb := plan.StrengthBlock()
	if sb == nil || sb.Strength == nil {
		t.Fatal("no strength prescription from fallback chain")
	}
	if sb.Strength.ExerciseID != "trap-bar-deadlift" {
		t.Errorf("fallback picked %q, want trap-bar-deadlift", sb.Strength.ExerciseID)
	}
}

// TestGenerateWorkoutDayConditioningMode verifies equipment-priority
// modality selection: a rower wins over running.
func TestGenerateWorkoutDayConditioningMode(t *testing.T) {
	day := structureDay(models.PatternSquat, models.PhaseAccumulation, models.TargetMedium, models.TargetMedium, false)
	plan := GenerateWorkoutDay(testPrefs(), testDate, 0, day, catalog.Default(), 1)
	for _, b := range plan.Blocks {
		if b.Kind == models.BlockConditioning {
			if b.Conditioning.Mode != "row" {
				t.Errorf("mode = %q, want row", b.Conditioning.Mode)
			}
			return
		}
	}
	t.Error("no conditioning block on a day with a conditioning target")
}

// TestGenerateWorkoutDayConditioningDay verifies a dedicated
// conditioning day skips strength and accessory work entirely.
func TestGenerateWorkoutDayConditioningDay(t *testing.T) {
	day := structureDay(models.PatternCond, models.PhaseAccumulation, models.TargetMedium, models.TargetMedium, false)
	day.ConditioningTarget = models.ConditioningIntensity
	plan := GenerateWorkoutDay(testPrefs(), testDate, 4, day, catalog.Default(), 1)

	for _, b := range plan.Blocks {
		if b.Kind == models.BlockStrength || b.Kind == models.BlockAccessory {
			t.Errorf("conditioning day contains %v block", b.Kind)
		}
	}
}

// TestGenerateWorkoutDayGoalHeuristics verifies the raw-parameter
// fallback path: without a weekly structure, conditioning inclusion
// follows the goal heuristics.
func TestGenerateWorkoutDayGoalHeuristics(t *testing.T) {
	prefs := testPrefs()
	prefs.Goal = models.GoalStrength

	hasConditioning := func(plan models.WorkoutPlanDay) bool {
		for _, b := range plan.Blocks {
			if b.Kind == models.BlockConditioning {
				return true
			}
		}
		return false
	}

	if hasConditioning(GenerateWorkoutDay(prefs, testDate, 0, nil, catalog.Default(), 1)) {
		t.Error("strength goal day 0 includes conditioning")
	}
	if !hasConditioning(GenerateWorkoutDay(prefs, testDate, 3, nil, catalog.Default(), 1)) {
		t.Error("strength goal day 3 missing conditioning")
	}
}
