package engine

import (
	"testing"
	"time"

	"github.com/claude/liftwise/internal/models"
)

var testNow = time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

// record builds a minimal workout record n days before testNow.
func record(daysAgo int, volume float64, blocks ...models.BlockSummary) models.WorkoutRecord {
	return models.WorkoutRecord{
		Date:        testNow.AddDate(0, 0, -daysAgo),
		TotalVolume: volume,
		Blocks:      blocks,
	}
}

// TestRecoveryScoreEmptyHistory verifies the fully-fresh default: an
// empty history must yield exactly 100 with a zeroed breakdown.
func TestRecoveryScoreEmptyHistory(t *testing.T) {
	got := RecoveryScore(nil, testNow)
	if got.Score != 100 {
		t.Errorf("score = %v, want 100", got.Score)
	}
	if got.Category != models.ReadinessHigh {
		t.Errorf("category = %v, want high", got.Category)
	}
	if got.Breakdown.ACWRFatigue != 0 || got.Breakdown.IntensityFatigue != 0 || got.Breakdown.RestFatigue != 0 {
		t.Errorf("breakdown not zeroed: %+v", got.Breakdown)
	}
}

// TestRecoveryScoreRange verifies the score stays in [0,100] for
// histories from trivial to absurdly heavy.
func TestRecoveryScoreRange(t *testing.T) {
	histories := [][]models.WorkoutRecord{
		{record(0, 100)},
		{record(0, 500000), record(1, 500000), record(2, 500000)},
		{record(30, 10000), record(20, 10000), record(1, 40000)},
	}
	for i, h := range histories {
		got := RecoveryScore(h, testNow)
		if got.Score < 0 || got.Score > 100 {
			t.Errorf("history %d: score = %v, want within [0,100]", i, got.Score)
		}
	}
}

// TestAcuteLoadWindow verifies that only the last 7 days count: a
// session 8 days ago contributes nothing.
func TestAcuteLoadWindow(t *testing.T) {
	if got := AcuteLoad([]models.WorkoutRecord{record(8, 20000)}, testNow); got != 0 {
		t.Errorf("acute load with 8-day-old workout = %v, want 0", got)
	}
	if got := AcuteLoad([]models.WorkoutRecord{record(3, 20000)}, testNow); got == 0 {
		t.Error("acute load with 3-day-old workout = 0, want > 0")
	}
}

// TestChronicLoadExcludesAcuteWindow verifies the chronic baseline
// covers days 7-34 ago and explicitly excludes the acute window.
func TestChronicLoadExcludesAcuteWindow(t *testing.T) {
	if got := ChronicLoad([]models.WorkoutRecord{record(3, 20000)}, testNow); got != 0 {
		t.Errorf("chronic load with 3-day-old workout = %v, want 0", got)
	}
	if got := ChronicLoad([]models.WorkoutRecord{record(14, 20000)}, testNow); got == 0 {
		t.Error("chronic load with 14-day-old workout = 0, want > 0")
	}
	if got := ChronicLoad([]models.WorkoutRecord{record(40, 20000)}, testNow); got != 0 {
		t.Errorf("chronic load with 40-day-old workout = %v, want 0", got)
	}
}

// TestACWRFatigueNoBaseline verifies that a chronic load under 1 is
// treated as "no baseline" and scores 0, not a division blow-up.
func TestACWRFatigueNoBaseline(t *testing.T) {
	if got := ACWRFatigue(50, 0.5); got != 0 {
		t.Errorf("fatigue with no baseline = %v, want 0", got)
	}
}

// TestACWRFatigueScale verifies the linear rescale: a 1.0 ratio lands
// at 25 and the clamped extremes land at 0 and 100.
func TestACWRFatigueScale(t *testing.T) {
	cases := []struct {
		acute, chronic, want float64
	}{
		{25, 25, 25},   // ratio 1.0
		{10, 25, 0},    // ratio 0.4, clamped to 0.5
		{100, 25, 100}, // ratio 4.0, clamped to 2.5
	}
	for _, c := range cases {
		if got := ACWRFatigue(c.acute, c.chronic); got != c.want {
			t.Errorf("ACWRFatigue(%v, %v) = %v, want %v", c.acute, c.chronic, got, c.want)
		}
	}
}

// TestMovementPatternFatigueKeywordFallback verifies that untagged
// blocks are classified by title keywords and scored per pattern.
func TestMovementPatternFatigueKeywordFallback(t *testing.T) {
	history := []models.WorkoutRecord{
		record(1, 12000, models.BlockSummary{Title: "Back Squat 5x5", Volume: 10000}),
		record(3, 12000, models.BlockSummary{Title: "Back Squat 5x5", Volume: 10000}),
	}
	got := MovementPatternFatigue(history)
	if got[models.PatternSquat] == 0 {
		t.Error("squat fatigue = 0, want > 0 from keyword-matched blocks")
	}
	if got[models.PatternPull] != 0 {
		t.Errorf("pull fatigue = %v, want 0 with no pull blocks", got[models.PatternPull])
	}
}

// TestMovementPatternFatigueSampleLimit verifies that only the three
// most recent matching workouts contribute.
func TestMovementPatternFatigueSampleLimit(t *testing.T) {
	heavy := models.BlockSummary{Pattern: models.PatternHinge, Title: "Deadlift", Volume: 20000}
	light := models.BlockSummary{Pattern: models.PatternHinge, Title: "Deadlift", Volume: 100}
	history := []models.WorkoutRecord{
		record(1, 0, light), record(2, 0, light), record(3, 0, light),
		record(10, 0, heavy), // outside the 3-workout sample
	}
	got := MovementPatternFatigue(history)
	// Three light sessions: volume score ~0.5 each, no intensity.
	if got[models.PatternHinge] > 5 {
		t.Errorf("hinge fatigue = %v, want small (old heavy session excluded)", got[models.PatternHinge])
	}
}

// TestRestFatigueMapping verifies the linear 60s->0, 180s->100 mapping
// with clamping at both ends.
func TestRestFatigueMapping(t *testing.T) {
	cases := []struct {
		rest, want float64
	}{
		{60, 0}, {120, 50}, {180, 100}, {30, 0}, {300, 100},
	}
	for _, c := range cases {
		h := []models.WorkoutRecord{{Date: testNow, AvgRestSec: c.rest}}
		if got := RestFatigue(h); got != c.want {
			t.Errorf("RestFatigue(avg %vs) = %v, want %v", c.rest, got, c.want)
		}
	}
}

// TestIntensityFatigueBlend verifies the 50/50 blend of RPE and
// density score.
func TestIntensityFatigueBlend(t *testing.T) {
	h := []models.WorkoutRecord{{Date: testNow, AvgRPE: 10, DensityScore: 100}}
	if got := IntensityFatigue(h); got != 100 {
		t.Errorf("max-effort intensity fatigue = %v, want 100", got)
	}
	h = []models.WorkoutRecord{{Date: testNow, AvgRPE: 5, DensityScore: 0}}
	if got := IntensityFatigue(h); got != 25 {
		t.Errorf("intensity fatigue = %v, want 25", got)
	}
}

// TestClassifyReadiness verifies the band edges and the nil default.
func TestClassifyReadiness(t *testing.T) {
	cases := []struct {
		score float64
		want  models.ReadinessCategory
	}{
		{0, models.ReadinessLow},
		{39.9, models.ReadinessLow},
		{40, models.ReadinessModerate},
		{69.9, models.ReadinessModerate},
		{70, models.ReadinessHigh},
		{100, models.ReadinessHigh},
	}
	for _, c := range cases {
		s := c.score
		if got := ClassifyReadiness(&s); got != c.want {
			t.Errorf("ClassifyReadiness(%v) = %v, want %v", c.score, got, c.want)
		}
	}
	if got := ClassifyReadiness(nil); got != models.ReadinessModerate {
		t.Errorf("ClassifyReadiness(nil) = %v, want moderate", got)
	}
}
