package session

import (
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/claude/liftwise/internal/engine"
	"github.com/claude/liftwise/internal/models"
	"github.com/google/uuid"
)

var testStart = time.Date(2026, 3, 17, 17, 0, 0, 0, time.UTC)

func testManager() *Manager {
	return NewManager(engine.DefaultAutoRegConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// testPlanDay builds a plan day with a warmup block and a three-set
// strength block. oneRM of zero leaves set weights unfilled.
func testPlanDay(oneRM float64) *models.WorkoutPlanDay {
	return &models.WorkoutPlanDay{
		ID:   uuid.New(),
		Date: testStart,
		Blocks: []models.WorkoutBlock{
			{Kind: models.BlockWarmup, Title: "Warmup", Items: []string{"bike 5 min"}},
			{
				Kind:    models.BlockStrength,
				Title:   "Bench Press",
				Pattern: models.PatternPush,
				Strength: &models.StrengthPrescription{
					ExerciseID: "bench-press",
					Sets: []models.SetPrescription{
						{TargetReps: 5, TargetRPE: 7, TargetPercent1RM: 0.75},
						{TargetReps: 5, TargetRPE: 7, TargetPercent1RM: 0.75},
						{TargetReps: 5, TargetRPE: 7, TargetPercent1RM: 0.75},
					},
					OneRMUsed: oneRM,
				},
			},
		},
	}
}

// TestStartAppliesRecoveryAdjustment verifies that starting a session
// with a low recovery score adjusts the session's copy of the blocks
// while leaving the stored plan day untouched. The adjusted copy is
// what the athlete trains from; the plan stays canonical.
func TestStartAppliesRecoveryAdjustment(t *testing.T) {
	m := testManager()
	plan := testPlanDay(0)

	s := m.Start(plan, 30, models.PhaseAccumulation, testStart)

	if s.Adjustment.Level != "under" {
		t.Fatalf("Adjustment.Level = %q, want under", s.Adjustment.Level)
	}
	got := s.Blocks[1].Strength
	if len(got.Sets) != 2 {
		t.Errorf("adjusted set count = %d, want 2", len(got.Sets))
	}
	for i, set := range got.Sets {
		if set.TargetRPE != 5 {
			t.Errorf("adjusted set %d RPE = %v, want 5", i, set.TargetRPE)
		}
	}
	if len(plan.Blocks[1].Strength.Sets) != 3 {
		t.Errorf("plan day mutated: set count = %d, want 3", len(plan.Blocks[1].Strength.Sets))
	}
	if plan.Blocks[1].Strength.Sets[0].TargetRPE != 7 {
		t.Errorf("plan day mutated: RPE = %v, want 7", plan.Blocks[1].Strength.Sets[0].TargetRPE)
	}
}

// TestStartPrefillsWeights verifies that set weights are prefilled from
// the prescription when a 1RM is known, rounded to the plate increment,
// and left at zero otherwise.
func TestStartPrefillsWeights(t *testing.T) {
	m := testManager()

	s := m.Start(testPlanDay(200), 75, models.PhaseAccumulation, testStart)
	for i, sp := range s.Progress[1].Sets {
		if sp.Weight != 150 {
			t.Errorf("prefilled weight set %d = %v, want 150", i, sp.Weight)
		}
	}

	s = m.Start(testPlanDay(0), 75, models.PhaseAccumulation, testStart)
	for i, sp := range s.Progress[1].Sets {
		if sp.Weight != 0 {
			t.Errorf("weight set %d = %v, want 0 with no 1RM", i, sp.Weight)
		}
	}
}

// TestCompleteSetEmitsEventAndSuggestion verifies the core live loop:
// completing a set that ran two RPE over target records a performance
// event and produces a pending 5% back-off suggestion for the next set.
func TestCompleteSetEmitsEventAndSuggestion(t *testing.T) {
	m := testManager()
	s := m.Start(testPlanDay(0), 75, models.PhaseAccumulation, testStart)

	event, pending, err := m.CompleteSet(s.ID, 1, 0, SetProgress{Weight: 100, Reps: 5, RPE: 9, RestSec: 90})
	if err != nil {
		t.Fatalf("CompleteSet: %v", err)
	}
	if event.Weight != 100 || event.Reps != 5 || event.RPE != 9 || event.TargetRPE != 7 {
		t.Errorf("event = %+v, want weight 100 reps 5 rpe 9 target 7", event)
	}
	if event.Pattern != models.PatternPush {
		t.Errorf("event.Pattern = %q, want push", event.Pattern)
	}
	if pending == nil {
		t.Fatal("expected a pending suggestion")
	}
	if pending.BlockIndex != 1 || pending.SetIndex != 1 {
		t.Errorf("suggestion target = block %d set %d, want block 1 set 1", pending.BlockIndex, pending.SetIndex)
	}
	if pending.Rec.NextWeight == nil || *pending.Rec.NextWeight != 95 {
		t.Errorf("suggested weight = %v, want 95", pending.Rec.NextWeight)
	}
	if !s.Progress[1].Sets[0].Completed {
		t.Error("set 0 not marked completed")
	}
	if len(s.Events) != 1 {
		t.Errorf("event log length = %d, want 1", len(s.Events))
	}
}

// TestEditTargetSetClearsSuggestion verifies that directly editing the
// weight of the set a suggestion targets discards the suggestion. The
// user's explicit choice always wins.
func TestEditTargetSetClearsSuggestion(t *testing.T) {
	m := testManager()
	s := m.Start(testPlanDay(0), 75, models.PhaseAccumulation, testStart)

	if _, pending, _ := m.CompleteSet(s.ID, 1, 0, SetProgress{Weight: 100, Reps: 5, RPE: 9}); pending == nil {
		t.Fatal("expected a pending suggestion")
	}
	if err := m.EditSetWeight(s.ID, 1, 1, 102.5); err != nil {
		t.Fatalf("EditSetWeight: %v", err)
	}
	if s.Pending != nil {
		t.Error("suggestion not cleared after editing its target set")
	}
	if s.Progress[1].Sets[1].Weight != 102.5 {
		t.Errorf("edited weight = %v, want 102.5", s.Progress[1].Sets[1].Weight)
	}

	// Editing an unrelated set leaves a fresh suggestion in place.
	if _, pending, _ := m.CompleteSet(s.ID, 1, 0, SetProgress{Weight: 100, Reps: 5, RPE: 9}); pending == nil {
		t.Fatal("expected a pending suggestion")
	}
	if err := m.EditSetWeight(s.ID, 1, 2, 90); err != nil {
		t.Fatalf("EditSetWeight: %v", err)
	}
	if s.Pending == nil {
		t.Error("suggestion cleared by an edit on a different set")
	}
}

// TestUncompleteClearsSuggestion verifies that un-completing the set
// that produced a suggestion invalidates it, since the performance it
// was based on no longer stands.
func TestUncompleteClearsSuggestion(t *testing.T) {
	m := testManager()
	s := m.Start(testPlanDay(0), 75, models.PhaseAccumulation, testStart)

	if _, pending, _ := m.CompleteSet(s.ID, 1, 0, SetProgress{Weight: 100, Reps: 5, RPE: 9}); pending == nil {
		t.Fatal("expected a pending suggestion")
	}
	if err := m.UncompleteSet(s.ID, 1, 0); err != nil {
		t.Fatalf("UncompleteSet: %v", err)
	}
	if s.Pending != nil {
		t.Error("suggestion not cleared after un-completing its source set")
	}
	if s.Progress[1].Sets[0].Completed {
		t.Error("set still marked completed")
	}
}

// TestApplySuggestion verifies that applying a pending suggestion
// writes the recommended weight into the target set and clears it.
func TestApplySuggestion(t *testing.T) {
	m := testManager()
	s := m.Start(testPlanDay(0), 75, models.PhaseAccumulation, testStart)

	if _, pending, _ := m.CompleteSet(s.ID, 1, 0, SetProgress{Weight: 100, Reps: 5, RPE: 9}); pending == nil {
		t.Fatal("expected a pending suggestion")
	}
	if err := m.ApplySuggestion(s.ID); err != nil {
		t.Fatalf("ApplySuggestion: %v", err)
	}
	if s.Progress[1].Sets[1].Weight != 95 {
		t.Errorf("weight after apply = %v, want 95", s.Progress[1].Sets[1].Weight)
	}
	if s.Pending != nil {
		t.Error("suggestion not cleared after apply")
	}
	if err := m.ApplySuggestion(s.ID); err == nil {
		t.Error("second apply with nothing pending should error")
	}
}

// TestFinishDerivesRecord verifies that finishing a session aggregates
// completed sets into a workout record with per-block volume and
// averages, removes the session, and returns the event log for
// persistence.
func TestFinishDerivesRecord(t *testing.T) {
	m := testManager()
	s := m.Start(testPlanDay(0), 75, models.PhaseAccumulation, testStart)

	for i := 0; i < 2; i++ {
		if _, _, err := m.CompleteSet(s.ID, 1, i, SetProgress{Weight: 100, Reps: 5, RPE: 7, RestSec: 90}); err != nil {
			t.Fatalf("CompleteSet %d: %v", i, err)
		}
	}

	end := testStart.Add(40 * time.Minute)
	rec, events, err := m.Finish(s.ID, end)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("event count = %d, want 2", len(events))
	}
	if rec.PlanDayID != s.PlanDayID {
		t.Errorf("record PlanDayID = %s, want %s", rec.PlanDayID, s.PlanDayID)
	}
	if rec.DurationSec != 2400 {
		t.Errorf("DurationSec = %v, want 2400", rec.DurationSec)
	}
	if len(rec.Blocks) != 1 {
		t.Fatalf("record block count = %d, want 1 (warmup excluded)", len(rec.Blocks))
	}
	b := rec.Blocks[0]
	if b.PrescribedSets != 3 || len(b.CompletedSets) != 2 {
		t.Errorf("prescribed/completed = %d/%d, want 3/2", b.PrescribedSets, len(b.CompletedSets))
	}
	if b.Volume != 1000 || rec.TotalVolume != 1000 {
		t.Errorf("volume = %v/%v, want 1000", b.Volume, rec.TotalVolume)
	}
	if rec.AvgRPE != 7 || rec.AvgRestSec != 90 {
		t.Errorf("avg RPE/rest = %v/%v, want 7/90", rec.AvgRPE, rec.AvgRestSec)
	}
	if rec.IntensityScore != 70 {
		t.Errorf("IntensityScore = %v, want 70", rec.IntensityScore)
	}
	// 1000 volume over 40 minutes against the 300/min reference.
	wantDensity := 1000.0 / 40 / 300 * 100
	if math.Abs(rec.DensityScore-wantDensity) > 1e-9 {
		t.Errorf("DensityScore = %v, want %v", rec.DensityScore, wantDensity)
	}

	if _, err := m.Get(s.ID); err == nil {
		t.Error("session still retrievable after finish")
	}
}

// TestCancelDiscards verifies that cancelling a session removes it
// without producing a record, and that a second cancel errors.
func TestCancelDiscards(t *testing.T) {
	m := testManager()
	s := m.Start(testPlanDay(0), 75, models.PhaseAccumulation, testStart)

	if _, _, err := m.CompleteSet(s.ID, 1, 0, SetProgress{Weight: 100, Reps: 5, RPE: 7}); err != nil {
		t.Fatalf("CompleteSet: %v", err)
	}
	if err := m.Cancel(s.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := m.Get(s.ID); err == nil {
		t.Error("session still retrievable after cancel")
	}
	if err := m.Cancel(s.ID); err == nil {
		t.Error("second cancel should error")
	}
	if _, _, err := m.Finish(s.ID, testStart); err == nil {
		t.Error("finish after cancel should error")
	}
}

// TestCompleteSetIndexValidation verifies the error paths: unknown
// session, non-strength block, and out-of-range indexes.
func TestCompleteSetIndexValidation(t *testing.T) {
	m := testManager()
	s := m.Start(testPlanDay(0), 75, models.PhaseAccumulation, testStart)

	if _, _, err := m.CompleteSet(uuid.New(), 1, 0, SetProgress{}); err == nil {
		t.Error("unknown session should error")
	}
	if _, _, err := m.CompleteSet(s.ID, 0, 0, SetProgress{}); err == nil {
		t.Error("completing a set on a warmup block should error")
	}
	if _, _, err := m.CompleteSet(s.ID, 5, 0, SetProgress{}); err == nil {
		t.Error("block index out of range should error")
	}
	if _, _, err := m.CompleteSet(s.ID, 1, 3, SetProgress{}); err == nil {
		t.Error("set index out of range should error")
	}
}
