package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/claude/liftwise/internal/catalog"
	"github.com/claude/liftwise/internal/engine"
	"github.com/claude/liftwise/internal/localstore"
	"github.com/claude/liftwise/internal/models"
	"github.com/claude/liftwise/internal/session"
	"github.com/google/uuid"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// liftwise-sim runs the planning and session pipeline offline over a
// number of simulated training weeks, persisting to a local SQLite
// store. Each week it generates the structure and daily workouts,
// performs every set with noisy RPEs, and verifies the invariants the
// engine promises. Exits non-zero on any violation.
func main() {
	weeks := flag.Int("weeks", 8, "number of weeks to simulate")
	stateDir := flag.String("state", "", "state directory (default: temporary, removed on exit)")
	seed := flag.Int64("seed", 1, "random seed for simulated performance")
	startStr := flag.String("start", "", "first week's Monday (YYYY-MM-DD, default: current week)")
	scenario := flag.String("scenario", "fresh", "starting history: fresh, steady, or spike")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftwise-sim", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	dir := *stateDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "liftwise-sim-*")
		if err != nil {
			log.Error("failed to create state directory", "error", err)
			os.Exit(1)
		}
		defer os.RemoveAll(tmp)
		dir = tmp
	}

	store, err := localstore.Open(dir)
	if err != nil {
		log.Error("failed to open local store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	start := models.WeekStart(time.Now().UTC())
	if *startStr != "" {
		t, err := time.Parse("2006-01-02", *startStr)
		if err != nil {
			log.Error("invalid -start date", "error", err)
			os.Exit(1)
		}
		start = models.WeekStart(t)
	}

	sim := &simulator{
		store: store,
		cat:   catalog.Default(),
		mgr:   session.NewManager(engine.DefaultAutoRegConfig(), log),
		rng:   rand.New(rand.NewSource(*seed)),
		log:   log,
		prefs: simPreferences(),
	}

	if err := sim.seedScenario(*scenario, start); err != nil {
		log.Error("scenario seed failed", "scenario", *scenario, "error", err)
		os.Exit(1)
	}

	log.Info("simulation starting",
		"weeks", *weeks,
		"start", start.Format("2006-01-02"),
		"scenario", *scenario,
		"seed", *seed)

	phases := map[models.PhaseType]int{}
	for w := 0; w < *weeks; w++ {
		weekStart := start.AddDate(0, 0, 7*w)
		ws := sim.runWeek(weekStart)
		phases[ws.Phase]++
		if w == 0 && *scenario == "spike" && ws.Phase != models.PhaseDeload {
			sim.fail("spike scenario: first week phase %s, want deload", ws.Phase)
		}
	}

	count, err := store.WeekCount()
	if err != nil {
		log.Error("week count failed", "error", err)
		os.Exit(1)
	}

	log.Info("simulation finished",
		"weeks_stored", count,
		"workouts", sim.workouts,
		"total_volume", fmt.Sprintf("%.0f", sim.totalVolume),
		"suggestions", sim.suggestions,
		"phases", fmt.Sprintf("%v", phases),
		"failures", sim.failures)

	if sim.failures > 0 {
		os.Exit(1)
	}
}

type simulator struct {
	store *localstore.Store
	cat   *catalog.Catalog
	mgr   *session.Manager
	rng   *rand.Rand
	log   *slog.Logger
	prefs models.UserPreferences

	workouts    int
	totalVolume float64
	suggestions int
	failures    int
}

// seedScenario pre-populates the history store so the first simulated
// week starts from a known analytics state. "fresh" is empty history,
// "steady" a balanced ~1250/day baseline, "spike" that baseline with a
// 7-day ~3600/day overload on top.
func (s *simulator) seedScenario(name string, start time.Time) error {
	var daily func(daysAgo int) float64
	switch name {
	case "fresh":
		return nil
	case "steady":
		daily = func(int) float64 { return 1250 }
	case "spike":
		daily = func(daysAgo int) float64 {
			if daysAgo <= 7 {
				return 3600
			}
			return 1250
		}
	default:
		return fmt.Errorf("unknown scenario %q", name)
	}

	patterns := []models.MovementPattern{
		models.PatternSquat, models.PatternHinge, models.PatternPush, models.PatternPull,
	}
	for d := 1; d <= 34; d++ {
		date := start.AddDate(0, 0, -d)
		vol := daily(d)
		rec := models.WorkoutRecord{
			ID:          uuid.New(),
			Date:        date,
			StartTime:   date.Add(17 * time.Hour),
			EndTime:     date.Add(18 * time.Hour),
			DurationSec: 3600,
			TotalVolume: vol,
			AvgRPE:      7,
			AvgRestSec:  120,
			Blocks: []models.BlockSummary{{
				Kind:    models.BlockStrength,
				Pattern: patterns[d%len(patterns)],
				Volume:  vol,
				AvgRPE:  7,
			}},
		}
		if err := s.store.AddWorkout(rec); err != nil {
			return err
		}
	}
	return nil
}

func (s *simulator) fail(format string, args ...any) {
	s.failures++
	s.log.Error("check failed: " + fmt.Sprintf(format, args...))
}

// runWeek generates the structure for one week, performs each planned
// day, and checks the results against the engine's invariants.
func (s *simulator) runWeek(weekStart time.Time) models.WeeklyStructure {
	history, err := s.store.WorkoutsSince(weekStart.AddDate(0, 0, -34))
	if err != nil {
		s.fail("history query: %v", err)
		return engine.NeutralWeeklyStructure(weekStart)
	}

	readiness := engine.RecoveryScore(history, weekStart)
	fatigue := engine.AnalyzeFatigue(history, weekStart)
	phase := engine.InferBlockType(readiness, fatigue, weekStart)
	ws := engine.SafeBuildWeeklyStructure(readiness, fatigue, s.prefs.TrainingDaysPerWeek, weekStart, phase, s.log)

	if len(ws.Days) != s.prefs.TrainingDaysPerWeek {
		s.fail("week %s: %d days planned, want %d", ws.WeekStartISO, len(ws.Days), s.prefs.TrainingDaysPerWeek)
	}
	for _, day := range ws.Days {
		if day.Phase != ws.Phase {
			s.fail("week %s: day %s phase %s disagrees with week phase %s",
				ws.WeekStartISO, day.DateISO, day.Phase, ws.Phase)
		}
	}

	if err := s.store.PutWeek(ws); err != nil {
		s.fail("storing week %s: %v", ws.WeekStartISO, err)
	}
	stored, err := s.store.GetWeek(ws.WeekStartISO)
	if err != nil || stored == nil {
		s.fail("reading back week %s: %v", ws.WeekStartISO, err)
	} else if stored.Phase != ws.Phase {
		s.fail("week %s: stored phase %s, want %s", ws.WeekStartISO, stored.Phase, ws.Phase)
	}

	s.log.Info("week planned",
		"week_start", ws.WeekStartISO,
		"phase", ws.Phase,
		"readiness", fmt.Sprintf("%.0f", readiness.Score),
		"acwr", fmt.Sprintf("%.2f", fatigue.ACWRValue))

	for di := range ws.Days {
		s.runDay(&ws, di, readiness.Score)
	}
	return ws
}

// runDay generates the plan for one structure day, runs a full session
// over it, and stores the derived record.
func (s *simulator) runDay(ws *models.WeeklyStructure, dayIndex int, recoveryScore float64) {
	day := &ws.Days[dayIndex]
	date, err := time.Parse("2006-01-02", day.DateISO)
	if err != nil {
		s.fail("day %s: bad date: %v", day.DateISO, err)
		return
	}

	plan := engine.GenerateWorkoutDay(s.prefs, date, dayIndex, day, s.cat, 1)
	if len(plan.Blocks) == 0 {
		s.fail("day %s: empty plan", day.DateISO)
		return
	}

	sessStart := date.Add(17 * time.Hour)
	sess := s.mgr.Start(&plan, recoveryScore, ws.Phase, sessStart)

	completed := 0
	for bi, block := range sess.Blocks {
		if block.Strength == nil {
			continue
		}
		for si, set := range block.Strength.Sets {
			weight := sess.Progress[bi].Sets[si].Weight
			if weight == 0 {
				// No stored 1RM for this lift; pick a nominal load.
				weight = 40
			}
			progress := session.SetProgress{
				Weight:  weight,
				Reps:    set.TargetReps,
				RPE:     noisyRPE(s.rng, set.TargetRPE),
				RestSec: 90 + float64(s.rng.Intn(60)),
			}
			_, suggestion, err := s.mgr.CompleteSet(sess.ID, bi, si, progress)
			if err != nil {
				s.fail("day %s: completing set %d/%d: %v", day.DateISO, bi, si, err)
				continue
			}
			completed++
			if suggestion != nil {
				s.suggestions++
				if s.rng.Intn(2) == 0 {
					if err := s.mgr.ApplySuggestion(sess.ID); err != nil {
						s.fail("day %s: applying suggestion: %v", day.DateISO, err)
					}
				}
			}
		}
	}

	rec, events, err := s.mgr.Finish(sess.ID, sessStart.Add(50*time.Minute))
	if err != nil {
		s.fail("day %s: finishing session: %v", day.DateISO, err)
		return
	}
	if completed > 0 && rec.TotalVolume <= 0 {
		s.fail("day %s: %d sets completed but zero volume", day.DateISO, completed)
	}
	if len(events) != completed {
		s.fail("day %s: %d events recorded, want %d", day.DateISO, len(events), completed)
	}

	if err := s.store.AddWorkout(rec); err != nil {
		s.fail("day %s: storing record: %v", day.DateISO, err)
		return
	}
	s.workouts++
	s.totalVolume += rec.TotalVolume
}

// noisyRPE perturbs the target by up to one point in either direction,
// in half-point steps, clamped to the usable scale.
func noisyRPE(rng *rand.Rand, target float64) float64 {
	rpe := target + float64(rng.Intn(5)-2)*0.5
	if rpe < 5 {
		rpe = 5
	}
	if rpe > 10 {
		rpe = 10
	}
	return rpe
}

func simPreferences() models.UserPreferences {
	p := models.DefaultPreferences()
	p.StrengthNumbers = map[string]float64{
		"back-squat":     140,
		"deadlift":       180,
		"bench-press":    100,
		"overhead-press": 60,
		"barbell-row":    90,
	}
	return p
}
