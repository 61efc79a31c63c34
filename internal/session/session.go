// Package session manages in-memory live workout sessions: one per
// started plan day, mutated set-by-set, committed to a WorkoutRecord
// only on finish. Cancel discards everything.
package session

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/claude/liftwise/internal/engine"
	"github.com/claude/liftwise/internal/models"
	"github.com/google/uuid"
)

// SetProgress is the live state of one set.
type SetProgress struct {
	Weight     float64              `json:"weight"`
	Reps       int                  `json:"reps"`
	RPE        float64              `json:"rpe"`
	RestSec    float64              `json:"rest_sec"`
	Completed  bool                 `json:"completed"`
	Difficulty models.SetDifficulty `json:"difficulty,omitempty"`
}

// BlockProgress tracks the sets of one block.
type BlockProgress struct {
	Sets []SetProgress `json:"sets"`
}

// Session is one active workout. Blocks hold the recovery-adjusted
// copy; the canonical plan day is never touched.
type Session struct {
	ID            uuid.UUID             `json:"id"`
	PlanDayID     uuid.UUID             `json:"plan_day_id"`
	StartTime     time.Time             `json:"start_time"`
	Blocks        []models.WorkoutBlock `json:"blocks"`
	Progress      []BlockProgress       `json:"progress"`
	Adjustment    engine.Adjustment     `json:"adjustment"`
	RecoveryScore float64               `json:"recovery_score"`
	Phase         models.PhaseType      `json:"phase"`
	Pending       *models.SetSuggestion `json:"pending,omitempty"`
	Events        []models.PerformanceEvent `json:"events"`
}

// Manager owns all active sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	cfg      engine.AutoRegConfig
	log      *slog.Logger
}

// NewManager creates an empty session manager.
func NewManager(cfg engine.AutoRegConfig, log *slog.Logger) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		cfg:      cfg,
		log:      log,
	}
}

// Start opens a session for the plan day, applying the session-start
// recovery adjustment to a copy of its blocks. Set weights are
// prefilled from the prescription when a 1RM is known.
func (m *Manager) Start(plan *models.WorkoutPlanDay, recoveryScore float64, phase models.PhaseType, now time.Time) *Session {
	blocks, adjustment := engine.AdjustForRecovery(recoveryScore, plan.Blocks)

	s := &Session{
		ID:            uuid.New(),
		PlanDayID:     plan.ID,
		StartTime:     now,
		Blocks:        blocks,
		Adjustment:    adjustment,
		RecoveryScore: recoveryScore,
		Phase:         phase,
	}
	for _, b := range blocks {
		bp := BlockProgress{}
		if b.Strength != nil {
			bp.Sets = make([]SetProgress, len(b.Strength.Sets))
			if b.Strength.OneRMUsed > 0 {
				for i, set := range b.Strength.Sets {
					w := b.Strength.OneRMUsed * set.TargetPercent1RM
					bp.Sets[i].Weight = math.Round(w/m.cfg.Increment) * m.cfg.Increment
				}
			}
		}
		s.Progress = append(s.Progress, bp)
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.log.Info("session started",
		"session_id", s.ID,
		"plan_day_id", plan.ID,
		"recovery_score", recoveryScore,
		"adjustment", adjustment.Level)
	return s
}

// Get returns an active session.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("no active session %s", id)
	}
	return s, nil
}

// CompleteSet records one finished set, appends its performance event,
// and may emit a suggestion for the following set. A failed
// recommendation never blocks the completion itself.
func (m *Manager) CompleteSet(id uuid.UUID, blockIdx, setIdx int, p SetProgress) (models.PerformanceEvent, *models.SetSuggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return models.PerformanceEvent{}, nil, fmt.Errorf("no active session %s", id)
	}
	block, sets, err := s.strengthSets(blockIdx)
	if err != nil {
		return models.PerformanceEvent{}, nil, err
	}
	if setIdx < 0 || setIdx >= len(sets) {
		return models.PerformanceEvent{}, nil, fmt.Errorf("set index %d out of range", setIdx)
	}

	p.Completed = true
	s.Progress[blockIdx].Sets[setIdx] = p

	targetRPE := block.Strength.Sets[setIdx].TargetRPE
	event := models.PerformanceEvent{
		ID:         uuid.New(),
		PlanDayID:  s.PlanDayID,
		Pattern:    block.Pattern,
		SetIndex:   setIdx,
		Weight:     p.Weight,
		Reps:       p.Reps,
		RPE:        p.RPE,
		TargetRPE:  targetRPE,
		Difficulty: p.Difficulty,
		CreatedAt:  time.Now().UTC(),
	}
	s.Events = append(s.Events, event)

	// Auto-regulation is a non-critical path: anything short of a
	// usable recommendation just means no suggestion.
	s.Pending = nil
	if setIdx+1 < len(sets) {
		rec := engine.NextSetRecommendation(engine.AutoRegInput{
			Weight:        p.Weight,
			Reps:          p.Reps,
			RPE:           p.RPE,
			TargetRPE:     targetRPE,
			Difficulty:    p.Difficulty,
			RecoveryScore: s.RecoveryScore,
			Phase:         s.Phase,
			Pattern:       block.Pattern,
			SetIndex:      setIdx,
			IsFinalSet:    setIdx+1 == len(sets)-1,
		}, m.cfg)
		if engine.ShouldSuggest(rec, s.Progress[blockIdx].Sets[setIdx+1].Weight, m.cfg) {
			s.Pending = &models.SetSuggestion{BlockIndex: blockIdx, SetIndex: setIdx + 1, Rec: rec}
		}
	}

	return event, s.Pending, nil
}

// EditSetWeight sets a set's weight directly. A direct edit on the set
// a suggestion targets invalidates the suggestion.
func (m *Manager) EditSetWeight(id uuid.UUID, blockIdx, setIdx int, weight float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("no active session %s", id)
	}
	if _, sets, err := s.strengthSets(blockIdx); err != nil {
		return err
	} else if setIdx < 0 || setIdx >= len(sets) {
		return fmt.Errorf("set index %d out of range", setIdx)
	}

	s.Progress[blockIdx].Sets[setIdx].Weight = weight
	if s.Pending != nil && s.Pending.BlockIndex == blockIdx && s.Pending.SetIndex == setIdx {
		s.Pending = nil
	}
	return nil
}

// UncompleteSet reverts a completed set. The suggestion it produced,
// if still pending, is cleared.
func (m *Manager) UncompleteSet(id uuid.UUID, blockIdx, setIdx int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("no active session %s", id)
	}
	if _, sets, err := s.strengthSets(blockIdx); err != nil {
		return err
	} else if setIdx < 0 || setIdx >= len(sets) {
		return fmt.Errorf("set index %d out of range", setIdx)
	}

	s.Progress[blockIdx].Sets[setIdx].Completed = false
	if s.Pending != nil && s.Pending.BlockIndex == blockIdx && s.Pending.SetIndex == setIdx+1 {
		s.Pending = nil
	}
	return nil
}

// ApplySuggestion writes the pending recommendation into its target
// set and clears it.
func (m *Manager) ApplySuggestion(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("no active session %s", id)
	}
	if s.Pending == nil || s.Pending.Rec.NextWeight == nil {
		return fmt.Errorf("no pending suggestion")
	}
	s.Progress[s.Pending.BlockIndex].Sets[s.Pending.SetIndex].Weight = *s.Pending.Rec.NextWeight
	s.Pending = nil
	return nil
}

// Finish converts the session into an immutable WorkoutRecord and
// removes it from the manager. Only finish commits anything.
func (m *Manager) Finish(id uuid.UUID, now time.Time) (models.WorkoutRecord, []models.PerformanceEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return models.WorkoutRecord{}, nil, fmt.Errorf("no active session %s", id)
	}
	delete(m.sessions, id)

	rec := deriveRecord(s, now)
	m.log.Info("session finished",
		"session_id", id,
		"total_volume", rec.TotalVolume,
		"duration_sec", rec.DurationSec)
	return rec, s.Events, nil
}

// Cancel discards the session without writing anything.
func (m *Manager) Cancel(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("no active session %s", id)
	}
	delete(m.sessions, id)
	return nil
}

func (s *Session) strengthSets(blockIdx int) (*models.WorkoutBlock, []SetProgress, error) {
	if blockIdx < 0 || blockIdx >= len(s.Blocks) {
		return nil, nil, fmt.Errorf("block index %d out of range", blockIdx)
	}
	b := &s.Blocks[blockIdx]
	if b.Strength == nil {
		return nil, nil, fmt.Errorf("block %d is not a strength block", blockIdx)
	}
	return b, s.Progress[blockIdx].Sets, nil
}

// deriveRecord aggregates the session into the historical record shape
// the analytics consume.
func deriveRecord(s *Session, now time.Time) models.WorkoutRecord {
	rec := models.WorkoutRecord{
		ID:          uuid.New(),
		PlanDayID:   s.PlanDayID,
		Date:        s.StartTime,
		StartTime:   s.StartTime,
		EndTime:     now,
		DurationSec: now.Sub(s.StartTime).Seconds(),
	}

	var totalRPE, totalRest float64
	var completed int
	for i, b := range s.Blocks {
		if b.Strength == nil {
			continue
		}
		summary := models.BlockSummary{
			Title:          b.Title,
			Kind:           b.Kind,
			Pattern:        b.Pattern,
			PrescribedSets: len(b.Strength.Sets),
		}
		var blockRPE, blockRest float64
		var blockDone int
		for _, sp := range s.Progress[i].Sets {
			if !sp.Completed {
				continue
			}
			summary.CompletedSets = append(summary.CompletedSets, models.CompletedSet{
				Weight: sp.Weight, Reps: sp.Reps, RPE: sp.RPE, RestSec: sp.RestSec, Completed: true,
			})
			summary.Volume += sp.Weight * float64(sp.Reps)
			blockRPE += sp.RPE
			blockRest += sp.RestSec
			blockDone++
		}
		if blockDone > 0 {
			summary.AvgRPE = blockRPE / float64(blockDone)
			summary.AvgRestSec = blockRest / float64(blockDone)
		}
		rec.Blocks = append(rec.Blocks, summary)
		rec.TotalVolume += summary.Volume
		totalRPE += blockRPE
		totalRest += blockRest
		completed += blockDone
	}

	if completed > 0 {
		rec.AvgRPE = totalRPE / float64(completed)
		rec.AvgRestSec = totalRest / float64(completed)
	}
	if minutes := rec.DurationSec / 60; minutes > 0 {
		// Volume per minute against a 300/min reference effort.
		rec.DensityScore = math.Min(100, rec.TotalVolume/minutes/300*100)
	}
	rec.IntensityScore = rec.AvgRPE / 10 * 100
	return rec
}
