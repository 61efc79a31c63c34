package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/liftwise/internal/models"
	"github.com/claude/liftwise/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type startSessionRequest struct {
	PlanDayID uuid.UUID `json:"plan_day_id"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	plan, err := s.store.GetPlanDay(r.Context(), userID, req.PlanDayID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if plan == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan day not found"})
		return
	}

	report, err := s.recoveryReport(r, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// The phase comes from the plan's week so mid-session semantics
	// match what the day was generated under.
	phase := models.PhaseAccumulation
	if ws, err := s.store.GetWeeklyStructure(r.Context(), userID, models.WeekStart(plan.Date)); err == nil && ws != nil {
		phase = ws.Phase
	}

	sess := s.sessions.Start(plan, report.Readiness.Score, phase, s.now())

	// The session trains the adjusted copy; the stored day keeps its
	// prescription but records that the start adjusted it.
	if sess.Adjustment.Modified && !plan.AdjustedForReadiness {
		plan.AdjustedForReadiness = true
		if err := s.store.UpsertPlanDay(r.Context(), *plan); err != nil {
			s.log.Warn("marking plan day adjusted", "plan_day_id", plan.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, sess)
}

type setRequest struct {
	BlockIndex int                  `json:"block_index"`
	SetIndex   int                  `json:"set_index"`
	Weight     float64              `json:"weight"`
	Reps       int                  `json:"reps"`
	RPE        float64              `json:"rpe"`
	RestSec    float64              `json:"rest_sec"`
	Difficulty models.SetDifficulty `json:"difficulty,omitempty"`
}

func (s *Server) handleCompleteSet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	event, suggestion, err := s.sessions.CompleteSet(id, req.BlockIndex, req.SetIndex, session.SetProgress{
		Weight:     req.Weight,
		Reps:       req.Reps,
		RPE:        req.RPE,
		RestSec:    req.RestSec,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"event":      event,
		"suggestion": suggestion,
	})
}

func (s *Server) handleEditSet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := s.sessions.EditSetWeight(id, req.BlockIndex, req.SetIndex, req.Weight); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUncompleteSet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := s.sessions.UncompleteSet(id, req.BlockIndex, req.SetIndex); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleApplySuggestion(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	if err := s.sessions.ApplySuggestion(id); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	rec, events, err := s.sessions.Finish(id, s.now())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if _, err := s.store.InsertWorkoutRecord(r.Context(), userID, rec); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if _, err := s.store.InsertProgressionEvents(r.Context(), userID, events); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// handleProgression returns the performance event log, either for one
// plan day (?plan_day_id=) or the trailing week.
func (s *Server) handleProgression(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	var events []models.PerformanceEvent
	if idStr := r.URL.Query().Get("plan_day_id"); idStr != "" {
		planDayID, err := uuid.Parse(idStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid plan_day_id"})
			return
		}
		events, err = s.store.QueryProgressionEvents(r.Context(), userID, planDayID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	} else {
		events, err = s.store.QueryRecentProgressionEvents(r.Context(), userID, s.now().AddDate(0, 0, -7))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	}

	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	if err := s.sessions.Cancel(id); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
