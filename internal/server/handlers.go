package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/claude/liftwise/internal/engine"
	"github.com/claude/liftwise/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// historyWindow covers the chronic load window; nothing older ever
// affects the analytics.
const historyWindow = 34 * 24 * time.Hour

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, UserInfoFromContext(r.Context()))
}

// RecoveryReport is the full readiness picture for one user.
type RecoveryReport struct {
	Readiness models.ReadinessAnalysis `json:"readiness"`
	Fatigue   models.FatigueAnalysis   `json:"fatigue"`
}

func (s *Server) handleRecovery(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	report, err := s.recoveryReport(r, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleGetWeek(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	date, err := parseDate(r, s.now())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ws, err := s.ensureWeek(r, userID, date)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

func (s *Server) handleRegenerateWeek(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	date, err := parseDate(r, s.now())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ws, err := s.generateWeek(r, userID, models.WeekStart(date))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	date, err := parseDate(r, s.now())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	day, err := s.store.GetPlanDayByDate(r.Context(), userID, midnight(date))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if day == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no plan for this date"})
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	date, err := parseDate(r, s.now())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	date = midnight(date)

	ws, err := s.ensureWeek(r, userID, date)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	prefs, err := s.store.GetPreferences(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// A date outside the structured training days still gets a plan;
	// the generator falls back to its default pattern rotation.
	dayIndex := int(date.Sub(models.WeekStart(date)).Hours() / 24)
	var structured *models.WeeklyDayStructure
	for i := range ws.Days {
		if ws.Days[i].DateISO == date.Format("2006-01-02") {
			structured = &ws.Days[i]
			dayIndex = i
			break
		}
	}

	day := engine.GenerateWorkoutDay(prefs, date, dayIndex, structured, s.catalog, userID)
	if err := s.store.UpsertPlanDay(r.Context(), day); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleImportWorkouts(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	var records []models.WorkoutRecord
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	var imported, skipped int
	for i := range records {
		if records[i].ID == uuid.Nil {
			records[i].ID = uuid.New()
		}
		ok, err := s.store.InsertWorkoutRecord(r.Context(), userID, records[i])
		if err != nil {
			s.log.Error("import error", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if ok {
			imported++
		} else {
			skipped++
		}
	}

	writeJSON(w, http.StatusOK, map[string]int{"imported": imported, "skipped": skipped})
}

func (s *Server) handleQueryWorkouts(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	start, end, err := parseTimeRange(r, s.now())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	workouts, err := s.store.QueryWorkoutRecords(r.Context(), start, end, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	rec, err := s.store.GetWorkoutRecord(r.Context(), id, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if rec == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.All())
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	prefs, err := s.store.GetPreferences(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	var prefs models.UserPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if prefs.TrainingDaysPerWeek < 3 || prefs.TrainingDaysPerWeek > 6 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "training_days_per_week must be between 3 and 6"})
		return
	}

	if err := s.store.PutPreferences(r.Context(), userID, prefs); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// userID maps the request identity to a database user.
func (s *Server) userID(r *http.Request) (int, error) {
	info := UserInfoFromContext(r.Context())
	return s.store.GetOrCreateUser(r.Context(), info.Login, info.DisplayName)
}

// recoveryReport runs the analytics over the trailing history window.
func (s *Server) recoveryReport(r *http.Request, userID int) (RecoveryReport, error) {
	now := s.now()
	history, err := s.store.RecentWorkoutRecords(r.Context(), now.Add(-historyWindow), userID)
	if err != nil {
		return RecoveryReport{}, err
	}
	return RecoveryReport{
		Readiness: engine.RecoveryScore(history, now),
		Fatigue:   engine.AnalyzeFatigue(history, now),
	}, nil
}

// ensureWeek returns the stored structure for the date's week,
// generating one when the week has rolled over since the last visit.
func (s *Server) ensureWeek(r *http.Request, userID int, date time.Time) (*models.WeeklyStructure, error) {
	weekStart := models.WeekStart(date)
	ws, err := s.store.GetWeeklyStructure(r.Context(), userID, weekStart)
	if err != nil {
		return nil, err
	}
	if ws != nil {
		return ws, nil
	}
	return s.generateWeek(r, userID, weekStart)
}

// generateWeek builds and persists a fresh structure for the week. The
// phase decision and the structure both come from the same analytics
// snapshot so they can never disagree.
func (s *Server) generateWeek(r *http.Request, userID int, weekStart time.Time) (*models.WeeklyStructure, error) {
	report, err := s.recoveryReport(r, userID)
	if err != nil {
		return nil, err
	}
	prefs, err := s.store.GetPreferences(r.Context(), userID)
	if err != nil {
		return nil, err
	}

	phase := engine.InferBlockType(report.Readiness, report.Fatigue, weekStart)
	ws := engine.SafeBuildWeeklyStructure(report.Readiness, report.Fatigue, prefs.TrainingDaysPerWeek, weekStart, phase, s.log)

	if err := s.store.UpsertWeeklyStructure(r.Context(), userID, weekStart, ws); err != nil {
		return nil, err
	}
	s.log.Info("weekly structure generated",
		"user_id", userID,
		"week_start", ws.WeekStartISO,
		"phase", ws.Phase,
		"days", len(ws.Days))
	return &ws, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseDate reads an optional ?date=YYYY-MM-DD query parameter.
func parseDate(r *http.Request, fallback time.Time) (time.Time, error) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		return fallback, nil
	}
	return time.Parse("2006-01-02", dateStr)
}

func parseTimeRange(r *http.Request, now time.Time) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" {
		// Default: last 7 days
		end = now
		start = end.AddDate(0, 0, -7)
		return
	}

	start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endStr == "" {
		end = now
	} else {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			end, err = time.Parse("2006-01-02", endStr)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			// End of day for date-only
			end = end.Add(24 * time.Hour)
		}
	}
	return
}
