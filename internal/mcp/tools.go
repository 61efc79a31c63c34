package mcp

import (
	"context"
	"time"

	"github.com/claude/liftwise/internal/engine"
	"github.com/claude/liftwise/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// historyWindow covers the chronic load window used by the analytics.
const historyWindow = 34 * 24 * time.Hour

// defaultTimeRange returns start/end defaulting to the last 7 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -7)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolGetRecovery = mcp.NewTool("get_recovery",
	mcp.WithDescription("Current recovery and fatigue analysis: overall recovery score (0-100) with component breakdown, readiness category, per-pattern fatigue, and the acute:chronic workload ratio with its zone."),
)

var toolGetWeeklyStructure = mcp.NewTool("get_weekly_structure",
	mcp.WithDescription("The training structure for a week: periodization phase, per-day movement patterns with volume/intensity targets, and the analytics snapshot it was built from."),
	mcp.WithString("date", mcp.Description("Any date inside the wanted week (YYYY-MM-DD). Defaults to today.")),
)

var toolGetWorkoutPlan = mcp.NewTool("get_workout_plan",
	mcp.WithDescription("The generated workout for a calendar date: warmup, main strength work with set prescriptions, accessories, conditioning, and cooldown."),
	mcp.WithString("date", mcp.Description("Date (YYYY-MM-DD). Defaults to today.")),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query finished workouts. Returns records with per-block volume, average RPE, rest, and density/intensity scores."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolSuggestNextSet = mcp.NewTool("suggest_next_set",
	mcp.WithDescription("Weight recommendation for the set after a completed one, based on how the set went relative to its target and the current recovery state."),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight used on the completed set")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Reps completed")),
	mcp.WithNumber("rpe", mcp.Required(), mcp.Description("Reported RPE (0-10)")),
	mcp.WithNumber("target_rpe", mcp.Required(), mcp.Description("The set's prescribed RPE")),
	mcp.WithString("difficulty", mcp.Description("Explicit difficulty rating; overrides the RPE deviation"), mcp.Enum("too_easy", "good", "too_hard")),
	mcp.WithBoolean("is_final_set", mcp.Description("Whether the next set is the last of the block")),
)

// --- Tool handlers ---

func (h *handlers) getRecovery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	now := time.Now()

	history, err := h.ds.RecentWorkoutRecords(ctx, now.Add(-historyWindow), uid)
	if err != nil {
		h.log.Error("mcp get_recovery", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"readiness": engine.RecoveryScore(history, now),
		"fatigue":   engine.AnalyzeFatigue(history, now),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeeklyStructure(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := time.Now()
	if s := req.GetString("date", ""); s != "" {
		var err error
		date, err = parseFlexTime(s)
		if err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
	}

	uid := UserIDFromContext(ctx)
	ws, err := h.ds.GetWeeklyStructure(ctx, uid, models.WeekStart(date))
	if err != nil {
		h.log.Error("mcp get_weekly_structure", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if ws == nil {
		return mcp.NewToolResultError("no structure generated for this week yet"), nil
	}

	result, err := mcp.NewToolResultJSON(ws)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := time.Now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if s := req.GetString("date", ""); s != "" {
		var err error
		date, err = parseFlexTime(s)
		if err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
	}

	uid := UserIDFromContext(ctx)
	day, err := h.ds.GetPlanDayByDate(ctx, uid, date)
	if err != nil {
		h.log.Error("mcp get_workout_plan", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if day == nil {
		return mcp.NewToolResultError("no plan generated for this date"), nil
	}

	result, err := mcp.NewToolResultJSON(day)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	workouts, err := h.ds.QueryWorkoutRecords(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) suggestNextSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	reps, err := req.RequireInt("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}
	rpe, err := req.RequireFloat("rpe")
	if err != nil {
		return mcp.NewToolResultError("rpe parameter is required"), nil
	}
	targetRPE, err := req.RequireFloat("target_rpe")
	if err != nil {
		return mcp.NewToolResultError("target_rpe parameter is required"), nil
	}

	uid := UserIDFromContext(ctx)
	now := time.Now()

	// Recovery context comes from the live history so the suggestion
	// matches what a session would produce.
	history, err := h.ds.RecentWorkoutRecords(ctx, now.Add(-historyWindow), uid)
	if err != nil {
		h.log.Error("mcp suggest_next_set", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	readiness := engine.RecoveryScore(history, now)

	phase := models.PhaseAccumulation
	if ws, err := h.ds.GetWeeklyStructure(ctx, uid, models.WeekStart(now)); err == nil && ws != nil {
		phase = ws.Phase
	}

	rec := engine.NextSetRecommendation(engine.AutoRegInput{
		Weight:        weight,
		Reps:          reps,
		RPE:           rpe,
		TargetRPE:     targetRPE,
		Difficulty:    models.SetDifficulty(req.GetString("difficulty", "")),
		RecoveryScore: readiness.Score,
		Phase:         phase,
		IsFinalSet:    req.GetBool("is_final_set", false),
	}, engine.DefaultAutoRegConfig())

	result, err := mcp.NewToolResultJSON(rec)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
