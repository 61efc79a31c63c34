package mcp

import (
	"context"
	"time"

	"github.com/claude/liftwise/internal/models"
	"github.com/claude/liftwise/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB
// (local) and HTTPClient (remote via REST API) satisfy this interface.
// The tools run the analytics themselves over raw history, so the
// surface stays small.
type DataSource interface {
	RecentWorkoutRecords(ctx context.Context, since time.Time, userID int) ([]models.WorkoutRecord, error)
	QueryWorkoutRecords(ctx context.Context, start, end time.Time, userID int) ([]models.WorkoutRecord, error)
	GetWeeklyStructure(ctx context.Context, userID int, weekStart time.Time) (*models.WeeklyStructure, error)
	GetPlanDayByDate(ctx context.Context, userID int, date time.Time) (*models.WorkoutPlanDay, error)
	GetPreferences(ctx context.Context, userID int) (models.UserPreferences, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
