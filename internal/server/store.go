package server

import (
	"context"
	"time"

	"github.com/claude/liftwise/internal/models"
	"github.com/google/uuid"
)

// Store is the persistence surface the handlers need. *storage.DB
// implements it; tests substitute an in-memory fake.
type Store interface {
	GetOrCreateUser(ctx context.Context, login, displayName string) (int, error)

	GetPreferences(ctx context.Context, userID int) (models.UserPreferences, error)
	PutPreferences(ctx context.Context, userID int, prefs models.UserPreferences) error

	InsertWorkoutRecord(ctx context.Context, userID int, rec models.WorkoutRecord) (bool, error)
	QueryWorkoutRecords(ctx context.Context, start, end time.Time, userID int) ([]models.WorkoutRecord, error)
	RecentWorkoutRecords(ctx context.Context, since time.Time, userID int) ([]models.WorkoutRecord, error)
	GetWorkoutRecord(ctx context.Context, id uuid.UUID, userID int) (*models.WorkoutRecord, error)

	GetWeeklyStructure(ctx context.Context, userID int, weekStart time.Time) (*models.WeeklyStructure, error)
	UpsertWeeklyStructure(ctx context.Context, userID int, weekStart time.Time, ws models.WeeklyStructure) error

	UpsertPlanDay(ctx context.Context, day models.WorkoutPlanDay) error
	GetPlanDayByDate(ctx context.Context, userID int, date time.Time) (*models.WorkoutPlanDay, error)
	GetPlanDay(ctx context.Context, userID int, id uuid.UUID) (*models.WorkoutPlanDay, error)

	InsertProgressionEvents(ctx context.Context, userID int, events []models.PerformanceEvent) (int64, error)
	QueryProgressionEvents(ctx context.Context, userID int, planDayID uuid.UUID) ([]models.PerformanceEvent, error)
	QueryRecentProgressionEvents(ctx context.Context, userID int, since time.Time) ([]models.PerformanceEvent, error)
}
