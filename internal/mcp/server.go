package mcp

import (
	"context"
	"log/slog"

	"github.com/claude/liftwise/internal/catalog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, cat *catalog.Catalog, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftWise", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftWise adaptive training server. Query recovery and fatigue analytics, weekly training structures, daily workout plans, and workout history, or get a next-set weight suggestion. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, catalog: cat, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetRecovery, Handler: h.getRecovery},
		server.ServerTool{Tool: toolGetWeeklyStructure, Handler: h.getWeeklyStructure},
		server.ServerTool{Tool: toolGetWorkoutPlan, Handler: h.getWorkoutPlan},
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolSuggestNextSet, Handler: h.suggestNextSet},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCurrentWeek, Handler: h.currentWeek},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds      DataSource
	catalog *catalog.Catalog
	log     *slog.Logger
}

// --- Resource definitions ---

var resCurrentWeek = mcp.NewResource(
	"liftwise://current_week",
	"Current Week",
	mcp.WithResourceDescription("The training structure for the current ISO week: phase, day skeletons, and the analytics snapshot that produced it"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"liftwise://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Finished workouts from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseCatalog = mcp.NewResource(
	"liftwise://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All known exercises with movement patterns, difficulty, and equipment requirements"),
	mcp.WithMIMEType("application/json"),
)
