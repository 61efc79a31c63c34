package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/claude/liftwise/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) currentWeek(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)
	ws, err := h.ds.GetWeeklyStructure(ctx, uid, models.WeekStart(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("querying weekly structure: %w", err)
	}
	if ws == nil {
		return nil, fmt.Errorf("no structure generated for the current week")
	}

	data, err := json.Marshal(ws)
	if err != nil {
		return nil, fmt.Errorf("marshaling weekly structure: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)
	since := time.Now().AddDate(0, 0, -14)

	workouts, err := h.ds.RecentWorkoutRecords(ctx, since, uid)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}

	data, err := json.Marshal(workouts)
	if err != nil {
		return nil, fmt.Errorf("marshaling workouts: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) exerciseCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(h.catalog.All())
	if err != nil {
		return nil, fmt.Errorf("marshaling catalog: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
