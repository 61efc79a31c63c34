package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/liftwise/internal/models"
)

// HTTPClient implements DataSource by calling the LiftWise REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

// errNotFound marks a 404 so callers can translate it to a nil result.
var errNotFound = fmt.Errorf("httpclient: not found")

func timeParams(start, end time.Time) url.Values {
	v := url.Values{}
	v.Set("start", start.Format(time.RFC3339))
	v.Set("end", end.Format(time.RFC3339))
	return v
}

// The REST API scopes every request to the caller's identity, so the
// user ID parameters are ignored on this implementation.

func (c *HTTPClient) QueryWorkoutRecords(ctx context.Context, start, end time.Time, _ int) ([]models.WorkoutRecord, error) {
	body, err := c.get(ctx, "/api/v1/workouts", timeParams(start, end))
	if err != nil {
		return nil, err
	}

	var records []models.WorkoutRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return records, nil
}

func (c *HTTPClient) RecentWorkoutRecords(ctx context.Context, since time.Time, userID int) ([]models.WorkoutRecord, error) {
	return c.QueryWorkoutRecords(ctx, since, time.Now(), userID)
}

func (c *HTTPClient) GetWeeklyStructure(ctx context.Context, _ int, weekStart time.Time) (*models.WeeklyStructure, error) {
	params := url.Values{}
	params.Set("date", weekStart.Format("2006-01-02"))

	body, err := c.get(ctx, "/api/v1/week", params)
	if err != nil {
		if err == errNotFound {
			return nil, nil
		}
		return nil, err
	}

	var ws models.WeeklyStructure
	if err := json.Unmarshal(body, &ws); err != nil {
		return nil, fmt.Errorf("httpclient: decode weekly structure: %w", err)
	}
	return &ws, nil
}

func (c *HTTPClient) GetPlanDayByDate(ctx context.Context, _ int, date time.Time) (*models.WorkoutPlanDay, error) {
	params := url.Values{}
	params.Set("date", date.Format("2006-01-02"))

	body, err := c.get(ctx, "/api/v1/plan", params)
	if err != nil {
		if err == errNotFound {
			return nil, nil
		}
		return nil, err
	}

	var day models.WorkoutPlanDay
	if err := json.Unmarshal(body, &day); err != nil {
		return nil, fmt.Errorf("httpclient: decode plan day: %w", err)
	}
	return &day, nil
}

func (c *HTTPClient) GetPreferences(ctx context.Context, _ int) (models.UserPreferences, error) {
	body, err := c.get(ctx, "/api/v1/preferences", nil)
	if err != nil {
		return models.UserPreferences{}, err
	}

	var prefs models.UserPreferences
	if err := json.Unmarshal(body, &prefs); err != nil {
		return models.UserPreferences{}, fmt.Errorf("httpclient: decode preferences: %w", err)
	}
	return prefs, nil
}
