package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claude/liftwise/internal/models"
	"github.com/jackc/pgx/v5"
)

// GetPreferences retrieves a user's training preferences, falling back
// to the defaults when none are stored.
func (db *DB) GetPreferences(ctx context.Context, userID int) (models.UserPreferences, error) {
	var data []byte
	err := db.Pool.QueryRow(ctx,
		`SELECT prefs FROM user_preferences WHERE user_id = $1`,
		userID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		if db.defaults != nil {
			return *db.defaults, nil
		}
		return models.DefaultPreferences(), nil
	}
	if err != nil {
		return models.UserPreferences{}, fmt.Errorf("querying preferences: %w", err)
	}

	var prefs models.UserPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return models.UserPreferences{}, fmt.Errorf("decoding preferences: %w", err)
	}
	return prefs, nil
}

// PutPreferences stores a user's preferences, replacing any existing row.
func (db *DB) PutPreferences(ctx context.Context, userID int, prefs models.UserPreferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO user_preferences (user_id, prefs)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET prefs = $2, updated_at = NOW()`,
		userID, data)
	if err != nil {
		return fmt.Errorf("upserting preferences: %w", err)
	}
	return nil
}
