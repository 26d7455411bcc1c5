package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"qwikko-assistant/internal/db"
)

// TokenStore persists the userId → bearer token mapping in Postgres so a
// saved token survives process restarts and idle-session eviction.
type TokenStore struct {
	db *db.DB
}

func NewTokenStore(database *db.DB) *TokenStore {
	return &TokenStore{db: database}
}

func (ts *TokenStore) SaveToken(ctx context.Context, userID, token string) error {
	if userID == "" || token == "" {
		return fmt.Errorf("user_id and token are required")
	}

	query := `
		INSERT INTO assistant_tokens (user_id, token, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			token = EXCLUDED.token,
			updated_at = NOW()
	`
	if _, err := ts.db.ExecContext(ctx, query, userID, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// GetToken returns the stored token for a user, or "" when none exists.
func (ts *TokenStore) GetToken(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user_id is required")
	}

	var token string
	err := ts.db.QueryRowContext(ctx,
		"SELECT token FROM assistant_tokens WHERE user_id = $1", userID,
	).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}
	return token, nil
}

func (ts *TokenStore) DeleteToken(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("user_id is required")
	}
	if _, err := ts.db.ExecContext(ctx, "DELETE FROM assistant_tokens WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
