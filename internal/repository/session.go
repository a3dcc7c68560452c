package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shelfkeeper/api/internal/database"
	"github.com/shelfkeeper/api/internal/model"
)

// SessionRepository handles login session data access
type SessionRepository struct {
	db database.Database
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db database.Database) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session for a user with the given expiry
func (r *SessionRepository) Create(ctx context.Context, userID string, expiresOn time.Time) (*model.Session, error) {
	query := `
		CREATE session CONTENT {
			user_id: $user_id,
			created_on: time::now(),
			expires_on: $expires_on
		}
	`
	vars := map[string]interface{}{
		"user_id":    userID,
		"expires_on": expiresOn,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created session: %w", err)
	}

	return &model.Session{
		ID:        convertSurrealID(created["id"]),
		UserID:    getString(created, "user_id"),
		CreatedOn: getTime(created, "created_on"),
		ExpiresOn: getTime(created, "expires_on"),
	}, nil
}

// GetByID retrieves a session by record id. Returns (nil, nil) when missing.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*model.Session, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	data, err := unwrapRecord(result)
	if err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}

	return &model.Session{
		ID:        convertSurrealID(data["id"]),
		UserID:    getString(data, "user_id"),
		CreatedOn: getTime(data, "created_on"),
		ExpiresOn: getTime(data, "expires_on"),
	}, nil
}

// Delete removes a session record
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes all sessions past their expiry
func (r *SessionRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE session WHERE expires_on < time::now()`

	if err := r.db.Execute(ctx, query, nil); err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
