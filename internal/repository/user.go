package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shelfkeeper/api/internal/database"
	"github.com/shelfkeeper/api/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and fills in the generated id and timestamps
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	var hash interface{}
	if user.Hash != nil {
		hash = *user.Hash
	}
	var githubID interface{}
	if user.GithubID != nil {
		githubID = *user.GithubID
	}

	query := `
		CREATE user CONTENT {
			username: $username,
			email: $email,
			hash: $hash,
			github_id: $github_id,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"username":  user.Username,
		"email":     nilIfEmpty(user.Email),
		"hash":      hash,
		"github_id": githubID,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: username or email already taken", database.ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return fmt.Errorf("failed to parse created user: %w", err)
	}

	user.ID = convertSurrealID(created["id"])
	user.CreatedOn = getTime(created, "created_on")
	user.UpdatedOn = getTime(created, "updated_on")
	return nil
}

// GetByID retrieves a user by record id. Returns (nil, nil) when missing.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return parseUserResult(result)
}

// GetByUsername retrieves a user by exact username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT * FROM user WHERE username = $username LIMIT 1`
	vars := map[string]interface{}{"username": username}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return parseUserResult(result)
}

// GetByEmail retrieves a user by email. Emails are stored lowercase.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return parseUserResult(result)
}

// GetByGithubID retrieves a user by linked GitHub account id
func (r *UserRepository) GetByGithubID(ctx context.Context, githubID string) (*model.User, error) {
	query := `SELECT * FROM user WHERE github_id = $github_id LIMIT 1`
	vars := map[string]interface{}{"github_id": githubID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by github id: %w", err)
	}

	return parseUserResult(result)
}

// SetGithubID links a GitHub account to an existing user
func (r *UserRepository) SetGithubID(ctx context.Context, userID, githubID string) error {
	query := `
		UPDATE type::record($id) SET
			github_id = $github_id,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":        userID,
		"github_id": githubID,
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to set github id: %w", err)
	}
	return nil
}

// parseUserResult converts a raw query result into a User
func parseUserResult(result interface{}) (*model.User, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}

	return &model.User{
		ID:        convertSurrealID(data["id"]),
		Username:  getString(data, "username"),
		Email:     getString(data, "email"),
		Hash:      getStringPtr(data, "hash"),
		GithubID:  getStringPtr(data, "github_id"),
		CreatedOn: getTime(data, "created_on"),
		UpdatedOn: getTime(data, "updated_on"),
	}, nil
}
