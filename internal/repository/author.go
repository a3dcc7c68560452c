package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shelfkeeper/api/internal/database"
	"github.com/shelfkeeper/api/internal/model"
)

// AuthorRepository handles author data access
type AuthorRepository struct {
	db database.Database
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(db database.Database) *AuthorRepository {
	return &AuthorRepository{db: db}
}

// Create inserts a new author and fills in the generated id and timestamps
func (r *AuthorRepository) Create(ctx context.Context, author *model.Author) error {
	books := author.Books
	if books == nil {
		books = []string{}
	}

	query := `
		CREATE author CONTENT {
			name: $name,
			books: $books,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"name":  author.Name,
		"books": books,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: author name %s", database.ErrDuplicate, author.Name)
		}
		return fmt.Errorf("failed to create author: %w", err)
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return fmt.Errorf("failed to parse created author: %w", err)
	}

	author.ID = convertSurrealID(created["id"])
	author.CreatedOn = getTime(created, "created_on")
	author.UpdatedOn = getTime(created, "updated_on")
	return nil
}

// GetByID retrieves an author by record id. Returns (nil, nil) when missing.
func (r *AuthorRepository) GetByID(ctx context.Context, id string) (*model.Author, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	return parseAuthorResult(result)
}

// GetByName retrieves an author by name, matched case-insensitively.
// Returns (nil, nil) when no author matches.
func (r *AuthorRepository) GetByName(ctx context.Context, name string) (*model.Author, error) {
	query := `
		SELECT * FROM author
		WHERE string::lowercase(name) = string::lowercase($name)
		LIMIT 1
	`
	vars := map[string]interface{}{"name": name}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get author by name: %w", err)
	}

	return parseAuthorResult(result)
}

// List returns all authors ordered by name
func (r *AuthorRepository) List(ctx context.Context) ([]*model.Author, error) {
	query := `SELECT * FROM author ORDER BY name`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}

	records, ok := extractQueryResults(result)
	if !ok {
		return []*model.Author{}, nil
	}

	authors := make([]*model.Author, 0, len(records))
	for _, record := range records {
		author, err := parseAuthorResult(record)
		if err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}
	return authors, nil
}

// Update persists the author's name and full book list
func (r *AuthorRepository) Update(ctx context.Context, author *model.Author) error {
	books := author.Books
	if books == nil {
		books = []string{}
	}

	query := `
		UPDATE type::record($id) SET
			name = $name,
			books = $books,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":    author.ID,
		"name":  author.Name,
		"books": books,
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to update author: %w", err)
	}
	return nil
}

// Delete removes an author record
func (r *AuthorRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	return nil
}

// AppendBook pushes a title onto the author's book list. The push is
// unconditional; callers tolerate duplicate titles.
func (r *AuthorRepository) AppendBook(ctx context.Context, id, title string) error {
	query := `
		UPDATE type::record($id) SET
			books += $title,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":    id,
		"title": title,
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to append book to author: %w", err)
	}
	return nil
}

// RemoveBook pulls a title from the author's book list
func (r *AuthorRepository) RemoveBook(ctx context.Context, id, title string) error {
	query := `
		UPDATE type::record($id) SET
			books -= $title,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":    id,
		"title": title,
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to remove book from author: %w", err)
	}
	return nil
}

// parseAuthorResult converts a raw query result into an Author
func parseAuthorResult(result interface{}) (*model.Author, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, fmt.Errorf("failed to parse author: %w", err)
	}

	books := getStringSlice(data, "books")
	if books == nil {
		books = []string{}
	}

	return &model.Author{
		ID:        convertSurrealID(data["id"]),
		Name:      getString(data, "name"),
		Books:     books,
		CreatedOn: getTime(data, "created_on"),
		UpdatedOn: getTime(data, "updated_on"),
	}, nil
}
