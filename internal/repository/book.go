package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shelfkeeper/api/internal/database"
	"github.com/shelfkeeper/api/internal/model"
)

// BookRepository handles book data access
type BookRepository struct {
	db database.Database
}

// NewBookRepository creates a new book repository
func NewBookRepository(db database.Database) *BookRepository {
	return &BookRepository{db: db}
}

// Create inserts a new book and fills in the generated id and timestamps.
// Optional metadata fields store as NONE when empty so shell records created
// during author sync stay sparse.
func (r *BookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		CREATE book CONTENT {
			title: $title,
			author: $author,
			publisher: $publisher,
			category: $category,
			total_pages: $total_pages,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"title":       book.Title,
		"author":      book.Author,
		"publisher":   nilIfEmpty(book.Publisher),
		"category":    nilIfEmpty(book.Category),
		"total_pages": nilIfZero(book.TotalPages),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return fmt.Errorf("failed to parse created book: %w", err)
	}

	book.ID = convertSurrealID(created["id"])
	book.CreatedOn = getTime(created, "created_on")
	book.UpdatedOn = getTime(created, "updated_on")
	return nil
}

// GetByID retrieves a book by record id. Returns (nil, nil) when missing.
func (r *BookRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return parseBookResult(result)
}

// GetByTitle retrieves a book by exact title. Returns (nil, nil) when no
// book matches.
func (r *BookRepository) GetByTitle(ctx context.Context, title string) (*model.Book, error) {
	query := `SELECT * FROM book WHERE title = $title LIMIT 1`
	vars := map[string]interface{}{"title": title}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get book by title: %w", err)
	}

	return parseBookResult(result)
}

// List returns all books ordered by title
func (r *BookRepository) List(ctx context.Context) ([]*model.Book, error) {
	query := `SELECT * FROM book ORDER BY title`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	records, ok := extractQueryResults(result)
	if !ok {
		return []*model.Book{}, nil
	}

	books := make([]*model.Book, 0, len(records))
	for _, record := range records {
		book, err := parseBookResult(record)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

// Update persists all mutable book fields
func (r *BookRepository) Update(ctx context.Context, book *model.Book) error {
	query := `
		UPDATE type::record($id) SET
			title = $title,
			author = $author,
			publisher = $publisher,
			category = $category,
			total_pages = $total_pages,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":          book.ID,
		"title":       book.Title,
		"author":      book.Author,
		"publisher":   nilIfEmpty(book.Publisher),
		"category":    nilIfEmpty(book.Category),
		"total_pages": nilIfZero(book.TotalPages),
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	return nil
}

// SetAuthor overwrites only the author field, leaving metadata untouched
func (r *BookRepository) SetAuthor(ctx context.Context, id, author string) error {
	query := `
		UPDATE type::record($id) SET
			author = $author,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":     id,
		"author": author,
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to set book author: %w", err)
	}
	return nil
}

// Delete removes a book record
func (r *BookRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return nil
}

// DeleteByAuthor removes all books whose author field equals the given name
func (r *BookRepository) DeleteByAuthor(ctx context.Context, author string) error {
	query := `DELETE book WHERE author = $author`
	vars := map[string]interface{}{"author": author}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to delete books by author: %w", err)
	}
	return nil
}

// DeleteByTitleAndAuthor removes a book only when both title and author
// match. The author condition guards against deleting a book that has since
// been claimed by a different author.
func (r *BookRepository) DeleteByTitleAndAuthor(ctx context.Context, title, author string) error {
	query := `DELETE book WHERE title = $title AND author = $author`
	vars := map[string]interface{}{
		"title":  title,
		"author": author,
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to delete book by title and author: %w", err)
	}
	return nil
}

// parseBookResult converts a raw query result into a Book
func parseBookResult(result interface{}) (*model.Book, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, fmt.Errorf("failed to parse book: %w", err)
	}

	return &model.Book{
		ID:         convertSurrealID(data["id"]),
		Title:      getString(data, "title"),
		Author:     getString(data, "author"),
		Publisher:  getString(data, "publisher"),
		Category:   getString(data, "category"),
		TotalPages: getInt(data, "total_pages"),
		CreatedOn:  getTime(data, "created_on"),
		UpdatedOn:  getTime(data, "updated_on"),
	}, nil
}
