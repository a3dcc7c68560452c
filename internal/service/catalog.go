package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shelfkeeper/api/internal/model"
)

// AuthorRepository defines the interface for author storage
type AuthorRepository interface {
	Create(ctx context.Context, author *model.Author) error
	GetByID(ctx context.Context, id string) (*model.Author, error)
	GetByName(ctx context.Context, name string) (*model.Author, error)
	List(ctx context.Context) ([]*model.Author, error)
	Update(ctx context.Context, author *model.Author) error
	Delete(ctx context.Context, id string) error
	AppendBook(ctx context.Context, id, title string) error
	RemoveBook(ctx context.Context, id, title string) error
}

// BookRepository defines the interface for book storage
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id string) (*model.Book, error)
	GetByTitle(ctx context.Context, title string) (*model.Book, error)
	List(ctx context.Context) ([]*model.Book, error)
	Update(ctx context.Context, book *model.Book) error
	SetAuthor(ctx context.Context, id, author string) error
	Delete(ctx context.Context, id string) error
	DeleteByAuthor(ctx context.Context, author string) error
	DeleteByTitleAndAuthor(ctx context.Context, title, author string) error
}

// CatalogService manages authors and books and keeps their denormalized
// link consistent. Author.Books holds titles; Book.Author holds the
// author's name. Each mutation applies its corrective writes as separate
// steps, so a mid-sequence failure leaves the applied steps in place.
type CatalogService struct {
	authorRepo AuthorRepository
	bookRepo   BookRepository
}

// CatalogServiceConfig holds catalog service dependencies
type CatalogServiceConfig struct {
	AuthorRepo AuthorRepository
	BookRepo   BookRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(cfg CatalogServiceConfig) *CatalogService {
	return &CatalogService{
		authorRepo: cfg.AuthorRepo,
		bookRepo:   cfg.BookRepo,
	}
}

// CreateAuthorRequest holds author creation data
type CreateAuthorRequest struct {
	Name  string   `json:"name"`
	Books []string `json:"books"`
}

// UpdateAuthorRequest holds author update data. Books is the full desired
// title list; the diff against the stored list drives book sync.
type UpdateAuthorRequest struct {
	Name  string   `json:"name"`
	Books []string `json:"books"`
}

// CreateBookRequest holds book creation data
type CreateBookRequest struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Publisher  string `json:"publisher"`
	Category   string `json:"category"`
	TotalPages int    `json:"total_pages"`
}

// UpdateBookRequest holds book update data
type UpdateBookRequest struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Publisher  string `json:"publisher"`
	Category   string `json:"category"`
	TotalPages int    `json:"total_pages"`
}

// ListAuthors returns all authors
func (s *CatalogService) ListAuthors(ctx context.Context) ([]*model.Author, error) {
	return s.authorRepo.List(ctx)
}

// GetAuthor returns a single author by id
func (s *CatalogService) GetAuthor(ctx context.Context, id string) (*model.Author, error) {
	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrAuthorNotFound
	}
	return author, nil
}

// CreateAuthor creates an author and upserts a book record for every title
// in the initial list. Name uniqueness is checked case-insensitively.
func (s *CatalogService) CreateAuthor(ctx context.Context, req CreateAuthorRequest) (*model.Author, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrAuthorNameRequired
	}

	existing, err := s.authorRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAuthorExists
	}

	author := &model.Author{
		Name:  name,
		Books: copyTitles(req.Books),
	}
	if err := s.authorRepo.Create(ctx, author); err != nil {
		return nil, err
	}

	for _, title := range author.Books {
		if err := s.upsertBookForAuthor(ctx, title, name); err != nil {
			return nil, fmt.Errorf("failed to sync book %q: %w", title, err)
		}
	}

	return author, nil
}

// UpdateAuthor replaces an author's name and book list. Titles removed from
// the list have their book deleted, but only while the book still names this
// author; titles added get a book upserted under the new name.
func (s *CatalogService) UpdateAuthor(ctx context.Context, id string, req UpdateAuthorRequest) (*model.Author, error) {
	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrAuthorNotFound
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrAuthorNameRequired
	}

	oldName := author.Name
	newBooks := copyTitles(req.Books)
	removed := titleDifference(author.Books, newBooks)
	added := titleDifference(newBooks, author.Books)

	for _, title := range removed {
		if err := s.bookRepo.DeleteByTitleAndAuthor(ctx, title, oldName); err != nil {
			return nil, fmt.Errorf("failed to remove book %q: %w", title, err)
		}
	}
	for _, title := range added {
		if err := s.upsertBookForAuthor(ctx, title, name); err != nil {
			return nil, fmt.Errorf("failed to sync book %q: %w", title, err)
		}
	}

	author.Name = name
	author.Books = newBooks
	if err := s.authorRepo.Update(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// DeleteAuthor removes an author and cascades to every book naming them
func (s *CatalogService) DeleteAuthor(ctx context.Context, id string) error {
	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if author == nil {
		return ErrAuthorNotFound
	}

	if err := s.authorRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.bookRepo.DeleteByAuthor(ctx, author.Name)
}

// ListBooks returns all books
func (s *CatalogService) ListBooks(ctx context.Context) ([]*model.Book, error) {
	return s.bookRepo.List(ctx)
}

// GetBook returns a single book by id
func (s *CatalogService) GetBook(ctx context.Context, id string) (*model.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// CreateBook creates a book and reflects the title into the matching
// author's book list, creating the author when no name matches. The append
// is unconditional, so repeated creates under the same title accumulate
// duplicate entries.
func (s *CatalogService) CreateBook(ctx context.Context, req CreateBookRequest) (*model.Book, error) {
	if err := validateBookRequest(req.Title, req.Author, req.Publisher, req.Category, req.TotalPages); err != nil {
		return nil, err
	}

	book := &model.Book{
		Title:      strings.TrimSpace(req.Title),
		Author:     strings.TrimSpace(req.Author),
		Publisher:  strings.TrimSpace(req.Publisher),
		Category:   strings.TrimSpace(req.Category),
		TotalPages: req.TotalPages,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	if err := s.attachTitleToAuthor(ctx, book.Author, book.Title); err != nil {
		return nil, fmt.Errorf("failed to sync author for %q: %w", book.Title, err)
	}
	return book, nil
}

// UpdateBook replaces a book's fields. When the author name changes, the
// old title is pulled from the previous author's list and the new title is
// attached to the new author. An unchanged author leaves both lists alone,
// even if the title changed.
func (s *CatalogService) UpdateBook(ctx context.Context, id string, req UpdateBookRequest) (*model.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}

	if err := validateBookRequest(req.Title, req.Author, req.Publisher, req.Category, req.TotalPages); err != nil {
		return nil, err
	}

	oldTitle := book.Title
	oldAuthor := book.Author

	book.Title = strings.TrimSpace(req.Title)
	book.Author = strings.TrimSpace(req.Author)
	book.Publisher = strings.TrimSpace(req.Publisher)
	book.Category = strings.TrimSpace(req.Category)
	book.TotalPages = req.TotalPages
	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	if oldAuthor != book.Author {
		previous, err := s.authorRepo.GetByName(ctx, oldAuthor)
		if err != nil {
			return nil, err
		}
		if previous != nil {
			if err := s.authorRepo.RemoveBook(ctx, previous.ID, oldTitle); err != nil {
				return nil, fmt.Errorf("failed to detach %q from previous author: %w", oldTitle, err)
			}
		}
		if err := s.attachTitleToAuthor(ctx, book.Author, book.Title); err != nil {
			return nil, fmt.Errorf("failed to sync author for %q: %w", book.Title, err)
		}
	}

	return book, nil
}

// DeleteBook removes a book and pulls its title from the author's list
func (s *CatalogService) DeleteBook(ctx context.Context, id string) error {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if book == nil {
		return ErrBookNotFound
	}

	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return err
	}

	author, err := s.authorRepo.GetByName(ctx, book.Author)
	if err != nil {
		return err
	}
	if author == nil {
		return nil
	}
	return s.authorRepo.RemoveBook(ctx, author.ID, book.Title)
}

// upsertBookForAuthor makes sure a book record exists for a title owned by
// an author. An existing book only has its author field overwritten; its
// metadata survives. A missing book becomes a shell record holding just
// title and author.
func (s *CatalogService) upsertBookForAuthor(ctx context.Context, title, author string) error {
	existing, err := s.bookRepo.GetByTitle(ctx, title)
	if err != nil {
		return err
	}
	if existing != nil {
		return s.bookRepo.SetAuthor(ctx, existing.ID, author)
	}
	return s.bookRepo.Create(ctx, &model.Book{Title: title, Author: author})
}

// attachTitleToAuthor appends a title to the named author's list, creating
// the author when no record matches the name (case-insensitively).
func (s *CatalogService) attachTitleToAuthor(ctx context.Context, name, title string) error {
	author, err := s.authorRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if author != nil {
		return s.authorRepo.AppendBook(ctx, author.ID, title)
	}
	return s.authorRepo.Create(ctx, &model.Author{Name: name, Books: []string{title}})
}

func validateBookRequest(title, author, publisher, category string, totalPages int) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(author) == "" {
		return ErrBookAuthorRequired
	}
	if strings.TrimSpace(publisher) == "" {
		return ErrPublisherRequired
	}
	if strings.TrimSpace(category) == "" {
		return ErrCategoryRequired
	}
	if totalPages <= 0 {
		return ErrTotalPagesInvalid
	}
	return nil
}

// copyTitles trims titles, drops empties and returns a non-nil slice
func copyTitles(titles []string) []string {
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// titleDifference returns the titles present in a but absent from b
func titleDifference(a, b []string) []string {
	present := make(map[string]bool, len(b))
	for _, t := range b {
		present[t] = true
	}
	var out []string
	for _, t := range a {
		if !present[t] {
			out = append(out, t)
		}
	}
	return out
}
