package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shelfkeeper/api/internal/middleware"
	"github.com/shelfkeeper/api/internal/model"
	"github.com/shelfkeeper/api/internal/service"
	"github.com/shelfkeeper/api/pkg/signer"
)

// In-memory repositories backing the handler tests.

type memAuthorRepo struct {
	authors map[string]*model.Author
	nextID  int
}

func (m *memAuthorRepo) Create(ctx context.Context, author *model.Author) error {
	m.nextID++
	author.ID = fmt.Sprintf("author:%d", m.nextID)
	author.CreatedOn = time.Now()
	author.UpdatedOn = time.Now()
	if author.Books == nil {
		author.Books = []string{}
	}
	m.authors[author.ID] = author
	return nil
}

func (m *memAuthorRepo) GetByID(ctx context.Context, id string) (*model.Author, error) {
	return m.authors[id], nil
}

func (m *memAuthorRepo) GetByName(ctx context.Context, name string) (*model.Author, error) {
	for _, a := range m.authors {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memAuthorRepo) List(ctx context.Context) ([]*model.Author, error) {
	result := make([]*model.Author, 0, len(m.authors))
	for _, a := range m.authors {
		result = append(result, a)
	}
	return result, nil
}

func (m *memAuthorRepo) Update(ctx context.Context, author *model.Author) error {
	m.authors[author.ID] = author
	return nil
}

func (m *memAuthorRepo) Delete(ctx context.Context, id string) error {
	delete(m.authors, id)
	return nil
}

func (m *memAuthorRepo) AppendBook(ctx context.Context, id, title string) error {
	if a, ok := m.authors[id]; ok {
		a.Books = append(a.Books, title)
	}
	return nil
}

func (m *memAuthorRepo) RemoveBook(ctx context.Context, id, title string) error {
	if a, ok := m.authors[id]; ok {
		kept := a.Books[:0]
		for _, t := range a.Books {
			if t != title {
				kept = append(kept, t)
			}
		}
		a.Books = kept
	}
	return nil
}

type memBookRepo struct {
	books  map[string]*model.Book
	nextID int
}

func (m *memBookRepo) Create(ctx context.Context, book *model.Book) error {
	m.nextID++
	book.ID = fmt.Sprintf("book:%d", m.nextID)
	book.CreatedOn = time.Now()
	book.UpdatedOn = time.Now()
	m.books[book.ID] = book
	return nil
}

func (m *memBookRepo) GetByID(ctx context.Context, id string) (*model.Book, error) {
	return m.books[id], nil
}

func (m *memBookRepo) GetByTitle(ctx context.Context, title string) (*model.Book, error) {
	for _, b := range m.books {
		if b.Title == title {
			return b, nil
		}
	}
	return nil, nil
}

func (m *memBookRepo) List(ctx context.Context) ([]*model.Book, error) {
	result := make([]*model.Book, 0, len(m.books))
	for _, b := range m.books {
		result = append(result, b)
	}
	return result, nil
}

func (m *memBookRepo) Update(ctx context.Context, book *model.Book) error {
	m.books[book.ID] = book
	return nil
}

func (m *memBookRepo) SetAuthor(ctx context.Context, id, author string) error {
	if b, ok := m.books[id]; ok {
		b.Author = author
	}
	return nil
}

func (m *memBookRepo) Delete(ctx context.Context, id string) error {
	delete(m.books, id)
	return nil
}

func (m *memBookRepo) DeleteByAuthor(ctx context.Context, author string) error {
	for id, b := range m.books {
		if b.Author == author {
			delete(m.books, id)
		}
	}
	return nil
}

func (m *memBookRepo) DeleteByTitleAndAuthor(ctx context.Context, title, author string) error {
	for id, b := range m.books {
		if b.Title == title && b.Author == author {
			delete(m.books, id)
		}
	}
	return nil
}

type memUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func (m *memUserRepo) Create(ctx context.Context, user *model.User) error {
	m.nextID++
	user.ID = fmt.Sprintf("user:%d", m.nextID)
	user.CreatedOn = time.Now()
	user.UpdatedOn = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return m.users[id], nil
}

func (m *memUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetByGithubID(ctx context.Context, githubID string) (*model.User, error) {
	for _, u := range m.users {
		if u.GithubID != nil && *u.GithubID == githubID {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) SetGithubID(ctx context.Context, userID, githubID string) error {
	if u, ok := m.users[userID]; ok {
		u.GithubID = &githubID
	}
	return nil
}

type memSessionRepo struct {
	sessions map[string]*model.Session
	nextID   int
}

func (m *memSessionRepo) Create(ctx context.Context, userID string, expiresOn time.Time) (*model.Session, error) {
	m.nextID++
	session := &model.Session{
		ID:        fmt.Sprintf("session:%d", m.nextID),
		UserID:    userID,
		CreatedOn: time.Now(),
		ExpiresOn: expiresOn,
	}
	m.sessions[session.ID] = session
	return session, nil
}

func (m *memSessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	return m.sessions[id], nil
}

func (m *memSessionRepo) Delete(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *memSessionRepo) DeleteExpired(ctx context.Context) error {
	return nil
}

// testEnv wires the full route table over in-memory repositories, so the
// tests cover routing, session middleware and handlers together.
type testEnv struct {
	server *httptest.Server
	client *http.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	authorRepo := &memAuthorRepo{authors: make(map[string]*model.Author)}
	bookRepo := &memBookRepo{books: make(map[string]*model.Book)}
	userRepo := &memUserRepo{users: make(map[string]*model.User)}
	sessionRepo := &memSessionRepo{sessions: make(map[string]*model.Session)}

	catalogService := service.NewCatalogService(service.CatalogServiceConfig{
		AuthorRepo: authorRepo,
		BookRepo:   bookRepo,
	})
	authService := service.NewAuthService(userRepo)
	sessionService := service.NewSessionService(service.SessionServiceConfig{
		SessionRepo: sessionRepo,
		UserRepo:    userRepo,
		TTL:         time.Hour,
	})

	cookie := middleware.NewSessionCookie(middleware.SessionCookieConfig{
		Name:   "test_session",
		TTL:    time.Hour,
		Signer: signer.New("test-secret-at-least-32-characters!!"),
	})

	authorHandler := NewAuthorHandler(catalogService)
	bookHandler := NewBookHandler(catalogService)
	authHandler := NewAuthHandler(AuthHandlerConfig{
		AuthService:    authService,
		SessionService: sessionService,
		Cookie:         cookie,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)

	sessionAuth := middleware.SessionAuth(cookie, sessionService)
	mux.Handle("POST /auth/logout", sessionAuth(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /auth/me", sessionAuth(http.HandlerFunc(authHandler.Me)))

	mux.HandleFunc("GET /authors", authorHandler.List)
	mux.HandleFunc("GET /authors/{id}", authorHandler.Get)
	mux.Handle("POST /authors", sessionAuth(http.HandlerFunc(authorHandler.Create)))
	mux.Handle("PUT /authors/{id}", sessionAuth(http.HandlerFunc(authorHandler.Update)))
	mux.Handle("DELETE /authors/{id}", sessionAuth(http.HandlerFunc(authorHandler.Delete)))

	mux.HandleFunc("GET /books", bookHandler.List)
	mux.HandleFunc("GET /books/{id}", bookHandler.Get)
	mux.Handle("POST /books", sessionAuth(http.HandlerFunc(bookHandler.Create)))
	mux.Handle("PUT /books/{id}", sessionAuth(http.HandlerFunc(bookHandler.Update)))
	mux.Handle("DELETE /books/{id}", sessionAuth(http.HandlerFunc(bookHandler.Delete)))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		server: server,
		client: &http.Client{Jar: jar},
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()

	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&wrapper))
	require.NoError(t, json.Unmarshal(wrapper.Data, v))
}

// register and log in a user, leaving the session cookie on the jar
func (e *testEnv) login(t *testing.T) {
	t.Helper()

	resp := e.do(t, http.MethodPost, "/auth/register", map[string]string{
		"username": "tester",
		"email":    "tester@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = e.do(t, http.MethodPost, "/auth/login", map[string]string{
		"username": "tester",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
