package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfkeeper/api/internal/model"
)

func TestAuthors_WritesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/authors"},
		{http.MethodPut, "/authors/author:1"},
		{http.MethodDelete, "/authors/author:1"},
	}

	for _, tt := range tests {
		resp := env.do(t, tt.method, tt.path, map[string]interface{}{"name": "A"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", tt.method, tt.path)
		resp.Body.Close()
	}
}

func TestAuthors_ReadsArePublic(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	resp := env.do(t, http.MethodPost, "/authors", map[string]interface{}{"name": "Ursula K. Le Guin"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created model.Author
	decodeData(t, resp, &created)

	// No cookie jar on the default client, so these requests carry no session
	resp, err := http.Get(env.server.URL + "/authors")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(env.server.URL + "/authors/" + created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAuthors_CRUD(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	// Create
	resp := env.do(t, http.MethodPost, "/authors", map[string]interface{}{
		"name":  "Octavia Butler",
		"books": []string{"Kindred"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created model.Author
	decodeData(t, resp, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Octavia Butler", created.Name)
	assert.Equal(t, []string{"Kindred"}, created.Books)

	// The initial book list materialized as a book record
	resp = env.do(t, http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var books []model.Book
	decodeData(t, resp, &books)
	require.Len(t, books, 1)
	assert.Equal(t, "Kindred", books[0].Title)
	assert.Equal(t, "Octavia Butler", books[0].Author)

	// Get
	resp = env.do(t, http.MethodGet, "/authors/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched model.Author
	decodeData(t, resp, &fetched)
	assert.Equal(t, created.ID, fetched.ID)

	// Update
	resp = env.do(t, http.MethodPut, "/authors/"+created.ID, map[string]interface{}{
		"name":  "Octavia E. Butler",
		"books": []string{"Kindred", "Parable of the Sower"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated model.Author
	decodeData(t, resp, &updated)
	assert.Equal(t, "Octavia E. Butler", updated.Name)
	assert.Len(t, updated.Books, 2)

	// Delete cascades to books
	resp = env.do(t, http.MethodDelete, "/authors/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/authors/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAuthors_DuplicateNameIsBadRequest(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	resp := env.do(t, http.MethodPost, "/authors", map[string]interface{}{"name": "Same Name"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/authors", map[string]interface{}{"name": "same name"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAuthors_MissingNameIsBadRequest(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	resp := env.do(t, http.MethodPost, "/authors", map[string]interface{}{"name": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAuthors_GetMissingIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	resp := env.do(t, http.MethodGet, "/authors/author:missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
