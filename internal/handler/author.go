package handler

import (
	"net/http"

	"github.com/shelfkeeper/api/internal/model"
	"github.com/shelfkeeper/api/internal/service"
)

// AuthorHandler handles author endpoints
type AuthorHandler struct {
	catalogService *service.CatalogService
}

// NewAuthorHandler creates a new author handler
func NewAuthorHandler(catalogService *service.CatalogService) *AuthorHandler {
	return &AuthorHandler{catalogService: catalogService}
}

// List handles GET /authors
func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, err := h.catalogService.ListAuthors(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, authors, nil)
}

// Get handles GET /authors/{id}
func (h *AuthorHandler) Get(w http.ResponseWriter, r *http.Request) {
	author, err := h.catalogService.GetAuthor(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, author, map[string]string{
		"self": "/authors/" + author.ID,
	})
}

// Create handles POST /authors
func (h *AuthorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateAuthorRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	author, err := h.catalogService.CreateAuthor(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusCreated, author, map[string]string{
		"self": "/authors/" + author.ID,
	})
}

// Update handles PUT /authors/{id}
func (h *AuthorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateAuthorRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	author, err := h.catalogService.UpdateAuthor(r.Context(), r.PathValue("id"), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, author, map[string]string{
		"self": "/authors/" + author.ID,
	})
}

// Delete handles DELETE /authors/{id}
func (h *AuthorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogService.DeleteAuthor(r.Context(), r.PathValue("id")); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteNoContent(w)
}
