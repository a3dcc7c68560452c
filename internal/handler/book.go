package handler

import (
	"net/http"

	"github.com/shelfkeeper/api/internal/model"
	"github.com/shelfkeeper/api/internal/service"
)

// BookHandler handles book endpoints
type BookHandler struct {
	catalogService *service.CatalogService
}

// NewBookHandler creates a new book handler
func NewBookHandler(catalogService *service.CatalogService) *BookHandler {
	return &BookHandler{catalogService: catalogService}
}

// List handles GET /books
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalogService.ListBooks(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, books, nil)
}

// Get handles GET /books/{id}
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.catalogService.GetBook(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, book, map[string]string{
		"self": "/books/" + book.ID,
	})
}

// Create handles POST /books
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBookRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	book, err := h.catalogService.CreateBook(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusCreated, book, map[string]string{
		"self": "/books/" + book.ID,
	})
}

// Update handles PUT /books/{id}
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateBookRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	book, err := h.catalogService.UpdateBook(r.Context(), r.PathValue("id"), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, book, map[string]string{
		"self": "/books/" + book.ID,
	})
}

// Delete handles DELETE /books/{id}
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogService.DeleteBook(r.Context(), r.PathValue("id")); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteNoContent(w)
}
