package handler

import (
	"context"
	"net/http"

	"github.com/shelfkeeper/api/internal/model"
)

// Pinger reports database liveness
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the health endpoint
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		WriteError(w, model.NewInternalError("database unreachable"))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
