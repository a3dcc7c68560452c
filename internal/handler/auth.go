package handler

import (
	"errors"
	"net/http"

	"github.com/shelfkeeper/api/internal/middleware"
	"github.com/shelfkeeper/api/internal/model"
	"github.com/shelfkeeper/api/internal/service"
)

// AuthHandler handles registration, login and session endpoints
type AuthHandler struct {
	authService    *service.AuthService
	sessionService *service.SessionService
	cookie         *middleware.SessionCookie
}

// AuthHandlerConfig holds auth handler dependencies
type AuthHandlerConfig struct {
	AuthService    *service.AuthService
	SessionService *service.SessionService
	Cookie         *middleware.SessionCookie
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		authService:    cfg.AuthService,
		sessionService: cfg.SessionService,
		cookie:         cfg.Cookie,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusCreated, user, nil)
}

// loginRequest holds login credentials
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /auth/login. A missing user and a wrong password
// produce the same response so credentials cannot be probed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	user, err := h.authService.AuthenticateLocal(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrInvalidCredentials) {
			WriteError(w, model.NewUnauthorizedError("Invalid username or password"))
			return
		}
		WriteError(w, MapServiceError(err))
		return
	}

	session, err := h.sessionService.Open(r.Context(), user)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	h.cookie.Set(w, session.ID)
	WriteData(w, http.StatusOK, user, nil)
}

// Logout handles POST /auth/logout. Runs behind SessionAuth, so the
// session id is always on the context.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	if sessionID != "" {
		if err := h.sessionService.Destroy(r.Context(), sessionID); err != nil {
			WriteError(w, MapServiceError(err))
			return
		}
	}
	h.cookie.Clear(w)
	WriteNoContent(w)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		WriteError(w, model.NewUnauthorizedError("Authentication required"))
		return
	}
	WriteData(w, http.StatusOK, user, nil)
}
