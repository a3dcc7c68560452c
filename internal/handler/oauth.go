package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/shelfkeeper/api/internal/middleware"
	"github.com/shelfkeeper/api/internal/model"
	"github.com/shelfkeeper/api/internal/service"
)

const (
	stateCookieName = "oauth_state"
	stateCookieTTL  = 10 * time.Minute
)

// OAuthHandler handles the GitHub login flow
type OAuthHandler struct {
	oauthService   *service.OAuthService
	sessionService *service.SessionService
	cookie         *middleware.SessionCookie
}

// OAuthHandlerConfig holds OAuth handler dependencies
type OAuthHandlerConfig struct {
	OAuthService   *service.OAuthService
	SessionService *service.SessionService
	Cookie         *middleware.SessionCookie
}

// NewOAuthHandler creates a new OAuth handler
func NewOAuthHandler(cfg OAuthHandlerConfig) *OAuthHandler {
	return &OAuthHandler{
		oauthService:   cfg.OAuthService,
		sessionService: cfg.SessionService,
		cookie:         cfg.Cookie,
	}
}

// Authorize handles GET /github. It parks a random state value in a
// short-lived cookie and redirects to GitHub.
func (h *OAuthHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.oauthService.AuthorizeURL(state), http.StatusFound)
}

// Callback handles GET /github/callback. The state parameter must match
// the cookie set by Authorize; on success a session opens and the signed
// session cookie is issued, same as a local login.
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		WriteError(w, model.NewUnauthorizedError("OAuth state mismatch"))
		return
	}
	h.clearStateCookie(w)

	code := r.URL.Query().Get("code")
	if code == "" {
		WriteError(w, model.NewBadRequestError("Missing authorization code"))
		return
	}

	user, _, err := h.oauthService.Authenticate(r.Context(), code)
	if err != nil {
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

func (h *OAuthHandler) clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
