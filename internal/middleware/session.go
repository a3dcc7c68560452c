package middleware

import (
	"net/http"
	"time"

	"github.com/shelfkeeper/api/pkg/signer"
)

// SessionCookie writes and reads the signed session cookie. Only the
// session id crosses the wire; the signature stops tampering but carries
// no user data.
type SessionCookie struct {
	name   string
	ttl    time.Duration
	secure bool
	signer *signer.Signer
}

// SessionCookieConfig holds session cookie settings
type SessionCookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
	Signer *signer.Signer
}

// NewSessionCookie creates a session cookie manager
func NewSessionCookie(cfg SessionCookieConfig) *SessionCookie {
	return &SessionCookie{
		name:   cfg.Name,
		ttl:    cfg.TTL,
		secure: cfg.Secure,
		signer: cfg.Signer,
	}
}

// Set writes the signed session id onto the response
func (c *SessionCookie) Set(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    c.signer.Sign(sessionID),
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie
func (c *SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read extracts and verifies the session id from the request.
// http.ErrNoCookie passes through when the cookie is absent.
func (c *SessionCookie) Read(r *http.Request) (string, error) {
	cookie, err := r.Cookie(c.name)
	if err != nil {
		return "", err
	}
	return c.signer.Verify(cookie.Value)
}
