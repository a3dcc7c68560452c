package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shelfkeeper/api/internal/model"
	"github.com/shelfkeeper/api/internal/service"
	"github.com/shelfkeeper/api/pkg/signer"
)

func newTestCookie() *SessionCookie {
	return NewSessionCookie(SessionCookieConfig{
		Name:   "test_session",
		TTL:    time.Hour,
		Signer: signer.New("test-secret-at-least-32-characters!!"),
	})
}

func TestSessionCookie_SetRead_RoundTrip(t *testing.T) {
	cookie := newTestCookie()

	rec := httptest.NewRecorder()
	cookie.Set(rec, "session:abc")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	got, err := cookie.Read(req)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "session:abc" {
		t.Errorf("got %q", got)
	}
}

func TestSessionCookie_SetAttributes(t *testing.T) {
	cookie := newTestCookie()

	rec := httptest.NewRecorder()
	cookie.Set(rec, "session:abc")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if !c.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Error("expected SameSite=Lax")
	}
	if c.MaxAge != int(time.Hour.Seconds()) {
		t.Errorf("MaxAge = %d", c.MaxAge)
	}
	if c.Value == "session:abc" {
		t.Error("expected signed value, got the raw session id")
	}
}

func TestSessionCookie_Clear(t *testing.T) {
	cookie := newTestCookie()

	rec := httptest.NewRecorder()
	cookie.Clear(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("expected MaxAge -1, got %d", cookies[0].MaxAge)
	}
}

func TestSessionCookie_Read_Tampered(t *testing.T) {
	cookie := newTestCookie()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: "session:abc.bogus-signature"})

	if _, err := cookie.Read(req); err == nil {
		t.Error("expected error for tampered cookie")
	}
}

type stubResolver struct {
	user *model.User
	err  error
	got  string
}

func (s *stubResolver) Resolve(ctx context.Context, sessionID string) (*model.User, error) {
	s.got = sessionID
	return s.user, s.err
}

func TestSessionAuth_ValidSession(t *testing.T) {
	cookie := newTestCookie()
	resolver := &stubResolver{user: &model.User{ID: "user:1", Username: "reader"}}

	var gotUser *model.User
	var gotSessionID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = GetUser(r.Context())
		gotSessionID = GetSessionID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	cookie.Set(rec, "session:abc")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	out := httptest.NewRecorder()
	SessionAuth(cookie, resolver)(next).ServeHTTP(out, req)

	if out.Code != http.StatusOK {
		t.Fatalf("status = %d", out.Code)
	}
	if resolver.got != "session:abc" {
		t.Errorf("resolver saw %q", resolver.got)
	}
	if gotUser == nil || gotUser.ID != "user:1" {
		t.Errorf("context user = %+v", gotUser)
	}
	if gotSessionID != "session:abc" {
		t.Errorf("context session id = %q", gotSessionID)
	}
}

func TestSessionAuth_Rejections(t *testing.T) {
	cookie := newTestCookie()

	makeSignedRequest := func() *http.Request {
		rec := httptest.NewRecorder()
		cookie.Set(rec, "session:abc")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range rec.Result().Cookies() {
			req.AddCookie(c)
		}
		return req
	}

	tests := []struct {
		name     string
		resolver SessionResolver
		request  *http.Request
	}{
		{
			name:     "no cookie",
			resolver: &stubResolver{user: &model.User{ID: "user:1"}},
			request:  httptest.NewRequest(http.MethodGet, "/", nil),
		},
		{
			name:     "invalid session",
			resolver: &stubResolver{err: service.ErrSessionInvalid},
			request:  makeSignedRequest(),
		},
		{
			name:     "expired session",
			resolver: &stubResolver{err: service.ErrSessionExpired},
			request:  makeSignedRequest(),
		},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for rejected requests")
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := httptest.NewRecorder()
			SessionAuth(cookie, tt.resolver)(next).ServeHTTP(out, tt.request)
			if out.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", out.Code)
			}
		})
	}
}
