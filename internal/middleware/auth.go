package middleware

import (
	"context"
	"net/http"

	"github.com/shelfkeeper/api/internal/model"
)

// SessionResolver resolves a session id to its user
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*model.User, error)
}

// SessionAuth requires a valid session cookie. A missing, tampered,
// unknown or expired session all produce the same 401; the request context
// gains the resolved user on success.
func SessionAuth(cookie *SessionCookie, sessions SessionResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, err := cookie.Read(r)
			if err != nil {
				model.NewUnauthorizedError("Authentication required").WriteJSON(w)
				return
			}

			user, err := sessions.Resolve(r.Context(), sessionID)
			if err != nil {
				model.NewUnauthorizedError("Session is invalid or expired").WriteJSON(w)
				return
			}

			ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
			ctx = context.WithValue(ctx, UserIDKey, user.ID)
			ctx = context.WithValue(ctx, UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user's id from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetUser extracts the authenticated user from context
func GetUser(ctx context.Context) *model.User {
	if user, ok := ctx.Value(UserKey).(*model.User); ok {
		return user
	}
	return nil
}

// GetSessionID extracts the current session id from context
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(SessionIDKey).(string); ok {
		return id
	}
	return ""
}
