package service

import (
	"context"
	"time"

	"github.com/shelfkeeper/api/internal/model"
)

// SessionRepository defines the interface for session storage
type SessionRepository interface {
	Create(ctx context.Context, userID string, expiresOn time.Time) (*model.Session, error)
	GetByID(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) error
}

// SessionService manages server-side login sessions. A session stores only
// the serialized user reference; every resolve deserializes it back into a
// full user, so stale accounts drop out as soon as the user record is gone.
type SessionService struct {
	sessionRepo SessionRepository
	userRepo    UserRepository
	ttl         time.Duration
}

// SessionServiceConfig holds session service dependencies
type SessionServiceConfig struct {
	SessionRepo SessionRepository
	UserRepo    UserRepository
	TTL         time.Duration
}

// NewSessionService creates a new session service
func NewSessionService(cfg SessionServiceConfig) *SessionService {
	return &SessionService{
		sessionRepo: cfg.SessionRepo,
		userRepo:    cfg.UserRepo,
		ttl:         cfg.TTL,
	}
}

// Serialize reduces a user to the reference stored inside a session
func (s *SessionService) Serialize(user *model.User) string {
	return user.ID
}

// Deserialize resolves a stored reference back to a full user
func (s *SessionService) Deserialize(ctx context.Context, ref string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, ref)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrSessionInvalid
	}
	return user, nil
}

// Open creates a new session for an authenticated user
func (s *SessionService) Open(ctx context.Context, user *model.User) (*model.Session, error) {
	return s.sessionRepo.Create(ctx, s.Serialize(user), time.Now().Add(s.ttl))
}

// Resolve looks up a session id and returns its user. Expired sessions are
// deleted on sight.
func (s *SessionService) Resolve(ctx context.Context, sessionID string) (*model.User, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionInvalid
	}
	if session.Expired(time.Now()) {
		_ = s.sessionRepo.Delete(ctx, session.ID)
		return nil, ErrSessionExpired
	}
	return s.Deserialize(ctx, session.UserID)
}

// Destroy removes a session
func (s *SessionService) Destroy(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// PurgeExpired removes all expired sessions
func (s *SessionService) PurgeExpired(ctx context.Context) error {
	return s.sessionRepo.DeleteExpired(ctx)
}
