package service

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/shelfkeeper/api/internal/model"
)

const (
	bcryptCost        = 12
	minPasswordLength = 8
	maxPasswordLength = 128
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByGithubID(ctx context.Context, githubID string) (*model.User, error)
	SetGithubID(ctx context.Context, userID, githubID string) error
}

// AuthService handles account registration and credential verification
type AuthService struct {
	userRepo UserRepository
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// RegisterRequest holds local registration data
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ExternalProfile is the provider-agnostic shape of an OAuth profile
type ExternalProfile struct {
	ID       string
	Username string
	Email    string
}

// Register creates a local account. Username and email must both be free;
// either collision reports the same ErrUserExists so callers cannot probe
// which one was taken.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if username == "" {
		return nil, ErrUsernameRequired
	}
	if !emailRegex.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}
	existing, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Hash:     &hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AuthenticateLocal verifies a username/password pair. A missing user,
// a password-less OAuth account and a wrong password are distinct errors
// internally; handlers collapse them into one 401 response.
func (s *AuthService) AuthenticateLocal(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// AuthenticateExternal resolves an OAuth profile to a local user. Match
// order: linked provider id first, then email (which links the provider id
// onto the account), otherwise a fresh password-less account is created.
// The returned bool reports whether the account was created by this call.
func (s *AuthService) AuthenticateExternal(ctx context.Context, profile ExternalProfile) (*model.User, bool, error) {
	if profile.ID == "" {
		return nil, false, ErrExternalProfileInvalid
	}

	user, err := s.userRepo.GetByGithubID(ctx, profile.ID)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		return user, false, nil
	}

	email := strings.ToLower(strings.TrimSpace(profile.Email))
	if email != "" {
		user, err = s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, false, err
		}
		if user != nil {
			if err := s.userRepo.SetGithubID(ctx, user.ID, profile.ID); err != nil {
				return nil, false, err
			}
			githubID := profile.ID
			user.GithubID = &githubID
			return user, false, nil
		}
	}

	username := strings.TrimSpace(profile.Username)
	if username == "" {
		username = "github-" + profile.ID
	}
	githubID := profile.ID
	user = &model.User{
		Username: username,
		Email:    email,
		GithubID: &githubID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// GetUserByID returns a user by record id
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
