package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shelfkeeper/api/internal/model"
)

const (
	githubAuthorizeURL = "https://github.com/login/oauth/authorize"
	githubTokenURL     = "https://github.com/login/oauth/access_token"
	githubAPIBaseURL   = "https://api.github.com"
	githubScopes       = "read:user user:email"
)

// GitHubOAuthConfig holds GitHub OAuth settings
type GitHubOAuthConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

// IsConfigured reports whether GitHub login can be offered
func (c GitHubOAuthConfig) IsConfigured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.CallbackURL != ""
}

// OAuthService drives the GitHub authorization-code flow and hands the
// resulting profile to AuthService for account resolution.
type OAuthService struct {
	config      GitHubOAuthConfig
	authService *AuthService
	httpClient  *http.Client
}

// OAuthServiceConfig holds configuration for the OAuth service
type OAuthServiceConfig struct {
	Config      GitHubOAuthConfig
	AuthService *AuthService
}

// NewOAuthService creates a new OAuth service
func NewOAuthService(cfg OAuthServiceConfig) *OAuthService {
	return &OAuthService{
		config:      cfg.Config,
		authService: cfg.AuthService,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// AuthorizeURL builds the GitHub authorization redirect for a given state
func (s *OAuthService) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", s.config.ClientID)
	q.Set("redirect_uri", s.config.CallbackURL)
	q.Set("scope", githubScopes)
	q.Set("state", state)
	return githubAuthorizeURL + "?" + q.Encode()
}

// githubTokenResponse represents GitHub's token endpoint response
type githubTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
}

// githubUser represents the authenticated user from the GitHub API
type githubUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// githubEmail represents one entry from the user emails endpoint
type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// Authenticate exchanges a callback code for a GitHub profile and resolves
// it to a local user. The returned bool reports whether the account was
// created by this call.
func (s *OAuthService) Authenticate(ctx context.Context, code string) (*model.User, bool, error) {
	token, err := s.exchangeCode(ctx, code)
	if err != nil {
		return nil, false, err
	}

	ghUser, err := s.fetchUser(ctx, token)
	if err != nil {
		return nil, false, err
	}

	email := ghUser.Email
	if email == "" {
		// The profile email is empty when the user marks it private; the
		// emails endpoint still lists it.
		email, err = s.fetchPrimaryEmail(ctx, token)
		if err != nil {
			return nil, false, err
		}
	}

	username := strings.TrimSpace(ghUser.Name)
	if username == "" {
		username = ghUser.Login
	}

	profile := ExternalProfile{
		ID:       strconv.FormatInt(ghUser.ID, 10),
		Username: username,
		Email:    strings.ToLower(email),
	}
	return s.authService.AuthenticateExternal(ctx, profile)
}

// exchangeCode exchanges an authorization code for an access token
func (s *OAuthService) exchangeCode(ctx context.Context, code string) (string, error) {
	data := url.Values{}
	data.Set("code", code)
	data.Set("client_id", s.config.ClientID)
	data.Set("client_secret", s.config.ClientSecret)
	data.Set("redirect_uri", s.config.CallbackURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, githubTokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s", ErrProviderUnavailable, string(body))
	}

	var tokenResp githubTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", err
	}
	if tokenResp.AccessToken == "" {
		// GitHub reports a bad code as a 200 with an error payload
		return "", ErrInvalidAuthCode
	}
	return tokenResp.AccessToken, nil
}

// fetchUser retrieves the authenticated user's profile
func (s *OAuthService) fetchUser(ctx context.Context, token string) (*githubUser, error) {
	body, err := s.apiGet(ctx, token, "/user")
	if err != nil {
		return nil, err
	}

	var user githubUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// fetchPrimaryEmail retrieves the user's primary verified email, if any
func (s *OAuthService) fetchPrimaryEmail(ctx context.Context, token string) (string, error) {
	body, err := s.apiGet(ctx, token, "/user/emails")
	if err != nil {
		return "", err
	}

	var emails []githubEmail
	if err := json.Unmarshal(body, &emails); err != nil {
		return "", err
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	return "", nil
}

// apiGet performs an authenticated GET against the GitHub API
func (s *OAuthService) apiGet(ctx context.Context, token, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, githubAPIBaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrProviderUnavailable, string(body))
	}
	return body, nil
}
