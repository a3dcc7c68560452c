package model

import "time"

// User represents a user account.
//
// A user has at least one of a password hash (local account) or a GitHub id
// (OAuth account). OAuth-only accounts carry no hash and may carry no email
// when the provider profile withholds it.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Hash      *string   `json:"-"` // Never expose password hash
	GithubID  *string   `json:"github_id,omitempty"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// HasPassword returns true if the user can authenticate locally
func (u *User) HasPassword() bool {
	return u.Hash != nil && *u.Hash != ""
}

// HasExternalIdentity returns true if the user is linked to a GitHub account
func (u *User) HasExternalIdentity() bool {
	return u.GithubID != nil && *u.GithubID != ""
}

// Session represents a server-side login session.
//
// The session id is the opaque value carried (signed) in the session cookie.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedOn time.Time `json:"created_on"`
	ExpiresOn time.Time `json:"expires_on"`
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresOn.IsZero() && now.After(s.ExpiresOn)
}
