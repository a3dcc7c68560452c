package service

import "errors"

// Catalog errors
var (
	ErrAuthorNotFound     = errors.New("author not found")
	ErrAuthorExists       = errors.New("author already exists")
	ErrAuthorNameRequired = errors.New("author name is required")
	ErrBookNotFound       = errors.New("book not found")
	ErrTitleRequired      = errors.New("book title is required")
	ErrBookAuthorRequired = errors.New("book author is required")
	ErrPublisherRequired  = errors.New("book publisher is required")
	ErrCategoryRequired   = errors.New("book category is required")
	ErrTotalPagesInvalid  = errors.New("total pages must be a positive number")
)

// Account errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username or email already registered")
	ErrUsernameRequired   = errors.New("username is required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Session errors
var (
	ErrSessionInvalid = errors.New("session is invalid")
	ErrSessionExpired = errors.New("session has expired")
)

// External provider errors
var (
	ErrInvalidAuthCode        = errors.New("invalid authorization code")
	ErrProviderUnavailable    = errors.New("identity provider request failed")
	ErrExternalProfileInvalid = errors.New("external profile is missing an account id")
)
