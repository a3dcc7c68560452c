package handler

import (
	"errors"

	"github.com/shelfkeeper/api/internal/database"
	"github.com/shelfkeeper/api/internal/model"
	"github.com/shelfkeeper/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring
// consistent HTTP status codes and error messages across the API.
//
// Validation and duplicate errors both map to 400; clients see one
// bad-request category for anything wrong with the payload.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())
	case errors.Is(err, service.ErrSessionInvalid),
		errors.Is(err, service.ErrSessionExpired):
		return model.NewUnauthorizedError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrAuthorNotFound):
		return model.NewNotFoundError("author")
	case errors.Is(err, service.ErrBookNotFound):
		return model.NewNotFoundError("book")
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")

	// ===== Duplicate Errors → 400 =====
	case errors.Is(err, service.ErrAuthorExists),
		errors.Is(err, service.ErrUserExists):
		return model.NewConflictError(err.Error())
	// A unique-index violation surfaces directly when two creates race past
	// the service's existence check; same contract as the sentinel above.
	case errors.Is(err, database.ErrDuplicate):
		return model.NewConflictError("resource already exists")

	// ===== Validation Errors → 400 =====
	case errors.Is(err, service.ErrAuthorNameRequired):
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: err.Error()}})
	case errors.Is(err, service.ErrTitleRequired):
		return model.NewValidationError([]model.FieldError{{Field: "title", Message: err.Error()}})
	case errors.Is(err, service.ErrBookAuthorRequired):
		return model.NewValidationError([]model.FieldError{{Field: "author", Message: err.Error()}})
	case errors.Is(err, service.ErrPublisherRequired):
		return model.NewValidationError([]model.FieldError{{Field: "publisher", Message: err.Error()}})
	case errors.Is(err, service.ErrCategoryRequired):
		return model.NewValidationError([]model.FieldError{{Field: "category", Message: err.Error()}})
	case errors.Is(err, service.ErrTotalPagesInvalid):
		return model.NewValidationError([]model.FieldError{{Field: "total_pages", Message: err.Error()}})
	case errors.Is(err, service.ErrUsernameRequired):
		return model.NewValidationError([]model.FieldError{{Field: "username", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidEmail):
		return model.NewValidationError([]model.FieldError{{Field: "email", Message: err.Error()}})
	case errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "password", Message: err.Error()}})

	// ===== OAuth Errors → 400 =====
	case errors.Is(err, service.ErrInvalidAuthCode),
		errors.Is(err, service.ErrExternalProfileInvalid):
		return model.NewBadRequestError(err.Error())

	// ===== Provider/External Errors → 502 =====
	case errors.Is(err, service.ErrProviderUnavailable):
		return model.NewBadGatewayError("identity provider request failed")

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}
