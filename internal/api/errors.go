package api

import (
	"errors"
	"net/http"

	"github.com/bookshelfhq/bookshelf/internal/importer"
	"github.com/bookshelfhq/bookshelf/internal/report"
	"github.com/bookshelfhq/bookshelf/internal/service/auth"
	"github.com/bookshelfhq/bookshelf/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongAudience),
		errors.Is(err, auth.ErrWrongIssuer):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, importer.ErrInvalidFile),
		errors.Is(err, importer.ErrNoDataRows),
		errors.Is(err, importer.ErrHeaderMismatch),
		errors.Is(err, report.ErrNoBooks):
		return http.StatusBadRequest

	// Environment/configuration errors
	case errors.Is(err, importer.ErrStorageNotConfigured):
		return http.StatusInternalServerError

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongAudience),
		errors.Is(err, auth.ErrWrongIssuer):
		return "Invalid token"

	// Not found errors
	case errors.Is(err, store.ErrBookNotFound):
		return "Book not found"

	// Conflict errors
	case errors.Is(err, store.ErrBookExists):
		return "Book already exists"

	// Bad request errors; importer messages are already descriptive and safe.
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid book data"

	case errors.Is(err, importer.ErrInvalidFile),
		errors.Is(err, importer.ErrNoDataRows),
		errors.Is(err, importer.ErrHeaderMismatch):
		return err.Error()

	case errors.Is(err, report.ErrNoBooks):
		return "No books provided in the request body"

	case errors.Is(err, importer.ErrStorageNotConfigured):
		return "Upload storage is not configured"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}
