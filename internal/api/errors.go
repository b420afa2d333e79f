package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/lola-users/internal/query"
)

// MapErrorToStatusCode maps executor errors to HTTP status codes. These are
// failures to obtain a result at all; failures reported by the remote
// operation never reach this function.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, query.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.Is(err, query.ErrUnavailable):
		return "Query service unavailable"
	default:
		return "An unexpected error occurred"
	}
}
