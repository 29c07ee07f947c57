package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/inoUwU/todo-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Timeout errors
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}
