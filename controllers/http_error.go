package controllers

import (
	"errors"
	"net/http"

	"nutrilog/services"
)

// statusForError maps the service failure taxonomy to HTTP statuses. All of
// these are recoverable; none trigger a retry server-side.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidSource),
		errors.Is(err, services.ErrNoServings),
		errors.Is(err, services.ErrIncompleteNutrition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrRemoteUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
