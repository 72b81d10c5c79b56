package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"cloudstore/internal/domain"
	"cloudstore/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Not-found details
// are generic, so a foreign resource cannot be told apart from a missing one.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var (
		validationErr *domain.ValidationError
		httpErr       domain.HTTPError
		maxBytesErr   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &validationErr):
		var extras map[string]interface{}
		if len(validationErr.Fields) > 0 {
			extras = map[string]interface{}{"fields": validationErr.Fields}
		}
		httputil.RespondErrorWithExtras(w, validationErr.StatusCode(), validationErr.Error(), extras)
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.As(err, &httpErr):
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
	case errors.As(err, &maxBytesErr):
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
	default:
		logger.Error("request failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requireUser returns the authenticated user id or writes a 401
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication credentials were not provided")
		return "", false
	}
	return userID, true
}
