package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"cloudstore/internal/domain"
)

// teapotError is a domain error carrying its own status
type teapotError struct{}

func (teapotError) Error() string   { return "short and stout" }
func (teapotError) StatusCode() int { return http.StatusTeapot }

func TestHandleError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"validation fields", domain.NewValidationError("name", "cannot be blank"), http.StatusBadRequest, "name: cannot be blank"},
		{"not found hides detail", fmt.Errorf("folder x: %w", domain.ErrNotFound), http.StatusNotFound, "not found"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "invalid credentials"},
		{"integrity", &domain.IntegrityError{Message: "the root folder cannot be deleted"}, http.StatusConflict, "the root folder cannot be deleted"},
		{"wrapped conflict", fmt.Errorf("create: %w", &domain.ConflictError{Message: "taken"}), http.StatusConflict, "taken"},
		{"status from error", fmt.Errorf("brew: %w", teapotError{}), http.StatusTeapot, "short and stout"},
		{"body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge, "request body too large"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handleError(w, logger, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := problem(t, w)
			assert.Equal(t, tt.wantDetail, body["detail"])
		})
	}
}
