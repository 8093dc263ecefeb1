package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized, "invalid or expired token"},
		{"bad credentials", ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{"wrapped role denial", fmt.Errorf("%w: admin required", ErrInsufficientRole), http.StatusForbidden, "insufficient role: admin required"},
		{"not owner", ErrNotOwner, http.StatusForbidden, "not the owner"},
		{"restaurant missing", ErrRestaurantNotFound, http.StatusNotFound, "restaurant not found"},
		{"email conflict", ErrEmailTaken, http.StatusConflict, "email already registered"},
		{"dependents", ErrHasDependents, http.StatusConflict, "cannot delete, dependents exist"},
		{"bad owner", ErrInvalidOwner, http.StatusBadRequest, "invalid owner"},
		{"no fields", ErrNoFields, http.StatusBadRequest, "no fields provided"},
		{"required field", Required("name"), http.StatusBadRequest, "name is required"},
		{"invalid field", fmt.Errorf("decode: %w", Invalid("rating")), http.StatusBadRequest, "invalid rating"},
		{"already mapped", NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot, "short and stout"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "failed to do thing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err, "failed to do thing")
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedMsg, httpErr.Message)
		})
	}
}

func TestInternal_KeepsCauseOutOfResponse(t *testing.T) {
	cause := errors.New("pq: password authentication failed")
	httpErr := Internal("failed to list users", cause)

	assert.ErrorIs(t, httpErr, cause)
	assert.Equal(t, "failed to list users", httpErr.Message)
	assert.Contains(t, httpErr.Error(), "password authentication failed")
}
