package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFound("social link", "abc"), http.StatusNotFound},
		{"invalid input", NewInvalidInput("bad body", nil), http.StatusBadRequest},
		{"validation", NewValidation("profile", map[string]string{"name": "required"}), http.StatusBadRequest},
		{"invalid state", NewInvalidState("already connecting"), http.StatusConflict},
		{"unauthorized", NewUnauthorized("bad password", nil), http.StatusUnauthorized},
		{"permission", NewPermissionDenied("no creator"), http.StatusForbidden},
		{"wrapped", fmt.Errorf("outer: %w", NewNotFound("draft", "x")), http.StatusNotFound},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToHTTPStatus(tc.err))
		})
	}
}

func TestValidationErrorJSON(t *testing.T) {
	err := NewValidation("profile", map[string]string{"bio": "Bio is required", "name": "Full name is required"})

	body := ToJSON(fmt.Errorf("submit: %w", err))

	assert.Equal(t, "invalid input", body["error"])
	assert.Equal(t, map[string]string{"bio": "Bio is required", "name": "Full name is required"}, body["fields"])
	assert.Contains(t, err.Error(), "bio: Bio is required; name: Full name is required")
}

func TestToJSONHidesUnknownErrors(t *testing.T) {
	body := ToJSON(errors.New("pq: connection refused"))

	assert.Equal(t, ErrInternal.Error(), body["error"])
	assert.NotContains(t, body["message"], "connection refused")
}
