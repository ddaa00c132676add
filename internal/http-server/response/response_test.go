package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/telegram-suite/identity-hub/internal/domain"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"conflict", domain.ErrConflict, http.StatusConflict},
		{"invalid data", domain.ErrInvalidData, http.StatusBadRequest},
		{"invalid event", domain.ErrInvalidEvent, http.StatusBadRequest},
		{"denied", domain.ErrDenied, http.StatusUnauthorized},
		{"unavailable", domain.ErrUnavailable, http.StatusServiceUnavailable},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("storage.GetUser: %w", domain.ErrNotFound), http.StatusNotFound},
		{"wrapped conflict", fmt.Errorf("subscription.Subscribe: %w", domain.ErrConflict), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusCode(tt.err))
		})
	}
}

func TestResponses(t *testing.T) {
	assert.Equal(t, Response{Status: StatusOK}, OK())
	assert.Equal(t, Response{Status: StatusOK, Data: 42}, OKWithData(42))
	assert.Equal(t, Response{Status: StatusError, Error: "boom"}, Error("boom"))
}
