package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Is_MatchesByCode(t *testing.T) {
	err := NotFoundf("no contact matching %q", "Smith")
	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrAmbiguous))
}

func TestError_Is_ThroughWrapping(t *testing.T) {
	inner := Ambiguous("multiple contacts match")
	wrapped := fmt.Errorf("dispatch failed: %w", inner)
	assert.True(t, Is(wrapped, ErrAmbiguous))
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := ErrInternal.WithCause(cause)
	assert.Equal(t, cause, Unwrap(err))
	assert.Contains(t, err.Error(), "disk full")
}

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeAmbiguous, http.StatusBadRequest},
		{CodeValidation, http.StatusBadRequest},
		{CodeForbidden, http.StatusForbidden},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeAlreadyExists, http.StatusConflict},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.HTTPStatus(), "code %s", tt.code)
	}
}

func TestValidationWithDetails(t *testing.T) {
	details := map[string]string{"price": "must be greater than or equal to 0"}
	err := ValidationWithDetails("validation failed", details)
	assert.Equal(t, CodeValidation, err.Code)
	assert.Equal(t, details, err.Details)
}
