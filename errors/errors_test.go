package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ValidationError, "invalid input", "destination required")
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "destination required", err.Detail)
	assert.Equal(t, 400, err.HTTPStatus)
	assert.Equal(t, "VALIDATION_ERROR: invalid input (destination required)", err.Error())
}

func TestWrap(t *testing.T) {
	originalErr := fmt.Errorf("original error")
	wrappedErr := Wrap(originalErr, DatabaseError, "database operation failed")

	assert.Equal(t, DatabaseError, wrappedErr.Type)
	assert.Equal(t, "database operation failed", wrappedErr.Message)
	assert.Equal(t, originalErr.Error(), wrappedErr.Detail)
	assert.Equal(t, 500, wrappedErr.HTTPStatus)
	assert.Equal(t, originalErr, wrappedErr.Raw)
	assert.True(t, stderrors.Is(wrappedErr, originalErr))

	assert.Nil(t, Wrap(nil, DatabaseError, "nothing"))
}

func TestNotFound(t *testing.T) {
	err := NotFound("Itinerary", "abc")
	assert.Equal(t, NotFoundError, err.Type)
	assert.Equal(t, "Itinerary not found", err.Message)
	assert.Equal(t, "ID: abc", err.Detail)
	assert.Equal(t, 404, err.HTTPStatus)
}

func TestRateLimitExceeded(t *testing.T) {
	err := RateLimitExceeded("slow down", 42)
	assert.Equal(t, RateLimitError, err.Type)
	assert.Equal(t, "42", err.Code)
	assert.Equal(t, 429, err.GetHTTPStatus())
}

func TestGenerationFailed(t *testing.T) {
	cause := fmt.Errorf("llm timeout")
	err := GenerationFailed(cause)
	assert.Equal(t, GenerationFailedError, err.Type)
	assert.Equal(t, 502, err.GetHTTPStatus())
	assert.Equal(t, "llm timeout", err.Detail)
	assert.ErrorIs(t, err, cause)
}

func TestGetHTTPStatusDefaults(t *testing.T) {
	tests := []struct {
		errType ErrorType
		want    int
	}{
		{ValidationError, 400},
		{NotFoundError, 404},
		{RateLimitError, 429},
		{GenerationFailedError, 502},
		{ServiceUnavailableError, 503},
		{DatabaseError, 500},
		{ServerError, 500},
	}
	for _, tt := range tests {
		t.Run(string(tt.errType), func(t *testing.T) {
			e := &AppError{Type: tt.errType}
			assert.Equal(t, tt.want, e.GetHTTPStatus())
		})
	}
}
