package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsAppError(t *testing.T) {
	conflict := NewConflictError("This email is already registered")

	tests := []struct {
		name         string
		err          error
		expectedType ErrorType
		expectedCode int
	}{
		{
			name:         "app error passes through",
			err:          conflict,
			expectedType: ErrorTypeConflict,
			expectedCode: http.StatusConflict,
		},
		{
			name:         "wrapped app error is unwrapped",
			err:          fmt.Errorf("register: %w", NewNotFoundError("Registration not found")),
			expectedType: ErrorTypeNotFound,
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "plain error becomes internal",
			err:          fmt.Errorf("connection refused"),
			expectedType: ErrorTypeInternal,
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := AsAppError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.expectedType, appErr.Type)
			assert.Equal(t, tt.expectedCode, appErr.StatusCode)
		})
	}

	assert.Nil(t, AsAppError(nil))
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	appErr := NewValidationError("Invalid registration", map[string]interface{}{"email": "Email is required"})

	require.NoError(t, WriteJSON(rec, appErr, "req-1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, ErrorTypeValidation, body.Error.Type)
	assert.Equal(t, "req-1", body.Error.RequestID)
	assert.Equal(t, "Email is required", body.Error.Details["email"])
	assert.NotEmpty(t, body.Error.Timestamp)
}

func TestAppError_Error(t *testing.T) {
	internal := NewInternalError("Failed to fetch registrations", fmt.Errorf("timeout"))
	assert.Equal(t, "internal: Failed to fetch registrations (timeout)", internal.Error())
	assert.EqualError(t, internal.Unwrap(), "timeout")

	assert.Equal(t, "not_found: Team not found", NewNotFoundError("Team not found").Error())
}
