package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotelier/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func renderError(t *testing.T, err error) (int, errorBody) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	FromError(c, err)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestFromError_StatusAndCodeMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", fmt.Errorf("%w: guests must be at least 1", domain.ErrValidation), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"conflict", domain.ErrConflict, http.StatusConflict, "BOOKING_CONFLICT"},
		{"invalid transition", fmt.Errorf("%w: booking is checked_out", domain.ErrInvalidTransition), http.StatusConflict, "INVALID_STATUS_TRANSITION"},
		{"referential integrity", fmt.Errorf("%w: 2 rooms still reference this type", domain.ErrReferentialIntegrity), http.StatusConflict, "REFERENTIAL_INTEGRITY"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := renderError(t, tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.False(t, body.Success)
			assert.Equal(t, tc.wantCode, body.Error.Code)
		})
	}
}

func TestFromError_ConflictKeepsCallerMessage(t *testing.T) {
	// Conflicts come from more than one place (overlapping stays,
	// duplicate registration); the message must follow the error.
	status, body := renderError(t, fmt.Errorf("%w: email already registered", domain.ErrConflict))

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "BOOKING_CONFLICT", body.Error.Code)
	assert.Contains(t, body.Error.Message, "email already registered")
	assert.NotContains(t, body.Error.Message, "Room")
}

func TestFromError_UnknownErrorIsOpaque(t *testing.T) {
	status, body := renderError(t, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.Equal(t, "Internal server error", body.Error.Message)
}
