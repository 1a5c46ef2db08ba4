package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmoniahq/practice-api/internal/apperr"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runFrom(t *testing.T, err error) (int, HTTPError) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	From(c, err)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestFromStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid", apperr.Invalid("invalid_status", "Unknown status."), http.StatusBadRequest, "invalid_status"},
		{"bad reference", apperr.BadReference("client_not_in_tenant", "Client not found for this tenant."), http.StatusBadRequest, "client_not_in_tenant"},
		{"not found", apperr.NotFound("session_not_found", "Session not found."), http.StatusNotFound, "session_not_found"},
		{"conflict", apperr.Conflict("email_already_registered", "Email already registered."), http.StatusConflict, "email_already_registered"},
		{"unauthorized", apperr.Unauthorized("invalid_credentials", "Incorrect email or password."), http.StatusUnauthorized, "invalid_credentials"},
		{"forbidden", apperr.Forbidden("admin_required", "This operation requires the admin role."), http.StatusForbidden, "admin_required"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := runFrom(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestFromHidesInternalDetail(t *testing.T) {
	_, body := runFrom(t, errors.New("pq: connection refused"))
	assert.Equal(t, "Unexpected error.", body.Message)
}

func TestWrite(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Write(c, http.StatusTeapot, "some_code", "some message")

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.JSONEq(t, `{"error_code":"some_code","message":"some message"}`, w.Body.String())
}
