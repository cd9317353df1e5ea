package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, write func(c *gin.Context)) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	write(c)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRespond_DefaultMessages(t *testing.T) {
	tests := []struct {
		name    string
		write   func(c *gin.Context)
		status  int
		code    string
		message string
	}{
		{"not found", func(c *gin.Context) { NotFound(c, "") }, http.StatusNotFound, ErrCodeNotFound, "Resource not found"},
		{"bad request", func(c *gin.Context) { BadRequest(c, "") }, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request"},
		{"internal", func(c *gin.Context) { InternalError(c, "") }, http.StatusInternalServerError, ErrCodeInternalError, "Internal server error"},
		{"unavailable", func(c *gin.Context) { ServiceUnavailable(c, "AI off") }, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "AI off"},
		{"unknown status", func(c *gin.Context) { Respond(c, http.StatusTeapot, "", nil) }, http.StatusInternalServerError, ErrCodeInternalError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := respond(t, tt.write)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, tt.message, body["message"])
			assert.NotContains(t, body, "details")
		})
	}
}

func TestConflict_ReferenceDetails(t *testing.T) {
	status, body := respond(t, func(c *gin.Context) {
		Conflict(c, "Programmer is in use", &ReferenceDetails{Resource: "programmer", ID: 7, References: 2})
	})

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, ErrCodeConflict, body["code"])
	require.Contains(t, body, "details")
	assert.Equal(t, map[string]interface{}{"resource": "programmer", "id": float64(7), "references": float64(2)}, body["details"])
}

func TestConflict_NoDetails(t *testing.T) {
	_, body := respond(t, func(c *gin.Context) { Conflict(c, "", nil) })
	assert.Equal(t, "Resource conflict", body["message"])
	assert.NotContains(t, body, "details")
}
