package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError is the body of every error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ReferenceDetails names the record a delete was refused for and how many
// rows still point at it.
type ReferenceDetails struct {
	Resource   string `json:"resource"`
	ID         uint64 `json:"id"`
	References int64  `json:"references"`
}

var statusCodes = map[int]struct {
	code    string
	message string
}{
	http.StatusBadRequest:          {ErrCodeInvalidInput, "Invalid request"},
	http.StatusNotFound:            {ErrCodeNotFound, "Resource not found"},
	http.StatusConflict:            {ErrCodeConflict, "Resource conflict"},
	http.StatusInternalServerError: {ErrCodeInternalError, "Internal server error"},
	http.StatusServiceUnavailable:  {ErrCodeServiceUnavailable, "Service temporarily unavailable"},
}

// Respond writes an APIError for status. An empty message falls back to the
// status default; unknown statuses are reported as internal errors.
func Respond(c *gin.Context, status int, message string, details interface{}) {
	entry, ok := statusCodes[status]
	if !ok {
		status = http.StatusInternalServerError
		entry = statusCodes[status]
	}
	if message == "" {
		message = entry.message
	}
	c.JSON(status, APIError{Code: entry.code, Message: message, Details: details})
}

func NotFound(c *gin.Context, message string) {
	Respond(c, http.StatusNotFound, message, nil)
}

func BadRequest(c *gin.Context, message string) {
	Respond(c, http.StatusBadRequest, message, nil)
}

// BadRequestWithDetails carries the failing fields of a validation error
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	Respond(c, http.StatusBadRequest, message, details)
}

// Conflict reports a delete refused because rows still reference the record
func Conflict(c *gin.Context, message string, details *ReferenceDetails) {
	if details == nil {
		Respond(c, http.StatusConflict, message, nil)
		return
	}
	Respond(c, http.StatusConflict, message, details)
}

func InternalError(c *gin.Context, message string) {
	Respond(c, http.StatusInternalServerError, message, nil)
}

func ServiceUnavailable(c *gin.Context, message string) {
	Respond(c, http.StatusServiceUnavailable, message, nil)
}
