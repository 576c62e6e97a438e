package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/voxscribe/transcription-backend/internal/domain"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondDomainError maps a domain error kind onto the HTTP status. NotFound
// always wins over PermissionDenied at the service layer, so resource
// existence never leaks through a 403.
func RespondDomainError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal"
	switch types.KindOf(err) {
	case types.KindNotFound:
		status = http.StatusNotFound
		code = "not_found"
	case types.KindPermissionDenied:
		status = http.StatusForbidden
		code = "forbidden"
	case types.KindValidation:
		status = http.StatusBadRequest
		code = "invalid_request"
	case types.KindConflict:
		status = http.StatusConflict
		code = "conflict"
	}
	RespondError(c, status, code, err)
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}
