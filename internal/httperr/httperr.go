package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func StatusOf(kind Kind) int {
	switch kind {
	case KindValidation, KindInvalidState:
		return http.StatusBadRequest
	case KindConflict, KindDuplicate:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// Respond writes err as a JSON error. Errors outside the business taxonomy
// become a 500 with the given fallback code; their detail is not exposed.
func Respond(c *gin.Context, err error, fallbackCode string) {
	if be, ok := As(err); ok {
		Write(c, StatusOf(be.Kind), be.Code, be.Message)
		return
	}
	_ = c.Error(err)
	Internal(c, fallbackCode, "Internal server error.")
}
