package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/pos-backend/apperrors"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondError maps the error taxonomy onto HTTP statuses. Internal
// errors are logged in full and surfaced as a generic failure.
func RespondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	if kind == apperrors.KindInternal {
		ErrorLogger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, rootCause(err))
		c.JSON(http.StatusInternalServerError, JSONResponse{
			Status:  false,
			Message: "internal server error",
		})
		return
	}
	c.JSON(httpStatus(kind), JSONResponse{
		Status:  false,
		Message: err.Error(),
	})
}

// rootCause walks to the deepest wrapped error. Internal errors surface
// a generic message to callers; the log carries the real failure.
func rootCause(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

func httpStatus(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindInvalidState:
		return http.StatusConflict
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindUnauthenticated:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
