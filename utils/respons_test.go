package utils

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/plateful/pos-backend/apperrors"
)

func newErrorContext(method, path string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	return c, w
}

func captureErrorLog() *bytes.Buffer {
	InitLogger()
	var buf bytes.Buffer
	ErrorLogger.SetOutput(&buf)
	return &buf
}

func TestRespondErrorLogsInternalCause(t *testing.T) {
	buf := captureErrorLog()
	c, w := newErrorContext(http.MethodGet, "/orders/7")

	RespondError(c, apperrors.Internal(errors.New("dial tcp 127.0.0.1:3306: connection refused")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
	assert.NotContains(t, w.Body.String(), "connection refused")

	assert.Contains(t, buf.String(), "connection refused")
	assert.Contains(t, buf.String(), "GET /orders/7")
	assert.Contains(t, buf.String(), "level=error")
}

func TestRespondErrorLogsDeepestCause(t *testing.T) {
	buf := captureErrorLog()
	c, _ := newErrorContext(http.MethodPost, "/sessions/3/checkout")

	cause := errors.New("commit failed: disk I/O error")
	RespondError(c, apperrors.Internal(fmt.Errorf("create order: %w", cause)))

	assert.Contains(t, buf.String(), "disk I/O error")
	assert.NotContains(t, buf.String(), "internal server error")
}

func TestRespondErrorDoesNotLogClientErrors(t *testing.T) {
	buf := captureErrorLog()
	c, w := newErrorContext(http.MethodPost, "/orders/7/payments")

	RespondError(c, apperrors.Validationf("amount must be greater than zero"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "amount must be greater than zero")
	assert.Empty(t, buf.String())
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperrors.NotFoundf("order not found"), http.StatusNotFound},
		{apperrors.InvalidStatef("order is cancelled"), http.StatusConflict},
		{apperrors.Validationf("quantity must be positive"), http.StatusBadRequest},
		{apperrors.Forbiddenf("user does not have the required role for this store"), http.StatusForbidden},
		{apperrors.Unauthenticatedf("authentication required"), http.StatusUnauthorized},
		{apperrors.Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	captureErrorLog()
	for _, tc := range cases {
		c, w := newErrorContext(http.MethodGet, "/ping")
		RespondError(c, tc.err)
		assert.Equal(t, tc.code, w.Code, tc.err.Error())
	}
}
