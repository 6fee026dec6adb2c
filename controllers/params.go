package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plateful/pos-backend/apperrors"
)

// paramUint parses a numeric path parameter.
func paramUint(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperrors.Validationf("invalid %s %q", name, raw)
	}
	return uint(id), nil
}
