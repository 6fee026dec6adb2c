package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/plateful/pos-backend/apperrors"
	"github.com/plateful/pos-backend/utils"
)

// AuthMiddleware requires a bearer token and puts the actor id on the
// context. Store roles are checked downstream against staff_roles.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			authHeader = c.Query("token")
		}
		if authHeader == "" {
			utils.RespondError(c, apperrors.Unauthenticatedf("authorization header missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims == nil || claims.UserID == 0 {
			utils.RespondError(c, apperrors.Unauthenticatedf("invalid or expired token"))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// OptionalAuthMiddleware parses the token when present but lets
// anonymous requests through; checkout accepts a session token instead.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if claims, err := utils.ParseToken(tokenString); err == nil && claims.UserID != 0 {
			c.Set("user_id", claims.UserID)
		}
		c.Next()
	}
}

// ActorID returns the authenticated actor id, zero when anonymous.
func ActorID(c *gin.Context) uint {
	v, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	id, ok := v.(uint)
	if !ok {
		return 0
	}
	return id
}
