package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/devkale/coursehub/internal/app/models"
	"github.com/devkale/coursehub/internal/pkg/apperrors"
	"github.com/devkale/coursehub/internal/pkg/auth"
)

// Context keys populated by JWTAuth.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// JWTAuth validates the Authorization header and stores the caller's identity
// on the request context.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			HandleAPIError(c, apperrors.ErrTokenInvalid)
			return
		}

		claims, err := jwtService.ValidateAndExtractClaims(token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				HandleAPIError(c, apperrors.ErrTokenExpired)
				return
			}
			HandleAPIError(c, apperrors.ErrTokenInvalid)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.RoleType)
		c.Next()
	}
}

// RoleRequired rejects requests whose authenticated role is not in the
// allowed set. Must run after JWTAuth.
func RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, allowed := range roles {
			if role == string(allowed) {
				c.Next()
				return
			}
		}
		HandleAPIError(c, apperrors.ErrPermissionDenied)
	}
}

// GetUserID returns the authenticated user's id from the context.
func GetUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}
