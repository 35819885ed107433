package middleware

import (
	"strings"

	"empylo_backend/internal/auth"
	"empylo_backend/internal/logger"
	"empylo_backend/internal/models"
	"empylo_backend/pkg/apperrors"
	"empylo_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

const claimsContextKey = "claims"

// AuthMiddleware verifies the Bearer token and stores the claims and
// user id in the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Rejected token", "error", err.Error(), "ip", c.ClientIP())
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid token"))
			c.Abort()
			return
		}

		c.Set(claimsContextKey, claims)
		c.Set(string(contextkeys.UserIDKey), claims.User.ID)
		c.Next()
	}
}

// RequireCompanyAccount gates roster management behind the company
// account type.
func RequireCompanyAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !auth.IsCompany(claims) {
			apperrors.HandleError(c, apperrors.ErrNotCompanyAccount)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAccountTypes limits a route to the listed account types.
func RequireAccountTypes(types ...models.AccountType) gin.HandlerFunc {
	allowed := make(map[models.AccountType]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}

	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !allowed[claims.User.AccountType] {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetClaims returns the verified claims, or nil outside an
// authenticated route.
func GetClaims(c *gin.Context) *auth.Claims {
	val, exists := c.Get(claimsContextKey)
	if !exists {
		return nil
	}
	claims, ok := val.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetUserID returns the authenticated user id, zero when absent.
func GetUserID(c *gin.Context) uint {
	val, exists := c.Get(string(contextkeys.UserIDKey))
	if !exists {
		return 0
	}
	id, ok := val.(uint)
	if !ok {
		return 0
	}
	return id
}
