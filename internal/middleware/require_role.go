package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kemasku/packshop_backend/internal/core/domain"
)

// RequireRole creates a Gin middleware handler that rejects requests whose
// authenticated role is not in the allowed set. Admin always passes.
// Must run after AuthMiddleware.
func RequireRole(allowed ...domain.UserRole) gin.HandlerFunc {
	allowedSet := make(map[domain.UserRole]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role claim missing from authenticated request")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		userRole := domain.UserRole(role)
		if userRole == domain.RoleAdmin {
			c.Next()
			return
		}
		if _, ok := allowedSet[userRole]; !ok {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role not permitted for route", "role", role)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}
