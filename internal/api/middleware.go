package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoteldesk/hotel-booking-backend/internal/auth"
	"github.com/hoteldesk/hotel-booking-backend/internal/user"
)

// RequireAdmin ensures the authenticated user holds the admin role. It MUST
// be used after auth.AuthRequired. The role travels in the token claims, so
// no user lookup is needed per request.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.GetUserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if auth.GetUserRole(c) != string(user.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}

		c.Next()
	}
}
