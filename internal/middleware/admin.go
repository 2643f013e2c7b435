package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/shareloop/backend/internal/auth"
	"github.com/shareloop/backend/internal/database"
	"github.com/shareloop/backend/internal/models"
	"github.com/shareloop/backend/internal/util"
)

// RequireAdmin gates every admin console route. It must run after RequireAuth.
// The caller's record is re-read from the database on every request so a
// revoked admin loses access immediately; the predicate result is never cached.
func RequireAdmin(adminEmail, adminDomain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		userIDStr, ok := userID.(string)
		if !exists || !ok || userIDStr == "" {
			util.RespondUnauthorized(c)
			c.Abort()
			return
		}

		var user models.User
		if err := database.DB.Where("id = ?", userIDStr).First(&user).Error; err != nil {
			util.RespondUnauthorized(c, "user not found")
			c.Abort()
			return
		}

		if !auth.IsAdmin(&user, adminEmail, adminDomain) {
			util.RespondForbidden(c, "admin access required")
			c.Abort()
			return
		}

		// Refresh the context copy so handlers see the same record the
		// predicate was evaluated against
		c.Set("user", &user)
		c.Next()
	}
}
