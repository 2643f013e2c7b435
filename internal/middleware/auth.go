package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shareloop/backend/internal/auth"
	"github.com/shareloop/backend/internal/util"
)

// RequireAuth validates the bearer token and loads the caller's user record
// into the context under "user" / "user_id".
func RequireAuth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			util.RespondUnauthorized(c, "no token provided")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		user, err := authService.ValidateToken(tokenString)
		if err != nil {
			util.RespondUnauthorized(c, "invalid token")
			c.Abort()
			return
		}

		if user.IsBanned {
			util.RespondForbidden(c, "account suspended")
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Next()
	}
}
