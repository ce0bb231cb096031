package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ourwallet/ourwallet/pkg/helpers"
	"github.com/ourwallet/ourwallet/pkg/response"
)

const CtxUserIDKey = "userID"

// BearerAuth reads the Authorization header, validates the bearer token and
// injects the user id into the Gin context.
func BearerAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.AbortError(c, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
