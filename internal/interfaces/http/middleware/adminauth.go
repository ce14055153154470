package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/souvikdhua/cosmeticking/internal/interfaces/http/dto"
)

// AdminTokenHeader carries the admin session token issued at login.
const AdminTokenHeader = "X-Admin-Token"

// TokenValidator reports whether an admin token is active.
type TokenValidator interface {
	Valid(token string) bool
}

// AdminAuth gates the admin mutation surface behind the passphrase
// session token.
func AdminAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(AdminTokenHeader)
		if token == "" || !tokens.Valid(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Admin access required", GetRequestID(c)))
			return
		}
		c.Set("admin_token", token)
		c.Next()
	}
}

// GetAdminToken returns the validated admin token, empty outside the
// admin surface.
func GetAdminToken(c *gin.Context) string {
	return c.GetString("admin_token")
}
