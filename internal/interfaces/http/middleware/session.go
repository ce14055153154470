package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie is the cookie carrying the storefront session id. The
// session id keys the in-memory cart; nothing else hangs off it.
const SessionCookie = "ck_session"

const sessionContextKey = "session_id"

// Session assigns a session id cookie to first-time visitors and puts
// the id on the request context.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			// Session cookie, cleared when the browser closes.
			c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
		}
		c.Set(sessionContextKey, id)
		c.Next()
	}
}

// GetSessionID returns the session id assigned by Session.
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}
