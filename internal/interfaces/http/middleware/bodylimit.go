package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/souvikdhua/cosmeticking/internal/interfaces/http/dto"
)

// BodyLimit caps request body size. Oversized bodies fail on read with
// 413 rather than being buffered.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponseWithRequestID(dto.ErrCodePayloadTooLarge, "Request body too large", GetRequestID(c)))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
