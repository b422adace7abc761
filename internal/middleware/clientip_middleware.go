package middleware

import (
	"github.com/gin-gonic/gin"

	"keycrypt-backend/internal/core"
)

// ClientIP stamps the requester's address onto the request context so audit
// writes below the transport layer can record it.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := core.WithClientIP(c.Request.Context(), c.ClientIP())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
