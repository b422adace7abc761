package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id on responses, and on requests
	// from clients that propagate one.
	RequestIDHeader = "X-Request-ID"

	contextRequestID = "requestID"
)

// RequestID assigns each request an id, reusing the client's when present,
// and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextRequestID, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext returns the id RequestID assigned, or "" when the
// middleware did not run.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(contextRequestID)
}
