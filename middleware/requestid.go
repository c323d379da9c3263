package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID guarantees a stable X-Request-ID per request: a client-supplied
// value is propagated, otherwise a fresh UUIDv4 is generated. The value is
// echoed in the response header and stored under "requestId" in the context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Set("requestId", id)
		c.Next()
	}
}
