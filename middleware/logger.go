package middleware

import (
	"encoding/json"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger emits one compact JSON line per request, replacing Gin's default
// console logger. Request bodies and credentials are never logged.
func Logger() gin.HandlerFunc {
	hostname, _ := os.Hostname()
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		entry := struct {
			Timestamp string  `json:"ts"`
			Level     string  `json:"level"`
			Hostname  string  `json:"host"`
			RequestID string  `json:"requestId,omitempty"`
			ClientIP  string  `json:"ip"`
			Method    string  `json:"method"`
			Path      string  `json:"path"`
			Status    int     `json:"status"`
			LatencyMs float64 `json:"latencyMs"`
			BodySize  int     `json:"size"`
			UserID    int     `json:"userId,omitempty"`
			Error     string  `json:"error,omitempty"`
		}{
			Timestamp: start.UTC().Format(time.RFC3339Nano),
			Level:     "info",
			Hostname:  hostname,
			RequestID: c.GetString("requestId"),
			ClientIP:  c.ClientIP(),
			Method:    c.Request.Method,
			Path:      path,
			Status:    c.Writer.Status(),
			LatencyMs: float64(time.Since(start)) / float64(time.Millisecond),
			BodySize:  c.Writer.Size(),
			UserID:    c.GetInt("userId"),
			Error:     c.Errors.ByType(gin.ErrorTypePrivate).String(),
		}
		b, _ := json.Marshal(entry)
		os.Stdout.Write(append(b, '\n'))
	}
}
