package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/Hrafn1377/prosjektravn/pkg/appenv"

	"github.com/gin-gonic/gin"
)

// CORS configures cross-origin headers for the SPA.
// Outside production any origin is allowed. In production the incoming
// Origin is reflected only when listed in the comma-separated
// ALLOWED_ORIGINS env var; unlisted origins get no CORS headers and the
// browser blocks the call.
func CORS() gin.HandlerFunc {
	isProd := appenv.IsProduction() || gin.Mode() == gin.ReleaseMode

	allowed := make(map[string]struct{})
	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = struct{}{}
		}
	}

	const methods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	const headers = "Origin, Content-Type, Authorization"

	return func(c *gin.Context) {
		c.Header("Vary", "Origin")

		if !isProd {
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Methods", methods)
			c.Header("Access-Control-Allow-Headers", headers)
		} else if origin := c.Request.Header.Get("Origin"); origin != "" {
			if _, ok := allowed[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Methods", methods)
				c.Header("Access-Control-Allow-Headers", headers)
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
