package server

import (
	"github.com/gin-gonic/gin"
	"github.com/theapemachine/qbell"
)

// CORS sets the configured cross-origin headers on every response,
// including framework error responses. An empty origin sets nothing.
func CORS(policy qbell.CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if policy.AllowOrigin != "" {
			header := c.Writer.Header()
			header.Set("Access-Control-Allow-Origin", policy.AllowOrigin)

			if policy.AllowHeaders != "" {
				header.Set("Access-Control-Allow-Headers", policy.AllowHeaders)
			}

			if policy.AllowMethods != "" {
				header.Set("Access-Control-Allow-Methods", policy.AllowMethods)
			}
		}

		c.Next()
	}
}
