package middleware

import (
	"github.com/gin-gonic/gin"

	"casepilot/utils"
)

// ErrorHandler forwards every error attached to the gin context to sentry
// after the handler chain has run.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			for _, ginErr := range c.Errors {
				utils.CaptureError(ginErr.Err, map[string]interface{}{
					"endpoint": c.Request.URL.Path,
					"method":   c.Request.Method,
					"status":   c.Writer.Status(),
				})
			}
		}
	}
}
