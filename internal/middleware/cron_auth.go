package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CronAuthMiddleware creates a Gin middleware that validates the X-Cron-Key
// header against the configured shared secret. The generation trigger is the
// only endpoint behind it; with no secret configured the trigger is disabled
// rather than open.
func CronAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				gin.H{"error": gin.H{"code": "CRON_NOT_CONFIGURED", "message": "Cron endpoints are not configured"}})
			return
		}
		key := c.GetHeader("X-Cron-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": gin.H{"code": "INVALID_CRON_KEY", "message": "Invalid or missing cron key"}})
			return
		}
		c.Next()
	}
}
