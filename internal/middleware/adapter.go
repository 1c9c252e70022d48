package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/care-scheduler/internal/config"
)

const AdapterTokenHeader = "X-Adapter-Token"

// AdapterMiddleware admits the chat adapter by the shared ADAPTER_TOKEN.
// With no token configured every call is refused.
func AdapterMiddleware(cfg *config.Config) gin.HandlerFunc {
	secret := []byte(cfg.AdapterToken)

	return func(c *gin.Context) {
		got := c.GetHeader(AdapterTokenHeader)
		if got == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_adapter_token"})
			return
		}

		if len(secret) == 0 || subtle.ConstantTimeCompare([]byte(got), secret) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_adapter_token"})
			return
		}

		c.Next()
	}
}
