package webhook

import (
	"net/http"

	"moana_backoffice/platform/config"
	"moana_backoffice/platform/logger"

	"github.com/gin-gonic/gin"
)

// SourceIPAllowlist rejects webhook deliveries from unknown source IPs.
// The check only runs in production with the allowlist enabled; local and
// staging environments accept any source so the pipeline can be exercised
// with curl and replayed captures.
func SourceIPAllowlist(cfg config.WebhookConfig, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.IsProduction() || cfg.GetWebhookIPAllowlistDisabled() {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if !ipAllowed(cfg.GetWebhookAllowedIPs(), ip) {
			log.Warn("webhook: source ip rejected", "ip", ip, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "forbidden",
			})
			return
		}

		c.Next()
	}
}

func ipAllowed(allowed []string, ip string) bool {
	for _, a := range allowed {
		if a == ip {
			return true
		}
	}
	return false
}
