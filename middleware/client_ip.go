package middleware

import (
	"net"
	"strings"

	"tablebooker/config"

	"github.com/gin-gonic/gin"
)

// clientIP resolves the caller's address for rate limiting. Proxy headers are
// spoofable, so they are honored only when the deployment declares a trusted
// proxy in front of the service.
func clientIP(c *gin.Context) string {
	if config.AppConfig.TrustProxyHeaders {
		// X-Forwarded-For may carry a comma-separated chain; the first
		// entry is the original client.
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			first := strings.TrimSpace(strings.Split(xff, ",")[0])
			if net.ParseIP(first) != nil {
				return first
			}
		}
		if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); xri != "" {
			if net.ParseIP(xri) != nil {
				return xri
			}
		}
	}

	// RemoteAddr is usually "ip:port"; strip the port when present.
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}
