package pkg

import (
	"github.com/gin-gonic/gin"
)

// GetClientIP only honours forwarding headers sent by the engine's trusted
// proxies (see gin.Engine.SetTrustedProxies); any other caller is identified
// by the connection's remote address.
func GetClientIP(c *gin.Context) string {
	ip := c.ClientIP()

	if ip == "" {
		return "unknown"
	}

	return ip
}
