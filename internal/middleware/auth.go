package middleware

import (
	"crypto/subtle"

	"orderalert/internal/common"

	"github.com/gin-gonic/gin"
)

const apiKeyHeader = "X-API-Key"

// Auth returns middleware that validates the X-API-Key header against the
// configured shared secret. The comparison is constant-time and runs before
// the payload is ever inspected: a request with a bad credential gets a 401
// even when the body is also invalid.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(apiKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
			common.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
