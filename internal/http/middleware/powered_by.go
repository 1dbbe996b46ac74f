package middleware

import (
	"github.com/gin-gonic/gin"
)

// PoweredBy stamps the product banner on every response, matching what the
// dashboard frontend expects.
func PoweredBy(product string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Powered-By", product)
		c.Next()
	}
}
