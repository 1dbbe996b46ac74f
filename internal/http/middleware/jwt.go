package middleware

import (
	"net/http"
	"strings"

	"coin_panel/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID      = "user_id"
	ContextPanelUserID = "panel_user_id"
)

func tokenFrom(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	// websocket and link-style endpoints pass the token in the query
	return c.Query("token")
}

// JWT requires a valid session token and aborts with 401 otherwise.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := service.ParseJWT(tokenFrom(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextPanelUserID, claims.PanelUserID)
		c.Next()
	}
}

// OptionalJWT attaches session claims when a valid token is present but
// never rejects; handlers decide how to surface a missing session (the
// renew endpoint redirects to /login, the status endpoint returns a JSON
// error flag).
func OptionalJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFrom(c); token != "" {
			if claims, err := service.ParseJWT(token); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextPanelUserID, claims.PanelUserID)
			}
		}
		c.Next()
	}
}
