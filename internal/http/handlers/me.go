package handlers

import (
	"net/http"

	"coin_panel/internal/logger"
	"coin_panel/internal/store"

	"github.com/gin-gonic/gin"
)

// Me returns the caller's coin balance plus the AFK settings the earning
// page needs to render itself.
func (h *Handler) Me(c *gin.Context) {
	userID, _, ok := session(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	coins, _, err := h.Store.GetInt64(c.Request.Context(), store.CoinsKey(userID))
	if err != nil {
		logger.Error("me: balance read failed", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    userID,
		"coins": coins,
		"afk": gin.H{
			"enabled": h.Cfg.AFK.Enabled,
			"every":   int(h.Cfg.AFK.Every.Seconds()),
			"coins":   h.Cfg.AFK.CoinsPerTick,
			"max":     h.Cfg.AFK.MaxCoins,
		},
	})
}
