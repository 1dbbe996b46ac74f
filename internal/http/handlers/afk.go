package handlers

import (
	"context"
	"net/http"
	"time"

	"coin_panel/internal/afk"
	"coin_panel/internal/logger"
	"coin_panel/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// AFK upgrades the coin-earning websocket. Browsers cannot set headers on
// websocket dials, so the session token travels in the query.
func (h *Handler) AFK(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
		return
	}
	claims, err := service.ParseJWT(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	allowedOrigin := h.Cfg.AllowedOrigin
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("afk: websocket upgrade failed", "error", err)
		return
	}

	// the request context dies with this handler; the session outlives it
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ok, err := h.Tracker.TryAcquire(ctx, claims.UserID)
	if err != nil {
		logger.Error("afk: presence acquire failed", "user", claims.UserID, "error", err)
		afk.RejectedConnections.WithLabelValues("tracker_error").Inc()
		conn.Close()
		return
	}
	if !ok {
		afk.RejectedConnections.WithLabelValues("duplicate").Inc()
		conn.Close()
		return
	}

	sess := afk.NewSession(
		claims.UserID, conn, h.Store, h.Tracker,
		h.Cfg.AFK.Every, h.Cfg.AFK.CoinsPerTick, h.Cfg.AFK.MaxCoins,
	)
	go sess.Run()
}
