package http

import (
	"coin_panel/internal/http/handlers"
	"coin_panel/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the add-on's surface: the renewal endpoints keep
// their historical paths so existing dashboard pages keep working.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, version string) {
	healthHandler := handlers.NewHealthHandler(h.Store, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	rl := middleware.RedisRateLimit(h.Cfg.APIRateLimit, h.Cfg.APIRateWindow)

	api := r.Group("/api")
	api.Use(rl)
	api.GET("/renewalstatus", middleware.OptionalJWT(), h.RenewalStatus)
	api.GET("/me", middleware.JWT(), h.Me)

	// legacy top-level path: the dashboard links straight to /renew?id=
	r.GET("/renew", rl, middleware.OptionalJWT(), h.Renew)

	// AFK earning websocket
	if h.Cfg.AFK.Enabled {
		r.GET("/"+h.Cfg.AFK.Path, h.AFK)
	}
}
