package handlers

import (
	"context"

	"coin_panel/internal/afk"
	"coin_panel/internal/config"
	"coin_panel/internal/http/middleware"
	"coin_panel/internal/ptero"
	"coin_panel/internal/renewal"
	"coin_panel/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Store    store.Store
	Panel    *ptero.Client
	Cfg      *config.Config
	Renewals *renewal.Service
	Tracker  afk.Tracker
}

func NewHandler(st store.Store, panel *ptero.Client, cfg *config.Config, renewals *renewal.Service, tracker afk.Tracker) *Handler {
	return &Handler{
		Store:    st,
		Panel:    panel,
		Cfg:      cfg,
		Renewals: renewals,
		Tracker:  tracker,
	}
}

// session pulls the claims the JWT middleware attached, if any.
func session(c *gin.Context) (userID, panelUserID string, ok bool) {
	uid, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return "", "", false
	}
	userID, _ = uid.(string)
	if pid, exists := c.Get(middleware.ContextPanelUserID); exists {
		panelUserID, _ = pid.(string)
	}
	return userID, panelUserID, userID != ""
}

// ownsServer checks the server belongs to the caller's panel account.
func (h *Handler) ownsServer(ctx context.Context, panelUserID, serverID string) (bool, error) {
	servers, err := h.Panel.UserServers(ctx, panelUserID)
	if err != nil {
		return false, err
	}
	for _, s := range servers {
		if s.ID == serverID {
			return true, nil
		}
	}
	return false, nil
}
