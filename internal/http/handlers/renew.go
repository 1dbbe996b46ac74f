package handlers

import (
	"fmt"
	"net/http"

	"coin_panel/internal/logger"
	"coin_panel/internal/renewal"

	"github.com/gin-gonic/gin"
)

// RenewalStatus serves GET /api/renewalstatus?id=. Every precondition
// failure collapses to {"error":true}; the dashboard widget only needs to
// know it has nothing to show.
func (h *Handler) RenewalStatus(c *gin.Context) {
	if !h.Cfg.Renewals.Enabled {
		c.JSON(http.StatusOK, gin.H{"error": true})
		return
	}
	serverID := c.Query("id")
	if serverID == "" {
		c.JSON(http.StatusOK, gin.H{"error": true})
		return
	}
	_, panelUserID, ok := session(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"error": true})
		return
	}

	ctx := c.Request.Context()
	owns, err := h.ownsServer(ctx, panelUserID, serverID)
	if err != nil {
		logger.Error("renewalstatus: ownership lookup failed", "server", serverID, "error", err)
		c.JSON(http.StatusOK, gin.H{"error": true})
		return
	}
	if !owns {
		c.JSON(http.StatusOK, gin.H{"error": true})
		return
	}

	status, err := h.Renewals.Status(ctx, serverID)
	if err != nil {
		logger.Error("renewalstatus: store read failed", "server", serverID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": true})
		return
	}
	if status == nil {
		c.JSON(http.StatusOK, gin.H{"text": "Disabled"})
		return
	}
	if status.LastChance {
		c.JSON(http.StatusOK, gin.H{"text": "Last chance to renew!", "renewable": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"text":      renewal.FormatRemaining(status.Remaining),
		"renewable": true,
	})
}

// Renew serves GET /renew?id=. Terminal outcomes redirect back to the
// dashboard with a query flag; precondition failures return text or an
// HTML fragment the page injects in place.
func (h *Handler) Renew(c *gin.Context) {
	if !h.Cfg.Renewals.Enabled {
		c.String(http.StatusOK, "Renewals are currently disabled.")
		return
	}
	serverID := c.Query("id")
	if serverID == "" {
		c.String(http.StatusOK, "Missing ID.")
		return
	}
	userID, panelUserID, ok := session(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	ctx := c.Request.Context()
	owns, err := h.ownsServer(ctx, panelUserID, serverID)
	if err != nil {
		logger.Error("renew: ownership lookup failed", "server", serverID, "error", err)
		c.String(http.StatusBadGateway, "Could not verify server ownership. Please try again later.")
		return
	}
	if !owns {
		c.String(http.StatusOK, "No server with that ID was found!")
		return
	}

	result, err := h.Renewals.Renew(ctx, userID, serverID)
	if err != nil {
		logger.Error("renew: failed", "server", serverID, "user", userID, "error", err)
		c.String(http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	switch result.Status {
	case renewal.RenewNotTracked:
		c.String(http.StatusOK, "No renewals are recorded for this ID.")
	case renewal.RenewTooEarly:
		fragment := fmt.Sprintf(
			`<div class="alert alert-error">You can only renew in the last day of your current period. Time left: %s.</div>`,
			renewal.FormatRemaining(result.Remaining),
		)
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fragment))
	case renewal.RenewCannotAfford:
		c.Redirect(http.StatusFound, "/dashboard?err=CANNOTAFFORDRENEWAL")
	case renewal.RenewUnsuspendFailed:
		c.String(http.StatusOK, "Renewal successful, but failed to unsuspend the server. Please contact support.")
	default:
		c.Redirect(http.StatusFound, "/dashboard?success=RENEWED")
	}
}
