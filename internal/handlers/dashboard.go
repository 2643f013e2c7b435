package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shareloop/backend/internal/analytics"
	"github.com/shareloop/backend/internal/util"
)

// GetDashboard returns the platform snapshot for the admin dashboard.
// Counters are computed concurrently; a metric that fails comes back null
// with its name under "unavailable" so the dashboard can render an error
// state for that tile while showing the rest.
func (h *Handlers) GetDashboard(c *gin.Context) {
	snapshot := h.analytics.Snapshot(c.Request.Context())
	c.JSON(http.StatusOK, snapshot)
}

// GetUserGrowth returns the daily signup series over a lookback window.
// ?days=N (default 30); zero or negative windows collapse to today only.
func (h *Handlers) GetUserGrowth(c *gin.Context) {
	days := util.ParseInt(c.Query("days"), analytics.DefaultGrowthWindowDays)

	series, err := h.analytics.UserGrowth(c.Request.Context(), days)
	if err != nil {
		util.RespondInternalError(c, "growth series unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":   len(series),
		"series": series,
	})
}

// GetCategoryDistribution returns available items grouped by category with
// percentage shares. An empty platform produces an empty list, not an error.
func (h *Handlers) GetCategoryDistribution(c *gin.Context) {
	distribution, err := h.analytics.CategoryDistribution(c.Request.Context())
	if err != nil {
		util.RespondInternalError(c, "category distribution unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": distribution,
	})
}
