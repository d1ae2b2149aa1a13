package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetAnalytics(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	summary, err := h.analytics.ComputeAnalytics(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) GetAdminStats(c *gin.Context) {
	summary, err := h.admin.ComputeAdminStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admin stats"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
