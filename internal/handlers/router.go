package handlers

import (
	"net/http"

	"linkbio/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter) *gin.Engine {
	r := gin.Default()

	r.Use(h.RequestID())
	if rateLimiter != nil {
		r.Use(h.RateLimitMiddleware(rateLimiter))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Users
	r.GET("/users", h.ListUsers)
	r.POST("/users", h.CreateUser)
	r.GET("/users/username/:username", h.GetUserByUsername)
	r.GET("/users/username/:username/qr", h.ProfileQR)
	r.PUT("/users/:id", h.UpdateUser)
	r.DELETE("/users/:id", h.DeleteUser)

	// Public profile (user + ordered links in one response)
	r.GET("/profile/:username", h.GetProfile)

	// Links
	r.GET("/links", h.ListLinks)
	r.POST("/links", h.CreateLink)
	r.POST("/links/reorder", h.ReorderLinks)
	r.POST("/links/click/:id", h.ClickLink)
	r.PUT("/links/:id", h.UpdateLink)
	r.DELETE("/links/:id", h.DeleteLink)
	r.GET("/links/:id/clicks", h.ListLinkClicks)

	// Aggregations
	r.GET("/analytics/:userId", h.GetAnalytics)
	r.GET("/admin/stats", h.GetAdminStats)

	return r
}
