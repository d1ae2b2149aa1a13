package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"linkbio/internal/services"

	"github.com/gin-gonic/gin"
)

// ProfileQR renders a QR code pointing at the user's public profile page.
func (h *Handler) ProfileQR(c *gin.Context) {
	username := c.Param("username")

	user, err := h.store.GetUserByUsername(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	opts := services.QROptions{
		Content: strings.TrimSuffix(h.cfg.BaseURL, "/") + "/" + user.Username,
		FgColor: c.DefaultQuery("fg", "#000000"),
		BgColor: c.DefaultQuery("bg", "#FFFFFF"),
	}
	if raw := c.Query("size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 64 && n <= 1024 {
			opts.Size = n
		}
	}

	if c.Query("format") == "svg" {
		svg, err := h.qr.GenerateSVG(opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
		return
	}

	png, err := h.qr.GeneratePNG(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
