package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"linkbio/internal/models"
	"linkbio/internal/repository"

	"github.com/gin-gonic/gin"
)

type CreateLinkRequest struct {
	UserID    uint   `json:"userId" binding:"required"`
	Title     string `json:"title" binding:"required"`
	URL       string `json:"url" binding:"required,url"`
	Icon      string `json:"icon"`
	Layout    string `json:"layout" binding:"omitempty,oneof=classic featured"`
	Thumbnail string `json:"thumbnail"`
}

type ReorderRequest struct {
	UserID  uint   `json:"userId" binding:"required"`
	LinkIDs []uint `json:"linkIds" binding:"required,min=1"`
}

func (h *Handler) ListLinks(c *gin.Context) {
	raw := c.Query("userId")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}
	userID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId"})
		return
	}

	links, err := h.store.ListLinksByUser(uint(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list links"})
		return
	}
	c.JSON(http.StatusOK, links)
}

func (h *Handler) CreateLink(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link := models.Link{
		UserID:    req.UserID,
		Title:     req.Title,
		URL:       req.URL,
		Icon:      req.Icon,
		Layout:    req.Layout,
		Thumbnail: req.Thumbnail,
	}

	if err := h.store.CreateLink(&link); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create link"})
		return
	}

	h.audit.LogAction(&link.UserID, models.ActionCreateLink, strconv.Itoa(int(link.ID)), map[string]interface{}{
		"title": link.Title,
		"url":   link.URL,
	}, c.ClientIP())
	c.JSON(http.StatusCreated, link)
}

func (h *Handler) UpdateLink(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var updates models.LinkUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.store.UpdateLink(id, updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update link"})
		return
	}

	h.audit.LogAction(&link.UserID, models.ActionUpdateLink, strconv.Itoa(int(link.ID)), nil, c.ClientIP())
	c.JSON(http.StatusOK, link)
}

func (h *Handler) DeleteLink(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	link, err := h.store.GetLinkByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	if err := h.store.DeleteLink(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	h.audit.LogAction(&link.UserID, models.ActionDeleteLink, strconv.Itoa(int(id)), nil, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "Link deleted successfully"})
}

func (h *Handler) ClickLink(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	link, err := h.store.IncrementClickCount(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to track click"})
		return
	}

	h.events.RecordAsync(models.ClickEvent{
		LinkID:    link.ID,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	})

	// Clicks are anonymous; the trail records them without an actor.
	h.audit.LogAction(nil, models.ActionClick, strconv.Itoa(int(link.ID)), nil, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"clickCount": link.ClickCount})
}

func (h *Handler) ReorderLinks(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and linkIds array are required"})
		return
	}

	links, err := h.store.ReorderLinks(req.UserID, req.LinkIDs)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, repository.ErrInvalidOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": "linkIds must name the user's own links without duplicates"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder links"})
		}
		return
	}

	h.audit.LogAction(&req.UserID, models.ActionReorderLinks, "", map[string]interface{}{
		"linkIds": req.LinkIDs,
	}, c.ClientIP())
	c.JSON(http.StatusOK, links)
}

func (h *Handler) ListLinkClicks(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.store.GetLinkByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	events, err := h.store.ListClickEventsByLink(id, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clicks"})
		return
	}
	c.JSON(http.StatusOK, events)
}
