package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"linkbio/internal/models"
	"linkbio/internal/repository"

	"github.com/gin-gonic/gin"
)

type CreateUserRequest struct {
	Username        string `json:"username" binding:"required"`
	Name            string `json:"name"`
	Bio             string `json:"bio"`
	ProfileImage    string `json:"profileImage"`
	BackgroundImage string `json:"backgroundImage"`
	Theme           string `json:"theme"`
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := models.User{
		Username:        req.Username,
		Name:            req.Name,
		Bio:             req.Bio,
		ProfileImage:    req.ProfileImage,
		BackgroundImage: req.BackgroundImage,
		Theme:           req.Theme,
	}

	if err := h.store.CreateUser(&user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	h.audit.LogAction(&user.ID, models.ActionCreateUser, user.Username, nil, c.ClientIP())
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) GetUserByUsername(c *gin.Context) {
	username := c.Param("username")

	cacheKey := "user:" + strings.ToLower(username)
	if cached, ok := h.cacheGet(c, cacheKey); ok {
		var user models.User
		if json.Unmarshal(cached, &user) == nil {
			c.JSON(http.StatusOK, user)
			return
		}
	}

	user, err := h.store.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	h.cacheSet(c, cacheKey, user)
	c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var updates models.UserUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	before, err := h.store.GetUserByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user, err := h.store.UpdateUser(id, updates)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, repository.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		}
		return
	}

	h.invalidateProfile(c, before.Username)
	h.invalidateProfile(c, user.Username)
	h.audit.LogAction(&user.ID, models.ActionUpdateUser, user.Username, nil, c.ClientIP())
	c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.store.GetUserByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := h.store.DeleteUser(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	h.invalidateProfile(c, user.Username)
	h.audit.LogAction(&id, models.ActionDeleteUser, user.Username, nil, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// GetProfile returns everything the public page needs in one response.
func (h *Handler) GetProfile(c *gin.Context) {
	username := c.Param("username")

	user, err := h.store.GetUserByUsername(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	links, err := h.store.ListLinksByUser(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch links"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"links": links,
	})
}

// cacheGet and cacheSet wrap the optional Redis profile cache; the handler
// works identically with a nil or unreachable client.
func (h *Handler) cacheGet(c *gin.Context, key string) ([]byte, bool) {
	if h.rdb == nil {
		return nil, false
	}
	val, err := h.rdb.Get(c.Request.Context(), key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (h *Handler) cacheSet(c *gin.Context, key string, v interface{}) {
	if h.rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	ttl := time.Duration(h.cfg.CacheTTLSec) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	h.rdb.Set(c.Request.Context(), key, data, ttl)
}

func (h *Handler) invalidateProfile(c *gin.Context, username string) {
	if h.rdb == nil {
		return
	}
	ctx := c.Request.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	h.rdb.Del(ctx, "user:"+strings.ToLower(username))
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
