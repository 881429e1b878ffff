package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nutrimize/backend/internal/domain"
	"github.com/nutrimize/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	planner *usecase.PlannerService
	menus   *usecase.MenuService
}

// NewHandler creates a new HTTP handler
func NewHandler(planner *usecase.PlannerService, menus *usecase.MenuService) *Handler {
	return &Handler{planner: planner, menus: menus}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nutrimize-backend",
		"version": "1.0.0",
	})
}

// userID reads the caller-supplied user identity. Authentication itself
// is the surrounding system's responsibility; this service only needs a
// stable UUID to scope private products and saved menus.
func userID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetHeader("X-User-ID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid X-User-ID header"})
		return uuid.Nil, false
	}
	return id, true
}

// GenerateMenu runs the diet optimizer for the posted target.
func (h *Handler) GenerateMenu(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var target domain.DietTarget
	if err := c.ShouldBindJSON(&target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.planner.GenerateMenu(c.Request.Context(), uid, &target)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVeganRequiresDairyFree), errors.Is(err, domain.ErrInvalidTarget):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrNoProducts), errors.Is(err, domain.ErrNoMatchingProducts):
			// Expected user-facing outcomes, not server faults.
			c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu generation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// SaveMenu persists a generated plan under a user-chosen name.
func (h *Handler) SaveMenu(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var menu domain.SavedMenu
	if err := c.ShouldBindJSON(&menu); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.menus.SaveMenu(c.Request.Context(), uid, &menu); err != nil {
		switch {
		case errors.Is(err, domain.ErrMenuExists), errors.Is(err, domain.ErrInvalidTarget):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "saving menu failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Diet plan saved successfully."})
}

// ListMenus returns all of the caller's saved menus.
func (h *Handler) ListMenus(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	menus, err := h.menus.ListMenus(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing menus failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menus": menus})
}

// ListMenuNames returns just the names of the caller's saved menus.
func (h *Handler) ListMenuNames(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	names, err := h.menus.ListMenuNames(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing menu names failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menus": names})
}

// GetMenu returns one saved menu by name.
func (h *Handler) GetMenu(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	menu, err := h.menus.GetMenu(c.Request.Context(), uid, c.Param("name"))
	if err != nil {
		if errors.Is(err, domain.ErrMenuNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetching menu failed"})
		return
	}
	c.JSON(http.StatusOK, menu)
}

// DeleteMenu removes one saved menu by name.
func (h *Handler) DeleteMenu(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	if err := h.menus.DeleteMenu(c.Request.Context(), uid, c.Param("name")); err != nil {
		if errors.Is(err, domain.ErrMenuNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "deleting menu failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu deleted successfully."})
}
