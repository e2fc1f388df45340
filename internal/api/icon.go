package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/service"
)

type IconHandler struct {
	iconService *service.IconService
}

func NewIconHandler(iconService *service.IconService) *IconHandler {
	return &IconHandler{iconService: iconService}
}

func (h *IconHandler) RegisterRoutes(router *gin.RouterGroup) {
	icons := router.Group("/my-icons")
	{
		icons.GET("", h.List)
		icons.POST("", h.Create)
		icons.DELETE("/:id", h.Delete)
	}
	router.GET("/color-presets", h.ListColorPresets)
	router.PUT("/color-presets", h.SaveColorPresets)
}

func (h *IconHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	icons, err := h.iconService.ListIcons(userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"icons": icons})
}

type CreateIconRequest struct {
	Name string `json:"name" binding:"required"`
	Data string `json:"data" binding:"required"`
}

func (h *IconHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req CreateIconRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	icon, err := h.iconService.CreateIcon(c.Request.Context(), userID, req.Name, req.Data)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, icon)
}

func (h *IconHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.iconService.DeleteIcon(userID, id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "icon deleted"})
}

func (h *IconHandler) ListColorPresets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	presets, err := h.iconService.ListColorPresets(userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

type SavePresetsRequest struct {
	Presets []service.ColorPresetInput `json:"presets"`
}

func (h *IconHandler) SaveColorPresets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req SavePresetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	presets, err := h.iconService.SaveColorPresets(userID, req.Presets)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"presets": presets})
}
