package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/service"
)

type FlavorHandler struct {
	flavorService *service.FlavorService
}

func NewFlavorHandler(flavorService *service.FlavorService) *FlavorHandler {
	return &FlavorHandler{flavorService: flavorService}
}

func (h *FlavorHandler) RegisterRoutes(router *gin.RouterGroup) {
	flavors := router.Group("/flavors")
	{
		flavors.GET("", h.ListFlavors)
		flavors.POST("", h.CreateFlavor)
		flavors.GET("/:id", h.GetFlavor)
		flavors.PUT("/:id", h.UpdateFlavor)
		flavors.DELETE("/:id", h.DeleteFlavor)
		flavors.GET("/:id/subflavors", h.ListSubflavors)
		flavors.POST("/:id/subflavors", h.CreateSubflavor)
	}
	subflavors := router.Group("/subflavors")
	{
		subflavors.PUT("/:id", h.UpdateSubflavor)
		subflavors.DELETE("/:id", h.DeleteSubflavor)
	}
}

func (h *FlavorHandler) ListFlavors(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	flavors, err := h.flavorService.ListFlavors(userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flavors": flavors})
}

func (h *FlavorHandler) GetFlavor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	flavor, err := h.flavorService.GetFlavor(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	if flavor.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": service.ErrNotOwner.Error()})
		return
	}
	c.JSON(http.StatusOK, flavor)
}

func (h *FlavorHandler) CreateFlavor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var in service.FlavorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flavor, err := h.flavorService.CreateFlavor(userID, in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, flavor)
}

func (h *FlavorHandler) UpdateFlavor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in service.FlavorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flavor, err := h.flavorService.UpdateFlavor(userID, id, in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, flavor)
}

func (h *FlavorHandler) DeleteFlavor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.flavorService.DeleteFlavor(userID, id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "flavor deleted"})
}

func (h *FlavorHandler) ListSubflavors(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	flavor, err := h.flavorService.GetFlavor(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	if flavor.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": service.ErrNotOwner.Error()})
		return
	}
	subs, err := h.flavorService.ListSubflavors(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subflavors": subs})
}

func (h *FlavorHandler) CreateSubflavor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in service.FlavorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sub, err := h.flavorService.CreateSubflavor(userID, id, in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *FlavorHandler) UpdateSubflavor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in service.FlavorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sub, err := h.flavorService.UpdateSubflavor(userID, id, in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *FlavorHandler) DeleteSubflavor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.flavorService.DeleteSubflavor(userID, id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subflavor deleted"})
}
