package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/models"
	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/service"
)

// ViewerHandler serves read-only profile views reached through a user's
// shareable view id. Everything here is filtered by the social graph, and
// ?at=YYYY-MM-DD swaps live tables for the profile snapshot of that day.
type ViewerHandler struct {
	authService       *service.AuthService
	flavorService     *service.FlavorService
	ingredientService *service.IngredientService
	planService       *service.PlanService
	snapshotService   *service.SnapshotService
	socialService     *service.SocialService
	iconService       *service.IconService
}

func NewViewerHandler(
	authService *service.AuthService,
	flavorService *service.FlavorService,
	ingredientService *service.IngredientService,
	planService *service.PlanService,
	snapshotService *service.SnapshotService,
	socialService *service.SocialService,
	iconService *service.IconService,
) *ViewerHandler {
	return &ViewerHandler{
		authService:       authService,
		flavorService:     flavorService,
		ingredientService: ingredientService,
		planService:       planService,
		snapshotService:   snapshotService,
		socialService:     socialService,
		iconService:       iconService,
	}
}

func (h *ViewerHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users/:viewID")
	{
		users.GET("", h.GetProfile)
		users.GET("/flavors", h.ListFlavors)
		users.GET("/subflavors", h.ListSubflavors)
		users.GET("/ingredients", h.ListIngredients)
		users.GET("/plans/:date", h.GetPlan)
		users.GET("/icons", h.ListIcons)
	}
}

// resolveTarget loads the target user from the path and checks the
// profile-level gate. Returns nil after writing the response on failure.
func (h *ViewerHandler) resolveTarget(c *gin.Context) (*models.User, uuid.UUID) {
	viewerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, uuid.Nil
	}
	viewID, err := uuid.Parse(c.Param("viewID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid view id"})
		return nil, uuid.Nil
	}
	target, err := h.authService.GetUserByViewID(viewID)
	if err != nil {
		respondErr(c, err)
		return nil, uuid.Nil
	}
	if !h.socialService.CanViewProfile(viewerID, target) {
		c.JSON(http.StatusForbidden, gin.H{"error": service.ErrNotVisible.Error()})
		return nil, uuid.Nil
	}
	return target, viewerID
}

func (h *ViewerHandler) GetProfile(c *gin.Context) {
	target, _ := h.resolveTarget(c)
	if target == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"handle":       target.Handle,
		"display_name": target.DisplayName,
		"view_id":      target.ViewID,
	})
}

func (h *ViewerHandler) ListFlavors(c *gin.Context) {
	target, viewerID := h.resolveTarget(c)
	if target == nil {
		return
	}

	var flavors []models.Flavor
	if at := c.Query("at"); at != "" {
		snap, err := h.snapshotService.GetProfileSnapshotAt(target.ID, at)
		if err != nil {
			respondErr(c, err)
			return
		}
		flavors = snap.Flavors
	} else {
		var err error
		flavors, err = h.flavorService.ListFlavors(target.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"flavors": h.socialService.FilterFlavors(viewerID, flavors)})
}

func (h *ViewerHandler) ListSubflavors(c *gin.Context) {
	target, viewerID := h.resolveTarget(c)
	if target == nil {
		return
	}

	var subs []models.Subflavor
	if at := c.Query("at"); at != "" {
		snap, err := h.snapshotService.GetProfileSnapshotAt(target.ID, at)
		if err != nil {
			respondErr(c, err)
			return
		}
		subs = snap.Subflavors
	} else {
		var err error
		subs, err = h.flavorService.ListAllSubflavors(target.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"subflavors": h.socialService.FilterSubflavors(viewerID, subs)})
}

func (h *ViewerHandler) ListIngredients(c *gin.Context) {
	target, viewerID := h.resolveTarget(c)
	if target == nil {
		return
	}
	ingredients, err := h.ingredientService.List(target.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": h.socialService.FilterIngredients(viewerID, ingredients)})
}

// GetPlan serves a read-only plan view; ?at= reads the plan snapshot.
func (h *ViewerHandler) GetPlan(c *gin.Context) {
	target, _ := h.resolveTarget(c)
	if target == nil {
		return
	}
	date := c.Param("date")

	if at := c.Query("at"); at != "" {
		plan, err := h.planService.GetPlanAt(target.ID, date, at)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, plan)
		return
	}
	plan, err := h.planService.GetPlanStrict(c.Request.Context(), target.ID, date)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *ViewerHandler) ListIcons(c *gin.Context) {
	target, _ := h.resolveTarget(c)
	if target == nil {
		return
	}
	icons, err := h.iconService.ListIcons(target.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"icons": icons})
}
