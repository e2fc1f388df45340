package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/service"
	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/timeclock"
)

type IngredientHandler struct {
	ingredientService *service.IngredientService
	authService       *service.AuthService
}

func NewIngredientHandler(ingredientService *service.IngredientService, authService *service.AuthService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService, authService: authService}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.List)
		ingredients.POST("", h.Create)
		ingredients.GET("/:id", h.Get)
		ingredients.PUT("/:id", h.Update)
		ingredients.DELETE("/:id", h.Delete)
		ingredients.GET("/:id/history", h.History)
	}
}

func (h *IngredientHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	ingredients, err := h.ingredientService.List(userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

func (h *IngredientHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ing, err := h.ingredientService.Get(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	if ing.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": service.ErrNotOwner.Error()})
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (h *IngredientHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var in service.IngredientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ing, err := h.ingredientService.Create(userID, in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, ing)
}

func (h *IngredientHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in service.IngredientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ing, err := h.ingredientService.Update(userID, id, in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (h *IngredientHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.ingredientService.Delete(userID, id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ingredient deleted"})
}

// History returns the revision list, or with ?at=YYYY-MM-DD the single
// revision in effect at the end of that day.
func (h *IngredientHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ing, err := h.ingredientService.Get(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	if ing.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": service.ErrNotOwner.Error()})
		return
	}

	if at := c.Query("at"); at != "" {
		user, err := h.authService.GetUser(userID)
		if err != nil {
			respondErr(c, err)
			return
		}
		clock := requestClock(c, user.Timezone)
		day, err := timeclock.ParseYMD(at, clock.Loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		rev, err := h.ingredientService.AsOf(id, timeclock.AddDays(day, 1, clock.Loc))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, rev)
		return
	}

	revs, err := h.ingredientService.History(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"revisions": revs})
}
