package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/service"
	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/timeclock"
)

// OverrideCookie carries a debug time override ("2006-01-02 15:04").
const OverrideCookie = "clock_override"

type AccountHandler struct {
	authService *service.AuthService
}

func NewAccountHandler(authService *service.AuthService) *AccountHandler {
	return &AccountHandler{authService: authService}
}

func (h *AccountHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/account/visibility", h.GetVisibility)
	router.PUT("/account/visibility", h.UpdateVisibility)
	router.GET("/clock", h.GetClock)
}

func (h *AccountHandler) GetVisibility(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visibility": user.AccountVisibility, "view_id": user.ViewID})
}

type VisibilityRequest struct {
	Visibility string `json:"visibility" binding:"required"`
}

func (h *AccountHandler) UpdateVisibility(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.authService.UpdateAccountVisibility(userID, req.Visibility); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visibility": req.Visibility})
}

// GetClock returns the resolved "now" for the authenticated user, honoring
// debug overrides from query params or the override cookie.
func (h *AccountHandler) GetClock(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondErr(c, err)
		return
	}

	cookie, _ := c.Cookie(OverrideCookie)
	clock := timeclock.ResolveClock(user.Timezone, c.Request.URL.Query(), cookie)
	now := clock.Now()
	c.JSON(http.StatusOK, gin.H{
		"now":      now,
		"today":    timeclock.ToYMD(now, clock.Loc),
		"timezone": user.Timezone,
		"override": clock.Overridden(),
	})
}

// requestClock resolves the clock for a request on behalf of a user.
func requestClock(c *gin.Context, timezone string) timeclock.Clock {
	cookie, _ := c.Cookie(OverrideCookie)
	return timeclock.ResolveClock(timezone, c.Request.URL.Query(), cookie)
}
