package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/service"
)

type SnapshotHandler struct {
	snapshotService *service.SnapshotService
	authService     *service.AuthService
}

func NewSnapshotHandler(snapshotService *service.SnapshotService, authService *service.AuthService) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: snapshotService, authService: authService}
}

func (h *SnapshotHandler) RegisterRoutes(router *gin.RouterGroup) {
	snapshots := router.Group("/profile-snapshots")
	{
		snapshots.POST("", h.Create)
		snapshots.GET("", h.ListDates)
		snapshots.GET("/:date", h.Get)
	}
}

// Create captures today's flavors and subflavors. Clients trigger this
// nightly; a repeat capture for the same day is a no-op.
func (h *SnapshotHandler) Create(c *gin.Context) {
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
	clock := requestClock(c, user.Timezone)
	date := clock.Now().Format("2006-01-02")

	snap, err := h.snapshotService.CreateProfileSnapshot(userID, date)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

func (h *SnapshotHandler) ListDates(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	dates, err := h.snapshotService.ListSnapshotDates(userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

func (h *SnapshotHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	snap, err := h.snapshotService.GetProfileSnapshot(userID, c.Param("date"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
