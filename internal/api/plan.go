package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/service"
	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/timeclock"
	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/timeline"
)

type PlanHandler struct {
	planService *service.PlanService
	authService *service.AuthService
}

func NewPlanHandler(planService *service.PlanService, authService *service.AuthService) *PlanHandler {
	return &PlanHandler{planService: planService, authService: authService}
}

func (h *PlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/plans")
	{
		plans.GET("/resolve", h.Resolve)
		plans.GET("/:date", h.Get)
		plans.PUT("/:date", h.Save)
		plans.PUT("/:date/review", h.SaveReview)
		plans.POST("/:date/slots", h.FindSlot)
		plans.GET("/:date/snapshots", h.SnapshotDates)
	}
}

// Resolve computes the target date for a plan page kind, clamping "next"
// requests so they can never land on or before today.
func (h *PlanHandler) Resolve(c *gin.Context) {
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
	resolved, err := timeclock.ResolvePlanDate(c.DefaultQuery("kind", timeclock.KindLive), clock, c.Query("target"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resolved)
}

// Get returns the plan for a date. ?at=YYYY-MM-DD reads from the snapshot
// table instead of the live plan.
func (h *PlanHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	date := c.Param("date")

	if at := c.Query("at"); at != "" {
		plan, err := h.planService.GetPlanAt(userID, date, at)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, plan)
		return
	}

	plan, err := h.planService.GetPlanStrict(c.Request.Context(), userID, date)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

type SavePlanRequest struct {
	Blocks             []service.PlanBlockInput `json:"blocks"`
	DailyAim           string                   `json:"daily_aim"`
	DailyIngredientIDs []string                 `json:"daily_ingredient_ids"`
	SnapshotDate       string                   `json:"snapshot_date"`
}

// Save persists the full block set for a date; the response carries the
// canonical post-truncation, post-id-assignment state the client should
// reconcile against.
func (h *PlanHandler) Save(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req SavePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan, err := h.planService.SavePlan(c.Request.Context(), userID, c.Param("date"),
		req.Blocks, req.DailyAim, req.DailyIngredientIDs, req.SnapshotDate)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

type SaveReviewRequest struct {
	BlockFeedback map[string]string `json:"block_feedback"`
	DayFeedback   string            `json:"day_feedback"`
}

func (h *PlanHandler) SaveReview(c *gin.Context) {
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
	var req SaveReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	clock := requestClock(c, user.Timezone)
	plan, err := h.planService.SaveReview(c.Request.Context(), userID, c.Param("date"),
		req.BlockFeedback, req.DayFeedback, clock.Now())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

type FindSlotRequest struct {
	WindowStart int `json:"window_start"`
	WindowEnd   int `json:"window_end"`
}

// FindSlot runs the add-block free-slot search against the date's current
// blocks. Window bounds are minutes from midnight; zero values mean the
// whole day.
func (h *PlanHandler) FindSlot(c *gin.Context) {
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
	date := c.Param("date")

	var req FindSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.WindowEnd == 0 {
		req.WindowEnd = timeline.DayEnd
	}
	if req.WindowStart < 0 || req.WindowEnd > timeline.DayEnd || req.WindowStart >= req.WindowEnd {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window"})
		return
	}

	// Slot search starts an editing session, so the plan row is created
	// here rather than on first save.
	plan, err := h.planService.GetOrCreatePlan(c.Request.Context(), userID, date)
	if err != nil {
		respondErr(c, err)
		return
	}

	clock := requestClock(c, user.Timezone)
	dayStart, err := timeclock.ParseYMD(date, clock.Loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	spans := make([]timeline.Span, len(plan.Blocks))
	for i, b := range plan.Blocks {
		spans[i] = timeline.Span{
			Start: int(b.StartAt.Sub(dayStart).Minutes()),
			End:   int(b.EndAt.Sub(dayStart).Minutes()),
		}
	}

	slot, err := timeline.FindFreeSlot(spans, req.WindowStart, req.WindowEnd, nil)
	if errors.Is(err, timeline.ErrNoFreeSlot) {
		c.JSON(http.StatusConflict, gin.H{"error": "no room left in this day"})
		return
	}
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

func (h *PlanHandler) SnapshotDates(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	dates, err := h.planService.ListSnapshotDates(userID, c.Param("date"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}
