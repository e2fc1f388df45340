package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/service"
)

type SocialHandler struct {
	socialService *service.SocialService
}

func NewSocialHandler(socialService *service.SocialService) *SocialHandler {
	return &SocialHandler{socialService: socialService}
}

func (h *SocialHandler) RegisterRoutes(router *gin.RouterGroup) {
	follows := router.Group("/follows")
	{
		follows.POST("/:userID", h.Request)
		follows.POST("/:userID/accept", h.Accept)
		follows.POST("/:userID/decline", h.Decline)
		follows.DELETE("/:userID", h.Remove)
		follows.GET("/:userID", h.State)
	}
	router.GET("/notifications", h.Notifications)
	router.GET("/follow-requests", h.PendingRequests)
}

func (h *SocialHandler) Request(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	targetID, ok := parseID(c, "userID")
	if !ok {
		return
	}
	if err := h.socialService.RequestFollow(userID, targetID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "pending"})
}

// Accept is performed by the followee; the path user is the requester.
func (h *SocialHandler) Accept(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	followerID, ok := parseID(c, "userID")
	if !ok {
		return
	}
	if err := h.socialService.AcceptFollow(userID, followerID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

func (h *SocialHandler) Decline(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	followerID, ok := parseID(c, "userID")
	if !ok {
		return
	}
	if err := h.socialService.DeclineFollow(userID, followerID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "declined"})
}

// Remove cancels a pending outbound request or unfollows an accepted one,
// depending on the edge's current state.
func (h *SocialHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	targetID, ok := parseID(c, "userID")
	if !ok {
		return
	}
	state, err := h.socialService.FollowState(userID, targetID)
	if err != nil {
		respondErr(c, err)
		return
	}
	switch state {
	case "pending":
		err = h.socialService.CancelFollow(userID, targetID)
	case "accepted":
		err = h.socialService.Unfollow(userID, targetID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "no such follow"})
		return
	}
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "none"})
}

func (h *SocialHandler) State(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	targetID, ok := parseID(c, "userID")
	if !ok {
		return
	}
	state, err := h.socialService.FollowState(userID, targetID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": state})
}

func (h *SocialHandler) Notifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	notifications, err := h.socialService.ListNotifications(userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *SocialHandler) PendingRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	requests, err := h.socialService.PendingRequests(userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
