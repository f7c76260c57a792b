package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/loopyard/loyalty_backend/internal/core/ports/services"
	"github.com/loopyard/loyalty_backend/internal/dto"
	"github.com/loopyard/loyalty_backend/internal/middleware"
)

// RewardHandler handles reward catalog and redemption requests.
type RewardHandler struct {
	rewardService portssvc.RewardSvcFacade
}

// NewRewardHandler creates a new RewardHandler.
func NewRewardHandler(rs portssvc.RewardSvcFacade) *RewardHandler {
	return &RewardHandler{rewardService: rs}
}

func registerRewardRoutes(rg *gin.RouterGroup, rs portssvc.RewardSvcFacade) {
	h := NewRewardHandler(rs)

	rewards := rg.Group("/rewards")
	{
		rewards.POST("", h.Create)
		rewards.GET("", h.List)
		rewards.GET("/affordable", h.ListAffordable)
		rewards.GET("/:rewardID", h.GetByID)
		rewards.POST("/redeem", h.Redeem)
	}
	rg.GET("/venues/:venueID/rewards", h.ListByVenue)
}

// Create adds a catalog reward to a venue the caller owns.
func (h *RewardHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	reward, err := h.rewardService.CreateReward(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create reward")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRewardResponse(reward, 0))
}

// List returns all active rewards.
func (h *RewardHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rewards, err := h.rewardService.ListRewards(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list rewards")
		return
	}

	c.JSON(http.StatusOK, rewards)
}

// ListAffordable returns the rewards the calling earner can afford now.
func (h *RewardHandler) ListAffordable(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rewards, err := h.rewardService.ListAffordableRewards(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list affordable rewards")
		return
	}

	c.JSON(http.StatusOK, rewards)
}

// GetByID returns one reward.
func (h *RewardHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reward, err := h.rewardService.GetRewardByID(c.Request.Context(), userID, c.Param("rewardID"))
	if err != nil {
		respondError(c, err, "Failed to get reward")
		return
	}

	c.JSON(http.StatusOK, reward)
}

// ListByVenue returns a venue's active rewards.
func (h *RewardHandler) ListByVenue(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rewards, err := h.rewardService.ListRewardsByVenue(c.Request.Context(), userID, c.Param("venueID"))
	if err != nil {
		respondError(c, err, "Failed to list venue rewards")
		return
	}

	c.JSON(http.StatusOK, rewards)
}

// Redeem spends the calling earner's points on a reward.
func (h *RewardHandler) Redeem(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.RedeemRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.rewardService.RedeemReward(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to redeem reward")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
