package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/loopyard/loyalty_backend/internal/core/ports/services"
	"github.com/loopyard/loyalty_backend/internal/middleware"
)

// DashboardHandler serves the earner and venue dashboard views.
type DashboardHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(rs portssvc.ReportingSvcFacade) *DashboardHandler {
	return &DashboardHandler{reportingService: rs}
}

func registerDashboardRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvcFacade) {
	h := NewDashboardHandler(rs)

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/earner", h.GetEarnerDashboard)
		dashboard.GET("/venue", h.GetVenueDashboard)
	}
}

// GetEarnerDashboard summarizes the calling earner's account.
func (h *DashboardHandler) GetEarnerDashboard(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	dash, err := h.reportingService.GetEarnerDashboard(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, dash)
}

// GetVenueDashboard summarizes activity at the calling issuer's venue.
func (h *DashboardHandler) GetVenueDashboard(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	dash, err := h.reportingService.GetVenueDashboard(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, dash)
}
