package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/loopyard/loyalty_backend/internal/core/ports/services"
	"github.com/loopyard/loyalty_backend/internal/dto"
	"github.com/loopyard/loyalty_backend/internal/middleware"
)

// VenueHandler handles venue-related HTTP requests.
type VenueHandler struct {
	venueService portssvc.VenueSvcFacade
}

// NewVenueHandler creates a new VenueHandler.
func NewVenueHandler(vs portssvc.VenueSvcFacade) *VenueHandler {
	return &VenueHandler{venueService: vs}
}

func registerVenueRoutes(rg *gin.RouterGroup, vs portssvc.VenueSvcFacade) {
	h := NewVenueHandler(vs)

	venues := rg.Group("/venues")
	{
		venues.POST("", h.Create)
		venues.GET("", h.List)
		venues.GET("/mine", h.GetMine)
		venues.GET("/:venueID", h.GetByID)
	}
}

// Create registers a venue owned by the calling issuer.
func (h *VenueHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	venue, err := h.venueService.CreateVenue(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create venue")
		return
	}

	c.JSON(http.StatusCreated, dto.ToVenueResponse(venue))
}

// List returns active venues, optionally filtered by a search term.
func (h *VenueHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	if term := c.Query("search"); term != "" {
		venues, err := h.venueService.SearchVenues(c.Request.Context(), term, limit)
		if err != nil {
			respondError(c, err, "Failed to search venues")
			return
		}
		c.JSON(http.StatusOK, dto.ToVenueResponses(venues))
		return
	}

	venues, err := h.venueService.ListVenues(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list venues")
		return
	}

	c.JSON(http.StatusOK, dto.ToVenueResponses(venues))
}

// GetMine returns the venue owned by the calling issuer.
func (h *VenueHandler) GetMine(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	venue, err := h.venueService.GetMyVenue(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get venue")
		return
	}

	c.JSON(http.StatusOK, dto.ToVenueResponse(venue))
}

// GetByID returns one active venue.
func (h *VenueHandler) GetByID(c *gin.Context) {
	venueID := c.Param("venueID")

	venue, err := h.venueService.GetVenueByID(c.Request.Context(), venueID)
	if err != nil {
		respondError(c, err, "Failed to get venue")
		return
	}

	c.JSON(http.StatusOK, dto.ToVenueResponse(venue))
}
