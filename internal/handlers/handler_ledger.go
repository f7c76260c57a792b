package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/loopyard/loyalty_backend/internal/core/ports/services"
	"github.com/loopyard/loyalty_backend/internal/dto"
	"github.com/loopyard/loyalty_backend/internal/middleware"
)

// LedgerHandler handles ledger and balance read requests.
type LedgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ls portssvc.LedgerSvcFacade) *LedgerHandler {
	return &LedgerHandler{ledgerService: ls}
}

func registerLedgerRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade) {
	h := NewLedgerHandler(ls)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/entries", h.ListMyEntries)
		ledger.GET("/balance", h.GetBalance)
		ledger.GET("/venues/:venueID/entries", h.ListVenueEntries)
	}
}

func entryListParams(c *gin.Context) dto.ListEntriesParams {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := dto.ListEntriesParams{Limit: limit}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}
	return params
}

// ListMyEntries returns a page of the caller's own ledger entries.
func (h *LedgerHandler) ListMyEntries(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.ledgerService.ListMyEntries(c.Request.Context(), userID, entryListParams(c))
	if err != nil {
		respondError(c, err, "Failed to list entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetBalance returns the caller's current points balance.
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	balance, err := h.ledgerService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get balance")
		return
	}

	c.JSON(http.StatusOK, gin.H{"pointsBalance": balance})
}

// ListVenueEntries returns a page of a venue's entries for its owner.
func (h *LedgerHandler) ListVenueEntries(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	venueID := c.Param("venueID")

	resp, err := h.ledgerService.ListVenueEntries(c.Request.Context(), userID, venueID, entryListParams(c))
	if err != nil {
		respondError(c, err, "Failed to list venue entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}
