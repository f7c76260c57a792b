package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/loopyard/loyalty_backend/internal/core/ports/services"
	"github.com/loopyard/loyalty_backend/internal/dto"
	"github.com/loopyard/loyalty_backend/internal/middleware"
)

// CodeHandler handles code issuance and validation requests.
type CodeHandler struct {
	codeService portssvc.CodeSvcFacade
}

// NewCodeHandler creates a new CodeHandler.
func NewCodeHandler(cs portssvc.CodeSvcFacade) *CodeHandler {
	return &CodeHandler{codeService: cs}
}

func registerCodeRoutes(rg *gin.RouterGroup, cs portssvc.CodeSvcFacade, generateLimit gin.HandlerFunc, validateLimit gin.HandlerFunc) {
	h := NewCodeHandler(cs)

	codes := rg.Group("/codes")
	{
		codes.POST("/generate", generateLimit, h.Generate)
		codes.POST("/validate", validateLimit, h.Validate)
	}
}

// Generate issues a single-use code for the calling earner.
func (h *CodeHandler) Generate(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.GenerateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.codeService.GenerateCode(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to generate code")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Validate consumes a code on behalf of the calling venue operator.
func (h *CodeHandler) Validate(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ValidateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.codeService.ValidateCode(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to validate code")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
