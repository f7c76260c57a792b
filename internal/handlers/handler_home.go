package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HomeHandler serves the health endpoints.
type HomeHandler struct {
	dbPool *pgxpool.Pool
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(dbPool *pgxpool.Pool) *HomeHandler {
	return &HomeHandler{dbPool: dbPool}
}

// Health reports liveness.
func (h *HomeHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Ready reports readiness, including database connectivity.
func (h *HomeHandler) Ready(c *gin.Context) {
	if h.dbPool != nil {
		if err := h.dbPool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
