package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/loopyard/loyalty_backend/internal/middleware"
	"github.com/loopyard/loyalty_backend/internal/notifications"
)

// WSHandler upgrades authenticated requests to websocket connections and
// hands them to the notification hub.
type WSHandler struct {
	hub      *notifications.Hub
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(hub *notifications.Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The browser client cannot send custom headers on the upgrade
			// request; auth happens via the token middleware before this point.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func registerWSRoutes(rg *gin.RouterGroup, hub *notifications.Hub) {
	h := NewWSHandler(hub)
	rg.GET("/ws/notifications", h.Connect)
}

// Connect upgrades the request and serves notification events until the
// client disconnects.
func (h *WSHandler) Connect(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Websocket upgrade failed",
			slog.String("user_id", userID), slog.String("error", err.Error()))
		return
	}

	h.hub.ServeConn(userID, conn)
}
