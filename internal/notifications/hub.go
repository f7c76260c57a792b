// Package notifications delivers real-time points updates to connected
// clients over WebSocket. Delivery is best-effort: a slow or disconnected
// client never blocks the request that produced the event.
package notifications

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// PointsEvent is the payload pushed to a client when their balance changes.
type PointsEvent struct {
	Type       string `json:"type"`
	Points     int64  `json:"points"`
	NewBalance int64  `json:"newBalance"`
	Timestamp  string `json:"timestamp"`
	Message    string `json:"message"`
}

const (
	// sendBufferSize bounds the per-subscriber queue. Events beyond this
	// are dropped rather than blocking the publisher.
	sendBufferSize = 16

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// subscriber is a single WebSocket connection owned by one user.
type subscriber struct {
	userID string
	send   chan []byte
}

// Hub tracks connected subscribers keyed by user ID and fans events out to
// every connection a user has open.
type Hub struct {
	logger *slog.Logger

	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{}
}

// NewHub creates an empty Hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger: logger,
		subs:   make(map[string]map[*subscriber]struct{}),
	}
}

// subscribe registers a new subscriber for the given user.
func (h *Hub) subscribe(userID string) *subscriber {
	s := &subscriber{
		userID: userID,
		send:   make(chan []byte, sendBufferSize),
	}
	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*subscriber]struct{})
	}
	h.subs[userID][s] = struct{}{}
	h.mu.Unlock()
	return s
}

// unsubscribe removes a subscriber and closes its queue.
func (h *Hub) unsubscribe(s *subscriber) {
	h.mu.Lock()
	if set, ok := h.subs[s.userID]; ok {
		if _, ok := set[s]; ok {
			delete(set, s)
			close(s.send)
			if len(set) == 0 {
				delete(h.subs, s.userID)
			}
		}
	}
	h.mu.Unlock()
}

// publish queues an event for every connection the user has open. Full
// queues drop the event.
func (h *Hub) publish(userID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[userID] {
		select {
		case s.send <- payload:
		default:
			h.logger.Warn("Dropping notification for slow subscriber", slog.String("user_id", userID))
		}
	}
}

// ConnectionCount reports the number of open connections for a user.
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}

// NotifyPointsUpdate builds and publishes a points event for the user. It
// never blocks and never fails; delivery is best-effort.
func (h *Hub) NotifyPointsUpdate(userID string, eventKind string, points int64, newBalance int64) {
	event := PointsEvent{
		Type:       eventKind,
		Points:     points,
		NewBalance: newBalance,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Message:    eventMessage(eventKind, points),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal points event", slog.String("error", err.Error()))
		return
	}
	h.publish(userID, payload)
}

func eventMessage(eventKind string, points int64) string {
	plural := "s"
	if points == 1 {
		plural = ""
	}
	switch eventKind {
	case "EARN":
		return fmt.Sprintf("You earned %d point%s!", points, plural)
	case "REDEEM":
		return fmt.Sprintf("You redeemed %d point%s.", points, plural)
	default:
		return "Your points balance was updated."
	}
}

// ServeConn attaches an upgraded WebSocket connection to the hub and blocks
// until the connection closes.
func (h *Hub) ServeConn(userID string, conn *websocket.Conn) {
	s := h.subscribe(userID)
	defer h.unsubscribe(s)
	defer conn.Close()

	h.logger.Info("WebSocket subscriber connected", slog.String("user_id", userID))

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			// Clients only receive; reads exist to detect closes and pongs.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case payload, ok := <-s.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.logger.Info("WebSocket subscriber disconnected", slog.String("user_id", userID))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
