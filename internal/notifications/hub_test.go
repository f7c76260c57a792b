package notifications

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishDeliversToSubscriber(t *testing.T) {
	hub := NewHub(nil)
	sub := hub.subscribe("user-1")
	defer hub.unsubscribe(sub)

	hub.NotifyPointsUpdate("user-1", "EARN", 12, 112)

	require.Len(t, sub.send, 1, "Event should be queued for the subscriber")
	payload := <-sub.send

	var event PointsEvent
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, "EARN", event.Type)
	assert.Equal(t, int64(12), event.Points)
	assert.Equal(t, int64(112), event.NewBalance)
	assert.Equal(t, "You earned 12 points!", event.Message)
	assert.NotEmpty(t, event.Timestamp)
}

func TestHubPublishSkipsOtherUsers(t *testing.T) {
	hub := NewHub(nil)
	sub := hub.subscribe("user-1")
	defer hub.unsubscribe(sub)

	hub.NotifyPointsUpdate("user-2", "REDEEM", 50, 0)

	assert.Empty(t, sub.send, "Events for other users should not be delivered")
}

func TestHubPublishDropsWhenQueueFull(t *testing.T) {
	hub := NewHub(nil)
	sub := hub.subscribe("user-1")
	defer hub.unsubscribe(sub)

	// Overfill the buffered queue; the publisher must never block.
	for i := 0; i < sendBufferSize+5; i++ {
		hub.NotifyPointsUpdate("user-1", "EARN", 1, int64(i))
	}

	assert.Equal(t, sendBufferSize, len(sub.send), "Queue should cap at the buffer size")
}

func TestHubUnsubscribeRemovesUser(t *testing.T) {
	hub := NewHub(nil)
	sub := hub.subscribe("user-1")
	other := hub.subscribe("user-1")

	assert.Equal(t, 2, hub.ConnectionCount("user-1"))

	hub.unsubscribe(sub)
	assert.Equal(t, 1, hub.ConnectionCount("user-1"))

	hub.unsubscribe(other)
	assert.Equal(t, 0, hub.ConnectionCount("user-1"))

	// Notifying after all connections closed is a no-op.
	hub.NotifyPointsUpdate("user-1", "EARN", 5, 5)
}

func TestEventMessageWording(t *testing.T) {
	assert.Equal(t, "You earned 1 point!", eventMessage("EARN", 1))
	assert.Equal(t, "You redeemed 100 points.", eventMessage("REDEEM", 100))
	assert.Equal(t, "Your points balance was updated.", eventMessage("OTHER", 3))
}
