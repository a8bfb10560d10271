package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scantrack/scantrack-backend/internal/models"
)

func TestNewHub(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(ctx)

	assert.NotNil(t, hub)
	assert.NotNil(t, hub.clients)
	assert.NotNil(t, hub.broadcast)
	assert.NotNil(t, hub.register)
	assert.NotNil(t, hub.unregister)
}

func TestHubRun(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	hub := NewHub(ctx)
	go hub.Run()

	// Wait for context to expire
	<-ctx.Done()

	// Hub should have stopped gracefully
}

func TestHubClientRegistration(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(ctx)
	go hub.Run()
	defer hub.Stop()

	assert.Equal(t, 0, hub.ClientCount())

	client := &Client{
		send: make(chan []byte, 256),
	}

	hub.register <- client

	// Give it time to process
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, 1, hub.ClientCount())

	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, 0, hub.ClientCount())
}

func TestHubBroadcastDelivery(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(ctx)
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		send: make(chan []byte, 256),
	}
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	event := &models.Event{
		Timestamp: 1700000000000,
		ClientIP:  "203.0.113.4",
		UserAgent: "Mozilla/5.0",
		Kind:      "scan",
		SessionID: "sess-1",
	}
	require.NoError(t, hub.BroadcastEvent(event))

	select {
	case raw := <-client.send:
		var msg models.WebSocketMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, "event", msg.Type)
		require.NotNil(t, msg.Event)
		assert.Equal(t, event.Timestamp, msg.Event.Timestamp)
		assert.Equal(t, event.ClientIP, msg.Event.ClientIP)
		assert.Equal(t, event.UserAgent, msg.Event.UserAgent)
		assert.Equal(t, event.Kind, msg.Event.Kind)
		assert.Equal(t, event.SessionID, msg.Event.SessionID)
	case <-time.After(time.Second):
		t.Fatal("broadcast was not delivered")
	}
}

func TestHubNoReplayForLateViewer(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(ctx)
	go hub.Run()
	defer hub.Stop()

	require.NoError(t, hub.BroadcastEvent(&models.Event{Kind: "scan", SessionID: "s1"}))
	time.Sleep(10 * time.Millisecond)

	// Viewer connects after the event was published.
	late := &Client{
		send: make(chan []byte, 256),
	}
	hub.register <- late
	time.Sleep(10 * time.Millisecond)

	select {
	case <-late.send:
		t.Fatal("late viewer must not receive previously published events")
	default:
	}
}

func TestHubSlowViewerDropped(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(ctx)
	go hub.Run()
	defer hub.Stop()

	// A viewer with no buffer simulates one that never drains its channel.
	slow := &Client{
		send: make(chan []byte),
	}
	fast := &Client{
		send: make(chan []byte, 256),
	}
	hub.register <- slow
	hub.register <- fast
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, hub.BroadcastEvent(&models.Event{Kind: "scan", SessionID: "s1"}))
	time.Sleep(20 * time.Millisecond)

	// Slow viewer is disconnected; the fast one still got the message.
	assert.Equal(t, 1, hub.ClientCount())
	select {
	case <-fast.send:
	default:
		t.Fatal("fast viewer should have received the broadcast")
	}
}

func TestHubStop(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(ctx)
	go hub.Run()

	for i := 0; i < 3; i++ {
		client := &Client{
			send: make(chan []byte, 256),
		}
		hub.register <- client
	}

	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 3, hub.ClientCount())

	hub.Stop()
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, 0, hub.ClientCount())
}
