package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/scantrack/scantrack-backend/internal/models"
	"github.com/scantrack/scantrack-backend/internal/pkg/metrics"
)

// Hub maintains the set of connected live-viewer clients and fans each
// ingested event out to all of them. Delivery is best-effort: a viewer whose
// send buffer is full is dropped rather than allowed to block the others,
// and viewers connecting later never receive earlier events.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Outbound event payloads
	broadcast chan []byte

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for thread-safe membership access
	mu sync.RWMutex

	// Context for cancellation
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a new broadcast hub.
func NewHub(ctx context.Context) *Hub {
	hubCtx, cancel := context.WithCancel(ctx)
	return &Hub{
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		ctx:        hubCtx,
		cancel:     cancel,
	}
}

// Run starts the hub loop. Call in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			metrics.WebSocketConnectionsActive.Inc()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.WebSocketConnectionsActive.Dec()
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client buffer full, close connection
					close(client.send)
					delete(h.clients, client)
					metrics.WebSocketConnectionsActive.Dec()
					metrics.BroadcastsDroppedTotal.Inc()
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop stops the hub and disconnects all clients.
func (h *Hub) Stop() {
	h.cancel()
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
		metrics.WebSocketConnectionsActive.Dec()
	}
}

// BroadcastEvent queues an ingested event for delivery to every currently
// connected viewer. There is no backlog: viewers that connect afterwards do
// not receive it.
func (h *Hub) BroadcastEvent(e *models.Event) error {
	msg := models.WebSocketMessage{
		Type:  "event",
		Event: e,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- data:
		return nil
	case <-h.ctx.Done():
		return h.ctx.Err()
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
