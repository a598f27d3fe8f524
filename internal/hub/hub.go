// Package hub fans server frames out to connected websocket clients.
package hub

import (
	"log"
	"sync"
)

// Hub tracks connected clients and broadcasts frames to all of them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	logger  *log.Logger
}

// New returns an empty hub.
func New(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients: make(map[*Client]bool),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Printf("hub: %s client connected (total: %d)", c.role, n)
}

// Unregister removes a client and closes its send queue.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		h.logger.Printf("hub: %s client disconnected (total: %d)", c.role, n)
	}
}

// Broadcast queues msg on every client. Clients whose queue is full are dropped.
func (h *Hub) Broadcast(msg []byte) {
	var slow []*Client
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Printf("hub: dropping slow %s client", c.role)
		h.Unregister(c)
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
