package feed

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"wearhouse/internal/domain"
)

// Event is one catalog change pushed to connected clients.
type Event struct {
	Action  string          `json:"action"`
	Garment *domain.Garment `json:"garment,omitempty"`
	At      time.Time       `json:"at"`
}

// client wraps a connection with a write lock: the websocket package allows
// at most one concurrent writer per connection, and Publish runs in whichever
// request goroutine triggered the event.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) write(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(event)
}

// Hub fans catalog events out to every connected websocket client.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]*client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client)}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = &client{conn: conn}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		_ = conn.Close()
		delete(h.clients, conn)
	}
}

// Publish broadcasts the event. Writes to each connection are serialized by
// the per-client lock; clients that fail a write are dropped.
func (h *Hub) Publish(action string, g *domain.Garment) {
	event := Event{Action: action, Garment: g, At: time.Now()}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	for _, cl := range clients {
		if err := cl.write(event); err != nil {
			log.Printf("feed: dropping client after write error=%q", err)
			h.Unregister(cl.conn)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, conn)
	}
}
