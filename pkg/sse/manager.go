package sse

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Event is a single server-sent event.
type Event struct {
	Type    string
	Payload interface{}
}

// Manager fans events out to every connected client. Delivery is best
// effort: a client whose buffer is full misses the event.
type Manager struct {
	mu        sync.RWMutex
	clients   map[string]chan Event
	buffer    int
	heartbeat time.Duration
}

// NewManager creates a manager with a per-client buffer of buffer events.
func NewManager(buffer int, heartbeat time.Duration) *Manager {
	if buffer < 1 {
		buffer = 16
	}
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	return &Manager{
		clients:   make(map[string]chan Event),
		buffer:    buffer,
		heartbeat: heartbeat,
	}
}

// Subscribe registers a client and returns its id and event channel.
func (m *Manager) Subscribe() (string, <-chan Event) {
	id := uuid.New().String()
	ch := make(chan Event, m.buffer)

	m.mu.Lock()
	m.clients[id] = ch
	total := len(m.clients)
	m.mu.Unlock()

	log.Printf("[SSE] Client %s connected (%d total)", id, total)
	return id, ch
}

// Unsubscribe removes a client and closes its channel.
func (m *Manager) Unsubscribe(id string) {
	m.mu.Lock()
	ch, ok := m.clients[id]
	if ok {
		delete(m.clients, id)
		close(ch)
	}
	total := len(m.clients)
	m.mu.Unlock()

	if ok {
		log.Printf("[SSE] Client %s disconnected (%d total)", id, total)
	}
}

// Broadcast sends an event to all connected clients and returns how many
// received it.
func (m *Manager) Broadcast(eventType string, payload interface{}) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	delivered := 0
	for id, ch := range m.clients {
		select {
		case ch <- Event{Type: eventType, Payload: payload}:
			delivered++
		default:
			log.Printf("[SSE] Client %s is lagging, dropping %s event", id, eventType)
		}
	}
	return delivered
}

// ClientCount returns the number of connected clients.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// ServeHTTP streams events to the requesting client until it disconnects.
// GET /api/v1/alerts/stream
func (m *Manager) ServeHTTP(c *gin.Context) {
	id, events := m.Subscribe()
	defer m.Unsubscribe(id)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	c.SSEvent("connected", gin.H{"clientId": id})
	c.Writer.Flush()

	ticker := time.NewTicker(m.heartbeat)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(ev.Type, ev.Payload)
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}
