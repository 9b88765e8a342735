// Package realtime fans domain events out to live connections. State is
// process-local and rebuilt as clients reconnect and re-join; events
// published while nobody is subscribed are dropped, never queued.
package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Event names, fixed by the client protocol.
const (
	EventBookingCreated      = "booking:created"
	EventBookingDeleted      = "booking:deleted"
	EventAvailabilityChanged = "availability:changed"
	EventResourceCreated     = "resource:created"
	EventResourceDeleted     = "resource:deleted"
)

// Event is one notification as delivered to a connection.
type Event struct {
	Name    string         `json:"event"`
	Payload map[string]any `json:"payload"`
}

type connection struct {
	ch        chan Event
	resources map[uint]struct{}
}

// Hub tracks open connections and which resources each one watches.
type Hub struct {
	mu    sync.Mutex
	conns map[string]*connection
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]*connection)}
}

// Connect registers a new connection and returns its id and event channel.
// The channel is closed by Disconnect.
func (h *Hub) Connect() (string, <-chan Event) {
	id := uuid.NewString()
	conn := &connection{
		ch:        make(chan Event, 16),
		resources: make(map[uint]struct{}),
	}
	h.mu.Lock()
	h.conns[id] = conn
	h.mu.Unlock()
	return id, conn.ch
}

// Disconnect removes the connection and all its resource relations.
// Unknown ids are a no-op.
func (h *Hub) Disconnect(id string) {
	h.mu.Lock()
	if conn, ok := h.conns[id]; ok {
		delete(h.conns, id)
		close(conn.ch)
	}
	h.mu.Unlock()
}

// Join subscribes the connection to a resource. Joining twice is a no-op, as
// is joining from an unknown connection.
func (h *Hub) Join(id string, resourceID uint) {
	h.mu.Lock()
	if conn, ok := h.conns[id]; ok {
		conn.resources[resourceID] = struct{}{}
	}
	h.mu.Unlock()
}

// Leave drops the connection's interest in a resource; leaving a resource
// never joined is a no-op.
func (h *Hub) Leave(id string, resourceID uint) {
	h.mu.Lock()
	if conn, ok := h.conns[id]; ok {
		delete(conn.resources, resourceID)
	}
	h.mu.Unlock()
}

// PublishResource delivers the event to every connection currently joined to
// the resource. Delivery is best effort: a connection with a full buffer is
// skipped and the others still receive the event.
func (h *Hub) PublishResource(resourceID uint, name string, payload map[string]any) {
	ev := Event{Name: name, Payload: payload}
	h.mu.Lock()
	for _, conn := range h.conns {
		if _, joined := conn.resources[resourceID]; !joined {
			continue
		}
		select {
		case conn.ch <- ev:
		default:
			// Lagging subscriber; drop rather than block the writer.
		}
	}
	h.mu.Unlock()
}

// PublishGlobal delivers the event to every open connection.
func (h *Hub) PublishGlobal(name string, payload map[string]any) {
	ev := Event{Name: name, Payload: payload}
	h.mu.Lock()
	for _, conn := range h.conns {
		select {
		case conn.ch <- ev:
		default:
		}
	}
	h.mu.Unlock()
}
