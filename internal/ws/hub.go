package ws

import (
	"log/slog"
)

// Event is the message broadcast to every connected client.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub fans post lifecycle events out to connected websocket clients.
// All client-set mutation happens on the Run goroutine.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	logger     *slog.Logger
}

// NewHub creates a hub; call Run on its own goroutine before serving.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run owns the client set. A client that cannot keep up with the
// broadcast stream is dropped rather than blocking the hub.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.logger.Debug("websocket client connected", "clients", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Debug("websocket client disconnected", "clients", len(h.clients))
			}

		case event := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- event:
				default:
					delete(h.clients, client)
					close(client.send)
					h.logger.Warn("websocket client too slow, dropping")
				}
			}
		}
	}
}

// Broadcast queues an event for delivery to all connected clients.
// Never blocks request handling: if the hub's buffer is full the event
// is dropped.
func (h *Hub) Broadcast(event Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("websocket broadcast buffer full, dropping event", "type", event.Type)
	}
}
