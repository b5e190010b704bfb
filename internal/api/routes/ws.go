package routes

import (
	"Lumen/internal/ws"

	"github.com/go-chi/chi/v5"
)

// RegisterWebSocketRoutes registers the realtime event stream endpoint
func RegisterWebSocketRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/api/ws", hub.ServeHTTP)
}
