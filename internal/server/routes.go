package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/BioHazard786/warpline/internal/signaling"
)

// Configure the websocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  64 * 1024, // 64 KB
	WriteBufferSize: 64 * 1024, // 64 KB

	// Peers are not authenticated, so any origin may connect.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HealthResponse is the JSON body returned by the health endpoint.
type HealthResponse struct {
	Status      string `json:"status"`
	ActiveRooms int    `json:"active_rooms"`
	OpenRooms   int    `json:"open_rooms"`
	PairedRooms int    `json:"paired_rooms"`
}

// ServeWs returns an http.HandlerFunc that upgrades the request and hands
// the connection to hub for its lifetime.
func ServeWs(hub *signaling.Hub, maxMessageSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("failed to upgrade connection", "remote", r.RemoteAddr, "err", err)
			return
		}

		client := signaling.NewClient(hub, conn, maxMessageSize)
		slog.Debug("connection opened", "conn", client.ID(), "remote", conn.RemoteAddr().String())
		client.Serve()
	}
}

// HealthHandler reports liveness and room counts.
func HealthHandler(hub *signaling.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := hub.Stats()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(HealthResponse{
			Status:      "ok",
			ActiveRooms: stats.Total(),
			OpenRooms:   stats.Open,
			PairedRooms: stats.Paired,
		})
	}
}

// NewMux registers the health endpoint and the websocket endpoint. Upgrades
// are accepted on any path other than /health.
func NewMux(hub *signaling.Hub, maxMessageSize int64) *http.ServeMux {
	ws := ServeWs(hub, maxMessageSize)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", HealthHandler(hub))
	mux.HandleFunc("GET /ws", ws)
	mux.HandleFunc("GET /", ws)
	return mux
}
