// Package websocket pushes live game updates to browser clients.
package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/fortuna/fieldhouse/internal/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server is the websocket server. It implements live.Broadcaster so the
// watcher can push updates straight to connected clients.
type Server struct {
	server *http.Server
	hub    *Hub
}

// NewServer creates a new websocket server.
func NewServer() *Server {
	return &Server{hub: NewHub()}
}

// Start starts the websocket server on the given port.
func (s *Server) Start(port string) error {
	go s.hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/games/live", s.handleLiveGames)
	mux.HandleFunc("/ws/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: mux,
	}

	log.Printf("[ws] → listening on :%s", port)
	return s.server.ListenAndServe()
}

// handleLiveGames upgrades a connection and subscribes it to live updates.
func (s *Server) handleLiveGames(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] ⚠️ upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// handleHealth returns websocket server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "clients": %d}`, s.hub.ClientCount())
}

// BroadcastUpdate sends a live game update to all connected clients.
func (s *Server) BroadcastUpdate(update live.Update) {
	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("[ws] ⚠️ marshal failed for %s: %v", update.GameID, err)
		return
	}
	s.hub.Broadcast(data)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
