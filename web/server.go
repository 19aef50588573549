package web

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/noriapi/prevent-alt-win-menu/config"
	"github.com/noriapi/prevent-alt-win-menu/storage"
	"github.com/noriapi/prevent-alt-win-menu/suppress"
)

//go:embed static/*
var staticFiles embed.FS

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// Server serves the local dashboard: decision history, stats, and a
// live WebSocket feed of hold decisions.
type Server struct {
	db     *storage.DB
	config *config.Config
	port   int
	hub    *Hub
	mu     sync.RWMutex
	paused func() bool
}

// NewServer creates a new web server. paused reports whether the agent
// is currently paused; it may be nil.
func NewServer(db *storage.DB, cfg *config.Config, paused func() bool) *Server {
	hub := NewHub()
	go hub.Run()

	return &Server{
		db:     db,
		config: cfg,
		port:   cfg.Web.Port,
		hub:    hub,
		paused: paused,
	}
}

// Start starts the web server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/ws", s.handleWebSocket)

	// Static files
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to load static files: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(staticFS)))

	addr := fmt.Sprintf("localhost:%d", s.port)
	slog.Info("Starting web server", "port", s.port, "url", fmt.Sprintf("http://localhost:%d", s.port))

	return http.ListenAndServe(addr, mux)
}

// GetConfig returns the current configuration (thread-safe)
func (s *Server) GetConfig() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// BroadcastStatus broadcasts a status update to all connected clients
func (s *Server) BroadcastStatus(status string) {
	s.hub.BroadcastMessage(Message{
		Type: MessageTypeStatus,
		Data: StatusMessage{Status: status},
	})
}

// BroadcastDecision broadcasts a hold decision to all connected clients
func (s *Server) BroadcastDecision(d suppress.Decision) {
	msg := DecisionMessage{
		Trigger:    d.Trigger.String(),
		DurationMs: d.Duration().Milliseconds(),
		Suppressed: d.Suppressed,
		Timestamp:  time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
	if d.Err != nil {
		msg.Error = d.Err.Error()
	}
	s.hub.BroadcastMessage(Message{
		Type: MessageTypeDecision,
		Data: msg,
	})
}

// handleWebSocket handles WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade WebSocket connection", "error", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}
