// Package server exposes the analysis engine over HTTP and streams the
// normalized series to chart front-ends over WebSocket.
package server

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/plantsense/plantsense-cli/internal/analysis"
	"github.com/plantsense/plantsense-cli/internal/dataset"
	"github.com/plantsense/plantsense-cli/internal/encoding"
	"github.com/plantsense/plantsense-cli/internal/models"
	"github.com/plantsense/plantsense-cli/internal/report"
)

const maxBodyBytes = 32 << 20

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// Config holds the server configuration.
type Config struct {
	Host       string
	Port       int
	Token      string
	AcceptGzip bool
}

// Stats holds server counters.
type Stats struct {
	TotalAnalyzed int
	TotalErrors   int
}

// Server is the analysis HTTP server. Each analyze request runs the engine
// over the posted export; the latest result is kept for series subscribers.
type Server struct {
	config  Config
	engine  *analysis.Engine
	server  *http.Server
	mu      sync.RWMutex
	latest  *analysis.Result
	clients map[*websocket.Conn]encoding.Encoder
	stats   Stats
}

// NewServer creates a new analysis server around an engine.
func NewServer(config Config, engine *analysis.Engine) *Server {
	return &Server{
		config:  config,
		engine:  engine,
		clients: make(map[*websocket.Conn]encoding.Encoder),
	}
}

// Start starts the server and blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/plants/analyze", s.handleAnalyze)
	mux.HandleFunc("/v1/plants/series", s.handleSeries)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/", s.handleRoot)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("analysis server listening on http://%s", addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// GetAddress returns the server base address.
func (s *Server) GetAddress() string {
	return fmt.Sprintf("http://%s:%d", s.config.Host, s.config.Port)
}

// GetStats returns current server counters.
func (s *Server) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"service": "plantsense-analyzer",
		"analyze": "/v1/plants/analyze",
		"series":  "/v1/plants/series",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if !s.validateAuth(r) {
		s.countError()
		s.writeError(w, http.StatusUnauthorized, "invalid or missing authorization token")
		return
	}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		s.countError()
		s.writeError(w, http.StatusBadRequest, "Content-Type must be application/json")
		return
	}

	body, err := s.readBody(r)
	if err != nil {
		s.countError()
		s.writeError(w, http.StatusBadRequest, "failed to read request body: "+err.Error())
		return
	}

	plantID := r.URL.Query().Get("plant")
	if plantID == "" {
		plantID = dataset.DefaultPlantID
	}

	logs, err := models.ParseExport(body, plantID)
	if err != nil {
		s.countError()
		s.writeError(w, http.StatusBadRequest, "invalid export: "+err.Error())
		return
	}

	result, err := s.engine.Run(logs)
	if err != nil {
		s.countError()
		s.writeError(w, http.StatusUnprocessableEntity, "analysis failed: "+err.Error())
		return
	}

	s.mu.Lock()
	s.latest = result
	s.stats.TotalAnalyzed++
	s.mu.Unlock()

	s.broadcast(result)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"report": report.NewDocument(result, nil, false),
	})
}

// handleSeries upgrades to WebSocket and streams the latest normalized
// series, then keeps the connection for future analyze broadcasts.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("failed to upgrade connection: %v", err)
		return
	}

	encoder := encoding.NewEncoder(encoding.Format(r.URL.Query().Get("format")))

	s.mu.Lock()
	s.clients[conn] = encoder
	latest := s.latest
	clientCount := len(s.clients)
	s.mu.Unlock()

	log.Printf("series client connected from %s (total: %d)", r.RemoteAddr, clientCount)

	if latest != nil {
		s.sendSeries(conn, encoder, latest)
	}

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		clientCount := len(s.clients)
		s.mu.Unlock()

		conn.Close()
		log.Printf("series client disconnected (total: %d)", clientCount)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast sends the result series to all connected clients.
func (s *Server) broadcast(result *analysis.Result) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn, encoder := range s.clients {
		s.sendSeries(conn, encoder, result)
	}
}

func (s *Server) sendSeries(conn *websocket.Conn, encoder encoding.Encoder, result *analysis.Result) {
	messageType := websocket.TextMessage
	if encoder.ContentType() == "application/x-protobuf" {
		messageType = websocket.BinaryMessage
	}

	for _, record := range result.Records {
		data, err := encoder.Encode(record)
		if err != nil {
			log.Printf("failed to encode record: %v", err)
			return
		}
		if err := conn.WriteMessage(messageType, data); err != nil {
			log.Printf("failed to send to client: %v", err)
			return
		}
	}
}

func (s *Server) validateAuth(r *http.Request) bool {
	if s.config.Token == "" {
		return true
	}
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return false
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return false
	}
	return parts[1] == s.config.Token
}

func (s *Server) readBody(r *http.Request) ([]byte, error) {
	reader := io.Reader(r.Body)
	if s.config.AcceptGzip && r.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			return nil, fmt.Errorf("invalid gzip body: %w", err)
		}
		defer gz.Close()
		reader = gz
	}
	return io.ReadAll(io.LimitReader(reader, maxBodyBytes))
}

func (s *Server) countError() {
	s.mu.Lock()
	s.stats.TotalErrors++
	s.mu.Unlock()
}

func (s *Server) writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
