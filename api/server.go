package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/karelp/minsk-emulator/config"
)

// maxProgramSize bounds the accepted program text.
const maxProgramSize = 1 << 20

// Server is the HTTP face of the daemon.
type Server struct {
	mux    *http.ServeMux
	server *http.Server
	cfg    *config.Config
	port   int
}

// NewServer creates a new API server listening on port.
func NewServer(port int, cfg *config.Config) *Server {
	s := &Server{
		mux:  http.NewServeMux(),
		cfg:  cfg,
		port: port,
	}
	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/v1/run", s.handleRun)
	s.mux.HandleFunc("/api/v1/ws", s.handleWebSocket)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Duration(s.cfg.Daemon.SessionSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("API server starting on http://127.0.0.1:%d", s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// RunResponse is the reply of the run endpoint: the full console transcript
// plus, when execution reached a stop, its reason.
type RunResponse struct {
	Output string `json:"output"`
	Reason string `json:"reason,omitempty"`
}

// handleRun accepts a program in the octal load format as the request body,
// runs it under the daemon's session limits, and returns the transcript.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxProgramSize))
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	output, st, _ := runToString(string(body), limitsFrom(s.cfg))
	resp := RunResponse{Output: output}
	if st != nil {
		resp.Reason = st.Reason.String()
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
