package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Server exposes the dispatcher over loopback HTTP: a WebSocket for the UI,
// one-shot JSON command posts, and Prometheus metrics.
type Server struct {
	dispatcher *Dispatcher
	hub        *Hub
	metrics    *Metrics
	logger     *zap.Logger
	mux        *http.ServeMux
	httpServer *http.Server
}

// NewServer creates a server for addr. metrics may be nil.
func NewServer(addr string, d *Dispatcher, hub *Hub, metrics *Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		dispatcher: d,
		hub:        hub,
		metrics:    metrics,
		logger:     logger,
		mux:        http.NewServeMux(),
	}
	s.registerRoutes()

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           Chain(s.mux, RecoveryMiddleware(logger), LoggingMiddleware(logger)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// registerRoutes sets up all routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.HandleFunc("GET /api/v1/ws", s.handleWebSocket)
	s.mux.HandleFunc("GET /api/v1/commands", s.handleListCommands)
	s.mux.HandleFunc("POST /api/v1/commands/{name}", s.handleCommand)
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}
}

// Handler returns the HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("bridge server listening", zap.String("addr", ln.Addr().String()))
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down bridge server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "alive",
		"clients": s.hub.ClientCount(),
	})
}

func (s *Server) handleListCommands(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dispatcher.Commands())
}

// handleCommand runs one command; the request body is the args object.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !s.dispatcher.Known(name) {
		writeJSON(w, http.StatusNotFound, Response{
			Type:  ResponseType,
			ID:    r.Header.Get("X-Request-ID"),
			Error: fmt.Sprintf("%v: %q", ErrUnknownCommand, name),
		})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxMessageSize+1))
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	if len(body) > MaxMessageSize {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}

	resp := s.dispatcher.Dispatch(Request{
		ID:      r.Header.Get("X-Request-ID"),
		Command: name,
		Args:    json.RawMessage(body),
	})

	status := http.StatusOK
	if resp.Error != "" && isArgsError(resp.Error) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, resp)
}

func isArgsError(msg string) bool {
	prefix := ErrInvalidArgs.Error()
	return len(msg) >= len(prefix) && msg[:len(prefix)] == prefix
}

// handleWebSocket upgrades the connection and serves requests and events.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// The listener is loopback only and web view origins vary by platform.
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.logger.Error("websocket accept failed", zap.Error(err))
		return
	}
	conn.SetReadLimit(MaxMessageSize)

	client := newClient(conn, uuid.NewString(), 256, s.logger)

	s.hub.Register(client)

	// Run read and write pumps. When either exits, clean up.
	ctx := r.Context()
	go client.writePump(ctx)

	// readPump blocks until client disconnects.
	client.readPump(ctx, s.dispatcher)

	// Client disconnected -- stop write pump and unregister.
	s.hub.Unregister(client)
	conn.Close(websocket.StatusNormalClosure, "")
	<-client.done
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
