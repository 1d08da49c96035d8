package relay

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Abdulai258/aula/internal/config"
	httpapi "github.com/Abdulai258/aula/internal/http"
)

// Server exposes the relay over WebSocket plus the ticket HTTP API and
// optional static assets, all on one listener.
type Server struct {
	cfg     *config.Config
	router  *Router
	tickets *httpapi.TicketsHandler

	upgrader   websocket.Upgrader
	httpServer *http.Server
	mux        *http.ServeMux
}

// NewServer creates the relay server. tickets may be nil to disable
// the ticket API (used by some tests).
func NewServer(cfg *config.Config, router *Router, tickets *httpapi.TicketsHandler) *Server {
	s := &Server{
		cfg:     cfg,
		router:  router,
		tickets: tickets,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// checkOrigin validates the WebSocket upgrade origin against the
// configured whitelist. No configured origins = allow all (dev mode);
// an empty Origin header (non-browser clients) is always allowed.
func (s *Server) checkOrigin(r *http.Request) bool {
	allowed := s.cfg.Relay.AllowedOrigins
	if len(allowed) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, a := range allowed {
		if origin == a || a == "*" {
			return true
		}
	}
	slog.Warn("websocket origin rejected", "origin", origin)
	return false
}

// BuildMux creates and caches the HTTP mux with all routes registered.
func (s *Server) BuildMux() *http.ServeMux {
	if s.mux != nil {
		return s.mux
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("GET /health", s.handleHealth)

	if s.tickets != nil {
		s.tickets.RegisterRoutes(mux)
	}

	if dir := s.cfg.Web.Dir; dir != "" {
		mux.Handle("/", http.FileServer(http.Dir(dir)))
	}

	s.mux = mux
	return mux
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	mux := s.BuildMux()

	addr := fmt.Sprintf("%s:%d", s.cfg.Relay.Host, s.cfg.Relay.Port)
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	slog.Info("relay starting", "addr", addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	}()

	if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("relay server: %w", err)
	}
	return nil
}

// handleWebSocket upgrades the request and drives the connection's
// event stream through the router.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	client := NewClient(wsConn, s.cfg.Relay.RateLimitRPM)
	conn := s.router.Connect(client)
	slog.Info("client connected", "conn", conn.ID)

	defer func() {
		s.router.Disconnect(conn)
		client.Close()
		slog.Info("client closed", "conn", conn.ID)
	}()

	client.Run(r.Context(), func(text string) {
		s.router.HandleMessage(r.Context(), conn, text)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"status":"ok"}`)
}

// StartTestServer creates a listener on 127.0.0.1:0 and returns the
// actual address and a start function. Used by integration tests.
func StartTestServer(s *Server, ctx context.Context) (addr string, start func()) {
	mux := s.BuildMux()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		panic("listen: " + err.Error())
	}

	s.httpServer = &http.Server{Handler: mux}
	addr = ln.Addr().String()

	start = func() {
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			s.httpServer.Shutdown(shutdownCtx)
		}()
		s.httpServer.Serve(ln)
	}

	return addr, start
}
