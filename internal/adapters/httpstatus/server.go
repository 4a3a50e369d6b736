package httpstatus

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jose-valero/lavalink-music-bot/internal/adapters/lavalink"
)

// NodeReporter: de dónde sale el estado del nodo (lavalink.Client).
type NodeReporter interface {
	Status() lavalink.NodeStatus
}

type Server struct {
	node NodeReporter
	mux  *http.ServeMux
	srv  *http.Server
}

type statusDTO struct {
	Node           string `json:"node"`
	Connected      bool   `json:"connected"`
	HasSession     bool   `json:"has_session"`
	ActiveSessions int    `json:"active_sessions"`
	NodePlayers    int    `json:"node_players"`
	NodePlaying    int    `json:"node_playing"`
	NodeUptimeSec  int64  `json:"node_uptime_seconds"`
}

func New(node NodeReporter) *Server {
	s := &Server{node: node, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
}

func (s *Server) Handler() http.Handler { return s.mux }

// handleHealth: 200 si el websocket del nodo está arriba, 503 si no.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	st := s.node.Status()
	out := statusDTO{
		Node:           st.Name,
		Connected:      st.Connected,
		HasSession:     st.SessionID != "",
		ActiveSessions: st.ActiveSessions,
		NodePlayers:    st.Stats.Players,
		NodePlaying:    st.Stats.PlayingPlayers,
		NodeUptimeSec:  int64(st.Stats.Uptime / time.Second),
	}

	code := http.StatusOK
	if !st.Connected {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(out)
}

// Start bloquea hasta que el server se cierra.
func (s *Server) Start(addr string) error {
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info().Str("addr", addr).Msg("🌐 HTTP status listening")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
