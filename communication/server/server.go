package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"connectfour/game"
	"connectfour/meta"
	"connectfour/searcher"
	"connectfour/searcher/agent"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const (
	writeWait      = 10 * time.Second
	defaultPong    = 60 * time.Second
	shutdownWindow = 5 * time.Second
)

type Option func(s *Server)

func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

func WithBoardSize(rows, columns int) Option {
	return func(s *Server) {
		s.rows = rows
		s.columns = columns
	}
}

// WithPongWait sets how long a silent connection lives. Pings go out at
// 9/10 of it.
func WithPongWait(wait time.Duration) Option {
	return func(s *Server) {
		if wait > 0 {
			s.pongWait = wait
		}
	}
}

// WithRandom decides the first move when the client does not.
func WithRandom(random searcher.Random) Option {
	return func(s *Server) {
		if random != nil {
			s.random = random
		}
	}
}

// Server lets browsers play against the computer over a websocket. Every
// connection gets its own game and its own agent.
type Server struct {
	newAgent       func() agent.Agent
	allowedOrigins []string
	rows           int
	columns        int
	pongWait       time.Duration
	random         searcher.Random
	upgrader       websocket.Upgrader

	mu    sync.Mutex
	conns map[*connection]struct{}
}

// humanFirst flips a coin under the server lock; seeded sources are not
// safe for concurrent use.
func (s *Server) humanFirst() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.random.Intn(2) == 0
}

func NewServer(newAgent func() agent.Agent, options ...Option) *Server {
	s := &Server{ // Default values
		newAgent: newAgent,
		rows:     meta.ROWS,
		columns:  meta.COLUMNS,
		pongWait: defaultPong,
		random:   searcher.NewRandom(),
		conns:    make(map[*connection]struct{}),
	}
	for _, option := range options {
		option(s)
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin:     s.checkOrigin,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// Start serves on addr until ctx is done, then closes every connection.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWindow)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
		s.closeAll()
	}()

	log.Info().Str("addr", addr).Msg("serving")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// checkOrigin accepts everything when no origins are configured, and
// requests without an Origin header, which do not come from a browser.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if len(s.allowedOrigins) == 0 || origin == "" {
		return true
	}
	return lo.Contains(s.allowedOrigins, origin)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}

	c := newConnection(s, conn)
	s.add(c)
	defer s.remove(c)
	c.serve()
}

func (s *Server) add(c *connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[c] = struct{}{}
}

func (s *Server) remove(c *connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, c)
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		c.conn.Close()
	}
}

func (s *Server) newBoard() (*game.Board, error) {
	return game.NewBoard(s.rows, s.columns)
}
