// Package web bridges Crossy sessions to browsers over WebSocket.
// Each connection owns one session; the browser animates hops, detects
// collisions and reports them back, while the server keeps the rules.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/crossy-arcade/internal/config"
	"github.com/vovakirdan/crossy-arcade/internal/games/crossy"
	"github.com/vovakirdan/crossy-arcade/internal/leaderboard"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
	maxNameLen     = 16
	gameID         = "crossy"
)

// Config holds the bridge settings.
type Config struct {
	// Addr is the host:port to listen on.
	Addr string

	// Game is the Crossy configuration every session uses.
	Game config.CrossyConfig

	// TickInterval drives session.Tick for expiry and catch-up.
	TickInterval time.Duration

	// Seed seeds the first session; later connections add a counter.
	// Zero uses the current time.
	Seed int64

	// Submitter receives finished runs. May be nil.
	Submitter leaderboard.Submitter

	// Logger receives server logs. Defaults to the global logger.
	Logger *log.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		Game:         config.DefaultCrossyConfig(),
		TickInterval: 100 * time.Millisecond,
	}
}

// Server is the WebSocket bridge.
type Server struct {
	cfg      Config
	logger   *log.Logger
	upgrader websocket.Upgrader
	conns    atomic.Int64
}

// NewServer creates a bridge from cfg.
func NewServer(cfg Config) *Server {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 100 * time.Millisecond
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Server{
		cfg:    cfg,
		logger: logger.WithPrefix("arcade-web"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handler returns the HTTP routes: /ws and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok\n")) //nolint:errcheck // health response
	})
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: %w", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer ws.Close()

	n := s.conns.Add(1)
	c := newConn(s, ws, s.cfg.Seed+n-1)
	s.logger.Info("session started", "remote", r.RemoteAddr, "conn", n)
	c.run(r.Context())
	s.logger.Info("session ended", "remote", r.RemoteAddr, "conn", n, "score", c.session.Progress().Score)
}

// conn is one browser session. Only run's goroutine touches the session.
type conn struct {
	srv     *Server
	ws      *websocket.Conn
	session *crossy.Session
	name    string

	pushed   int  // lanes the client already has
	full     bool // next push replaces the client's lanes
	events   []EventMessage
	lastResp bool
	lastShk  bool
}

func newConn(srv *Server, ws *websocket.Conn, seed int64) *conn {
	c := &conn{srv: srv, ws: ws, full: true}
	c.session = crossy.NewSession(srv.cfg.Game, seed, crossy.WithListener(c.onEvent))
	return c
}

func (c *conn) onEvent(e crossy.Event) {
	c.srv.logger.Debug("session event", "event", crossy.EventName(e), "name", c.name)
	c.events = append(c.events, eventMessage(e))

	switch ev := e.(type) {
	case crossy.ResetEvent:
		c.full = true
	case crossy.GameOverEvent:
		leaderboard.Report(c.srv.cfg.Submitter, c.srv.logger, leaderboard.Entry{
			GameID: gameID,
			Name:   c.name,
			Score:  ev.Score,
			Corn:   ev.Corn,
		})
	}
}

// run owns the session until the socket closes or ctx ends.
func (c *conn) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.ws.SetReadLimit(maxMessageSize)
	incoming := make(chan []byte)
	go c.read(ctx, incoming)

	if err := c.flush(); err != nil {
		return
	}

	ticker := time.NewTicker(c.srv.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)) //nolint:errcheck // closing anyway
			return

		case payload, ok := <-incoming:
			if !ok {
				return
			}
			c.handle(payload)
			if err := c.flush(); err != nil {
				return
			}

		case <-ticker.C:
			before := c.session.World().Len()
			c.session.Tick()
			if c.changed(before) {
				if err := c.flush(); err != nil {
					return
				}
			}
		}
	}
}

// read decodes nothing; it only moves frames onto the loop's channel.
func (c *conn) read(ctx context.Context, out chan<- []byte) {
	defer close(out)
	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.srv.logger.Debug("read failed", "error", err)
			}
			return
		}
		select {
		case out <- payload:
		case <-ctx.Done():
			return
		}
	}
}

func (c *conn) handle(payload []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		c.srv.logger.Warn("discarding malformed message", "error", err)
		return
	}

	switch msg.Type {
	case MsgHello:
		c.name = cleanName(msg.Name)
	case MsgMove:
		d, ok := crossy.ParseDirection(msg.Direction)
		if !ok {
			c.srv.logger.Warn("discarding move", "direction", msg.Direction)
			return
		}
		c.session.QueueMove(d)
	case MsgStep:
		c.session.StepCompleted()
	case MsgHit:
		c.session.Hit()
	case MsgReset:
		c.session.Reset()
	case MsgPause:
		c.session.SetPaused(msg.Paused)
	default:
		c.srv.logger.Warn("unknown message type", "type", msg.Type)
	}
}

// changed reports whether a tick produced anything the client should see.
func (c *conn) changed(lanesBefore int) bool {
	return len(c.events) > 0 ||
		c.session.World().Len() != lanesBefore ||
		c.session.Respawning() != c.lastResp ||
		c.session.Shaking() != c.lastShk
}

// flush writes queued events, then the state.
func (c *conn) flush() error {
	for _, e := range c.events {
		if err := c.write(e); err != nil {
			return err
		}
	}
	c.events = c.events[:0]

	state := c.state()
	if err := c.write(state); err != nil {
		return err
	}
	c.full = false
	c.pushed = c.session.World().Len()
	c.lastResp = state.Respawning
	c.lastShk = state.Shaking
	return nil
}

func (c *conn) state() StateMessage {
	p := c.session.Progress()
	world := c.session.World()

	from := c.pushed
	if c.full {
		from = 0
	}
	lanes := world.LanesFrom(from)
	views := make([]LaneView, len(lanes))
	for i, l := range lanes {
		views[i] = laneView(from+i, l)
	}

	pending := c.session.Pending()
	names := make([]string, len(pending))
	for i, d := range pending {
		names[i] = d.String()
	}

	return StateMessage{
		Type:       "state",
		Position:   positionView(c.session.Position()),
		Pending:    names,
		Score:      p.Score,
		Corn:       p.Corn,
		Best:       p.Best,
		PlayCount:  p.PlayCount,
		Checkpoint: positionView(p.Checkpoint),
		Status:     string(p.Status),
		Paused:     p.Paused,
		Respawning: c.session.Respawning(),
		Shaking:    c.session.Shaking(),
		Full:       c.full,
		LaneFrom:   from,
		Lanes:      views,
	}
}

func (c *conn) write(v any) error {
	c.ws.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck // surfaced by the write
	if err := c.ws.WriteJSON(v); err != nil {
		c.srv.logger.Debug("write failed", "error", err)
		return err
	}
	return nil
}

func cleanName(name string) string {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > maxNameLen {
		name = string(r[:maxNameLen])
	}
	return name
}
