package network

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/engine"
	"github.com/lixenwraith/lastlight/logger"
	"github.com/lixenwraith/lastlight/status"
)

// Config configures the spectator server
type Config struct {
	Addr        string
	RateHz      float64 // Maximum snapshot rate per client
	CORSOrigins []string
	Metrics     *status.Metrics // Optional

	// PongWait drops clients that stay silent this long (0 = default).
	// Pings go out at 9/10 of it.
	PongWait time.Duration
}

// Server is the read-only spectator feed. The game loop publishes immutable
// snapshots; HTTP handlers and websocket clients only ever read them.
type Server struct {
	cfg  Config
	hub  *Hub
	http *http.Server

	snapshot atomic.Pointer[engine.Snapshot]
	layout   atomic.Pointer[LayoutView]
	lastSent atomic.Int64 // Tick of the last broadcast snapshot

	upgrader websocket.Upgrader
}

// NewServer creates a server; nothing listens until Start
func NewServer(cfg Config) *Server {
	if cfg.RateHz <= 0 {
		cfg.RateHz = constants.SpectatorRateHz
	}

	s := &Server{cfg: cfg}
	var onCount func(int)
	if cfg.Metrics != nil {
		onCount = func(n int) { cfg.Metrics.Spectators.Set(float64(n)) }
	}
	s.hub = NewHub(onCount)
	if cfg.PongWait > 0 {
		s.hub.pongWait = cfg.PongWait
		s.hub.pingPeriod = cfg.PongWait * 9 / 10
	}
	s.lastSent.Store(-1)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	return s
}

// Hub exposes the connection tracker
func (s *Server) Hub() *Hub {
	return s.hub
}

// Router builds the HTTP routes. It starts no goroutines, so tests can mount
// it on httptest.NewServer.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "spectators": s.hub.Count()})
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/snapshot", s.handleSnapshot)
		r.Get("/layout", s.handleLayout)
	})
	r.Get("/ws", s.handleWebSocket)
	if s.cfg.Metrics != nil {
		r.Handle("/metrics", s.cfg.Metrics.Handler())
	}
	return r
}

// Publish stores the session's current state for readers. Call from the game
// loop after each step; a new session also replaces the layout and is pushed
// to connected spectators.
func (s *Server) Publish(sess *engine.Session) {
	snap := sess.Snapshot()
	s.snapshot.Store(snap)

	if cur := s.layout.Load(); cur == nil || cur.Session != snap.SessionID {
		lv := NewLayoutView(sess)
		s.layout.Store(lv)
		if frame, err := encode(MsgLayout, lv); err == nil {
			s.hub.broadcast(frame, false)
		}
	}
}

// HandleEvent implements engine.EventHandler, forwarding events to spectators
func (s *Server) HandleEvent(ev engine.GameEvent) {
	frame, err := encode(MsgEvent, NewEventView(ev))
	if err != nil {
		logger.Log.WithError(err).Warn("spectator event encode failed")
		return
	}
	s.hub.broadcast(frame, false)
}

// EventTypes implements engine.EventHandler
func (s *Server) EventTypes() []engine.EventType {
	return []engine.EventType{
		engine.EventGeneratorCompleted,
		engine.EventDoorsUnlocked,
		engine.EventDoorOpened,
		engine.EventTrapLaid,
		engine.EventItemCollected,
		engine.EventItemUsed,
		engine.EventShieldAbsorbed,
		engine.EventPlayerCaught,
		engine.EventPlayerEscaped,
		engine.EventFlashlightDepleted,
		engine.EventSessionReset,
	}
}

// BroadcastSnapshot sends the latest snapshot if it changed since the last
// broadcast. Returns the number of clients it was queued for.
func (s *Server) BroadcastSnapshot() int {
	snap := s.snapshot.Load()
	if snap == nil || s.hub.Count() == 0 {
		return 0
	}
	if s.lastSent.Swap(snap.Tick) == snap.Tick {
		return 0
	}
	frame, err := encode(MsgSnapshot, snap)
	if err != nil {
		logger.Log.WithError(err).Warn("spectator snapshot encode failed")
		return 0
	}
	return s.hub.broadcast(frame, true)
}

// Start listens on the configured address and serves until Shutdown. The
// broadcast loop runs until ctx is done. Returns the bound address.
func (s *Server) Start(ctx context.Context) (string, error) {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return "", err
	}
	s.http = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.WithError(err).Error("spectator server stopped")
		}
	}()
	go s.broadcastLoop(ctx)

	addr := ln.Addr().String()
	logger.Log.WithField("addr", addr).Info("spectator server listening")
	return addr, nil
}

// Shutdown closes spectator connections and stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.closeAll()
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) broadcastLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / s.cfg.RateHz))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.BroadcastSnapshot()
		}
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	snap := s.snapshot.Load()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no active session"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleLayout(w http.ResponseWriter, _ *http.Request) {
	lv := s.layout.Load()
	if lv == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no active session"})
		return
	}
	writeJSON(w, http.StatusOK, lv)
}

// handleWebSocket upgrades a spectator. The optional hz query parameter lowers
// the client's snapshot rate below the server maximum.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	hz := s.cfg.RateHz
	if q := r.URL.Query().Get("hz"); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil || v <= 0 {
			http.Error(w, "invalid hz", http.StatusBadRequest)
			return
		}
		hz = min(v, s.cfg.RateHz)
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Debug("spectator upgrade failed")
		return
	}

	c := &client{
		conn:    conn,
		send:    make(chan []byte, constants.SpectatorSendBuffer),
		limiter: rate.NewLimiter(rate.Limit(hz), 1),
		addr:    r.RemoteAddr,
	}
	if lv := s.layout.Load(); lv != nil {
		if frame, err := encode(MsgLayout, lv); err == nil {
			c.send <- frame
		}
	}
	s.hub.register(c)

	go s.hub.writePump(c)
	go s.hub.readPump(c)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
		}).Debug("spectator request")
	})
}
