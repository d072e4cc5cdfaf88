package network

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/logger"
)

// client is one spectator connection. Frames are queued on send and written
// by the client's own goroutine; a full queue drops frames.
type client struct {
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter // Snapshot frames only
	addr    string
}

// Hub tracks spectator connections
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}

	onCount func(int)

	pongWait   time.Duration
	pingPeriod time.Duration
}

// NewHub creates an empty hub. onCount, if set, observes the client count.
func NewHub(onCount func(int)) *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		onCount:    onCount,
		pongWait:   constants.SpectatorPongWait,
		pingPeriod: constants.SpectatorPingPeriod,
	}
}

// Count returns the number of connected spectators
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	if h.onCount != nil {
		h.onCount(n)
	}
	logger.Log.WithFields(logrus.Fields{"remote": c.addr, "spectators": n}).Info("spectator connected")
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	close(c.send)
	n := len(h.clients)
	h.mu.Unlock()

	if h.onCount != nil {
		h.onCount(n)
	}
	logger.Log.WithFields(logrus.Fields{"remote": c.addr, "spectators": n}).Info("spectator disconnected")
}

// broadcast queues a frame for every client. Limited frames respect each
// client's snapshot rate.
func (h *Hub) broadcast(frame []byte, limited bool) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for c := range h.clients {
		if limited && !c.limiter.Allow() {
			continue
		}
		select {
		case c.send <- frame:
			sent++
		default:
			// Slow reader; it catches up on the next snapshot
		}
	}
	return sent
}

// closeAll disconnects every client
func (h *Hub) closeAll() {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c.conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
			time.Now().Add(constants.SpectatorWriteWait))
		conn.Close()
	}
}

// writePump drains the client's queue and keeps the connection alive
func (h *Hub) writePump(c *client) {
	ping := time.NewTicker(h.pingPeriod)
	defer func() {
		ping.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(constants.SpectatorWriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ping.C:
			c.conn.SetWriteDeadline(time.Now().Add(constants.SpectatorWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames; the feed is read-only. It returns when
// the connection drops or no pong arrives within pongWait, and unregisters
// the client.
func (h *Hub) readPump(c *client) {
	defer h.unregister(c)

	c.conn.SetReadLimit(constants.SpectatorReadLimit)
	if err := c.conn.SetReadDeadline(time.Now().Add(h.pongWait)); err != nil {
		logger.Log.WithError(err).Warn("spectator read deadline")
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
