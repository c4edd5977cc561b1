package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/launchboard/launchboard/server/internal/dashboard"
)

const (
	// writeTimeout is the deadline for a single write to a client.
	writeTimeout = 10 * time.Second

	// DefaultPingPeriod controls how often the server sends WebSocket ping
	// frames when no other period is configured.
	DefaultPingPeriod = 54 * time.Second

	// sendBufSize is the per-client outgoing message buffer depth.
	sendBufSize = 16

	// maxMessageSize bounds a single client frame.
	maxMessageSize = 1024
)

// SessionObserver is notified when a session opens. *metrics.Registry
// satisfies it.
type SessionObserver interface {
	SessionOpened()
}

// Option configures a Hub.
type Option func(*Hub)

// WithPingPeriod sets the keepalive interval. The pong deadline follows it.
func WithPingPeriod(d time.Duration) Option {
	return func(h *Hub) {
		if d > 0 {
			h.pingPeriod = d
		}
	}
}

// WithAllowedOrigins restricts the Origin header accepted on upgrade. An
// empty list or "*" accepts any origin.
func WithAllowedOrigins(origins []string) Option {
	return func(h *Hub) { h.origins = origins }
}

// WithObserver attaches a session observer.
func WithObserver(o SessionObserver) Option {
	return func(h *Hub) { h.obs = o }
}

// Hub manages interactive WebSocket sessions. Each session holds its own
// dashboard inputs; the hub only tracks connections for shutdown.
type Hub struct {
	ctl        *dashboard.Controller
	pingPeriod time.Duration
	origins    []string
	obs        SessionObserver
	upgrader   websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// client represents one connected session.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// New creates a Hub that computes views with ctl.
func New(ctl *dashboard.Controller, opts ...Option) *Hub {
	h := &Hub{
		ctl:        ctl,
		pingPeriod: DefaultPingPeriod,
		clients:    make(map[*client]struct{}),
	}
	for _, o := range opts {
		o(h)
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// Run blocks until ctx is cancelled, then closes all active sessions.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.closeAll()
}

// ServeHTTP upgrades the HTTP connection to WebSocket and serves one session.
// It sends both views immediately on connect, then applies each client
// message. Blocks until the connection closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already written the error response.
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBufSize),
	}
	h.register(c)
	defer h.unregister(c)

	if h.obs != nil {
		h.obs.SessionOpened()
	}
	slog.DebugContext(r.Context(), "ws: session opened", "remote", r.RemoteAddr)

	in := h.ctl.Defaults()
	h.enqueue(c, viewsMessage(in, h.ctl.Initial(in)))

	go c.writePump(h.pingPeriod)
	h.readPump(c, in) // blocks until connection closes

	slog.DebugContext(r.Context(), "ws: session closed", "remote", r.RemoteAddr)
}

// Count returns the number of currently connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// --- internal ---------------------------------------------------------------

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.origins) == 0 {
		return true
	}
	for _, o := range h.origins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// enqueue queues msg for c. A client whose buffer is full is disconnected.
func (h *Hub) enqueue(c *client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("ws: marshal message", "err", err)
		return
	}

	full := false
	h.mu.RLock()
	if _, ok := h.clients[c]; ok {
		select {
		case c.send <- data:
		default:
			full = true
		}
	}
	h.mu.RUnlock()

	if full {
		// Client's outgoing buffer is full; drop the session.
		h.unregister(c)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

// readPump reads client frames, applies them to the session inputs and queues
// the resulting views. in is owned by this goroutine. Blocks until the
// connection closes.
func (h *Hub) readPump(c *client, in dashboard.Inputs) {
	defer c.conn.Close()
	// A pong must arrive within one ping period plus the write allowance.
	pongWait := h.pingPeriod + writeTimeout
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		ch, err := parseRequest(data)
		if err != nil {
			h.enqueue(c, errorMessage(err))
			continue
		}

		var u dashboard.Update
		in, u = h.ctl.Apply(in, ch)
		if u.Empty() {
			continue
		}
		h.enqueue(c, viewsMessage(in, u))
	}
}

// writePump drains the client's send channel and forwards messages to the
// WebSocket connection. It also sends periodic ping frames. Runs in its own
// goroutine per client.
func (c *client) writePump(pingPeriod time.Duration) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				// Channel was closed (hub is shutting down or client removed).
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
