package httpapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	ws "github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/gauthamsrinivas7/CourtSide/internal/digest"
)

const (
	sendBufferSize = 16
	pingInterval   = 30 * time.Second
)

// Hub fans digest view events out to connected WebSocket clients so the UI
// can show toasts and phase changes without polling. It implements
// digest.Publisher.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	log     *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		log:     log,
	}
}

// Publish broadcasts one view event to every connected client.
func (h *Hub) Publish(e digest.Event) {
	data, err := sonic.Marshal(e)
	if err != nil {
		h.log.Error("marshal event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Client buffer full; drop rather than block the publisher.
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
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

// client is a single WebSocket connection.
type client struct {
	hub  *Hub
	conn *ws.Conn
	send chan []byte
}

// run registers the client, starts the write pump, and blocks on the read
// pump until the connection closes.
func (c *client) run(ctx context.Context) {
	c.hub.register(c)
	defer c.hub.unregister(c)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go c.writePump(ctx)
	c.readPump(ctx)
}

// readPump discards incoming messages; the stream is one-way. It returns on
// connection close, which triggers cleanup.
func (c *client) readPump(ctx context.Context) {
	for {
		if _, _, err := c.conn.Read(ctx); err != nil {
			return
		}
	}
}

// writePump drains the send channel and pings periodically to detect stale
// connections.
func (c *client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.Write(ctx, ws.MessageText, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.Ping(ctx); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// handleEvents upgrades the connection and runs it as a hub client.
func (rt *Router) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.Accept(w, r, &ws.AcceptOptions{
		// The daemon serves a local UI only.
		InsecureSkipVerify: true,
	})
	if err != nil {
		rt.log.Warn("websocket accept", zap.Error(err))
		return
	}

	c := &client{hub: rt.hub, conn: conn, send: make(chan []byte, sendBufferSize)}
	c.run(r.Context())
}
