package bridge

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"
)

// ErrNoClients is returned by Hub.Show when no UI is connected.
var ErrNoClients = errors.New("no UI client connected")

// Client represents a connected WebSocket client.
type Client struct {
	conn   *websocket.Conn
	id     string
	send   chan any
	done   chan struct{} // closed when writePump exits
	logger *zap.Logger
}

func newClient(conn *websocket.Conn, id string, buf int, logger *zap.Logger) *Client {
	return &Client{
		conn:   conn,
		id:     id,
		send:   make(chan any, buf),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Hub manages active WebSocket connections and broadcasts events.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *zap.Logger
}

// NewHub creates a new WebSocket hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("websocket client connected", zap.String("client_id", c.id))
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	h.logger.Debug("websocket client disconnected", zap.String("client_id", c.id))
}

// Broadcast sends an event to all connected clients.
func (h *Hub) Broadcast(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- e:
		default:
			h.logger.Warn("client send buffer full, dropping event",
				zap.String("client_id", c.id),
				zap.String("type", string(e.Type)))
		}
	}
}

// Show broadcasts window.show so the UI brings itself to front.
func (h *Hub) Show() error {
	if h.ClientCount() == 0 {
		return ErrNoClients
	}
	h.Broadcast(NewEvent(EventWindowShow, nil))
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// writePump sends messages from the client's send channel to the WebSocket.
func (c *Client) writePump(ctx context.Context) {
	defer close(c.done)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.send:
			if !ok {
				// Channel closed by hub (unregister).
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			if err := wsjson.Write(writeCtx, c.conn, msg); err != nil {
				cancel()
				c.logger.Debug("websocket write error", zap.Error(err))
				return
			}
			cancel()
		}
	}
}

// readPump reads requests until the client disconnects and queues one
// response per request on the send channel.
func (c *Client) readPump(ctx context.Context, d *Dispatcher) {
	for {
		var req Request
		if err := wsjson.Read(ctx, c.conn, &req); err != nil {
			var closeErr websocket.CloseError
			if !errors.As(err, &closeErr) && ctx.Err() == nil {
				c.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}

		if !c.deliver(ctx, d.Dispatch(req)) {
			return
		}
	}
}

// deliver queues resp for writePump. It reports false once the writer is
// gone or ctx is done, so a full buffer cannot block the reader forever.
func (c *Client) deliver(ctx context.Context, resp any) bool {
	select {
	case c.send <- resp:
		return true
	case <-c.done:
		return false
	case <-ctx.Done():
		return false
	}
}
