package relay

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// Client wraps one WebSocket connection. It implements Transport for
// outbound frames and owns the inbound read loop. Writes are
// serialized with a mutex (gorilla allows a single writer), which also
// keeps per-connection FIFO ordering.
type Client struct {
	conn    *websocket.Conn
	mu      sync.Mutex
	limiter *rate.Limiter
}

// NewClient wraps an upgraded connection. rpm > 0 enables a
// per-connection inbound rate limit at that many frames per minute
// (burst 5); 0 disables it.
func NewClient(conn *websocket.Conn, rpm int) *Client {
	c := &Client{conn: conn}
	if rpm > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 5)
	}
	return c
}

// Send writes one text frame to the peer.
func (c *Client) Send(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, []byte(text))
}

// Run reads frames until the peer disconnects, invoking handle for
// each. Over-limit frames are dropped with a warning.
func (c *Client) Run(ctx context.Context, handle func(text string)) {
	for {
		if ctx.Err() != nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if c.limiter != nil && !c.limiter.Allow() {
			slog.Warn("rate limit exceeded, dropping frame")
			continue
		}
		handle(string(data))
	}
}

// Close shuts down the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
