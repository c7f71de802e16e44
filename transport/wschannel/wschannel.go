// Package wschannel implements rdschannel.Channel over a websocket
// connection, for host-side peers that want a TCP-like transport rather
// than a serial line or the loopback test channel. Grounded on the
// read-loop/logger pattern in the teacher's pkg/server/websocket.go:
// a background goroutine drains the socket into a buffered channel so the
// engine's Receive stays non-blocking.
package wschannel

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Channel adapts a *websocket.Conn to rdschannel.Channel. Each binary
// websocket message is treated as exactly one already-framed rdscom frame;
// the engine is responsible for the preamble/sentinel framing, not this
// adapter.
type Channel struct {
	conn   *websocket.Conn
	logger *slog.Logger

	mu     sync.Mutex
	queue  [][]byte
	closed chan struct{}
}

// New wraps conn and starts the background read loop.
func New(conn *websocket.Conn, logger *slog.Logger) *Channel {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Channel{
		conn:   conn,
		logger: logger,
		closed: make(chan struct{}),
	}
	go c.readLoop()
	return c
}

func (c *Channel) readLoop() {
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.logger.Error("wschannel: read error", "error", err)
			}
			close(c.closed)
			return
		}

		c.mu.Lock()
		c.queue = append(c.queue, msg)
		c.mu.Unlock()
	}
}

// Send writes one binary websocket message carrying the already-serialized
// frame bytes.
func (c *Channel) Send(data []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return c.conn.WriteMessage(websocket.BinaryMessage, data)
}

// Receive returns the oldest frame the read loop has queued and removes it
// from the queue. It never blocks.
func (c *Channel) Receive() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return nil
	}
	// The engine reads one frame per tick; hand back the oldest queued
	// message and leave the rest for the next call.
	next := c.queue[0]
	c.queue = c.queue[1:]
	return next
}

// Closed reports whether the underlying connection's read loop has exited.
func (c *Channel) Closed() <-chan struct{} {
	return c.closed
}
