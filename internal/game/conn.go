package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// wsConn is one live player connection. A single writer goroutine drains the
// buffered send queue, so frames enqueued for this connection are delivered
// in enqueue order; a single reader goroutine feeds inbound frames to the
// manager one at a time.
type wsConn struct {
	clientID string
	conn     *websocket.Conn

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newWSConn(clientID string, conn *websocket.Conn, queueSize int) *wsConn {
	return &wsConn{
		clientID: clientID,
		conn:     conn,
		send:     make(chan []byte, queueSize),
		done:     make(chan struct{}),
	}
}

// Send enqueues a frame without blocking. It reports false when the queue is
// full, meaning the reader on the other end has stalled.
func (c *wsConn) Send(payload []byte) bool {
	select {
	case <-c.done:
		// Already closing; the frame is dropped silently.
		return true
	default:
	}

	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// Close requests teardown. Idempotent; the pumps observe done and exit.
func (c *wsConn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *wsConn) writePump(m *Manager) {
	ticker := time.NewTicker(m.c.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(m.c.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.Close()
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(m.c.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(m.c.WriteTimeout))
			c.conn.WriteMessage(websocket.CloseMessage, nil)
			return
		}
	}
}

func (c *wsConn) readPump(m *Manager) {
	ctx := context.Background()

	defer func() {
		// Deregistration and teardown happen together: once gone from the
		// registry the connection receives no further fan-out, and a newer
		// connection re-registered under the same identity stays untouched.
		m.registry.DeregisterSender(c.clientID, c)
		m.metrics.OnlinePlayers.Dec()
		c.Close()
		c.conn.Close()

		slog.InfoContext(ctx, "game: player disconnected", "client_id", c.clientID)
	}()

	c.conn.SetReadLimit(m.c.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(m.c.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(m.c.ReadTimeout))
		return nil
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				slog.WarnContext(ctx, "game: unexpected close", "client_id", c.clientID, "error", err)
			}
			return
		}

		m.HandleMessage(ctx, c.clientID, payload)
		c.conn.SetReadDeadline(time.Now().Add(m.c.ReadTimeout))
	}
}
