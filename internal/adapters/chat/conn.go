package chat

import (
	"errors"
	"sync"

	"github.com/dkeye/Whisper/internal/core"
	"github.com/gorilla/websocket"
)

var ErrBackpressure = errors.New("backpressure")

// WsChatConn wraps one websocket with a buffered outbound queue. TrySend
// never blocks: a full queue means the client is too slow and the frame is
// refused, which the matchmaker treats as the client being gone.
type WsChatConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newWsChatConn(ws *websocket.Conn, buffer int) *WsChatConn {
	return &WsChatConn{
		conn: ws,
		send: make(chan core.Frame, buffer),
	}
}

func (c *WsChatConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsChatConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}
