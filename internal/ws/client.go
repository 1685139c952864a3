package ws

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/parley-chat/parley/internal/logger"
)

// sendBufferSize bounds the per-connection outbound queue. A consumer that
// falls further behind than this starts losing broadcasts rather than
// blocking every other connection.
const sendBufferSize = 64

// Client is one live websocket connection. Its transient id is assigned at
// upgrade time and is unrelated to the user id it may later register as.
type Client struct {
	ID string

	conn *websocket.Conn

	// userID is the registered identity. Written only by the connection's
	// own read goroutine.
	userID string

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// enqueue queues an outbound frame, dropping it when the client is closed or
// its buffer is full.
func (c *Client) enqueue(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		logger.Debugf("Dropping frame for slow connection %s", c.ID)
	}
}

// close shuts down the outbound queue. Idempotent.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump drains the send queue onto the socket until the queue is closed.
func (c *Client) writePump() {
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logger.Debugf("Write error on connection %s: %v", c.ID, err)
		}
	}
	c.conn.Close()
}
