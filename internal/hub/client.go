package hub

import (
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Client is one websocket connection attached to the hub.
type Client struct {
	conn *websocket.Conn
	send chan []byte
	role string
}

// NewClient wraps conn with a send queue of the given size.
func NewClient(conn *websocket.Conn, role string, buffer int) *Client {
	if buffer <= 0 {
		buffer = 1
	}
	return &Client{
		conn: conn,
		send: make(chan []byte, buffer),
		role: role,
	}
}

// Send queues msg for this client only. It reports false when the queue is full.
func (c *Client) Send(msg []byte) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// WritePump writes queued frames until the queue is closed or a write fails.
func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
