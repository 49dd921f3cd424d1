package signaling

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// DefaultMaxMessageSize is enough for SDP offers with many candidates.
	DefaultMaxMessageSize = 64 * 1024

	// Outbound frames buffered per connection.
	sendBuffer = 256
)

// Client is a wrapper for a single websocket connection (a peer).
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	id   string

	maxMessageSize int64

	// session is only touched by the Hub goroutine.
	session Session

	mu     sync.Mutex
	send   chan *Message
	closed bool
}

// NewClient wraps conn for hub. maxMessageSize <= 0 selects DefaultMaxMessageSize.
func NewClient(hub *Hub, conn *websocket.Conn, maxMessageSize int64) *Client {
	if maxMessageSize <= 0 {
		maxMessageSize = DefaultMaxMessageSize
	}
	return &Client{
		hub:            hub,
		conn:           conn,
		id:             uuid.NewString(),
		maxMessageSize: maxMessageSize,
		send:           make(chan *Message, sendBuffer),
	}
}

// ID identifies the connection in logs.
func (c *Client) ID() string {
	return c.id
}

// Send queues msg for the write pump. A connection that cannot keep up with
// its queue is closed rather than blocking the Hub.
func (c *Client) Send(msg *Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		slog.Warn("send buffer full, closing connection", "conn", c.id)
		c.closeLocked()
		return false
	}
}

// IsOpen reports whether frames can still be queued.
func (c *Client) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

// Close stops the write pump, which closes the websocket.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Client) closeLocked() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// Serve registers the client and runs both pumps until the connection ends.
func (c *Client) Serve() {
	c.hub.Register(c)
	go c.WritePump()
	c.ReadPump()
}

// ReadPump pumps frames from the websocket connection to the hub.
//
// The application runs ReadPump in a per-connection goroutine. The application
// ensures that there is at most one reader on a connection by executing all
// reads from this goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c, &c.session)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				slog.Warn("read error", "conn", c.id, "err", err)
			}
			return
		}

		msg, err := DecodeMessage(data)
		if err != nil {
			slog.Debug("dropping frame", "conn", c.id, "err", err)
			continue
		}
		c.hub.Receive(c, &c.session, msg)
	}
}

// WritePump pumps messages from the hub to the websocket connection.
//
// A goroutine running WritePump is started for each connection. The
// application ensures that there is at most one writer to a connection by
// executing all writes from this goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.write(message); err != nil {
				slog.Warn("write error", "conn", c.id, "err", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// write sends relayed frames byte for byte and encodes everything else.
func (c *Client) write(msg *Message) error {
	if raw := msg.Raw(); raw != nil {
		return c.conn.WriteMessage(websocket.TextMessage, raw)
	}
	return c.conn.WriteJSON(msg)
}
