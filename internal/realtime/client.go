package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/pulseapp/pulse/domain"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 512
	sendBufferSize = 32
)

// Client wraps one websocket connection of one authenticated user. The
// read pump answers pings; the write pump drains the send buffer. There is
// no server-side idle timeout: silence alone never closes a connection.
type Client struct {
	ID     string
	UserID int64

	conn      *websocket.Conn
	registry  domain.ConnectionRegistry
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

var _ domain.Connection = (*Client)(nil)

func NewClient(userID int64, conn *websocket.Conn, registry domain.ConnectionRegistry) *Client {
	return &Client{
		ID:       uuid.NewString(),
		UserID:   userID,
		conn:     conn,
		registry: registry,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
	}
}

// Send enqueues data without blocking. A full buffer means the client is
// too slow; the event is dropped for this connection only.
func (c *Client) Send(data []byte) {
	select {
	case c.send <- data:
	case <-c.done:
	default:
		logrus.Warnf("send buffer full, dropping message for user %d connection %s", c.UserID, c.ID)
	}
}

// Serve registers the client, pushes the connected handshake and pumps
// until the socket dies. It blocks the caller for the connection lifetime.
func (c *Client) Serve() {
	c.registry.Register(c.UserID, c)
	defer func() {
		c.registry.Unregister(c.UserID, c)
		c.close()
	}()

	c.sendMessage(domain.Message{
		Type:    domain.MessageConnected,
		Payload: domain.ConnectedPayload{UserID: c.UserID},
	})

	go c.writePump()
	c.readPump()
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func (c *Client) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg domain.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == domain.MessagePing {
			c.sendMessage(domain.Message{Type: domain.MessagePong})
		}
	}
}

func (c *Client) writePump() {
	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Client) sendMessage(msg domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		logrus.Errorf("failed to marshal %s message: %v", msg.Type, err)
		return
	}
	c.Send(data)
}
