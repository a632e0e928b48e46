package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"mdt-records-be/internal/pkg/logger"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 256
)

// Client is a middleman between the websocket connection and its workspace.
type Client struct {
	ID     uuid.UUID
	UserID string

	hub       *Hub
	conn      *websocket.Conn
	workspace *Workspace
	logger    logger.ILogger

	send chan []byte
	done chan struct{}

	mu     sync.Mutex
	closed bool
}

// Enqueue serialises v for the write pump. A slow client loses messages
// rather than stalling lookups; revisions let it notice the gap.
func (c *Client) Enqueue(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Error("Client", "Failed to marshal outbound message", map[string]interface{}{"error": err.Error()})
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		c.logger.Warn("Client", "Send buffer full, dropping message", map[string]interface{}{
			"client_id": c.ID,
			"user_id":   c.UserID,
		})
	}
}

func (c *Client) shutdown() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()

	c.workspace.Close()
}

// readPump feeds client messages to the workspace until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("Client", "Unexpected close", map[string]interface{}{
					"client_id": c.ID,
					"error":     err.Error(),
				})
			}
			return
		}
		if err := c.workspace.Handle(data); err != nil {
			c.logger.Debug("Client", "Rejected message", map[string]interface{}{
				"client_id": c.ID,
				"error":     err.Error(),
			})
		}
	}
}

// writePump sends queued messages, one frame each, and keeps the connection alive.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
