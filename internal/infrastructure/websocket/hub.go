package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"bantuin/pkg/logger"
)

// Client is one user's notification connection.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Hub tracks the active notification connections, one per user. A second
// connection from the same user replaces the first.
type Hub struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Start runs the hub's main loop until the context is cancelled.
func (h *Hub) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-h.Register:
				h.mutex.Lock()
				if old, ok := h.clients[client.UserID]; ok {
					close(old.Send)
				}
				h.clients[client.UserID] = client
				h.mutex.Unlock()
				logger.Debug("Notification client registered: %s", client.UserID)

			case client := <-h.Unregister:
				h.mutex.Lock()
				if current, ok := h.clients[client.UserID]; ok && current == client {
					delete(h.clients, client.UserID)
					close(client.Send)
				}
				h.mutex.Unlock()
				logger.Debug("Notification client unregistered: %s", client.UserID)

			case <-ctx.Done():
				close(h.done)
				return
			}
		}
	}()
}

// detach hands the client back to the hub loop. Once the hub has shut down
// nobody reads Unregister anymore, so pumps must not block on it.
func (h *Hub) detach(c *Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
	}
}

// SendToUser queues a payload for one user. Drops silently when the user is
// not connected or their send buffer is full.
func (h *Hub) SendToUser(userID string, payload []byte) {
	h.mutex.RLock()
	client, ok := h.clients[userID]
	h.mutex.RUnlock()

	if !ok {
		return
	}

	select {
	case client.Send <- payload:
	default:
		logger.Warn("Dropping notification for %s: send buffer full", userID)
	}
}

// ReadPump drains the connection until the client goes away.
func (c *Client) ReadPump(h *Hub) {
	defer func() {
		h.detach(c)
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Notification read error for %s: %v", c.UserID, err)
			}
			break
		}
	}
}

// WritePump forwards queued payloads to the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		payload, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Warn("Notification write error for %s: %v", c.UserID, err)
			return
		}
	}
}
