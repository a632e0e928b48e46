package websocket

import (
	"context"
	"sync"

	"mdt-records-be/internal/pkg/logger"
	"mdt-records-be/pkg/reactive"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// Hub tracks live dashboard connections and builds their workspaces.
type Hub struct {
	clients map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client
	stopped    chan struct{}

	mu sync.RWMutex

	resolve reactive.FieldResolver
	bus     *reactive.RefreshBus
	catalog ViewCatalog
	logger  logger.ILogger
}

func NewHub(resolve reactive.FieldResolver, bus *reactive.RefreshBus, catalog ViewCatalog, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stopped:    make(chan struct{}),
		resolve:    resolve,
		bus:        bus,
		catalog:    catalog,
		logger:     log,
	}
}

// Run serialises registrations until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{
				"client_id": client.ID,
				"user_id":   client.UserID,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			delete(h.clients, client.ID)
			h.mu.Unlock()
			client.shutdown()
			h.logger.Info("Hub", "Client unregistered", map[string]interface{}{
				"client_id": client.ID,
				"user_id":   client.UserID,
			})

		case <-ctx.Done():
			h.mu.Lock()
			clients := h.clients
			h.clients = make(map[uuid.UUID]*Client)
			h.mu.Unlock()
			for _, c := range clients {
				c.shutdown()
			}
			return
		}
	}
}

// newClient wires a connection to a fresh workspace.
func (h *Hub) newClient(ctx context.Context, conn *websocket.Conn, userID string) *Client {
	c := &Client{
		ID:     uuid.New(),
		UserID: userID,
		hub:    h,
		conn:   conn,
		logger: h.logger,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
	c.workspace = NewWorkspace(ctx, h.resolve, h.bus, h.catalog, c.Enqueue, h.logger)
	return c
}

func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.stopped:
		return false
	}
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stopped:
		c.shutdown()
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
