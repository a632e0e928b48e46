package websocket

import (
	"context"

	"github.com/gofiber/websocket/v2"
)

// ServeWs runs one connection to completion.
func ServeWs(hub *Hub, conn *websocket.Conn, userID string) {
	client := hub.newClient(context.Background(), conn, userID)
	if !hub.add(client) {
		client.shutdown()
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
