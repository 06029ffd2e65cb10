package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/drabenstadtj/PittsburghFoodAccessMap/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin checking is handled by the CORS layer in front of us.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /api/admin/events (admin) — websocket feed of moderation events
// so the dashboard sees new reports and suggestions without polling.
func ModerationEvents(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := &services.WSClient{Conn: conn}
	hub := services.Hub()
	hub.Register(client)
	defer hub.Unregister(client)

	// Hold the connection open; the client never sends anything we
	// care about, so reads only serve to detect disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
