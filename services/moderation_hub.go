package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// WSClient is one connected admin dashboard.
type WSClient struct {
	Conn *websocket.Conn
}

// ModerationHub fans out moderation events (new reports, new
// suggestions) to every connected admin dashboard.
type ModerationHub struct {
	mu      sync.RWMutex
	clients map[*WSClient]struct{}
}

func NewModerationHub() *ModerationHub {
	return &ModerationHub{clients: make(map[*WSClient]struct{})}
}

var defaultHub = NewModerationHub()

// Hub returns the process-wide moderation hub. Broadcasting with no
// subscribers is a no-op, so services can emit unconditionally.
func Hub() *ModerationHub {
	return defaultHub
}

func (h *ModerationHub) Register(c *WSClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *ModerationHub) Unregister(c *WSClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *ModerationHub) Broadcast(kind string, payload interface{}) {
	msg, _ := json.Marshal(map[string]interface{}{
		"kind":    kind,
		"payload": payload,
	})
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}
