package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// Client represents a single websocket client connection. The network
// conn itself is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Event is the JSON payload pushed to connected clients.
type Event struct {
	Type           string `json:"type"`
	TaskID         string `json:"taskId,omitempty"`
	NotificationID string `json:"notificationId,omitempty"`
	UserID         string `json:"userId"`
	Version        int    `json:"version"`
}

// Hub maintains active user connections and pushes events to them.
type Hub struct {
	mu              sync.RWMutex
	userIDToClients map[string]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// GetHub returns the singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = &Hub{
			userIDToClients: make(map[string]map[Client]struct{}),
		}
	})
	return hubInstance
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userIDToClients[userID]; !ok {
		h.userIDToClients[userID] = make(map[Client]struct{})
	}
	h.userIDToClients[userID][client] = struct{}{}
}

// Unregister removes a client; if the user has no more clients, the map
// entry is cleaned up.
func (h *Hub) Unregister(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.userIDToClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userIDToClients, userID)
		}
	}
}

// Broadcast sends a raw message to all clients of a user.
func (h *Hub) Broadcast(userID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.userIDToClients[userID] {
		if ok := c.Send(message); !ok {
			// write failed; the ws handler cleans up on its side
			continue
		}
	}
}

// Publish marshals an event and broadcasts it to the user's clients.
// Marshal failures are logged and dropped; realtime delivery is best
// effort and never blocks the write path.
func (h *Hub) Publish(evt Event) {
	if evt.Version == 0 {
		evt.Version = 1
	}
	bytes, err := json.Marshal(evt)
	if err != nil {
		log.Println("realtime: marshal event:", err)
		return
	}
	h.Broadcast(evt.UserID, bytes)
}
