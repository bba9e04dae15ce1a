package sse

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/guild-hub/guild-hub/internal/domain/notification"
	"github.com/guild-hub/guild-hub/internal/domain/trade"
)

// Hub manages SSE clients and fans trade render events out to them. Sends are
// non-blocking: a slow gateway client drops messages, never the trade engine.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*notification.SSEClient
	logger  zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*notification.SSEClient),
		logger:  logger.With().Str("service", "sse-hub").Logger(),
	}
}

func (h *Hub) Register(client *notification.SSEClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ClientID] = client
}

func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[clientID]; ok {
		c.Close()
		delete(h.clients, clientID)
	}
}

func (h *Hub) GetClient(clientID string) *notification.SSEClient {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[clientID]
}

func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) BroadcastToAll(message *notification.SSEMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		trySend(c, message)
	}
}

func (h *Hub) BroadcastToUser(userID string, message *notification.SSEMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if c.UserID != nil && *c.UserID == userID {
			trySend(c, message)
		}
	}
}

// SendToClient delivers a message to one connection. The read lock is held
// across the send so Unregister cannot close the channel mid-send.
func (h *Hub) SendToClient(clientID string, message *notification.SSEMessage) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c := h.clients[clientID]
	if c == nil {
		return notification.ErrClientNotFound
	}
	if !trySend(c, message) {
		return notification.ErrChannelFull
	}
	return nil
}

// Render implements trade.NotificationPort. The snapshot goes to both
// participants' gateway connections plus any unscoped (firehose) clients.
func (h *Hub) Render(sessionID uuid.UUID, snapshot *trade.Snapshot) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to marshal snapshot")
		return
	}
	msg := notification.NewSSEMessage("trade.render", data)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if c.UserID == nil || *c.UserID == snapshot.InitiatorID || *c.UserID == snapshot.ReceiverID {
			if !trySend(c, msg) {
				h.logger.Debug().Str("client_id", c.ClientID).Msg("client channel full, message dropped")
			}
		}
	}
}

func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		c.Close()
		delete(h.clients, id)
	}
}

func trySend(c *notification.SSEClient, msg *notification.SSEMessage) bool {
	select {
	case c.MessageChan <- msg:
		return true
	default:
		return false
	}
}
