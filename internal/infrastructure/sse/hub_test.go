package sse

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guild-hub/guild-hub/internal/domain/notification"
	"github.com/guild-hub/guild-hub/internal/domain/trade"
)

func strPtr(s string) *string { return &s }

func drain(t *testing.T, c *notification.SSEClient) *notification.SSEMessage {
	t.Helper()
	select {
	case msg := <-c.MessageChan:
		return msg
	default:
		return nil
	}
}

func TestHub_RegisterAndLookup(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	defer hub.Stop()

	assert.Equal(t, 0, hub.GetClientCount())
	assert.Nil(t, hub.GetClient("c1"))

	c := notification.NewSSEClient("c1", nil)
	hub.Register(c)
	assert.Equal(t, 1, hub.GetClientCount())
	assert.Same(t, c, hub.GetClient("c1"))

	hub.Unregister("c1")
	assert.Equal(t, 0, hub.GetClientCount())
	assert.Nil(t, hub.GetClient("c1"))

	// channel is closed after unregister
	_, open := <-c.MessageChan
	assert.False(t, open)
}

func TestHub_SendToClient(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	defer hub.Stop()

	err := hub.SendToClient("missing", notification.NewSSEMessage("ping", nil))
	assert.ErrorIs(t, err, notification.ErrClientNotFound)

	c := notification.NewSSEClient("c1", nil)
	hub.Register(c)
	require.NoError(t, hub.SendToClient("c1", notification.NewSSEMessage("ping", nil)))
	msg := drain(t, c)
	require.NotNil(t, msg)
	assert.Equal(t, "ping", msg.Event)

	// an unbuffered channel models a client that cannot keep up
	full := &notification.SSEClient{ClientID: "c2", MessageChan: make(chan *notification.SSEMessage)}
	hub.Register(full)
	err = hub.SendToClient("c2", notification.NewSSEMessage("ping", nil))
	assert.ErrorIs(t, err, notification.ErrChannelFull)
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	defer hub.Stop()

	anon := notification.NewSSEClient("anon", nil)
	alice := notification.NewSSEClient("alice", strPtr("100000000000000001"))
	bob := notification.NewSSEClient("bob", strPtr("100000000000000002"))
	hub.Register(anon)
	hub.Register(alice)
	hub.Register(bob)

	hub.BroadcastToAll(notification.NewSSEMessage("member.registered", nil))
	assert.NotNil(t, drain(t, anon))
	assert.NotNil(t, drain(t, alice))
	assert.NotNil(t, drain(t, bob))

	hub.BroadcastToUser("100000000000000001", notification.NewSSEMessage("member.level_up", nil))
	assert.Nil(t, drain(t, anon))
	msg := drain(t, alice)
	require.NotNil(t, msg)
	assert.Equal(t, "member.level_up", msg.Event)
	assert.Nil(t, drain(t, bob))
}

func TestHub_RenderScopesToParticipants(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	defer hub.Stop()

	anon := notification.NewSSEClient("anon", nil)
	alice := notification.NewSSEClient("alice", strPtr("100000000000000001"))
	bob := notification.NewSSEClient("bob", strPtr("100000000000000002"))
	carol := notification.NewSSEClient("carol", strPtr("100000000000000003"))
	hub.Register(anon)
	hub.Register(alice)
	hub.Register(bob)
	hub.Register(carol)

	sessionID := uuid.New()
	snap := &trade.Snapshot{
		SessionID:   sessionID,
		InitiatorID: "100000000000000001",
		ReceiverID:  "100000000000000002",
		State:       trade.StateNegotiating,
		Version:     2,
	}
	hub.Render(sessionID, snap)

	for _, c := range []*notification.SSEClient{anon, alice, bob} {
		msg := drain(t, c)
		require.NotNil(t, msg, "client %s should receive the render", c.ClientID)
		assert.Equal(t, "trade.render", msg.Event)
		var got trade.Snapshot
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, sessionID, got.SessionID)
		assert.Equal(t, trade.StateNegotiating, got.State)
	}
	assert.Nil(t, drain(t, carol), "non-participant should not receive the render")
}
