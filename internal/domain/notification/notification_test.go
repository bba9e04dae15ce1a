package notification

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSSEClient(t *testing.T) {
	t.Run("with user", func(t *testing.T) {
		userID := "100000000000000001"
		client := NewSSEClient("client-123", &userID)

		require.NotNil(t, client)
		assert.Equal(t, "client-123", client.ClientID)
		require.NotNil(t, client.UserID)
		assert.Equal(t, userID, *client.UserID)
		assert.False(t, client.ConnectedAt.IsZero())
		assert.NotNil(t, client.MessageChan)
	})

	t.Run("with nil user", func(t *testing.T) {
		client := NewSSEClient("client-123", nil)

		require.NotNil(t, client)
		assert.Nil(t, client.UserID)
	})
}

func TestSSEClient_Close(t *testing.T) {
	client := NewSSEClient("client-123", nil)
	require.NotNil(t, client.MessageChan)

	client.Close()

	// Channel is closed; sending must panic.
	assert.Panics(t, func() {
		client.MessageChan <- &SSEMessage{}
	})
}

func TestNewSSEMessage(t *testing.T) {
	data := json.RawMessage(`{"state": "NEGOTIATING"}`)

	message := NewSSEMessage("trade.render", data)

	require.NotNil(t, message)
	assert.NotEmpty(t, message.ID)
	assert.Equal(t, "trade.render", message.Event)
	assert.Equal(t, data, message.Data)
	assert.False(t, message.Timestamp.IsZero())
}
