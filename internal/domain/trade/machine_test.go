package trade

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func negotiatingSession() *Session {
	return &Session{
		SessionID:   uuid.New(),
		InitiatorID: "100000000000000001",
		ReceiverID:  "100000000000000002",
		State:       StateNegotiating,
		Version:     1,
		Generation:  1,
		CreatedAt:   time.Now().UTC(),
		DeadlineAt:  time.Now().UTC().Add(2 * time.Minute),
	}
}

func TestTransition_Propose(t *testing.T) {
	t.Run("allowed while negotiating and unlocked", func(t *testing.T) {
		s := negotiatingSession()
		res, err := Transition(s, Event{Kind: EventPropose, Actor: s.InitiatorID})
		require.NoError(t, err)
		assert.Equal(t, StateNegotiating, res.Next)
		assert.Equal(t, SideInitiator, res.Side)
	})

	t.Run("rejected after own lock", func(t *testing.T) {
		s := negotiatingSession()
		s.Initiator.Locked = true
		_, err := Transition(s, Event{Kind: EventPropose, Actor: s.InitiatorID})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("other side may still propose after one lock", func(t *testing.T) {
		s := negotiatingSession()
		s.Initiator.Locked = true
		_, err := Transition(s, Event{Kind: EventPropose, Actor: s.ReceiverID})
		require.NoError(t, err)
	})

	t.Run("rejected in BOTH_LOCKED", func(t *testing.T) {
		s := negotiatingSession()
		s.State = StateBothLocked
		_, err := Transition(s, Event{Kind: EventPropose, Actor: s.InitiatorID})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("rejected for non-participant", func(t *testing.T) {
		s := negotiatingSession()
		_, err := Transition(s, Event{Kind: EventPropose, Actor: "999999999999999999"})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})
}

func TestTransition_Lock(t *testing.T) {
	t.Run("first lock keeps negotiating", func(t *testing.T) {
		s := negotiatingSession()
		res, err := Transition(s, Event{Kind: EventLock, Actor: s.InitiatorID})
		require.NoError(t, err)
		assert.Equal(t, StateNegotiating, res.Next)
		assert.True(t, res.SetLocked)
	})

	t.Run("second lock enters BOTH_LOCKED", func(t *testing.T) {
		s := negotiatingSession()
		s.Initiator.Locked = true
		res, err := Transition(s, Event{Kind: EventLock, Actor: s.ReceiverID})
		require.NoError(t, err)
		assert.Equal(t, StateBothLocked, res.Next)
	})

	t.Run("double lock rejected", func(t *testing.T) {
		s := negotiatingSession()
		s.Initiator.Locked = true
		_, err := Transition(s, Event{Kind: EventLock, Actor: s.InitiatorID})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})
}

func TestTransition_AcceptFinal(t *testing.T) {
	t.Run("requires BOTH_LOCKED", func(t *testing.T) {
		s := negotiatingSession()
		_, err := Transition(s, Event{Kind: EventAcceptFinal, Actor: s.InitiatorID})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("first accept does not commit", func(t *testing.T) {
		s := negotiatingSession()
		s.State = StateBothLocked
		s.Initiator.Locked = true
		s.Receiver.Locked = true
		res, err := Transition(s, Event{Kind: EventAcceptFinal, Actor: s.InitiatorID})
		require.NoError(t, err)
		assert.True(t, res.SetAccepted)
		assert.False(t, res.ReadyToCommit)
	})

	t.Run("second accept is ready to commit", func(t *testing.T) {
		s := negotiatingSession()
		s.State = StateBothLocked
		s.Initiator.Locked = true
		s.Receiver.Locked = true
		s.Initiator.Accepted = true
		res, err := Transition(s, Event{Kind: EventAcceptFinal, Actor: s.ReceiverID})
		require.NoError(t, err)
		assert.True(t, res.ReadyToCommit)
	})

	t.Run("double accept rejected", func(t *testing.T) {
		s := negotiatingSession()
		s.State = StateBothLocked
		s.Initiator.Accepted = true
		_, err := Transition(s, Event{Kind: EventAcceptFinal, Actor: s.InitiatorID})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})
}

func TestTransition_VersionPrecondition(t *testing.T) {
	s := negotiatingSession()
	s.Version = 4

	stale := uint64(3)
	_, err := Transition(s, Event{Kind: EventLock, Actor: s.InitiatorID, ExpectedVersion: &stale})
	var pErr *PreconditionFailedError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, uint64(4), pErr.Version)

	current := uint64(4)
	_, err = Transition(s, Event{Kind: EventLock, Actor: s.InitiatorID, ExpectedVersion: &current})
	require.NoError(t, err)
}

func TestTransition_Terminal(t *testing.T) {
	for _, state := range []State{StateCommitted, StateDeclined, StateCancelled, StateExpired} {
		s := negotiatingSession()
		s.State = state
		_, err := Transition(s, Event{Kind: EventCancel, Actor: s.InitiatorID})
		assert.True(t, errors.Is(err, ErrNotFound), "state %s", state)
	}
}

func TestTransition_CloseEvents(t *testing.T) {
	t.Run("decline from BOTH_LOCKED", func(t *testing.T) {
		s := negotiatingSession()
		s.State = StateBothLocked
		res, err := Transition(s, Event{Kind: EventDecline, Actor: s.ReceiverID})
		require.NoError(t, err)
		assert.Equal(t, StateDeclined, res.Next)
	})

	t.Run("cancel from negotiating", func(t *testing.T) {
		s := negotiatingSession()
		res, err := Transition(s, Event{Kind: EventCancel, Actor: s.InitiatorID})
		require.NoError(t, err)
		assert.Equal(t, StateCancelled, res.Next)
	})

	t.Run("expire needs no actor", func(t *testing.T) {
		s := negotiatingSession()
		res, err := Transition(s, Event{Kind: EventExpire})
		require.NoError(t, err)
		assert.Equal(t, StateExpired, res.Next)
	})
}

func TestPairKey(t *testing.T) {
	assert.Equal(t, PairKey("b", "a"), PairKey("a", "b"))
	assert.Equal(t, "a:b", PairKey("b", "a"))
}
