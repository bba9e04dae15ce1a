package trade

import (
	"time"

	"github.com/google/uuid"
)

// State represents the lifecycle state of a trade session.
type State string

const (
	StateRequested   State = "REQUESTED"
	StateNegotiating State = "NEGOTIATING"
	StateBothLocked  State = "BOTH_LOCKED"
	StateCommitted   State = "COMMITTED"
	StateDeclined    State = "DECLINED"
	StateCancelled   State = "CANCELLED"
	StateExpired     State = "EXPIRED"
)

// Terminal reports whether the state ends the session.
func (s State) Terminal() bool {
	switch s {
	case StateCommitted, StateDeclined, StateCancelled, StateExpired:
		return true
	}
	return false
}

// Side identifies one of the two participants of a session.
type Side string

const (
	SideInitiator Side = "INITIATOR"
	SideReceiver  Side = "RECEIVER"
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideInitiator {
		return SideReceiver
	}
	return SideInitiator
}

// ItemStack is one offered item with its quantity.
type ItemStack struct {
	ItemID   string `json:"itemId"`
	Quantity int64  `json:"quantity"`
}

// Invitation is the short-lived request that precedes a session. It holds the
// pair slot until it is accepted, declined or times out.
type Invitation struct {
	InvitationID uuid.UUID `json:"invitationId"`
	InitiatorID  string    `json:"initiatorId"`
	ReceiverID   string    `json:"receiverId"`
	CreatedAt    time.Time `json:"createdAt"`
	DeadlineAt   time.Time `json:"deadlineAt"`
	Generation   uint64    `json:"-"`
}

// SideState carries the per-participant negotiation flags. Both flags are part
// of the session state: accepted implies locked by construction of the machine.
type SideState struct {
	Locked   bool `json:"locked"`
	Accepted bool `json:"accepted"`
}

// Session is one trade negotiation between exactly two participants. It is
// owned exclusively by the session store; nothing outside the store ever holds
// a mutable reference.
type Session struct {
	SessionID   uuid.UUID
	InitiatorID string
	ReceiverID  string
	State       State
	Initiator   SideState
	Receiver    SideState
	// Version increments on every accepted mutation. Events computed from a
	// stale snapshot are rejected with PreconditionFailed.
	Version uint64
	// Generation invalidates timers armed before the last phase change.
	Generation uint64
	CreatedAt  time.Time
	DeadlineAt time.Time
}

// SideOf maps a participant id onto its side.
func (s *Session) SideOf(actorID string) (Side, bool) {
	switch actorID {
	case s.InitiatorID:
		return SideInitiator, true
	case s.ReceiverID:
		return SideReceiver, true
	}
	return "", false
}

// SideState returns the mutable flag set for a side.
func (s *Session) SideState(side Side) *SideState {
	if side == SideInitiator {
		return &s.Initiator
	}
	return &s.Receiver
}

// ParticipantID returns the user id on a side.
func (s *Session) ParticipantID(side Side) string {
	if side == SideInitiator {
		return s.InitiatorID
	}
	return s.ReceiverID
}

// Snapshot is a read-only copy of a session handed to renderers and API
// callers. The Version field is the resync token for subsequent mutations.
type Snapshot struct {
	SessionID         uuid.UUID   `json:"sessionId"`
	InitiatorID       string      `json:"initiatorId"`
	ReceiverID        string      `json:"receiverId"`
	State             State       `json:"state"`
	Version           uint64      `json:"version"`
	InitiatorOffer    []ItemStack `json:"initiatorOffer"`
	ReceiverOffer     []ItemStack `json:"receiverOffer"`
	InitiatorLocked   bool        `json:"initiatorLocked"`
	ReceiverLocked    bool        `json:"receiverLocked"`
	InitiatorAccepted bool        `json:"initiatorAccepted"`
	ReceiverAccepted  bool        `json:"receiverAccepted"`
	CreatedAt         time.Time   `json:"createdAt"`
	DeadlineAt        time.Time   `json:"deadlineAt"`
	Reason            string      `json:"reason,omitempty"`
}

// PairKey builds the unordered-pair key used for duplicate-session
// suppression. The key is identical regardless of who initiates.
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}
