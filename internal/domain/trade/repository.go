package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is the archived form of a session that reached a terminal state.
type Record struct {
	ID             int64       `json:"id"`
	SessionID      uuid.UUID   `json:"sessionId"`
	InitiatorID    string      `json:"initiatorId"`
	ReceiverID     string      `json:"receiverId"`
	State          State       `json:"state"`
	Reason         string      `json:"reason,omitempty"`
	InitiatorOffer []ItemStack `json:"initiatorOffer"`
	ReceiverOffer  []ItemStack `json:"receiverOffer"`
	CreatedAt      time.Time   `json:"createdAt"`
	ClosedAt       time.Time   `json:"closedAt"`
}

// Repository persists terminal sessions for the trade history command.
type Repository interface {
	Insert(ctx context.Context, rec *Record) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Record, error)
}
