package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_ports.go -package=mocks github.com/guild-hub/guild-hub/internal/domain/trade InventoryQuery,InventoryLedger,NotificationPort,Repository

// TransferLeg is one directed item movement applied during settlement.
type TransferLeg struct {
	FromUserID string
	ToUserID   string
	ItemID     string
	Quantity   int64
}

// InventoryQuery answers what a participant currently holds and may trade.
type InventoryQuery interface {
	ListTradableItems(ctx context.Context, userID string) ([]ItemStack, error)
}

// InventoryLedger applies all legs of a settlement atomically: either every
// leg is applied or none is.
type InventoryLedger interface {
	TransferAtomic(ctx context.Context, legs []TransferLeg) error
}

// NotificationPort renders a session snapshot outward. Best effort, never part
// of the consistency path.
type NotificationPort interface {
	Render(sessionID uuid.UUID, snapshot *Snapshot)
}

// Clock abstracts wall time for deadline arithmetic.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
