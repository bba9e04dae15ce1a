package trade

import (
	"context"

	"github.com/guild-hub/guild-hub/internal/domain/trade"
)

// OfferRegistry holds both participants' proposed item sets for one session.
// It is owned by the session entry and only ever touched inside the session's
// critical section. Re-submission replaces the previous offer in full; it does
// not merge.
type OfferRegistry struct {
	initiatorID string
	receiverID  string
	query       trade.InventoryQuery
	offers      map[trade.Side][]trade.ItemStack
}

// NewOfferRegistry creates an empty registry for a session's participants.
func NewOfferRegistry(initiatorID, receiverID string, query trade.InventoryQuery) *OfferRegistry {
	return &OfferRegistry{
		initiatorID: initiatorID,
		receiverID:  receiverID,
		query:       query,
		offers:      make(map[trade.Side][]trade.ItemStack, 2),
	}
}

// Set replaces the actor's offer after validating that every item is well
// formed, currently tradable and held in sufficient quantity. The lock-flag
// guard runs in the state machine before Set is reached.
func (r *OfferRegistry) Set(ctx context.Context, actorID string, items []trade.ItemStack) error {
	var side trade.Side
	switch actorID {
	case r.initiatorID:
		side = trade.SideInitiator
	case r.receiverID:
		side = trade.SideReceiver
	default:
		return &trade.ValidationError{Reason: actorID + " is not a participant of this trade"}
	}

	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.ItemID == "" {
			return &trade.ValidationError{Reason: "offer contains an empty item id"}
		}
		if it.Quantity <= 0 {
			return &trade.ValidationError{Reason: "offer quantity must be positive for " + it.ItemID}
		}
		if _, dup := seen[it.ItemID]; dup {
			return &trade.ValidationError{Reason: "offer lists " + it.ItemID + " more than once"}
		}
		seen[it.ItemID] = struct{}{}
	}

	if len(items) > 0 {
		tradable, err := r.query.ListTradableItems(ctx, actorID)
		if err != nil {
			return err
		}
		held := make(map[string]int64, len(tradable))
		for _, t := range tradable {
			held[t.ItemID] = t.Quantity
		}
		for _, it := range items {
			if held[it.ItemID] < it.Quantity {
				return &trade.ValidationError{Reason: it.ItemID + " is not tradable or not held in sufficient quantity"}
			}
		}
	}

	r.offers[side] = copyStacks(items)
	return nil
}

// Get returns a copy of one side's current offer.
func (r *OfferRegistry) Get(side trade.Side) []trade.ItemStack {
	return copyStacks(r.offers[side])
}

func copyStacks(in []trade.ItemStack) []trade.ItemStack {
	out := make([]trade.ItemStack, len(in))
	copy(out, in)
	return out
}
