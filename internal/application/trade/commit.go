package trade

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/guild-hub/guild-hub/internal/domain/trade"
)

// CommitCoordinator performs the all-or-nothing settlement once both sides
// have locked and accepted. It runs inside the session's serialized step, so
// no second caller can observe a "both accepted, not yet committed" state.
type CommitCoordinator struct {
	query   trade.InventoryQuery
	ledger  trade.InventoryLedger
	timeout time.Duration
	logger  zerolog.Logger
}

// NewCommitCoordinator creates a coordinator over the inventory ports.
func NewCommitCoordinator(query trade.InventoryQuery, ledger trade.InventoryLedger, timeout time.Duration, logger zerolog.Logger) *CommitCoordinator {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CommitCoordinator{
		query:   query,
		ledger:  ledger,
		timeout: timeout,
		logger:  logger.With().Str("service", "trade-commit").Logger(),
	}
}

// Commit re-validates both offers against live inventory and applies both
// legs through the ledger's atomic transfer. On any error nothing has been
// transferred: a PreconditionFailedError means an offered item drifted away
// since it was proposed, an ExternalCommitError means the ledger call failed.
func (c *CommitCoordinator) Commit(ctx context.Context, sess *trade.Session, initiatorOffer, receiverOffer []trade.ItemStack) error {
	if err := c.revalidate(ctx, sess.InitiatorID, initiatorOffer); err != nil {
		return err
	}
	if err := c.revalidate(ctx, sess.ReceiverID, receiverOffer); err != nil {
		return err
	}

	legs := make([]trade.TransferLeg, 0, len(initiatorOffer)+len(receiverOffer))
	for _, it := range initiatorOffer {
		legs = append(legs, trade.TransferLeg{
			FromUserID: sess.InitiatorID,
			ToUserID:   sess.ReceiverID,
			ItemID:     it.ItemID,
			Quantity:   it.Quantity,
		})
	}
	for _, it := range receiverOffer {
		legs = append(legs, trade.TransferLeg{
			FromUserID: sess.ReceiverID,
			ToUserID:   sess.InitiatorID,
			ItemID:     it.ItemID,
			Quantity:   it.Quantity,
		})
	}
	if len(legs) == 0 {
		return nil
	}

	// The session lock is held across this call; bound it so a slow ledger
	// cannot hold the session indefinitely.
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.ledger.TransferAtomic(callCtx, legs); err != nil {
		c.logger.Warn().Err(err).Str("session_id", sess.SessionID.String()).Msg("ledger transfer failed")
		return &trade.ExternalCommitError{Err: err}
	}
	return nil
}

func (c *CommitCoordinator) revalidate(ctx context.Context, userID string, offer []trade.ItemStack) error {
	if len(offer) == 0 {
		return nil
	}
	tradable, err := c.query.ListTradableItems(ctx, userID)
	if err != nil {
		return &trade.ExternalCommitError{Err: err}
	}
	held := make(map[string]int64, len(tradable))
	for _, t := range tradable {
		held[t.ItemID] = t.Quantity
	}
	for _, it := range offer {
		if held[it.ItemID] < it.Quantity {
			return &trade.PreconditionFailedError{
				Reason: userID + " no longer holds " + it.ItemID + " in offered quantity",
			}
		}
	}
	return nil
}
