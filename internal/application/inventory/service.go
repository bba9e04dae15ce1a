package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/guild-hub/guild-hub/internal/domain/inventory"
	"github.com/guild-hub/guild-hub/internal/domain/trade"
)

// Service handles the item catalog and the ownership ledger. It implements
// the trade engine's InventoryQuery and InventoryLedger ports.
type Service struct {
	repo   inventory.Repository
	logger zerolog.Logger
}

// NewService creates an inventory service.
func NewService(repo inventory.Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("service", "inventory").Logger(),
	}
}

// CreateItem registers or updates a catalog entry. A non-empty trade rule is
// parsed up front so a broken expression is rejected at definition time, not
// mid-trade.
func (s *Service) CreateItem(ctx context.Context, itemID, name string, rarity inventory.Rarity, tradeRule string) (*inventory.Item, error) {
	if err := inventory.ValidateItemID(itemID); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("item name is required")
	}
	if err := inventory.ValidateRarity(rarity); err != nil {
		return nil, err
	}
	if err := inventory.ValidateTradeRule(tradeRule); err != nil {
		return nil, fmt.Errorf("invalid trade rule: %w", err)
	}

	item := &inventory.Item{
		ItemID:    itemID,
		Name:      name,
		Rarity:    rarity,
		TradeRule: tradeRule,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.UpsertItem(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info().Str("item_id", itemID).Str("rarity", string(rarity)).Msg("item upserted")
	return item, nil
}

// GetItem retrieves one catalog entry.
func (s *Service) GetItem(ctx context.Context, itemID string) (*inventory.Item, error) {
	return s.repo.GetItem(ctx, itemID)
}

// ListItems lists catalog entries.
func (s *Service) ListItems(ctx context.Context, limit, offset int) ([]*inventory.Item, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListItems(ctx, limit, offset)
}

// Grant adds quantity of an item to a member, e.g. from a quest reward or an
// admin command. Negative deltas deduct and fail when the balance would go
// below zero.
func (s *Service) Grant(ctx context.Context, userID, itemID string, delta int64) error {
	if delta == 0 {
		return fmt.Errorf("delta must be non-zero")
	}
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("unknown item: %s", itemID)
	}
	if err := s.repo.AdjustQuantity(ctx, userID, itemID, delta); err != nil {
		return err
	}
	s.logger.Info().
		Str("user_id", userID).
		Str("item_id", itemID).
		Int64("delta", delta).
		Msg("holding adjusted")
	return nil
}

// ListHoldings returns a member's full inventory.
func (s *Service) ListHoldings(ctx context.Context, userID string) ([]*inventory.Holding, error) {
	return s.repo.ListHoldings(ctx, userID)
}

// ListTradableItems implements trade.InventoryQuery: the subset of a member's
// holdings whose items pass their trade rule. Items whose rule fails to
// evaluate are excluded rather than failing the whole listing.
func (s *Service) ListTradableItems(ctx context.Context, userID string) ([]trade.ItemStack, error) {
	holdings, err := s.repo.ListHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(holdings) == 0 {
		return nil, nil
	}

	itemIDs := make([]string, 0, len(holdings))
	for _, h := range holdings {
		itemIDs = append(itemIDs, h.ItemID)
	}
	items, err := s.repo.GetItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	catalog := make(map[string]*inventory.Item, len(items))
	for _, it := range items {
		catalog[it.ItemID] = it
	}

	out := make([]trade.ItemStack, 0, len(holdings))
	for _, h := range holdings {
		if h.Quantity <= 0 {
			continue
		}
		item, ok := catalog[h.ItemID]
		if !ok {
			continue
		}
		ok, err := inventory.Tradable(item, h)
		if err != nil {
			s.logger.Warn().
				Str("item_id", h.ItemID).
				Err(err).
				Msg("trade rule evaluation failed, item excluded")
			continue
		}
		if ok {
			out = append(out, trade.ItemStack{ItemID: h.ItemID, Quantity: h.Quantity})
		}
	}
	return out, nil
}

// TransferAtomic implements trade.InventoryLedger by delegating to the
// repository's transactional transfer.
func (s *Service) TransferAtomic(ctx context.Context, legs []trade.TransferLeg) error {
	if len(legs) == 0 {
		return nil
	}
	converted := make([]inventory.TransferLeg, len(legs))
	for i, l := range legs {
		converted[i] = inventory.TransferLeg{
			FromUserID: l.FromUserID,
			ToUserID:   l.ToUserID,
			ItemID:     l.ItemID,
			Quantity:   l.Quantity,
		}
	}
	return s.repo.TransferAtomic(ctx, converted)
}
