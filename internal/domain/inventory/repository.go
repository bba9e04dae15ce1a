package inventory

import "context"

// Repository persists the item catalog and the ownership ledger.
type Repository interface {
	UpsertItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, itemID string) (*Item, error)
	GetItems(ctx context.Context, itemIDs []string) ([]*Item, error)
	ListItems(ctx context.Context, limit, offset int) ([]*Item, error)

	ListHoldings(ctx context.Context, userID string) ([]*Holding, error)
	GetHolding(ctx context.Context, userID, itemID string) (*Holding, error)
	AdjustQuantity(ctx context.Context, userID, itemID string, delta int64) error

	// TransferAtomic applies every leg in one transaction; a failed leg
	// rolls back all of them.
	TransferAtomic(ctx context.Context, legs []TransferLeg) error
}
