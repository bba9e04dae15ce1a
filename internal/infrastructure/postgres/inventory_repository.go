package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guild-hub/guild-hub/internal/domain/inventory"
)

// InventoryRepository implements inventory.Repository.
type InventoryRepository struct {
	pool *pgxpool.Pool
}

func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

func (r *InventoryRepository) UpsertItem(ctx context.Context, item *inventory.Item) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO inventory_items (item_id, name, rarity, trade_rule, created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (item_id) DO UPDATE
		SET name=EXCLUDED.name,
			rarity=EXCLUDED.rarity,
			trade_rule=EXCLUDED.trade_rule
		RETURNING id
	`, item.ItemID, item.Name, item.Rarity, item.TradeRule, item.CreatedAt).Scan(&item.ID)
}

func (r *InventoryRepository) GetItem(ctx context.Context, itemID string) (*inventory.Item, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, item_id, name, rarity, trade_rule, created_at
		FROM inventory_items WHERE item_id=$1
	`, itemID)
	return scanItem(row)
}

func (r *InventoryRepository) GetItems(ctx context.Context, itemIDs []string) ([]*inventory.Item, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, item_id, name, rarity, trade_rule, created_at
		FROM inventory_items WHERE item_id = ANY($1)
	`, itemIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*inventory.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *InventoryRepository) ListItems(ctx context.Context, limit, offset int) ([]*inventory.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, item_id, name, rarity, trade_rule, created_at
		FROM inventory_items ORDER BY item_id ASC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*inventory.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *InventoryRepository) ListHoldings(ctx context.Context, userID string) ([]*inventory.Holding, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, item_id, quantity, updated_at
		FROM inventory_holdings WHERE user_id=$1 AND quantity > 0
		ORDER BY item_id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*inventory.Holding
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *InventoryRepository) GetHolding(ctx context.Context, userID, itemID string) (*inventory.Holding, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, item_id, quantity, updated_at
		FROM inventory_holdings WHERE user_id=$1 AND item_id=$2
	`, userID, itemID)
	return scanHolding(row)
}

func (r *InventoryRepository) AdjustQuantity(ctx context.Context, userID, itemID string, delta int64) error {
	if delta > 0 {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO inventory_holdings (user_id, item_id, quantity, updated_at)
			VALUES ($1,$2,$3,NOW())
			ON CONFLICT (user_id, item_id) DO UPDATE
			SET quantity = inventory_holdings.quantity + EXCLUDED.quantity,
				updated_at = NOW()
		`, userID, itemID, delta)
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE inventory_holdings
		SET quantity = quantity + $3, updated_at = NOW()
		WHERE user_id=$1 AND item_id=$2 AND quantity >= -$3
	`, userID, itemID, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insufficient quantity of %s for %s", itemID, userID)
	}
	return nil
}

// TransferAtomic applies all legs in one transaction. Each debit carries a
// quantity guard in the WHERE clause; a debit that matches no row means the
// sender no longer holds enough, and the whole transaction rolls back.
func (r *InventoryRepository) TransferAtomic(ctx context.Context, legs []inventory.TransferLeg) error {
	if len(legs) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, leg := range legs {
		tag, err := tx.Exec(ctx, `
			UPDATE inventory_holdings
			SET quantity = quantity - $3, updated_at = NOW()
			WHERE user_id=$1 AND item_id=$2 AND quantity >= $3
		`, leg.FromUserID, leg.ItemID, leg.Quantity)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("insufficient quantity of %s for %s", leg.ItemID, leg.FromUserID)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO inventory_holdings (user_id, item_id, quantity, updated_at)
			VALUES ($1,$2,$3,NOW())
			ON CONFLICT (user_id, item_id) DO UPDATE
			SET quantity = inventory_holdings.quantity + EXCLUDED.quantity,
				updated_at = NOW()
		`, leg.ToUserID, leg.ItemID, leg.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*inventory.Item, error) {
	var item inventory.Item
	err := row.Scan(&item.ID, &item.ItemID, &item.Name, &item.Rarity, &item.TradeRule, &item.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func scanHolding(row rowScanner) (*inventory.Holding, error) {
	var h inventory.Holding
	err := row.Scan(&h.ID, &h.UserID, &h.ItemID, &h.Quantity, &h.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}
