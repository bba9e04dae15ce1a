package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guild-hub/guild-hub/internal/domain/trade"
)

// TradeRepository implements trade.Repository over the trade_history table.
// Offers are stored as jsonb.
type TradeRepository struct {
	pool *pgxpool.Pool
}

func NewTradeRepository(pool *pgxpool.Pool) *TradeRepository {
	return &TradeRepository{pool: pool}
}

func (r *TradeRepository) Insert(ctx context.Context, rec *trade.Record) error {
	initiatorOffer, err := marshalOffer(rec.InitiatorOffer)
	if err != nil {
		return err
	}
	receiverOffer, err := marshalOffer(rec.ReceiverOffer)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO trade_history
		(session_id, initiator_id, receiver_id, state, reason, initiator_offer, receiver_offer, created_at, closed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`, rec.SessionID, rec.InitiatorID, rec.ReceiverID, rec.State, rec.Reason, initiatorOffer, receiverOffer, rec.CreatedAt, rec.ClosedAt).Scan(&rec.ID)
}

func (r *TradeRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*trade.Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, session_id, initiator_id, receiver_id, state, reason, initiator_offer, receiver_offer, created_at, closed_at
		FROM trade_history
		WHERE initiator_id=$1 OR receiver_id=$1
		ORDER BY closed_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*trade.Record
	for rows.Next() {
		var rec trade.Record
		var initiatorOffer, receiverOffer []byte
		if err := rows.Scan(
			&rec.ID, &rec.SessionID, &rec.InitiatorID, &rec.ReceiverID,
			&rec.State, &rec.Reason, &initiatorOffer, &receiverOffer,
			&rec.CreatedAt, &rec.ClosedAt,
		); err != nil {
			return nil, err
		}
		if rec.InitiatorOffer, err = unmarshalOffer(initiatorOffer); err != nil {
			return nil, err
		}
		if rec.ReceiverOffer, err = unmarshalOffer(receiverOffer); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func marshalOffer(offer []trade.ItemStack) ([]byte, error) {
	if offer == nil {
		offer = []trade.ItemStack{}
	}
	return json.Marshal(offer)
}

func unmarshalOffer(data []byte) ([]trade.ItemStack, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var offer []trade.ItemStack
	if err := json.Unmarshal(data, &offer); err != nil {
		return nil, err
	}
	return offer, nil
}
