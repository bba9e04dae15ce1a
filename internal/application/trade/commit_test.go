package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/guild-hub/guild-hub/internal/domain/trade"
	"github.com/guild-hub/guild-hub/internal/domain/trade/mocks"
)

func commitSession() *trade.Session {
	return &trade.Session{
		SessionID:   uuid.New(),
		InitiatorID: userA,
		ReceiverID:  userB,
		State:       trade.StateBothLocked,
	}
}

func TestCommitCoordinator_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	query := mocks.NewMockInventoryQuery(ctrl)
	ledger := mocks.NewMockInventoryLedger(ctrl)
	c := NewCommitCoordinator(query, ledger, time.Second, zerolog.Nop())

	query.EXPECT().ListTradableItems(gomock.Any(), userA).
		Return([]trade.ItemStack{{ItemID: "iron_sword", Quantity: 2}}, nil)
	query.EXPECT().ListTradableItems(gomock.Any(), userB).
		Return([]trade.ItemStack{{ItemID: "gold_ring", Quantity: 1}}, nil)
	ledger.EXPECT().TransferAtomic(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, legs []trade.TransferLeg) error {
			require.Len(t, legs, 2)
			return nil
		})

	err := c.Commit(context.Background(), commitSession(),
		[]trade.ItemStack{{ItemID: "iron_sword", Quantity: 1}},
		[]trade.ItemStack{{ItemID: "gold_ring", Quantity: 1}},
	)
	require.NoError(t, err)
}

func TestCommitCoordinator_EmptyOffersSkipLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	query := mocks.NewMockInventoryQuery(ctrl)
	ledger := mocks.NewMockInventoryLedger(ctrl)
	c := NewCommitCoordinator(query, ledger, time.Second, zerolog.Nop())

	// Both sides offered nothing; no inventory calls at all.
	err := c.Commit(context.Background(), commitSession(), nil, nil)
	require.NoError(t, err)
}

func TestCommitCoordinator_DriftedOffer(t *testing.T) {
	ctrl := gomock.NewController(t)
	query := mocks.NewMockInventoryQuery(ctrl)
	ledger := mocks.NewMockInventoryLedger(ctrl)
	c := NewCommitCoordinator(query, ledger, time.Second, zerolog.Nop())

	// userA's stack shrank below the offered quantity after locking.
	query.EXPECT().ListTradableItems(gomock.Any(), userA).
		Return([]trade.ItemStack{{ItemID: "iron_sword", Quantity: 1}}, nil)

	err := c.Commit(context.Background(), commitSession(),
		[]trade.ItemStack{{ItemID: "iron_sword", Quantity: 2}},
		nil,
	)
	var pErr *trade.PreconditionFailedError
	require.ErrorAs(t, err, &pErr)
}

func TestCommitCoordinator_LedgerFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	query := mocks.NewMockInventoryQuery(ctrl)
	ledger := mocks.NewMockInventoryLedger(ctrl)
	c := NewCommitCoordinator(query, ledger, time.Second, zerolog.Nop())

	query.EXPECT().ListTradableItems(gomock.Any(), userA).
		Return([]trade.ItemStack{{ItemID: "iron_sword", Quantity: 1}}, nil)

	cause := errors.New("connection refused")
	ledger.EXPECT().TransferAtomic(gomock.Any(), gomock.Any()).Return(cause)

	err := c.Commit(context.Background(), commitSession(),
		[]trade.ItemStack{{ItemID: "iron_sword", Quantity: 1}},
		nil,
	)
	var commitErr *trade.ExternalCommitError
	require.ErrorAs(t, err, &commitErr)
	assert.ErrorIs(t, err, cause)
}

func TestOfferRegistry_Set(t *testing.T) {
	ctrl := gomock.NewController(t)
	query := mocks.NewMockInventoryQuery(ctrl)
	reg := NewOfferRegistry(userA, userB, query)
	ctx := context.Background()

	t.Run("replaces previous offer in full", func(t *testing.T) {
		query.EXPECT().ListTradableItems(gomock.Any(), userA).
			Return([]trade.ItemStack{
				{ItemID: "iron_sword", Quantity: 1},
				{ItemID: "gold_ring", Quantity: 2},
			}, nil).Times(2)

		require.NoError(t, reg.Set(ctx, userA, []trade.ItemStack{{ItemID: "iron_sword", Quantity: 1}}))
		require.NoError(t, reg.Set(ctx, userA, []trade.ItemStack{{ItemID: "gold_ring", Quantity: 2}}))

		offer := reg.Get(trade.SideInitiator)
		require.Len(t, offer, 1)
		assert.Equal(t, "gold_ring", offer[0].ItemID)
	})

	t.Run("rejects non-participant", func(t *testing.T) {
		err := reg.Set(ctx, userC, []trade.ItemStack{{ItemID: "iron_sword", Quantity: 1}})
		var vErr *trade.ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("rejects malformed stacks", func(t *testing.T) {
		var vErr *trade.ValidationError
		require.ErrorAs(t, reg.Set(ctx, userA, []trade.ItemStack{{ItemID: "", Quantity: 1}}), &vErr)
		require.ErrorAs(t, reg.Set(ctx, userA, []trade.ItemStack{{ItemID: "iron_sword", Quantity: 0}}), &vErr)
		require.ErrorAs(t, reg.Set(ctx, userA, []trade.ItemStack{
			{ItemID: "iron_sword", Quantity: 1},
			{ItemID: "iron_sword", Quantity: 2},
		}), &vErr)
	})

	t.Run("rejects untradable or missing items", func(t *testing.T) {
		query.EXPECT().ListTradableItems(gomock.Any(), userB).Return(nil, nil)
		err := reg.Set(ctx, userB, []trade.ItemStack{{ItemID: "founder_badge", Quantity: 1}})
		var vErr *trade.ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("empty offer clears without inventory call", func(t *testing.T) {
		require.NoError(t, reg.Set(ctx, userB, nil))
		assert.Empty(t, reg.Get(trade.SideReceiver))
	})
}
