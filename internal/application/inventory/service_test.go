package inventory

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guild-hub/guild-hub/internal/domain/inventory"
	"github.com/guild-hub/guild-hub/internal/domain/inventory/mocks"
	"github.com/guild-hub/guild-hub/internal/domain/trade"
)

const testUser = "100000000000000001"

func TestService_CreateItem(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(mocks.MockRepository)
		svc := NewService(repo, zerolog.Nop())

		repo.On("UpsertItem", mock.Anything, mock.Anything).Return(nil)

		item, err := svc.CreateItem(context.Background(), "iron_sword", "Iron Sword", inventory.RarityCommon, "")
		require.NoError(t, err)
		assert.Equal(t, "iron_sword", item.ItemID)
		repo.AssertExpectations(t)
	})

	t.Run("broken trade rule rejected at definition time", func(t *testing.T) {
		repo := new(mocks.MockRepository)
		svc := NewService(repo, zerolog.Nop())

		_, err := svc.CreateItem(context.Background(), "iron_sword", "Iron Sword", inventory.RarityCommon, "rarity ==")
		require.Error(t, err)
		repo.AssertNotCalled(t, "UpsertItem")
	})

	t.Run("invalid rarity", func(t *testing.T) {
		repo := new(mocks.MockRepository)
		svc := NewService(repo, zerolog.Nop())

		_, err := svc.CreateItem(context.Background(), "iron_sword", "Iron Sword", inventory.Rarity("MYTHIC"), "")
		require.Error(t, err)
	})
}

func TestService_Grant(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(mocks.MockRepository)
		svc := NewService(repo, zerolog.Nop())

		repo.On("GetItem", mock.Anything, "iron_sword").
			Return(&inventory.Item{ItemID: "iron_sword", Rarity: inventory.RarityCommon}, nil)
		repo.On("AdjustQuantity", mock.Anything, testUser, "iron_sword", int64(3)).Return(nil)

		require.NoError(t, svc.Grant(context.Background(), testUser, "iron_sword", 3))
		repo.AssertExpectations(t)
	})

	t.Run("unknown item", func(t *testing.T) {
		repo := new(mocks.MockRepository)
		svc := NewService(repo, zerolog.Nop())

		repo.On("GetItem", mock.Anything, "missing").Return(nil, nil)

		err := svc.Grant(context.Background(), testUser, "missing", 1)
		require.Error(t, err)
		repo.AssertNotCalled(t, "AdjustQuantity")
	})
}

func TestService_ListTradableItems(t *testing.T) {
	repo := new(mocks.MockRepository)
	svc := NewService(repo, zerolog.Nop())

	repo.On("ListHoldings", mock.Anything, testUser).Return([]*inventory.Holding{
		{UserID: testUser, ItemID: "iron_sword", Quantity: 2},
		{UserID: testUser, ItemID: "founder_badge", Quantity: 1},
		{UserID: testUser, ItemID: "cursed_gem", Quantity: 5},
		{UserID: testUser, ItemID: "orphan_item", Quantity: 1},
	}, nil)
	repo.On("GetItems", mock.Anything, mock.Anything).Return([]*inventory.Item{
		{ItemID: "iron_sword", Rarity: inventory.RarityCommon},
		{ItemID: "founder_badge", Rarity: inventory.RaritySoulbound},
		{ItemID: "cursed_gem", Rarity: inventory.RarityRare, TradeRule: "quantity > 10"},
	}, nil)

	items, err := svc.ListTradableItems(context.Background(), testUser)
	require.NoError(t, err)

	// Soulbound, rule-failing and catalog-less holdings are all excluded.
	require.Len(t, items, 1)
	assert.Equal(t, trade.ItemStack{ItemID: "iron_sword", Quantity: 2}, items[0])
}

func TestService_ListTradableItems_Empty(t *testing.T) {
	repo := new(mocks.MockRepository)
	svc := NewService(repo, zerolog.Nop())

	repo.On("ListHoldings", mock.Anything, testUser).Return(nil, nil)

	items, err := svc.ListTradableItems(context.Background(), testUser)
	require.NoError(t, err)
	assert.Empty(t, items)
	repo.AssertNotCalled(t, "GetItems")
}

func TestService_TransferAtomic(t *testing.T) {
	repo := new(mocks.MockRepository)
	svc := NewService(repo, zerolog.Nop())

	repo.On("TransferAtomic", mock.Anything, mock.MatchedBy(func(legs []inventory.TransferLeg) bool {
		return len(legs) == 1 && legs[0].ItemID == "iron_sword" && legs[0].Quantity == 2
	})).Return(nil)

	err := svc.TransferAtomic(context.Background(), []trade.TransferLeg{
		{FromUserID: testUser, ToUserID: "100000000000000002", ItemID: "iron_sword", Quantity: 2},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
