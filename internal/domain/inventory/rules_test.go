package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradable(t *testing.T) {
	holding := &Holding{UserID: "100000000000000001", ItemID: "iron_sword", Quantity: 3}

	t.Run("empty rule follows rarity", func(t *testing.T) {
		ok, err := Tradable(&Item{ItemID: "iron_sword", Rarity: RarityCommon}, holding)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = Tradable(&Item{ItemID: "founder_badge", Rarity: RaritySoulbound}, holding)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("literal rules", func(t *testing.T) {
		ok, err := Tradable(&Item{ItemID: "iron_sword", Rarity: RaritySoulbound, TradeRule: "true"}, holding)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = Tradable(&Item{ItemID: "iron_sword", Rarity: RarityCommon, TradeRule: "false"}, holding)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expression over rarity and quantity", func(t *testing.T) {
		item := &Item{
			ItemID:    "gold_ring",
			Rarity:    RarityRare,
			TradeRule: "rarity != 'SOULBOUND' && quantity > 1",
		}
		ok, err := Tradable(item, &Holding{ItemID: "gold_ring", Quantity: 2})
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = Tradable(item, &Holding{ItemID: "gold_ring", Quantity: 1})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("non-boolean result is an error", func(t *testing.T) {
		_, err := Tradable(&Item{ItemID: "x", Rarity: RarityCommon, TradeRule: "quantity + 1"}, holding)
		require.Error(t, err)
	})

	t.Run("broken expression is an error", func(t *testing.T) {
		_, err := Tradable(&Item{ItemID: "x", Rarity: RarityCommon, TradeRule: "rarity =="}, holding)
		require.Error(t, err)
	})
}

func TestValidateTradeRule(t *testing.T) {
	assert.NoError(t, ValidateTradeRule(""))
	assert.NoError(t, ValidateTradeRule("rarity != 'SOULBOUND'"))
	assert.Error(t, ValidateTradeRule("quantity >"))
}

func TestValidateItemID(t *testing.T) {
	assert.NoError(t, ValidateItemID("iron_sword"))
	assert.Error(t, ValidateItemID(""))
	assert.Error(t, ValidateItemID("iron sword"))
}
