package inventory

import (
	"errors"
	"strings"
	"time"
)

// Rarity classifies catalog items.
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
	RaritySoulbound Rarity = "SOULBOUND"
)

// Item is one catalog entry. TradeRule is an optional boolean expression
// evaluated against the item and the holder's quantity; an empty rule means
// the item is tradable.
type Item struct {
	ID        int64     `json:"id"`
	ItemID    string    `json:"itemId"`
	Name      string    `json:"name"`
	Rarity    Rarity    `json:"rarity"`
	TradeRule string    `json:"tradeRule,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Holding is the quantity of one item owned by one member.
type Holding struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	ItemID    string    `json:"itemId"`
	Quantity  int64     `json:"quantity"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TransferLeg is one directed quantity movement between two members.
type TransferLeg struct {
	FromUserID string
	ToUserID   string
	ItemID     string
	Quantity   int64
}

func ValidateItemID(itemID string) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return errors.New("item id is required")
	}
	if strings.ContainsAny(itemID, " \t\n") {
		return errors.New("item id must not contain whitespace")
	}
	return nil
}

func ValidateRarity(r Rarity) error {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary, RaritySoulbound:
		return nil
	default:
		return errors.New("invalid rarity")
	}
}
