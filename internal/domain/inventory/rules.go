package inventory

import (
	"errors"
	"strings"

	"github.com/Knetic/govaluate"
)

// ValidateTradeRule checks that a rule expression parses. Empty rules are
// valid and mean tradable by default.
func ValidateTradeRule(rule string) error {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return nil
	}
	_, err := govaluate.NewEvaluableExpression(rule)
	return err
}

// Tradable evaluates the item's trade rule against the holder's position.
// An empty rule means tradable. The rule sees the parameters item_id, name,
// rarity and quantity, e.g.:
//
//	rarity != 'SOULBOUND' && quantity > 0
func Tradable(item *Item, holding *Holding) (bool, error) {
	rule := strings.TrimSpace(item.TradeRule)
	if rule == "" {
		return item.Rarity != RaritySoulbound, nil
	}
	switch strings.ToLower(rule) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	expr, err := govaluate.NewEvaluableExpression(rule)
	if err != nil {
		return false, err
	}
	params := map[string]interface{}{
		"item_id":  item.ItemID,
		"name":     item.Name,
		"rarity":   string(item.Rarity),
		"quantity": float64(holding.Quantity),
	}
	result, err := expr.Evaluate(params)
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	if !ok {
		return false, errors.New("trade rule did not evaluate to boolean")
	}
	return b, nil
}
