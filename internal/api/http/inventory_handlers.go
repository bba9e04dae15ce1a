package httpapi

import (
	"net/http"

	"github.com/guild-hub/guild-hub/internal/domain/inventory"
	"github.com/guild-hub/guild-hub/internal/domain/trade"
)

type createItemRequest struct {
	ItemID    string `json:"itemId"`
	Name      string `json:"name"`
	Rarity    string `json:"rarity"`
	TradeRule string `json:"tradeRule,omitempty"`
}

type grantItemRequest struct {
	ItemID string `json:"itemId"`
	Delta  int64  `json:"delta"`
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	item, err := s.inventorySvc.CreateItem(r.Context(), req.ItemID, req.Name, inventory.Rarity(req.Rarity), req.TradeRule)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	items, err := s.inventorySvc.ListItems(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if items == nil {
		items = []*inventory.Item{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	itemID := urlParam(r, "itemId")
	item, err := s.inventorySvc.GetItem(r.Context(), itemID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if item == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "item not found")
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (s *Server) listHoldings(w http.ResponseWriter, r *http.Request) {
	userID := urlParam(r, "userId")
	holdings, err := s.inventorySvc.ListHoldings(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if holdings == nil {
		holdings = []*inventory.Holding{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"holdings": holdings})
}

func (s *Server) listTradableItems(w http.ResponseWriter, r *http.Request) {
	userID := urlParam(r, "userId")
	items, err := s.inventorySvc.ListTradableItems(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if items == nil {
		items = []trade.ItemStack{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (s *Server) grantItem(w http.ResponseWriter, r *http.Request) {
	userID := urlParam(r, "userId")
	var req grantItemRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if err := s.inventorySvc.Grant(r.Context(), userID, req.ItemID, req.Delta); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"userId": userID,
		"itemId": req.ItemID,
		"delta":  req.Delta,
	})
}
