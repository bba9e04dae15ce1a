package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/guild-hub/guild-hub/internal/domain/notification"
	"github.com/guild-hub/guild-hub/internal/domain/trade"
)

type createInvitationRequest struct {
	InitiatorID string `json:"initiatorId"`
	ReceiverID  string `json:"receiverId"`
}

type actorRequest struct {
	ActorID string `json:"actorId"`
}

type proposeItemsRequest struct {
	ActorID         string            `json:"actorId"`
	Items           []trade.ItemStack `json:"items"`
	ExpectedVersion *uint64           `json:"expectedVersion,omitempty"`
}

type versionedActorRequest struct {
	ActorID         string  `json:"actorId"`
	ExpectedVersion *uint64 `json:"expectedVersion,omitempty"`
}

func (s *Server) createInvitation(w http.ResponseWriter, r *http.Request) {
	var req createInvitationRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	inv, err := s.tradeStore.CreateInvitation(req.InitiatorID, req.ReceiverID)
	if err != nil {
		respondTradeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, inv)
}

func (s *Server) acceptInvitation(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "invitationId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid invitation id")
		return
	}
	var req actorRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	snap, err := s.tradeStore.AcceptInvitation(id, req.ActorID)
	if err != nil {
		respondTradeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (s *Server) declineInvitation(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "invitationId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid invitation id")
		return
	}
	var req actorRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if err := s.tradeStore.DeclineInvitation(id, req.ActorID); err != nil {
		respondTradeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"invitationId": id, "status": "DECLINED"})
}

func (s *Server) getTrade(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "sessionId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid session id")
		return
	}
	snap, err := s.tradeStore.Snapshot(id)
	if err != nil {
		respondTradeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (s *Server) proposeItems(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "sessionId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid session id")
		return
	}
	var req proposeItemsRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	snap, err := s.tradeStore.ProposeItems(r.Context(), id, req.ActorID, req.Items, req.ExpectedVersion)
	if err != nil {
		respondTradeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (s *Server) lockOffer(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "sessionId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid session id")
		return
	}
	var req versionedActorRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	snap, err := s.tradeStore.Lock(id, req.ActorID, req.ExpectedVersion)
	if err != nil {
		respondTradeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (s *Server) acceptFinal(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "sessionId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid session id")
		return
	}
	var req versionedActorRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	snap, err := s.tradeStore.AcceptFinal(r.Context(), id, req.ActorID, req.ExpectedVersion)
	if err != nil {
		respondTradeError(w, err)
		return
	}
	if snap.State == trade.StateCommitted {
		s.awardTradeXP(snap.InitiatorID, snap.ReceiverID)
	}
	respondJSON(w, http.StatusOK, snap)
}

func (s *Server) cancelTrade(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "sessionId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid session id")
		return
	}
	var req actorRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	snap, err := s.tradeStore.Cancel(id, req.ActorID)
	if err != nil {
		respondTradeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (s *Server) declineTrade(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "sessionId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid session id")
		return
	}
	var req actorRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	snap, err := s.tradeStore.Decline(id, req.ActorID)
	if err != nil {
		respondTradeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (s *Server) tradeHistory(w http.ResponseWriter, r *http.Request) {
	userID := urlParam(r, "userId")
	limit, offset := parsePagination(r)
	records, err := s.tradeStore.History(r.Context(), userID, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if records == nil {
		records = []*trade.Record{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"trades": records})
}

// awardTradeXP grants the gamification bonus to both parties of a committed
// trade. Best effort, outside the session's critical section.
func (s *Server) awardTradeXP(initiatorID, receiverID string) {
	if s.tradeXPAward <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, userID := range []string{initiatorID, receiverID} {
		if _, err := s.memberSvc.AwardXP(ctx, userID, s.tradeXPAward); err != nil {
			s.logger.Warn().Str("user_id", userID).Err(err).Msg("failed to award trade xp")
		}
	}
}

func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "client_id required")
		return
	}
	if s.sseHub.GetClient(clientID) != nil {
		respondError(w, http.StatusConflict, "DUPLICATE_CLIENT", "client_id already connected")
		return
	}
	var userPtr *string
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		userPtr = &userID
	}
	client := notification.NewSSEClient(clientID, userPtr)
	s.sseHub.Register(client)
	defer s.sseHub.Unregister(clientID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher, ok := w.(http.Flusher)
	if !ok {
		return
	}
	// Send an initial comment to flush headers and keep the connection alive.
	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()
	// The hello event gives the gateway a first message to confirm delivery on.
	_ = s.sseHub.SendToClient(clientID, notification.NewSSEMessage("stream.connected", nil))

	ctx := r.Context()
	for {
		select {
		case msg := <-client.MessageChan:
			if msg == nil {
				return
			}
			payload, _ := json.Marshal(msg)
			_, _ = w.Write([]byte("data: "))
			_, _ = w.Write(payload)
			_, _ = w.Write([]byte("\n\n"))
			flusher.Flush()
		case <-ctx.Done():
			return
		}
	}
}
