package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appInventory "github.com/guild-hub/guild-hub/internal/application/inventory"
	appMember "github.com/guild-hub/guild-hub/internal/application/member"
	appTrade "github.com/guild-hub/guild-hub/internal/application/trade"
	"github.com/guild-hub/guild-hub/internal/domain/trade"
	"github.com/guild-hub/guild-hub/internal/infrastructure/sse"
)

// Server holds dependencies for HTTP handlers. The only caller is the bot
// gateway process, which authenticates with a shared bearer token.
type Server struct {
	tradeStore       *appTrade.Store
	inventorySvc     *appInventory.Service
	memberSvc        *appMember.Service
	sseHub           *sse.Hub
	gatewayTokenHash string
	tradeXPAward     int64
	logger           zerolog.Logger
}

func NewServer(
	tradeStore *appTrade.Store,
	inventorySvc *appInventory.Service,
	memberSvc *appMember.Service,
	sseHub *sse.Hub,
	gatewayTokenHash string,
	tradeXPAward int64,
	logger zerolog.Logger,
) *Server {
	return &Server{
		tradeStore:       tradeStore,
		inventorySvc:     inventorySvc,
		memberSvc:        memberSvc,
		sseHub:           sseHub,
		gatewayTokenHash: gatewayTokenHash,
		tradeXPAward:     tradeXPAward,
		logger:           logger.With().Str("service", "http").Logger(),
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.requireGatewayToken)

		r.Route("/invitations", func(r chi.Router) {
			r.With(middleware.Timeout(10 * time.Second)).Post("/", s.createInvitation)
			r.With(middleware.Timeout(10 * time.Second)).Post("/{invitationId}/accept", s.acceptInvitation)
			r.With(middleware.Timeout(10 * time.Second)).Post("/{invitationId}/decline", s.declineInvitation)
		})

		r.Route("/trades", func(r chi.Router) {
			r.Use(middleware.Timeout(15 * time.Second))
			r.Get("/{sessionId}", s.getTrade)
			r.Post("/{sessionId}/offer", s.proposeItems)
			r.Post("/{sessionId}/lock", s.lockOffer)
			r.Post("/{sessionId}/accept", s.acceptFinal)
			r.Post("/{sessionId}/cancel", s.cancelTrade)
			r.Post("/{sessionId}/decline", s.declineTrade)
			r.Get("/history/{userId}", s.tradeHistory)
		})

		r.Route("/items", func(r chi.Router) {
			r.Use(middleware.Timeout(10 * time.Second))
			r.Post("/", s.createItem)
			r.Get("/", s.listItems)
			r.Get("/{itemId}", s.getItem)
		})

		r.Route("/members", func(r chi.Router) {
			r.Use(middleware.Timeout(10 * time.Second))
			r.Post("/", s.registerMember)
			r.Get("/", s.listMembers)
			r.Get("/{userId}", s.getMember)
			r.Patch("/{userId}/status", s.updateMemberStatus)
			r.Get("/{userId}/inventory", s.listHoldings)
			r.Get("/{userId}/inventory/tradable", s.listTradableItems)
			r.Post("/{userId}/inventory/grant", s.grantItem)
		})

		r.Get("/stream", s.streamEvents)
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"sseClients": s.sseHub.GetClientCount(),
	})
}

// Helpers
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error":   code,
		"message": message,
	})
}

// respondTradeError maps the trade error taxonomy onto HTTP statuses. 409 with
// STALE_VERSION tells the gateway to resync the embed and let the user retry.
func respondTradeError(w http.ResponseWriter, err error) {
	var (
		validationErr   *trade.ValidationError
		duplicateErr    *trade.DuplicateSessionError
		preconditionErr *trade.PreconditionFailedError
		commitErr       *trade.ExternalCommitError
	)
	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", validationErr.Reason)
	case errors.Is(err, trade.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "trade not found")
	case errors.Is(err, trade.ErrExpired):
		respondError(w, http.StatusGone, "EXPIRED", "trade window expired")
	case errors.As(err, &duplicateErr):
		respondError(w, http.StatusConflict, "DUPLICATE_TRADE", err.Error())
	case errors.As(err, &preconditionErr):
		respondError(w, http.StatusConflict, "STALE_VERSION", err.Error())
	case errors.As(err, &commitErr):
		respondError(w, http.StatusBadGateway, "COMMIT_FAILED", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

func parseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	val := chi.URLParam(r, key)
	return uuid.Parse(val)
}

func urlParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}
