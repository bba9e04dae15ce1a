package httpapi

import (
	"net/http"

	"github.com/guild-hub/guild-hub/internal/domain/member"
)

type registerMemberRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) registerMember(w http.ResponseWriter, r *http.Request) {
	var req registerMemberRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	m, err := s.memberSvc.Register(r.Context(), req.UserID, req.Username)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, m)
}

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	members, err := s.memberSvc.List(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if members == nil {
		members = []*member.Member{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}

func (s *Server) getMember(w http.ResponseWriter, r *http.Request) {
	userID := urlParam(r, "userId")
	m, err := s.memberSvc.Get(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if m == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "member not found")
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (s *Server) updateMemberStatus(w http.ResponseWriter, r *http.Request) {
	userID := urlParam(r, "userId")
	var req updateStatusRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if err := s.memberSvc.UpdateStatus(r.Context(), userID, member.Status(req.Status)); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"userId": userID, "status": req.Status})
}
