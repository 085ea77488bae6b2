package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/custodia-labs/converse-core/internal/core/domain"
)

// Action names accepted by the actions endpoint. These mirror the custom
// actions the dialogue engine dispatches to this server.
const (
	ActionAnswer  = "action_rag_response"
	ActionBooking = "action_booking_request"
	ActionPricing = "action_pricing_inquiry"
	ActionUrgent  = "action_urgent_support"
)

// ActionRequest is the payload posted by the bot connector for each
// dispatched custom action.
type ActionRequest struct {
	Action    string `json:"action"`
	SenderID  string `json:"sender_id"`
	Text      string `json:"text,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"` // unix seconds; defaults to now
}

// ActionResponse carries the reply text back to the connector
type ActionResponse struct {
	Reply string `json:"reply"`
}

// Health endpoints

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Action endpoint

// handleAction dispatches a connector action to the assistant service.
// Unknown actions are a client error; everything else always produces a
// reply because the assistant never fails.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SenderID == "" {
		writeError(w, http.StatusBadRequest, "sender_id is required")
		return
	}

	now := time.Now()
	if req.Timestamp > 0 {
		now = time.Unix(req.Timestamp, 0)
	}

	var reply string
	switch req.Action {
	case ActionAnswer:
		reply = s.assistantService.Handle(r.Context(), req.SenderID, req.Text, now)
	case ActionBooking:
		reply = s.assistantService.HandleBooking(r.Context(), req.SenderID, now)
	case ActionPricing:
		reply = s.assistantService.HandlePricing(r.Context(), req.SenderID)
	case ActionUrgent:
		reply = s.assistantService.HandleUrgent(r.Context(), req.SenderID, req.Text, now)
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
		return
	}

	writeJSON(w, http.StatusOK, ActionResponse{Reply: reply})
}

// Auth endpoints

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Authenticate(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "authentication failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Admin endpoints

// setMappingRequest is the payload for mapping a sender to a tenant
type setMappingRequest struct {
	Tenant string `json:"tenant"`
}

func (s *Server) handleSetSenderMapping(w http.ResponseWriter, r *http.Request) {
	senderID := r.PathValue("id")

	var req setMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.adminService.SetMapping(r.Context(), senderID, req.Tenant); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to set mapping")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDeleteSenderMapping(w http.ResponseWriter, r *http.Request) {
	senderID := r.PathValue("id")

	if err := s.adminService.DeleteMapping(r.Context(), senderID); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete mapping")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// appendKnowledgeRequest is the payload for adding knowledge units
type appendKnowledgeRequest struct {
	Units []domain.TextUnit `json:"units"`
}

func (s *Server) handleAppendKnowledge(w http.ResponseWriter, r *http.Request) {
	tenant := r.PathValue("tenant")

	var req appendKnowledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.adminService.AppendKnowledge(r.Context(), tenant, req.Units); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to append knowledge")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"added": len(req.Units)})
}

// aiStatusResponse reports runtime AI capability
type aiStatusResponse struct {
	EmbeddingAvailable bool   `json:"embedding_available"`
	LLMAvailable       bool   `json:"llm_available"`
	CanAnswer          bool   `json:"can_answer"`
	RecordBackend      string `json:"record_backend"`
}

func (s *Server) handleAIStatus(w http.ResponseWriter, r *http.Request) {
	cfg := s.adminService.AIStatus(r.Context())

	writeJSON(w, http.StatusOK, aiStatusResponse{
		EmbeddingAvailable: cfg.EmbeddingAvailable(),
		LLMAvailable:       cfg.LLMAvailable(),
		CanAnswer:          cfg.CanAnswer(),
		RecordBackend:      cfg.RecordBackend,
	})
}

// Helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
