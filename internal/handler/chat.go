// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flightwise-ai/travel-assistant/internal/middleware"
	"github.com/flightwise-ai/travel-assistant/internal/model"
	"github.com/flightwise-ai/travel-assistant/internal/service"
	"github.com/flightwise-ai/travel-assistant/pkg/logger"
)

// ChatHandler handles chat endpoints.
type ChatHandler struct {
	service *service.ChatService
	logger  *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(svc *service.ChatService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		service: svc,
		logger:  log,
	}
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateMessage(req.Message); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateSessionID(req.SessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The pipeline never fails outward; failures surface as an apology reply
	// tagged with the error intent.
	resp := h.service.HandleMessage(r.Context(), req.SessionID, req.Message)
	writeJSON(w, http.StatusOK, resp)
}

// History handles GET /api/chat/sessions/{id}/history
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if err := middleware.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, &model.HistoryResponse{
		SessionID: sessionID,
		Turns:     h.service.History(sessionID),
	})
}

// DeleteSession handles DELETE /api/chat/sessions/{id}
func (h *ChatHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if err := middleware.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Clearing an unknown session is a no-op, not an error.
	h.service.ClearSession(sessionID)
	w.WriteHeader(http.StatusNoContent)
}
