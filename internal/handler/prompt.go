package handler

import (
	"encoding/json"
	"net/http"

	"github.com/flightwise-ai/travel-assistant/internal/llm"
	"github.com/flightwise-ai/travel-assistant/internal/middleware"
	"github.com/flightwise-ai/travel-assistant/internal/model"
	"github.com/flightwise-ai/travel-assistant/pkg/logger"
)

// PromptHandler exposes raw completions, bypassing the chat pipeline.
type PromptHandler struct {
	llm    llm.Client
	logger *logger.Logger
}

// NewPromptHandler creates a new prompt handler.
func NewPromptHandler(llmClient llm.Client, log *logger.Logger) *PromptHandler {
	return &PromptHandler{
		llm:    llmClient,
		logger: log,
	}
}

// Ask handles POST /api/prompt
func (h *PromptHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req model.PromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidatePrompt(req.Prompt); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	text, err := h.llm.Complete(r.Context(), req.Prompt, llm.Options{
		MaxOutputTokens: 800,
		Temperature:     0.7,
	})
	if err != nil {
		h.logger.Error("completion failed")
		writeError(w, http.StatusBadGateway, "completion failed")
		return
	}

	writeJSON(w, http.StatusOK, &model.PromptResponse{ResponseText: text})
}
