// Package model defines data structures for the travel assistant.
package model

import (
	"time"
)

// Role represents the role of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message exchange unit within a session. Immutable once created.
type Turn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatRequest is the inbound chat message.
type ChatRequest struct {
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message"`
}

// ChatResponse is the assistant reply for one chat turn.
type ChatResponse struct {
	SessionID      string `json:"sessionId"`
	Response       string `json:"response"`
	Intent         string `json:"intent"`
	IsFlightSearch bool   `json:"isFlightSearch"`
}

// HistoryResponse is the stored turn list of a session.
type HistoryResponse struct {
	SessionID string `json:"sessionId"`
	Turns     []Turn `json:"turns"`
}

// PromptRequest is a raw completion request.
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// PromptResponse carries a raw completion.
type PromptResponse struct {
	ResponseText string `json:"responseText"`
}
