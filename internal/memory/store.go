// Package memory provides the in-process conversation store.
package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/flightwise-ai/travel-assistant/internal/model"
	"github.com/flightwise-ai/travel-assistant/pkg/metrics"
)

// Store holds ordered conversation turns per session. Implementations must be
// safe for concurrent use. Data is process-lifetime only; a persistent backing
// store can be swapped in behind this interface without touching the
// orchestrator.
type Store interface {
	// Append adds a turn to the session, creating the session if needed.
	Append(sessionID string, role model.Role, text string)

	// History returns a copy of all turns of the session in insertion order.
	History(sessionID string) []model.Turn

	// Formatted returns the last max turns as "role: text" lines joined by
	// newline. Empty string if the session has no turns.
	Formatted(sessionID string, max int) string

	// Clear removes the session's history. Unknown sessions are a no-op.
	Clear(sessionID string)
}

// InMemory is a mutex-guarded map-backed Store.
type InMemory struct {
	mu       sync.RWMutex
	sessions map[string][]model.Turn
	now      func() time.Time
}

// NewInMemory creates an empty in-memory store.
func NewInMemory() *InMemory {
	return &InMemory{
		sessions: make(map[string][]model.Turn),
		now:      time.Now,
	}
}

// Append adds a turn to the session.
func (s *InMemory) Append(sessionID string, role model.Role, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sessionID]; !exists {
		metrics.SessionsActive.Inc()
	}

	s.sessions[sessionID] = append(s.sessions[sessionID], model.Turn{
		Role:      role,
		Text:      text,
		Timestamp: s.now().UTC(),
	})
}

// History returns a copy of the session's turns.
func (s *InMemory) History(sessionID string) []model.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.sessions[sessionID]
	out := make([]model.Turn, len(turns))
	copy(out, turns)
	return out
}

// Formatted returns the last max turns as "role: text" lines.
func (s *InMemory) Formatted(sessionID string, max int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.sessions[sessionID]
	if len(turns) == 0 {
		return ""
	}
	if max > 0 && len(turns) > max {
		turns = turns[len(turns)-max:]
	}

	lines := make([]string, len(turns))
	for i, t := range turns {
		lines[i] = string(t.Role) + ": " + t.Text
	}
	return strings.Join(lines, "\n")
}

// Clear removes the session's history.
func (s *InMemory) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sessionID]; exists {
		delete(s.sessions, sessionID)
		metrics.SessionsActive.Dec()
	}
}
