package memory

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightwise-ai/travel-assistant/internal/model"
)

func TestAppendAndHistory(t *testing.T) {
	store := NewInMemory()

	for i := 0; i < 5; i++ {
		store.Append("s1", model.RoleUser, fmt.Sprintf("message %d", i))
	}

	history := store.History("s1")
	require.Len(t, history, 5)

	// Insertion order is preserved.
	for i, turn := range history {
		assert.Equal(t, fmt.Sprintf("message %d", i), turn.Text)
		assert.Equal(t, model.RoleUser, turn.Role)
		assert.False(t, turn.Timestamp.IsZero())
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	store := NewInMemory()
	store.Append("s1", model.RoleUser, "original")

	history := store.History("s1")
	history[0].Text = "mutated"

	assert.Equal(t, "original", store.History("s1")[0].Text)
}

func TestFormatted(t *testing.T) {
	store := NewInMemory()

	assert.Equal(t, "", store.Formatted("empty", 10))

	store.Append("s1", model.RoleUser, "hola")
	store.Append("s1", model.RoleAssistant, "¡Hola! ¿En qué puedo ayudarte?")

	got := store.Formatted("s1", 10)
	assert.Equal(t, "user: hola\nassistant: ¡Hola! ¿En qué puedo ayudarte?", got)
}

func TestFormattedCapsAtMaxDroppingOldest(t *testing.T) {
	store := NewInMemory()

	for i := 0; i < 15; i++ {
		store.Append("s1", model.RoleUser, fmt.Sprintf("m%d", i))
	}

	got := store.Formatted("s1", 10)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "user: m5", lines[0])
	assert.Equal(t, "user: m14", lines[9])
}

func TestClear(t *testing.T) {
	store := NewInMemory()
	store.Append("s1", model.RoleUser, "hola")

	store.Clear("s1")
	assert.Empty(t, store.History("s1"))

	// Clearing an unknown session is a no-op.
	store.Clear("never-existed")
}

func TestConcurrentSessions(t *testing.T) {
	store := NewInMemory()

	var wg sync.WaitGroup
	for s := 0; s < 8; s++ {
		sessionID := fmt.Sprintf("s%d", s)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				store.Append(sessionID, model.RoleUser, fmt.Sprintf("m%d", i))
			}
		}()
	}
	wg.Wait()

	for s := 0; s < 8; s++ {
		assert.Len(t, store.History(fmt.Sprintf("s%d", s)), 20)
	}
}
