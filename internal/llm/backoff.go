package llm

import (
	"time"
)

// linearBackOff waits attempt × unit between retries, matching the provider
// guidance of spacing retries further apart on consecutive failures.
type linearBackOff struct {
	unit    time.Duration
	attempt int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return time.Duration(b.attempt) * b.unit
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}
