package ai

import (
	"fmt"
	"sync"
)

// UsageTracker records token usage per learner session so it can be
// reported, e.g. in the progress export.
type UsageTracker interface {
	// Record adds token usage for a session.
	Record(sessionID string, tokens int) error
	// Usage returns the tokens used so far by a session.
	Usage(sessionID string) int64
}

// InMemoryUsage is a simple in-memory usage tracker.
type InMemoryUsage struct {
	mu    sync.RWMutex
	usage map[string]int64
}

// NewInMemoryUsage creates a new in-memory usage tracker.
func NewInMemoryUsage() *InMemoryUsage {
	return &InMemoryUsage{
		usage: make(map[string]int64),
	}
}

func (u *InMemoryUsage) Record(sessionID string, tokens int) error {
	if tokens < 0 {
		return fmt.Errorf("tokens must be non-negative, got %d", tokens)
	}

	u.mu.Lock()
	u.usage[sessionID] += int64(tokens)
	u.mu.Unlock()
	return nil
}

func (u *InMemoryUsage) Usage(sessionID string) int64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.usage[sessionID]
}
