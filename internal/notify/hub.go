// Package notify fans out session progress updates to connected clients.
package notify

import (
	"log/slog"
	"sync"
	"time"
)

// Update types pushed to subscribers.
const (
	UpdateQuestIssued   = "quest_issued"
	UpdateAnswerResult  = "answer_result"
	UpdateBadgeUnlocked = "badge_unlocked"
	UpdateSessionEnded  = "session_ended"
)

// Update is a progress notification for one session.
type Update struct {
	SessionID string         `json:"session_id"`
	Type      string         `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
	SentAt    time.Time      `json:"sent_at"`
}

// subscriberBuffer bounds the per-subscriber queue. A subscriber that
// falls this far behind starts losing updates.
const subscriberBuffer = 16

// Hub routes updates to subscribers keyed by session id.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan Update]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[chan Update]struct{}),
	}
}

// Subscribe registers interest in one session's updates. The returned
// cancel function must be called to release the subscription.
func (h *Hub) Subscribe(sessionID string) (<-chan Update, func()) {
	ch := make(chan Update, subscriberBuffer)

	h.mu.Lock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[chan Update]struct{})
	}
	h.subs[sessionID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[sessionID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, sessionID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish sends an update to every subscriber of its session. Slow
// subscribers are skipped rather than blocking the caller.
func (h *Hub) Publish(update Update) {
	if update.SentAt.IsZero() {
		update.SentAt = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[update.SessionID] {
		select {
		case ch <- update:
		default:
			slog.Warn("dropping update for slow subscriber",
				"session_id", update.SessionID,
				"type", update.Type,
			)
		}
	}
}

// Subscribers reports how many clients watch the given session.
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[sessionID])
}
