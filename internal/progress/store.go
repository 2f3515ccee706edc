package progress

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/njia-ai/njia-bot/internal/content"
)

// ErrSessionNotFound is returned by stores for unknown session ids.
var ErrSessionNotFound = errors.New("session not found")

// AnswerRecord is the recorded result of one answered quest. Repeating an
// answer for the same quest id is a no-op that returns this record.
type AnswerRecord struct {
	QuestID     string    `json:"quest_id"`
	ChosenIndex int       `json:"chosen_index"`
	Outcome     Outcome   `json:"outcome"`
	Points      int       `json:"points"`
	NewBadges   []Badge   `json:"new_badges,omitempty"`
	AnsweredAt  time.Time `json:"answered_at"`
}

// Session is one learner's in-memory gamification session.
type Session struct {
	ID        string                   `json:"id"`
	Progress  Progress                 `json:"progress"`
	Quests    map[string]content.Quest `json:"quests"`  // pending, keyed by quest id
	Answers   map[string]AnswerRecord  `json:"answers"` // answered, keyed by quest id
	StartedAt time.Time                `json:"started_at"`
	EndedAt   *time.Time               `json:"ended_at,omitempty"`
}

// clone copies the session with fresh map headers so callers can mutate
// the copy without touching the original.
func (s Session) clone() Session {
	next := s
	next.Progress = s.Progress.clone()
	next.Quests = make(map[string]content.Quest, len(s.Quests))
	for id, q := range s.Quests {
		next.Quests[id] = q
	}
	next.Answers = make(map[string]AnswerRecord, len(s.Answers))
	for id, rec := range s.Answers {
		next.Answers[id] = rec
	}
	return next
}

// SessionStore persists session state. Sessions have one logical caller;
// store-level locking exists only to be safe under HTTP concurrency.
type SessionStore interface {
	CreateSession(sess Session) (string, error)
	GetSession(id string) (*Session, error)
	// UpdateSession applies mutate to the stored session atomically.
	UpdateSession(id string, mutate func(*Session) error) (*Session, error)
	EndSession(id string) error
	ListSessions() ([]Session, error)
}

// MemoryStore is the default, in-memory SessionStore.
type MemoryStore struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

func (s *MemoryStore) CreateSession(sess Session) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := NewID()
	sess.ID = id
	sess.StartedAt = time.Now()
	if sess.Quests == nil {
		sess.Quests = make(map[string]content.Quest)
	}
	if sess.Answers == nil {
		sess.Answers = make(map[string]AnswerRecord)
	}
	s.sessions[id] = &sess
	return id, nil
}

func (s *MemoryStore) GetSession(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	snapshot := sess.clone()
	return &snapshot, nil
}

func (s *MemoryStore) UpdateSession(id string, mutate func(*Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	// Mutate a deep copy so a failed mutate leaves the stored session
	// untouched, maps included.
	next := sess.clone()
	if err := mutate(&next); err != nil {
		return nil, err
	}
	s.sessions[id] = &next
	result := next.clone()
	return &result, nil
}

func (s *MemoryStore) EndSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	now := time.Now()
	sess.EndedAt = &now
	return nil
}

func (s *MemoryStore) ListSessions() ([]Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess.clone())
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.Before(sessions[j].StartedAt)
	})
	return sessions, nil
}

// NewID returns a random hex identifier for sessions and quest instances.
func NewID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return fmt.Sprintf("%x", b)
}
