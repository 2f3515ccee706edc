package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/njia-ai/njia-bot/internal/content"
)

const (
	redisKeyPrefix = "njia:session:"
	redisTimeout   = 3 * time.Second
	// Sessions are ephemeral; abandoned ones expire on their own.
	sessionTTL = 24 * time.Hour
)

// RedisStore is a Redis-backed SessionStore, for deployments where the
// API runs on more than one instance.
type RedisStore struct {
	client *redis.Client
	// Serializes read-modify-write cycles within this process. Each
	// session has a single logical caller.
	mu sync.Mutex
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("client is nil")
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) CreateSession(sess Session) (string, error) {
	sess.ID = NewID()
	sess.StartedAt = time.Now()
	if sess.Quests == nil {
		sess.Quests = make(map[string]content.Quest)
	}
	if sess.Answers == nil {
		sess.Answers = make(map[string]AnswerRecord)
	}
	if err := s.put(sess); err != nil {
		return "", err
	}
	return sess.ID, nil
}

func (s *RedisStore) GetSession(id string) (*Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) UpdateSession(id string, mutate func(*Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}
	if err := mutate(sess); err != nil {
		return nil, err
	}
	if err := s.put(*sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *RedisStore) EndSession(id string) error {
	now := time.Now()
	_, err := s.UpdateSession(id, func(sess *Session) error {
		sess.EndedAt = &now
		return nil
	})
	return err
}

func (s *RedisStore) ListSessions() ([]Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	var sessions []Session
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue // expired between scan and get
		}
		if err != nil {
			return nil, fmt.Errorf("get session: %w", err)
		}
		var sess Session
		if err := json.Unmarshal(data, &sess); err != nil {
			return nil, fmt.Errorf("unmarshal session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan sessions: %w", err)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.Before(sessions[j].StartedAt)
	})
	return sessions, nil
}

func (s *RedisStore) put(sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := s.client.Set(ctx, redisKeyPrefix+sess.ID, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}
