package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/njia-ai/njia-bot/internal/content"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed SessionStore. Session state lives as
// a jsonb document in the sessions table; see Migrate for the schema.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed session store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

// Migrate creates the sessions table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
		    id         text PRIMARY KEY,
		    state      jsonb NOT NULL,
		    started_at timestamptz NOT NULL,
		    ended_at   timestamptz
		)`)
	if err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateSession(sess Session) (string, error) {
	sess.ID = NewID()
	sess.StartedAt = time.Now()
	if sess.Quests == nil {
		sess.Quests = make(map[string]content.Quest)
	}
	if sess.Answers == nil {
		sess.Answers = make(map[string]AnswerRecord)
	}

	state, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	_, err = s.pool.Exec(ctx,
		`INSERT INTO sessions (id, state, started_at) VALUES ($1, $2::jsonb, $3)`,
		sess.ID, string(state), sess.StartedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return sess.ID, nil
}

func (s *PostgresStore) GetSession(id string) (*Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	var state []byte
	err := s.pool.QueryRow(ctx,
		`SELECT state FROM sessions WHERE id = $1`, id,
	).Scan(&state)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("select session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(state, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

func (s *PostgresStore) UpdateSession(id string, mutate func(*Session) error) (*Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var state []byte
	err = tx.QueryRow(ctx,
		`SELECT state FROM sessions WHERE id = $1 FOR UPDATE`, id,
	).Scan(&state)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("select session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(state, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	if err := mutate(&sess); err != nil {
		return nil, err
	}

	updated, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE sessions SET state = $2::jsonb, ended_at = $3 WHERE id = $1`,
		id, string(updated), sess.EndedAt,
	); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &sess, nil
}

func (s *PostgresStore) EndSession(id string) error {
	now := time.Now()
	_, err := s.UpdateSession(id, func(sess *Session) error {
		sess.EndedAt = &now
		return nil
	})
	return err
}

func (s *PostgresStore) ListSessions() ([]Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT state FROM sessions ORDER BY started_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("select sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var state []byte
		if err := rows.Scan(&state); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		var sess Session
		if err := json.Unmarshal(state, &sess); err != nil {
			return nil, fmt.Errorf("unmarshal session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}
