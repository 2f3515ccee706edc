package progress_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/njia-ai/njia-bot/internal/progress"
)

// startPostgres spins up a throwaway PostgreSQL container and returns a
// connected pool with the sessions table in place.
func startPostgres(t *testing.T) *progress.PostgresStore {
	t.Helper()

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("njia"),
		tcpostgres.WithUsername("njia"),
		tcpostgres.WithPassword("njia"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	store, err := progress.NewPostgresStore(pool)
	if err != nil {
		t.Fatalf("NewPostgresStore: %v", err)
	}
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return store
}

func TestPostgresStore_Lifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	store := startPostgres(t)
	engine := progress.NewEngine(nil)

	id, err := store.CreateSession(progress.Session{Progress: engine.NewProgress()})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	sess, err := store.GetSession(id)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess.Progress.Score != 120 {
		t.Errorf("stored score = %d, want 120", sess.Progress.Score)
	}
	if len(sess.Progress.Badges) != 1 || sess.Progress.Badges[0].ID != progress.BadgeExplorer {
		t.Errorf("stored badges = %v, want [explorer]", sess.Progress.Badges)
	}

	updated, err := store.UpdateSession(id, func(s *progress.Session) error {
		next, _ := engine.Apply(s.Progress, mathQuest(20), 1)
		s.Progress = next
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}
	if updated.Progress.Score != 140 {
		t.Errorf("updated score = %d, want 140", updated.Progress.Score)
	}

	sess, err = store.GetSession(id)
	if err != nil {
		t.Fatalf("GetSession after update: %v", err)
	}
	if sess.Progress.Score != 140 {
		t.Errorf("persisted score = %d, want 140", sess.Progress.Score)
	}
	if sess.Progress.Mastery["Math"] != 1 {
		t.Errorf("persisted Math mastery = %d, want 1", sess.Progress.Mastery["Math"])
	}

	if err := store.EndSession(id); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	sess, _ = store.GetSession(id)
	if sess.EndedAt == nil {
		t.Error("EndedAt not set after EndSession")
	}

	sessions, err := store.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("ListSessions returned %d sessions, want 1", len(sessions))
	}
}

func TestPostgresStore_GetUnknown(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	store := startPostgres(t)
	if _, err := store.GetSession("nope"); err == nil {
		t.Error("expected error for unknown session")
	}
}
