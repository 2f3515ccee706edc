package progress_test

import (
	"errors"
	"testing"

	"github.com/njia-ai/njia-bot/internal/content"
	"github.com/njia-ai/njia-bot/internal/progress"
)

func TestMemoryStore_CreateAndGet(t *testing.T) {
	store := progress.NewMemoryStore()
	engine := progress.NewEngine(nil)

	id, err := store.CreateSession(progress.Session{Progress: engine.NewProgress()})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if id == "" {
		t.Fatal("CreateSession returned empty id")
	}

	sess, err := store.GetSession(id)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess.ID != id {
		t.Errorf("session id = %q, want %q", sess.ID, id)
	}
	if sess.Progress.Score != 120 {
		t.Errorf("stored score = %d, want 120", sess.Progress.Score)
	}
	if sess.StartedAt.IsZero() {
		t.Error("StartedAt not set")
	}
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	store := progress.NewMemoryStore()
	if _, err := store.GetSession("nope"); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestMemoryStore_Update(t *testing.T) {
	store := progress.NewMemoryStore()
	engine := progress.NewEngine(nil)
	id, _ := store.CreateSession(progress.Session{Progress: engine.NewProgress()})

	updated, err := store.UpdateSession(id, func(s *progress.Session) error {
		s.Progress.Score += 50
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}
	if updated.Progress.Score != 170 {
		t.Errorf("updated score = %d, want 170", updated.Progress.Score)
	}

	sess, _ := store.GetSession(id)
	if sess.Progress.Score != 170 {
		t.Errorf("persisted score = %d, want 170", sess.Progress.Score)
	}
}

func TestMemoryStore_UpdateMutateError(t *testing.T) {
	store := progress.NewMemoryStore()
	engine := progress.NewEngine(nil)
	id, _ := store.CreateSession(progress.Session{Progress: engine.NewProgress()})

	boom := errors.New("boom")
	if _, err := store.UpdateSession(id, func(s *progress.Session) error {
		s.Progress.Score = 0
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("UpdateSession error = %v, want boom", err)
	}

	sess, _ := store.GetSession(id)
	if sess.Progress.Score != 120 {
		t.Errorf("score after failed update = %d, want 120", sess.Progress.Score)
	}
}

func TestMemoryStore_UpdateMutateErrorLeavesMapsUntouched(t *testing.T) {
	store := progress.NewMemoryStore()
	engine := progress.NewEngine(nil)
	id, _ := store.CreateSession(progress.Session{Progress: engine.NewProgress()})

	boom := errors.New("boom")
	if _, err := store.UpdateSession(id, func(s *progress.Session) error {
		s.Quests["q1"] = content.Quest{Subject: "Math"}
		s.Answers["q1"] = progress.AnswerRecord{QuestID: "q1"}
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("UpdateSession error = %v, want boom", err)
	}

	sess, _ := store.GetSession(id)
	if len(sess.Quests) != 0 {
		t.Errorf("len(Quests) after failed update = %d, want 0", len(sess.Quests))
	}
	if len(sess.Answers) != 0 {
		t.Errorf("len(Answers) after failed update = %d, want 0", len(sess.Answers))
	}
}

func TestMemoryStore_SnapshotsAreIsolated(t *testing.T) {
	store := progress.NewMemoryStore()
	engine := progress.NewEngine(nil)
	id, _ := store.CreateSession(progress.Session{Progress: engine.NewProgress()})

	snap, _ := store.GetSession(id)
	snap.Quests["q1"] = content.Quest{Subject: "Math"}

	list, _ := store.ListSessions()
	list[0].Answers["q1"] = progress.AnswerRecord{QuestID: "q1"}

	sess, _ := store.GetSession(id)
	if len(sess.Quests) != 0 {
		t.Errorf("stored Quests gained %d entries from a snapshot write", len(sess.Quests))
	}
	if len(sess.Answers) != 0 {
		t.Errorf("stored Answers gained %d entries from a snapshot write", len(sess.Answers))
	}
}

func TestMemoryStore_End(t *testing.T) {
	store := progress.NewMemoryStore()
	engine := progress.NewEngine(nil)
	id, _ := store.CreateSession(progress.Session{Progress: engine.NewProgress()})

	if err := store.EndSession(id); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	sess, _ := store.GetSession(id)
	if sess.EndedAt == nil {
		t.Error("EndedAt not set after EndSession")
	}
}

func TestMemoryStore_List(t *testing.T) {
	store := progress.NewMemoryStore()
	engine := progress.NewEngine(nil)

	for i := 0; i < 3; i++ {
		if _, err := store.CreateSession(progress.Session{Progress: engine.NewProgress()}); err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
	}

	sessions, err := store.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Errorf("ListSessions returned %d sessions, want 3", len(sessions))
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := progress.NewID()
		if len(id) != 32 {
			t.Fatalf("id %q has length %d, want 32", id, len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
