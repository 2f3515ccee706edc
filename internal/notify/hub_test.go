package notify_test

import (
	"testing"
	"time"

	"github.com/njia-ai/njia-bot/internal/notify"
)

func TestHub_PublishDeliversToSubscriber(t *testing.T) {
	hub := notify.NewHub()
	updates, cancel := hub.Subscribe("sess-1")
	defer cancel()

	hub.Publish(notify.Update{
		SessionID: "sess-1",
		Type:      notify.UpdateAnswerResult,
		Data:      map[string]any{"outcome": "correct"},
	})

	select {
	case update := <-updates:
		if update.Type != notify.UpdateAnswerResult {
			t.Errorf("Type = %q, want answer_result", update.Type)
		}
		if update.SentAt.IsZero() {
			t.Error("SentAt should be set")
		}
	case <-time.After(time.Second):
		t.Fatal("no update delivered")
	}
}

func TestHub_SessionsAreIsolated(t *testing.T) {
	hub := notify.NewHub()
	updates, cancel := hub.Subscribe("sess-1")
	defer cancel()

	hub.Publish(notify.Update{SessionID: "sess-2", Type: notify.UpdateQuestIssued})

	select {
	case update := <-updates:
		t.Fatalf("received update for wrong session: %+v", update)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_CancelRemovesSubscriber(t *testing.T) {
	hub := notify.NewHub()
	_, cancel := hub.Subscribe("sess-1")

	if got := hub.Subscribers("sess-1"); got != 1 {
		t.Fatalf("Subscribers() = %d, want 1", got)
	}
	cancel()
	if got := hub.Subscribers("sess-1"); got != 0 {
		t.Errorf("Subscribers() after cancel = %d, want 0", got)
	}
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := notify.NewHub()
	_, cancel := hub.Subscribe("sess-1")
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		// More than the buffer can hold; nobody is reading.
		for i := 0; i < 100; i++ {
			hub.Publish(notify.Update{SessionID: "sess-1", Type: notify.UpdateQuestIssued})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}

func TestHub_MultipleSubscribers(t *testing.T) {
	hub := notify.NewHub()
	first, cancelFirst := hub.Subscribe("sess-1")
	defer cancelFirst()
	second, cancelSecond := hub.Subscribe("sess-1")
	defer cancelSecond()

	hub.Publish(notify.Update{SessionID: "sess-1", Type: notify.UpdateBadgeUnlocked})

	for i, ch := range []<-chan notify.Update{first, second} {
		select {
		case update := <-ch:
			if update.Type != notify.UpdateBadgeUnlocked {
				t.Errorf("subscriber %d: Type = %q, want badge_unlocked", i, update.Type)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d received nothing", i)
		}
	}
}
