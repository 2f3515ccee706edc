package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/njia-ai/njia-bot/internal/analytics"
	"github.com/njia-ai/njia-bot/internal/export"
	"github.com/njia-ai/njia-bot/internal/notify"
	"github.com/njia-ai/njia-bot/internal/progress"
)

// errUnknownQuest marks an answer for a quest id the session never saw.
var errUnknownQuest = errors.New("quest not found")

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.store.CreateSession(progress.Session{
		Progress: s.engine.NewProgress(),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}

	sess, err := s.store.GetSession(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}

	_ = s.events.LogEvent(analytics.Event{
		SessionID: id,
		EventType: analytics.EventSessionStarted,
	})

	writeJSON(w, http.StatusCreated, struct {
		SessionID string            `json:"session_id"`
		Progress  progress.Progress `json:"progress"`
	}{SessionID: id, Progress: sess.Progress})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.GetSession(r.PathValue("id"))
	if errors.Is(err, progress.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, err.Error(), "")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}
	writeJSON(w, http.StatusOK, sess.Progress)
}

// answerResponse is what the client renders after answering.
type answerResponse struct {
	Outcome      string            `json:"outcome"`
	CorrectIndex int               `json:"correct_index"`
	Explanation  string            `json:"explanation"`
	Points       int               `json:"points"`
	NewBadges    []progress.Badge  `json:"new_badges,omitempty"`
	Progress     progress.Progress `json:"progress"`
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	var req struct {
		QuestID     string `json:"quest_id"`
		ChosenIndex int    `json:"chosen_index"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "invalid_input")
		return
	}
	if req.QuestID == "" {
		writeError(w, http.StatusBadRequest, "quest_id is required", "invalid_input")
		return
	}

	var (
		record   progress.AnswerRecord
		quest    questAnswered
		replayed bool
	)
	sess, err := s.store.UpdateSession(sessionID, func(sess *progress.Session) error {
		// Answering the same quest again returns the recorded result
		// without touching state.
		if prev, ok := sess.Answers[req.QuestID]; ok {
			record = prev
			q := sess.Quests[req.QuestID]
			quest = questAnswered{correctIndex: q.CorrectIndex, explanation: q.Explanation}
			replayed = true
			return nil
		}

		q, ok := sess.Quests[req.QuestID]
		if !ok {
			return errUnknownQuest
		}

		before := sess.Progress
		next, outcome := s.engine.Apply(before, q, req.ChosenIndex)

		var newBadges []progress.Badge
		for _, b := range next.Badges {
			if !before.HasBadge(b.ID) {
				newBadges = append(newBadges, b)
			}
		}

		points := 0
		if outcome == progress.OutcomeCorrect {
			points = q.Points
		}

		record = progress.AnswerRecord{
			QuestID:     req.QuestID,
			ChosenIndex: req.ChosenIndex,
			Outcome:     outcome,
			Points:      points,
			NewBadges:   newBadges,
			AnsweredAt:  time.Now(),
		}
		sess.Progress = next
		sess.Answers[req.QuestID] = record
		quest = questAnswered{correctIndex: q.CorrectIndex, explanation: q.Explanation}
		return nil
	})
	if errors.Is(err, progress.ErrSessionNotFound) || errors.Is(err, errUnknownQuest) {
		writeError(w, http.StatusNotFound, err.Error(), "")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}

	if !replayed {
		s.publishAnswer(sessionID, record)
	}

	writeJSON(w, http.StatusOK, answerResponse{
		Outcome:      record.Outcome.String(),
		CorrectIndex: quest.correctIndex,
		Explanation:  quest.explanation,
		Points:       record.Points,
		NewBadges:    record.NewBadges,
		Progress:     sess.Progress,
	})
}

type questAnswered struct {
	correctIndex int
	explanation  string
}

func (s *Server) publishAnswer(sessionID string, record progress.AnswerRecord) {
	_ = s.events.LogEvent(analytics.Event{
		SessionID: sessionID,
		EventType: analytics.EventAnswerSubmitted,
		Data: map[string]any{
			"quest_id": record.QuestID,
			"outcome":  record.Outcome.String(),
			"points":   record.Points,
		},
	})
	s.hub.Publish(notify.Update{
		SessionID: sessionID,
		Type:      notify.UpdateAnswerResult,
		Data: map[string]any{
			"quest_id": record.QuestID,
			"outcome":  record.Outcome.String(),
			"points":   record.Points,
		},
	})

	for _, badge := range record.NewBadges {
		_ = s.events.LogEvent(analytics.Event{
			SessionID: sessionID,
			EventType: analytics.EventBadgeUnlocked,
			Data:      map[string]any{"badge": badge.ID},
		})
		s.hub.Publish(notify.Update{
			SessionID: sessionID,
			Type:      notify.UpdateBadgeUnlocked,
			Data: map[string]any{
				"badge": badge.ID,
				"name":  badge.Name,
				"icon":  badge.Icon,
			},
		})
	}
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	if err := s.store.EndSession(sessionID); err != nil {
		if errors.Is(err, progress.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}

	_ = s.events.LogEvent(analytics.Event{
		SessionID: sessionID,
		EventType: analytics.EventSessionEnded,
	})
	s.hub.Publish(notify.Update{
		SessionID: sessionID,
		Type:      notify.UpdateSessionEnded,
	})

	writeJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	if _, err := s.store.GetSession(sessionID); err != nil {
		if errors.Is(err, progress.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}

	notify.ServeSession(w, r, s.hub, sessionID)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.ListSessions()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="progress.xlsx"`)
	if err := export.WriteProgress(w, sessions, s.usage); err != nil {
		// Headers are already out; all we can do is log.
		slog.Error("writing progress export", "error", err)
	}
}
