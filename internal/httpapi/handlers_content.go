package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/njia-ai/njia-bot/internal/analytics"
	"github.com/njia-ai/njia-bot/internal/content"
	"github.com/njia-ai/njia-bot/internal/notify"
	"github.com/njia-ai/njia-bot/internal/progress"
)

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Interest  string `json:"interest"`
		SessionID string `json:"session_id"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "invalid_input")
		return
	}

	ctx := requestContext(r, req.SessionID)
	activity, err := s.gen.Activity(ctx, req.Interest)
	if err != nil {
		writeContentError(w, err)
		return
	}

	s.logGenerated(req.SessionID, "activity")
	writeJSON(w, http.StatusOK, activity)
}

func (s *Server) handleQuest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subject   string `json:"subject"`
		SessionID string `json:"session_id"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "invalid_input")
		return
	}

	ctx := requestContext(r, req.SessionID)
	quest, err := s.gen.Quest(ctx, req.Subject)
	if err != nil {
		writeContentError(w, err)
		return
	}

	resp := struct {
		QuestID string         `json:"quest_id,omitempty"`
		Quest   *content.Quest `json:"quest"`
	}{Quest: quest}

	// With a session the quest is held pending so the answer endpoint
	// can score it later.
	if req.SessionID != "" {
		questID := progress.NewID()
		_, err := s.store.UpdateSession(req.SessionID, func(sess *progress.Session) error {
			sess.Quests[questID] = *quest
			return nil
		})
		if errors.Is(err, progress.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error(), "")
			return
		}
		resp.QuestID = questID

		s.hub.Publish(notify.Update{
			SessionID: req.SessionID,
			Type:      notify.UpdateQuestIssued,
			Data: map[string]any{
				"quest_id": questID,
				"subject":  quest.Subject,
			},
		})
	}

	s.logGenerated(req.SessionID, "quest")
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePathways(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Interests string `json:"interests"`
		Strengths string `json:"strengths"`
		SessionID string `json:"session_id"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "invalid_input")
		return
	}

	ctx := requestContext(r, req.SessionID)
	recs, err := s.gen.PathwayAdvice(ctx, req.Interests, req.Strengths)
	if err != nil {
		writeContentError(w, err)
		return
	}

	s.logGenerated(req.SessionID, "pathway")
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleCareers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subjects  string `json:"subjects"`
		Hobbies   string `json:"hobbies"`
		SessionID string `json:"session_id"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "invalid_input")
		return
	}

	ctx := requestContext(r, req.SessionID)
	paths, err := s.gen.CareerPlan(ctx, req.Subjects, req.Hobbies)
	if err != nil {
		writeContentError(w, err)
		return
	}

	s.logGenerated(req.SessionID, "career")
	writeJSON(w, http.StatusOK, paths)
}

func (s *Server) handleMentors(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CareerInterest string `json:"career_interest"`
		SessionID      string `json:"session_id"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "invalid_input")
		return
	}

	ctx := requestContext(r, req.SessionID)
	mentors, err := s.gen.Mentors(ctx, req.CareerInterest)
	if err != nil {
		writeContentError(w, err)
		return
	}

	s.logGenerated(req.SessionID, "mentor")
	writeJSON(w, http.StatusOK, mentors)
}

// requestContext tags the request context with the session id, so usage
// tracking can attribute tokens, and with the learner's locale from the
// Accept-Language header.
func requestContext(r *http.Request, sessionID string) context.Context {
	ctx := r.Context()
	if sessionID != "" {
		ctx = content.WithSession(ctx, sessionID)
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		ctx = content.WithRequestLocale(ctx, content.MatchLocale(accept))
	}
	return ctx
}

func (s *Server) logGenerated(sessionID, kind string) {
	if sessionID == "" {
		sessionID = "anonymous"
	}
	_ = s.events.LogEvent(analytics.Event{
		SessionID: sessionID,
		EventType: analytics.EventContentGenerated,
		Data:      map[string]any{"kind": kind},
	})
}
