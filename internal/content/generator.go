package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/text/language"

	"github.com/njia-ai/njia-bot/internal/ai"
)

const defaultMaxTokens = 2048

type sessionKey struct{}

// WithSession tags a context with the learner session id so token usage is
// attributed to it.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

// SessionFromContext returns the session id set by WithSession, or
// "anonymous" when none is set.
func SessionFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionKey{}).(string); ok && id != "" {
		return id
	}
	return "anonymous"
}

type localeKey struct{}

// WithRequestLocale tags a context with the learner's locale for a single
// request, overriding the generator's configured locale.
func WithRequestLocale(ctx context.Context, locale language.Tag) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

func localeFromContext(ctx context.Context, fallback language.Tag) language.Tag {
	if locale, ok := ctx.Value(localeKey{}).(language.Tag); ok {
		return locale
	}
	return fallback
}

// Generator is the content request layer. Each operation makes exactly one
// outbound generation call; there are no retries, no caching and no
// deduplication, so repeated identical calls may return different content.
type Generator struct {
	router    *ai.Router
	model     string
	maxTokens int
	usage     ai.UsageTracker
	tracks    []string
	locale    language.Tag
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(g *Generator) { g.model = model }
}

// WithUsage records token usage per session on the given tracker.
func WithUsage(tracker ai.UsageTracker) Option {
	return func(g *Generator) { g.usage = tracker }
}

// WithTracks overrides the senior-school track list offered to the pathway
// prompt.
func WithTracks(tracks []string) Option {
	return func(g *Generator) {
		if len(tracks) > 0 {
			g.tracks = tracks
		}
	}
}

// WithLocale sets the learner's locale; non-English locales add a language
// directive to the system instruction.
func WithLocale(locale language.Tag) Option {
	return func(g *Generator) { g.locale = locale }
}

// NewGenerator creates a content generator on top of the AI router.
func NewGenerator(router *ai.Router, opts ...Option) *Generator {
	g := &Generator{
		router:    router,
		model:     "gemini-2.5-flash",
		maxTokens: defaultMaxTokens,
		tracks:    defaultTracks,
		locale:    language.English,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Activity generates a hands-on learning activity for the given interest.
func (g *Generator) Activity(ctx context.Context, interest string) (*Activity, error) {
	interest, err := requireInput("activity", "interest", interest)
	if err != nil {
		return nil, err
	}

	var activity Activity
	if err := g.generate(ctx, ai.TaskActivity, activitySystem, activityPrompt(interest), activitySchema(), &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// Quest generates a single multiple-choice quiz question for the subject.
func (g *Generator) Quest(ctx context.Context, subject string) (*Quest, error) {
	subject, err := requireInput("quest", "subject", subject)
	if err != nil {
		return nil, err
	}

	var quest Quest
	if err := g.generate(ctx, ai.TaskQuest, questSystem, questPrompt(subject), questSchema(), &quest); err != nil {
		return nil, err
	}
	if err := validateQuest(quest); err != nil {
		slog.Error("quest failed shape validation", "error", err)
		return nil, malformed("quest", err)
	}
	return &quest, nil
}

// PathwayAdvice recommends senior-school tracks. Three recommendations are
// requested; responses of other lengths are returned as-is.
func (g *Generator) PathwayAdvice(ctx context.Context, interests, strengths string) ([]PathwayRecommendation, error) {
	interests, err := requireInput("pathway", "interests", interests)
	if err != nil {
		return nil, err
	}
	strengths, err = requireInput("pathway", "strengths", strengths)
	if err != nil {
		return nil, err
	}

	var recs []PathwayRecommendation
	if err := g.generate(ctx, ai.TaskPathway, pathwaySystem, pathwayPrompt(interests, strengths, g.tracks), pathwaySchema(), &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// CareerPlan suggests careers for a senior-secondary learner. Six to eight
// suggestions are requested; responses of other lengths are returned as-is.
func (g *Generator) CareerPlan(ctx context.Context, subjects, hobbies string) ([]CareerPath, error) {
	subjects, err := requireInput("career", "subjects", subjects)
	if err != nil {
		return nil, err
	}
	hobbies, err = requireInput("career", "hobbies", hobbies)
	if err != nil {
		return nil, err
	}

	var paths []CareerPath
	if err := g.generate(ctx, ai.TaskCareer, careerSystem, careerPrompt(subjects, hobbies), careerSchema(), &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

// Mentors generates mentor profiles for the given career interest.
func (g *Generator) Mentors(ctx context.Context, careerInterest string) ([]Mentor, error) {
	careerInterest, err := requireInput("mentor", "career interest", careerInterest)
	if err != nil {
		return nil, err
	}

	var mentors []Mentor
	if err := g.generate(ctx, ai.TaskMentor, mentorSystem, mentorPrompt(careerInterest), mentorSchema(), &mentors); err != nil {
		return nil, err
	}
	return mentors, nil
}

// generate runs the shared pipeline: one completion call, fence unwrap,
// schema validation, unmarshal. Either out is fully populated or an error
// with a classified kind is returned; never a partial result.
func (g *Generator) generate(ctx context.Context, task ai.TaskType, system, prompt string, schema *ai.Schema, out any) error {
	op := task.String()

	resp, err := g.router.Complete(ctx, ai.CompletionRequest{
		Messages:       []ai.Message{{Role: "user", Content: prompt}},
		System:         localize(system, localeFromContext(ctx, g.locale)),
		Model:          g.model,
		MaxTokens:      g.maxTokens,
		Task:           task,
		ResponseSchema: schema,
	})
	if err != nil {
		return upstream(op, err)
	}

	if g.usage != nil {
		if err := g.usage.Record(SessionFromContext(ctx), resp.TotalTokens()); err != nil {
			slog.Warn("failed to record token usage", "error", err)
		}
	}

	if strings.TrimSpace(resp.Content) == "" {
		return emptyResponse(op)
	}

	payload := stripFences(resp.Content)

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema.JSONSchema()),
		gojsonschema.NewStringLoader(payload),
	)
	if err != nil {
		slog.Error("AI response is not valid JSON", "task", op, "raw", resp.Content)
		return malformed(op, fmt.Errorf("response is not valid JSON"))
	}
	if !result.Valid() {
		slog.Error("AI response does not match declared schema",
			"task", op,
			"violations", len(result.Errors()),
			"raw", resp.Content,
		)
		return malformed(op, fmt.Errorf("response does not match declared schema: %s", firstViolation(result)))
	}

	if err := json.Unmarshal([]byte(payload), out); err != nil {
		slog.Error("AI response failed to decode", "task", op, "raw", resp.Content)
		return malformed(op, fmt.Errorf("response failed to decode"))
	}
	return nil
}

func firstViolation(result *gojsonschema.Result) string {
	if errs := result.Errors(); len(errs) > 0 {
		return errs[0].String()
	}
	return ""
}

// validateQuest enforces the quest invariants the schema cannot fully
// express: exactly 4 options, an index into them, positive points.
func validateQuest(q Quest) error {
	if len(q.Options) != 4 {
		return fmt.Errorf("expected 4 options, got %d", len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correctIndex %d out of range", q.CorrectIndex)
	}
	if q.Points <= 0 {
		return fmt.Errorf("points must be positive, got %d", q.Points)
	}
	return nil
}

func requireInput(op, field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalidInput(op, field)
	}
	return value, nil
}
