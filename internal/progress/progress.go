// Package progress implements the learner's gamification state: score,
// per-subject mastery counts and unlocked badges, advanced by a pure
// transition over answered quests.
package progress

import (
	"strings"

	"github.com/njia-ai/njia-bot/internal/content"
)

const (
	baselineScore     = 120
	brainiacThreshold = 200
	masteryTarget     = 3
)

// masteryBuckets are matched against quest subjects in this order; the
// first case-insensitive substring match wins.
var masteryBuckets = []string{"Math", "Science", "English"}

// Outcome is the result of an answered quest.
type Outcome int

const (
	OutcomeIncorrect Outcome = iota
	OutcomeCorrect
)

func (o Outcome) String() string {
	if o == OutcomeCorrect {
		return "correct"
	}
	return "incorrect"
}

// Progress is a learner's gamification state for one session. Score never
// decreases, mastery counts never decrease, and a badge is never removed.
type Progress struct {
	Score   int            `json:"score"`
	Mastery map[string]int `json:"mastery"`
	Badges  []Badge        `json:"badges"` // ordered by unlock time
}

// HasBadge reports whether the badge id has been unlocked.
func (p Progress) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

func (p Progress) clone() Progress {
	next := Progress{
		Score:   p.Score,
		Mastery: make(map[string]int, len(p.Mastery)),
		Badges:  make([]Badge, len(p.Badges)),
	}
	for k, v := range p.Mastery {
		next.Mastery[k] = v
	}
	copy(next.Badges, p.Badges)
	return next
}

// Engine evaluates answer transitions against a badge catalog.
type Engine struct {
	catalog map[string]Badge
}

// NewEngine creates an engine. A nil or empty catalog uses the built-in
// badge set.
func NewEngine(badges []Badge) *Engine {
	if len(badges) == 0 {
		badges = DefaultBadges()
	}
	catalog := make(map[string]Badge, len(badges))
	for _, b := range badges {
		catalog[b.ID] = b
	}
	return &Engine{catalog: catalog}
}

// NewProgress returns the session baseline: an encouragement score and the
// starting badge.
func (e *Engine) NewProgress() Progress {
	p := Progress{
		Score:   baselineScore,
		Mastery: make(map[string]int, len(masteryBuckets)),
	}
	for _, bucket := range masteryBuckets {
		p.Mastery[bucket] = 0
	}
	e.unlock(&p, BadgeExplorer)
	return p
}

// Apply computes the state after answering a quest. It is a total, pure
// function: p is never mutated, and an out-of-range chosenIndex simply
// never equals the correct index, yielding Incorrect.
func (e *Engine) Apply(p Progress, q content.Quest, chosenIndex int) (Progress, Outcome) {
	next := p.clone()

	if chosenIndex != q.CorrectIndex {
		return next, OutcomeIncorrect
	}

	next.Score += q.Points

	bucket := matchBucket(q.Subject)
	count := 0
	if bucket != "" {
		next.Mastery[bucket]++
		count = next.Mastery[bucket]
	}

	// Badge predicates run only on correct answers, each independently
	// and idempotently.
	if next.Score >= brainiacThreshold {
		e.unlock(&next, BadgeBrainiac)
	}
	if count == masteryTarget {
		switch bucket {
		case "Math":
			e.unlock(&next, BadgeMathMaster)
		case "Science":
			e.unlock(&next, BadgeScienceWhiz)
		case "English":
			e.unlock(&next, BadgeWordWizard)
		}
	}

	return next, OutcomeCorrect
}

func (e *Engine) unlock(p *Progress, id string) {
	if p.HasBadge(id) {
		return
	}
	badge, ok := e.catalog[id]
	if !ok {
		return
	}
	p.Badges = append(p.Badges, badge)
}

// matchBucket maps a quest subject to its mastery bucket, or "" when no
// bucket matches. "Mathematics & Science" counts as Math: first match wins.
func matchBucket(subject string) string {
	lower := strings.ToLower(subject)
	for _, bucket := range masteryBuckets {
		if strings.Contains(lower, strings.ToLower(bucket)) {
			return bucket
		}
	}
	return ""
}
