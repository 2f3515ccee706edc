// Package ai provides a provider-agnostic gateway for schema-constrained
// content generation.
package ai

import "context"

// TaskType identifies the kind of content being generated, for routing
// and logging purposes.
type TaskType int

const (
	TaskActivity TaskType = iota
	TaskQuest
	TaskPathway
	TaskCareer
	TaskMentor
)

func (t TaskType) String() string {
	switch t {
	case TaskActivity:
		return "activity"
	case TaskQuest:
		return "quest"
	case TaskPathway:
		return "pathway"
	case TaskCareer:
		return "career"
	case TaskMentor:
		return "mentor"
	default:
		return "unknown"
	}
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the input to an AI completion. When ResponseSchema
// is set, providers ask the model for JSON conforming to that schema.
type CompletionRequest struct {
	Messages       []Message `json:"messages"`
	System         string    `json:"system,omitempty"`
	Model          string    `json:"model,omitempty"`
	MaxTokens      int       `json:"max_tokens,omitempty"`
	Temperature    float64   `json:"temperature,omitempty"`
	Task           TaskType  `json:"task,omitempty"`
	ResponseSchema *Schema   `json:"-"`
}

// CompletionResponse is the output from an AI completion.
type CompletionResponse struct {
	Content      string `json:"content"`
	Model        string `json:"model"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// TotalTokens returns the sum of input and output tokens.
func (r CompletionResponse) TotalTokens() int {
	return r.InputTokens + r.OutputTokens
}

// ModelInfo describes an available model.
type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MaxTokens   int    `json:"max_tokens"`
	Description string `json:"description"`
}

// Provider is the interface all AI providers must implement.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
	Models() []ModelInfo
	HealthCheck(ctx context.Context) error
}
