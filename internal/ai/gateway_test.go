package ai_test

import (
	"context"
	"errors"
	"testing"

	"github.com/njia-ai/njia-bot/internal/ai"
)

func TestMockProvider_Complete(t *testing.T) {
	mock := ai.NewMockProvider("test response")

	resp, err := mock.Complete(context.Background(), ai.CompletionRequest{
		Messages: []ai.Message{
			{Role: "user", Content: "Hello"},
		},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Content != "test response" {
		t.Errorf("Content = %q, want %q", resp.Content, "test response")
	}
	if resp.Model != "mock" {
		t.Errorf("Model = %q, want %q", resp.Model, "mock")
	}
}

func TestMockProvider_CapturesRequest(t *testing.T) {
	mock := ai.NewMockProvider("{}")

	schema := ai.Object(map[string]*ai.Schema{"title": ai.String("")}, "title")
	_, err := mock.Complete(context.Background(), ai.CompletionRequest{
		Messages:       []ai.Message{{Role: "user", Content: "generate"}},
		System:         "You are a teacher.",
		Task:           ai.TaskActivity,
		ResponseSchema: schema,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if mock.LastRequest == nil {
		t.Fatal("LastRequest not captured")
	}
	if mock.LastRequest.System != "You are a teacher." {
		t.Errorf("System = %q", mock.LastRequest.System)
	}
	if mock.LastRequest.ResponseSchema != schema {
		t.Error("ResponseSchema not captured")
	}
}

func TestMockProvider_Error(t *testing.T) {
	mock := ai.NewMockProvider("response")
	mock.Err = errors.New("provider down")

	_, err := mock.Complete(context.Background(), ai.CompletionRequest{})
	if err == nil {
		t.Fatal("Complete() should return the configured error")
	}
}

func TestTaskType_String(t *testing.T) {
	tests := []struct {
		task ai.TaskType
		want string
	}{
		{ai.TaskActivity, "activity"},
		{ai.TaskQuest, "quest"},
		{ai.TaskPathway, "pathway"},
		{ai.TaskCareer, "career"},
		{ai.TaskMentor, "mentor"},
		{ai.TaskType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.task.String(); got != tt.want {
			t.Errorf("TaskType(%d).String() = %q, want %q", tt.task, got, tt.want)
		}
	}
}

func TestCompletionResponse_TotalTokens(t *testing.T) {
	resp := ai.CompletionResponse{InputTokens: 8, OutputTokens: 12}
	if got := resp.TotalTokens(); got != 20 {
		t.Errorf("TotalTokens() = %d, want 20", got)
	}
}
