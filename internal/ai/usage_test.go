package ai_test

import (
	"testing"

	"github.com/njia-ai/njia-bot/internal/ai"
)

func TestInMemoryUsage_RecordAndQuery(t *testing.T) {
	usage := ai.NewInMemoryUsage()

	if err := usage.Record("sess-1", 100); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := usage.Record("sess-1", 50); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := usage.Record("sess-2", 7); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if got := usage.Usage("sess-1"); got != 150 {
		t.Errorf("Usage(sess-1) = %d, want 150", got)
	}
	if got := usage.Usage("sess-2"); got != 7 {
		t.Errorf("Usage(sess-2) = %d, want 7", got)
	}
	if got := usage.Usage("unknown"); got != 0 {
		t.Errorf("Usage(unknown) = %d, want 0", got)
	}
}

func TestInMemoryUsage_RejectsNegative(t *testing.T) {
	usage := ai.NewInMemoryUsage()
	if err := usage.Record("sess-1", -1); err == nil {
		t.Error("Record() should reject negative tokens")
	}
}
