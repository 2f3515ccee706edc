package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/njia-ai/njia-bot/internal/ai"
	"github.com/njia-ai/njia-bot/internal/export"
	"github.com/njia-ai/njia-bot/internal/progress"
)

func sampleSessions() []progress.Session {
	engine := progress.NewEngine(nil)

	low := engine.NewProgress()
	high := engine.NewProgress()
	high.Score = 250
	high.Mastery["Math"] = 3

	started := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []progress.Session{
		{ID: "sess-low", Progress: low, StartedAt: started},
		{ID: "sess-high", Progress: high, StartedAt: started},
	}
}

func TestWriteProgress_Leaderboard(t *testing.T) {
	usage := ai.NewInMemoryUsage()
	usage.Record("sess-high", 1234)

	var buf bytes.Buffer
	if err := export.WriteProgress(&buf, sampleSessions(), usage); err != nil {
		t.Fatalf("WriteProgress() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Leaderboard")
	if err != nil {
		t.Fatalf("GetRows(Leaderboard): %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("leaderboard rows = %d, want 3 (header + 2)", len(rows))
	}

	// Highest score ranks first.
	if rows[1][1] != "sess-high" {
		t.Errorf("rank 1 session = %q, want sess-high", rows[1][1])
	}
	if rows[1][2] != "250" {
		t.Errorf("rank 1 score = %q, want 250", rows[1][2])
	}
	if rows[1][5] != "1234" {
		t.Errorf("rank 1 tokens = %q, want 1234", rows[1][5])
	}
	if rows[2][1] != "sess-low" {
		t.Errorf("rank 2 session = %q, want sess-low", rows[2][1])
	}
}

func TestWriteProgress_Mastery(t *testing.T) {
	var buf bytes.Buffer
	if err := export.WriteProgress(&buf, sampleSessions(), nil); err != nil {
		t.Fatalf("WriteProgress() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Mastery")
	if err != nil {
		t.Fatalf("GetRows(Mastery): %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("mastery rows = %d, want 3 (header + 2)", len(rows))
	}
	if rows[1][0] != "sess-high" || rows[1][1] != "3" {
		t.Errorf("mastery row 1 = %v, want sess-high with Math 3", rows[1])
	}
}

func TestWriteProgress_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := export.WriteProgress(&buf, nil, nil); err != nil {
		t.Fatalf("WriteProgress() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Leaderboard")
	if err != nil {
		t.Fatalf("GetRows(Leaderboard): %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("leaderboard rows = %d, want header only", len(rows))
	}
}
