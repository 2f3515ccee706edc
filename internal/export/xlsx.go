// Package export renders session progress reports as xlsx workbooks.
package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/njia-ai/njia-bot/internal/ai"
	"github.com/njia-ai/njia-bot/internal/progress"
)

const (
	sheetLeaderboard = "Leaderboard"
	sheetMastery     = "Mastery"
)

// WriteProgress writes a workbook with a leaderboard sheet and a
// per-subject mastery sheet for the given sessions. Usage may be nil
// when token counts are not tracked.
func WriteProgress(w io.Writer, sessions []progress.Session, usage ai.UsageTracker) error {
	f := excelize.NewFile()
	defer f.Close()

	ranked := make([]progress.Session, len(sessions))
	copy(ranked, sessions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Progress.Score > ranked[j].Progress.Score
	})

	if err := writeLeaderboard(f, ranked, usage); err != nil {
		return err
	}
	if err := writeMastery(f, ranked); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeLeaderboard(f *excelize.File, sessions []progress.Session, usage ai.UsageTracker) error {
	if err := f.SetSheetName("Sheet1", sheetLeaderboard); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header := []any{"Rank", "Session", "Score", "Badges", "Quests Answered", "Tokens Used", "Started", "Ended"}
	if err := f.SetSheetRow(sheetLeaderboard, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, sess := range sessions {
		badges := make([]string, 0, len(sess.Progress.Badges))
		for _, b := range sess.Progress.Badges {
			badges = append(badges, b.Name)
		}

		var tokens int64
		if usage != nil {
			tokens = usage.Usage(sess.ID)
		}

		ended := ""
		if sess.EndedAt != nil {
			ended = sess.EndedAt.Format(time.RFC3339)
		}

		row := []any{
			i + 1,
			sess.ID,
			sess.Progress.Score,
			strings.Join(badges, ", "),
			len(sess.Answers),
			tokens,
			sess.StartedAt.Format(time.RFC3339),
			ended,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetLeaderboard, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return nil
}

func writeMastery(f *excelize.File, sessions []progress.Session) error {
	if _, err := f.NewSheet(sheetMastery); err != nil {
		return fmt.Errorf("creating mastery sheet: %w", err)
	}

	header := []any{"Session", "Math", "Science", "English"}
	if err := f.SetSheetRow(sheetMastery, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, sess := range sessions {
		row := []any{
			sess.ID,
			sess.Progress.Mastery["Math"],
			sess.Progress.Mastery["Science"],
			sess.Progress.Mastery["English"],
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetMastery, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return nil
}
