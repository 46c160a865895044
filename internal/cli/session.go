package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/moodkeeper/internal/analysis"
	"github.com/dmitrijs2005/moodkeeper/internal/app"
	"github.com/dmitrijs2005/moodkeeper/internal/journal"
)

const timeLayout = "2006-01-02 15:04"

// session runs journal commands against an open App and prints to out.
type session struct {
	app      *app.App
	out      io.Writer
	jsonMode bool
}

func (s *session) Analyze(ctx context.Context, text string) error {
	if err := analysis.CheckText(text); err != nil {
		return err
	}
	r := s.app.Analyzer.Analyze(ctx, text)
	if s.jsonMode {
		return s.printJSON(r)
	}
	printResult(s.out, r)
	return nil
}

func (s *session) Write(ctx context.Context, text string, health journal.HealthCorrelates, voice bool) error {
	rec, r, err := s.app.AnalyzeAndSave(ctx, text, health, voice)
	if err != nil {
		return err
	}
	if s.jsonMode {
		return s.printJSON(map[string]any{"id": rec.ID, "result": r})
	}
	fmt.Fprintf(s.out, "Saved entry %s\n\n", rec.ID)
	printResult(s.out, r)
	return nil
}

func (s *session) List(ctx context.Context) error {
	entries, failed := s.app.Journal.ReadAll(ctx)
	if s.jsonMode {
		return s.printJSON(map[string]any{"entries": entries, "failed": failed})
	}

	if len(entries) == 0 && len(failed) == 0 {
		fmt.Fprintln(s.out, "No entries yet. Use 'moodkeeper write' to add one.")
		return nil
	}

	fmt.Fprintf(s.out, "%-36s  %-16s  %-9s  %-4s  %s\n", "ID", "CREATED", "MOOD", "LANG", "PREVIEW")
	for _, e := range entries {
		fmt.Fprintf(s.out, "%-36s  %-16s  %-9s  %-4s  %s\n",
			e.ID,
			e.CreatedAt.Local().Format(timeLayout),
			moodLabel(e.Sentiment),
			e.DetectedLanguage,
			preview(e.Text, 40),
		)
	}
	if len(failed) > 0 {
		fmt.Fprintf(s.out, "\n%d entries could not be decrypted: %s\n", len(failed), strings.Join(failed, ", "))
	}
	return nil
}

func (s *session) Show(ctx context.Context, id string) error {
	e, err := s.app.Journal.Get(ctx, id)
	if err != nil {
		return err
	}
	if s.jsonMode {
		return s.printJSON(e)
	}

	fmt.Fprintf(s.out, "Entry:    %s\n", e.ID)
	fmt.Fprintf(s.out, "Created:  %s\n", e.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(s.out, "Mood:     %s\n", moodLabel(e.Sentiment))
	fmt.Fprintf(s.out, "Language: %s\n", e.DetectedLanguage)
	if e.VoiceTranscribed {
		fmt.Fprintln(s.out, "Source:   voice")
	}
	printHealth(s.out, e.Health)
	fmt.Fprintf(s.out, "\n%s\n\n", e.Text)
	printList(s.out, "Keywords", e.Keywords)
	printList(s.out, "Triggers", e.Triggers)
	for _, line := range e.Summary {
		fmt.Fprintf(s.out, "  - %s\n", line)
	}
	if e.WellnessNudge != "" {
		fmt.Fprintf(s.out, "Nudge:    %s\n", e.WellnessNudge)
	}
	return nil
}

func (s *session) Delete(ctx context.Context, id string) error {
	if err := s.app.Journal.DeleteEntry(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Deleted %s\n", id)
	return nil
}

func (s *session) printJSON(v any) error {
	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResult(w io.Writer, r analysis.FullAnalysisResult) {
	fmt.Fprintf(w, "Sentiment: %s (%.2f, confidence %.2f, %s)\n",
		r.Sentiment.Label, r.Sentiment.Score, r.Sentiment.Confidence, r.Sentiment.Method)
	fmt.Fprintf(w, "Language:  %s\n", r.Language)
	printList(w, "Keywords", r.Keywords)
	printList(w, "Triggers", r.Triggers)
	fmt.Fprintln(w, "Summary:")
	for _, line := range r.Summary {
		fmt.Fprintf(w, "  - %s\n", line)
	}
	if r.WellnessNudge != "" {
		fmt.Fprintf(w, "Nudge:     %s\n", r.WellnessNudge)
	}
}

func printList(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%-10s %s\n", label+":", strings.Join(items, ", "))
}

func printHealth(w io.Writer, h journal.HealthCorrelates) {
	if h.SleepHours != nil {
		fmt.Fprintf(w, "Sleep:    %.1f h\n", *h.SleepHours)
	}
	if h.StepCount != nil {
		fmt.Fprintf(w, "Steps:    %d\n", *h.StepCount)
	}
	if h.WorkoutMinutes != nil {
		fmt.Fprintf(w, "Workout:  %.0f min\n", *h.WorkoutMinutes)
	}
	if h.MoodCategory != "" {
		fmt.Fprintf(w, "Mood log: %s\n", h.MoodCategory)
	}
}

func moodLabel(score *float64) string {
	if score == nil {
		return "-"
	}
	return fmt.Sprintf("%s %+.2f", analysis.LabelFor(*score), *score)
}

func preview(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n-3]) + "..."
}
