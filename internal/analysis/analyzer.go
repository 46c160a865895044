// Package analysis is the on-device text analysis pipeline of a journal
// entry: language, sentiment, keywords, triggers, summary and a wellness
// nudge. Nothing here leaves the device and nothing here fails for
// well-formed input; every stage has an empty value it falls back to.
package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
	"golang.org/x/sync/errgroup"
)

// FullAnalysisResult is everything the pipeline knows about one entry.
// Language is the detected code, which may lie outside the allow-list, or
// DefaultLanguage when detection failed.
type FullAnalysisResult struct {
	Sentiment     SentimentResult `json:"sentiment"`
	Language      string          `json:"language"`
	Keywords      []string        `json:"keywords"`
	Triggers      []string        `json:"triggers"`
	Summary       []string        `json:"summary"`
	WellnessNudge string          `json:"wellnessNudge,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

// CheckText enforces the analysis precondition: text must not be empty or
// whitespace only.
func CheckText(text string) error {
	if strings.TrimSpace(text) == "" {
		return common.ErrEmptyText
	}
	return nil
}

type Analyzer struct {
	scorer   Scorer
	detector *LanguageDetector
	log      logging.Logger
	now      func() time.Time
}

func NewAnalyzer(scorer Scorer, log logging.Logger) *Analyzer {
	return &Analyzer{
		scorer:   scorer,
		detector: NewLanguageDetector(),
		log:      log,
		now:      time.Now,
	}
}

// Analyze runs the four independent stages concurrently, then builds the
// summary and nudge from their results. Callers check CheckText first.
func (a *Analyzer) Analyze(ctx context.Context, text string) FullAnalysisResult {
	var (
		sentiment = NeutralResult()
		keywords  []string
		triggers  []string
		lang      string
		langOK    bool
	)

	var g errgroup.Group
	g.Go(func() error {
		r, err := a.scorer.Score(ctx, text)
		if err != nil {
			a.log.Warn(ctx, "sentiment stage failed, using neutral", "error", err)
			return nil
		}
		sentiment = r
		return nil
	})
	g.Go(func() error {
		keywords = ExtractKeywords(text)
		return nil
	})
	g.Go(func() error {
		triggers = DetectTriggers(text)
		return nil
	})
	g.Go(func() error {
		lang, langOK = a.detector.Detect(text)
		return nil
	})
	_ = g.Wait()

	detected := DefaultLanguage
	if langOK {
		detected = lang
	}
	resolved := ResolveLanguage(lang, langOK)
	if langOK && resolved != lang {
		a.log.Debug(ctx, "unsupported language, using default rules", "detected", lang)
	}
	keywords = FilterStopwords(keywords, resolved)

	if keywords == nil {
		keywords = []string{}
	}
	if triggers == nil {
		triggers = []string{}
	}

	return FullAnalysisResult{
		Sentiment:     sentiment,
		Language:      detected,
		Keywords:      keywords,
		Triggers:      triggers,
		Summary:       Summarize(text, sentiment.Score, triggers),
		WellnessNudge: Nudge(sentiment.Score, triggers),
		Timestamp:     a.now().UTC(),
	}
}
