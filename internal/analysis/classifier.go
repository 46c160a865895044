package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/logging"
	"gonum.org/v1/gonum/mat"
)

// DefaultClassifierTimeout bounds a single model prediction.
const DefaultClassifierTimeout = 2 * time.Second

// Predictor is a trained classifier artifact. It receives normalized text
// and returns a raw polarity score.
type Predictor interface {
	Predict(ctx context.Context, normalized string) (float64, error)
}

// LinearClassifier is a bag-of-words linear model exported by the training
// scripts as JSON:
//
//	{"name": "...", "vocabulary": {"word": 0, ...}, "weights": [...], "bias": 0.1}
//
// Predict returns tanh(w·x + b) where x counts vocabulary words.
type LinearClassifier struct {
	Name       string         `json:"name"`
	Vocabulary map[string]int `json:"vocabulary"`
	Weights    []float64      `json:"weights"`
	Bias       float64        `json:"bias"`

	w *mat.VecDense
}

// LoadLinearClassifier reads and validates a model artifact.
func LoadLinearClassifier(path string) (*LinearClassifier, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c LinearClassifier
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse classifier %s: %w", path, err)
	}
	if err := c.init(); err != nil {
		return nil, fmt.Errorf("invalid classifier %s: %w", path, err)
	}
	return &c, nil
}

func (c *LinearClassifier) init() error {
	if len(c.Weights) == 0 {
		return errors.New("no weights")
	}
	for word, idx := range c.Vocabulary {
		if idx < 0 || idx >= len(c.Weights) {
			return fmt.Errorf("vocabulary index %d of %q out of range", idx, word)
		}
	}
	c.w = mat.NewVecDense(len(c.Weights), c.Weights)
	return nil
}

func (c *LinearClassifier) Predict(ctx context.Context, normalized string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if c.w == nil {
		if err := c.init(); err != nil {
			return 0, err
		}
	}

	x := mat.NewVecDense(c.w.Len(), nil)
	for _, tok := range strings.Fields(normalized) {
		if idx, ok := c.Vocabulary[tok]; ok {
			x.SetVec(idx, x.AtVec(idx)+1)
		}
	}
	return math.Tanh(mat.Dot(c.w, x) + c.Bias), nil
}

// ModelScorer is the model tier. Each prediction runs under timeout.
type ModelScorer struct {
	model   Predictor
	timeout time.Duration
}

func NewModelScorer(model Predictor, timeout time.Duration) *ModelScorer {
	if timeout <= 0 {
		timeout = DefaultClassifierTimeout
	}
	return &ModelScorer{model: model, timeout: timeout}
}

type prediction struct {
	score float64
	err   error
}

func (m *ModelScorer) Score(ctx context.Context, text string) (SentimentResult, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	ch := make(chan prediction, 1)
	go func() {
		s, err := m.model.Predict(ctx, Normalize(text))
		ch <- prediction{score: s, err: err}
	}()

	select {
	case <-ctx.Done():
		return SentimentResult{}, fmt.Errorf("classifier: %w", ctx.Err())
	case p := <-ch:
		if p.err != nil {
			return SentimentResult{}, fmt.Errorf("classifier: %w", p.err)
		}
		if math.IsNaN(p.score) || math.IsInf(p.score, 0) {
			return SentimentResult{}, fmt.Errorf("classifier: non-finite score %v", p.score)
		}
		score := clamp(p.score, -1, 1)
		return newResult(score, math.Abs(score), MethodModel), nil
	}
}

// FallbackScorer tries primary and falls back to the heuristic tier when it
// fails or times out. The failure is logged, never returned.
type FallbackScorer struct {
	primary  Scorer
	fallback *HeuristicScorer
	log      logging.Logger
}

func NewFallbackScorer(primary Scorer, fallback *HeuristicScorer, log logging.Logger) *FallbackScorer {
	return &FallbackScorer{primary: primary, fallback: fallback, log: log}
}

func (f *FallbackScorer) Score(ctx context.Context, text string) (SentimentResult, error) {
	r, err := f.primary.Score(ctx, text)
	if err == nil {
		return r, nil
	}
	f.log.Warn(ctx, "model scoring failed, using heuristic", "error", err)
	return f.fallback.Analyze(text), nil
}

// ScorerConfig selects the sentiment strategy.
type ScorerConfig struct {
	ClassifierPath    string
	ClassifierTimeout time.Duration
}

// NewScorer picks the strategy once: model-with-fallback when a classifier
// artifact loads from ClassifierPath, heuristic otherwise. A missing or
// broken artifact is not an error.
func NewScorer(ctx context.Context, cfg ScorerConfig, log logging.Logger) (Scorer, error) {
	heuristic, err := NewHeuristicScorer()
	if err != nil {
		return nil, fmt.Errorf("sentence tagger: %w", err)
	}

	if cfg.ClassifierPath == "" {
		log.Debug(ctx, "no classifier configured, using heuristic scorer")
		return heuristic, nil
	}

	model, err := LoadLinearClassifier(cfg.ClassifierPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Info(ctx, "classifier artifact not found, using heuristic scorer", "path", cfg.ClassifierPath)
		return heuristic, nil
	case err != nil:
		log.Warn(ctx, "classifier artifact unusable, using heuristic scorer", "error", err)
		return heuristic, nil
	}

	log.Info(ctx, "classifier loaded", "name", model.Name, "vocabulary", len(model.Vocabulary))
	return NewFallbackScorer(NewModelScorer(model, cfg.ClassifierTimeout), heuristic, log), nil
}
