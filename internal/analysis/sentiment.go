package analysis

import (
	"context"
	"math"
	"strings"
)

type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// Method names the tier that produced a SentimentResult. Informational only.
type Method string

const (
	MethodModel     Method = "model"
	MethodHeuristic Method = "heuristic"
)

const labelThreshold = 0.1

// SentimentResult is the output of a Scorer. Score is always in [-1, 1] and
// Confidence in [0, 1]. Probabilities is a coarse 0.8/0.1/0.1 split towards
// Label, not a calibrated posterior.
type SentimentResult struct {
	Score         float64           `json:"score"`
	Confidence    float64           `json:"confidence"`
	Label         Label             `json:"label"`
	Probabilities map[Label]float64 `json:"probabilities"`
	Method        Method            `json:"method"`
	Features      *Features         `json:"features,omitempty"`
}

// Scorer turns raw entry text into a SentimentResult.
type Scorer interface {
	Score(ctx context.Context, text string) (SentimentResult, error)
}

// NeutralResult is the empty value of the sentiment stage.
func NeutralResult() SentimentResult {
	return newResult(0, 0, MethodHeuristic)
}

func newResult(score, confidence float64, method Method) SentimentResult {
	score = clamp(score, -1, 1)
	label := LabelFor(score)
	return SentimentResult{
		Score:         score,
		Confidence:    clamp(confidence, 0, 1),
		Label:         label,
		Probabilities: probabilitiesFor(label),
		Method:        method,
	}
}

// LabelFor maps a score to a label with the ±0.1 thresholds.
func LabelFor(score float64) Label {
	switch {
	case score > labelThreshold:
		return Positive
	case score < -labelThreshold:
		return Negative
	default:
		return Neutral
	}
}

func probabilitiesFor(label Label) map[Label]float64 {
	p := map[Label]float64{Positive: 0.1, Negative: 0.1, Neutral: 0.1}
	p[label] = 0.8
	return p
}

// Features are the signals fused into the heuristic score.
type Features struct {
	TokenCount          int     `json:"tokenCount"`
	PositiveHits        int     `json:"positiveHits"`
	NegativeHits        int     `json:"negativeHits"`
	Exclamations        int     `json:"exclamations"`
	Questions           int     `json:"questions"`
	RepeatedPunctuation bool    `json:"repeatedPunctuation"`
	AvgWordLength       float64 `json:"avgWordLength"`
}

func extractFeatures(text string) Features {
	tokens := strings.Fields(Normalize(text))

	f := Features{
		TokenCount:          len(tokens),
		Exclamations:        strings.Count(text, "!"),
		Questions:           strings.Count(text, "?"),
		RepeatedPunctuation: strings.Contains(text, "!!") || strings.Contains(text, "??"),
	}

	letters := 0
	for _, t := range tokens {
		letters += len(t)
		if smartPositiveWords[t] {
			f.PositiveHits++
		}
		if smartNegativeWords[t] {
			f.NegativeHits++
		}
	}
	if len(tokens) > 0 {
		f.AvgWordLength = float64(letters) / float64(len(tokens))
	}
	return f
}

// enhance folds the smart features into a base score from the sentence
// tagger: ±0.1 per lexicon hit, +0.05 per '!', ×1.1 above 20 tokens, then
// clamp. Confidence gets a flat +0.2.
func enhance(base, baseConfidence float64, f Features) (score, confidence float64) {
	score = base
	score += 0.1 * float64(f.PositiveHits)
	score -= 0.1 * float64(f.NegativeHits)
	score += 0.05 * float64(f.Exclamations)
	if f.TokenCount > 20 {
		score *= 1.1
	}
	return clamp(score, -1, 1), math.Min(baseConfidence+0.2, 1)
}

// HeuristicScorer is the non-ML tier: a per-sentence lexicon tagger plus
// smart-feature enhancement. It never fails.
type HeuristicScorer struct {
	tagger *sentenceTagger
}

func NewHeuristicScorer() (*HeuristicScorer, error) {
	t, err := newSentenceTagger()
	if err != nil {
		return nil, err
	}
	return &HeuristicScorer{tagger: t}, nil
}

func (h *HeuristicScorer) Score(ctx context.Context, text string) (SentimentResult, error) {
	return h.Analyze(text), nil
}

func (h *HeuristicScorer) Analyze(text string) SentimentResult {
	base := h.tagger.Tag(text)
	f := extractFeatures(text)

	score, confidence := enhance(base, math.Abs(base), f)

	r := newResult(score, confidence, MethodHeuristic)
	r.Features = &f
	return r
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}
