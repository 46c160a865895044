package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeuristic(t *testing.T) *HeuristicScorer {
	t.Helper()
	h, err := NewHeuristicScorer()
	require.NoError(t, err)
	return h
}

func assertWellFormed(t *testing.T, r SentimentResult, input string) {
	t.Helper()

	assert.GreaterOrEqual(t, r.Score, -1.0, "input %q", input)
	assert.LessOrEqual(t, r.Score, 1.0, "input %q", input)
	assert.GreaterOrEqual(t, r.Confidence, 0.0, "input %q", input)
	assert.LessOrEqual(t, r.Confidence, 1.0, "input %q", input)

	sum := 0.0
	best, bestP := Label(""), -1.0
	for l, p := range r.Probabilities {
		sum += p
		if p > bestP {
			best, bestP = l, p
		}
	}
	assert.InDelta(t, 1.0, sum, 1e-9, "input %q", input)
	assert.Equal(t, r.Label, best, "input %q", input)
	assert.Equal(t, LabelFor(r.Score), r.Label, "input %q", input)
}

func TestHeuristicScorer_ScoreAlwaysBounded(t *testing.T) {
	h := newHeuristic(t)

	for _, s := range randomTexts(400) {
		r, err := h.Score(context.Background(), s)
		require.NoError(t, err)
		assertWellFormed(t, r, s)
		assert.Equal(t, MethodHeuristic, r.Method)
	}
}

func TestHeuristicScorer_Examples(t *testing.T) {
	h := newHeuristic(t)

	tests := []struct {
		name  string
		text  string
		label Label
	}{
		{"positive with exclamations", "I love this! It is great!!!", Positive},
		{"negative", "What a terrible, awful day.", Negative},
		{"negated positive", "I am not happy.", Negative},
		{"no sentiment words", "I walked to the store and bought bread.", Neutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := h.Analyze(tt.text)
			assert.Equal(t, tt.label, r.Label, "score %v", r.Score)
			require.NotNil(t, r.Features)
		})
	}
}

func TestHeuristicScorer_EmptyText(t *testing.T) {
	r := newHeuristic(t).Analyze("")

	assert.Zero(t, r.Score)
	assert.Equal(t, Neutral, r.Label)
	assert.InDelta(t, 0.2, r.Confidence, 1e-9)
}

func TestHeuristicScorer_ConfidenceBoost(t *testing.T) {
	r := newHeuristic(t).Analyze("I love this! It is great!!!")

	// sentences score 0.8 and 0.75
	assert.InDelta(t, 0.975, r.Confidence, 1e-9)
	assert.Equal(t, 1.0, r.Score)
}

func TestEnhance(t *testing.T) {
	tests := []struct {
		name      string
		base      float64
		baseConf  float64
		f         Features
		wantScore float64
		wantConf  float64
	}{
		{"nothing", 0, 0, Features{}, 0, 0.2},
		{"lexicon hits", 0, 0.1, Features{TokenCount: 5, PositiveHits: 2, NegativeHits: 1}, 0.1, 0.3},
		{"exclamations", 0.1, 0.1, Features{TokenCount: 3, Exclamations: 3}, 0.25, 0.3},
		{"long entry multiplier", 0.5, 0.5, Features{TokenCount: 21, PositiveHits: 1}, 0.66, 0.7},
		{"exactly twenty tokens no multiplier", 0.5, 0.5, Features{TokenCount: 20, PositiveHits: 1}, 0.6, 0.7},
		{"clamped high", 0.9, 0.9, Features{TokenCount: 5, PositiveHits: 5}, 1, 1},
		{"clamped low", -0.9, 0.9, Features{TokenCount: 30, NegativeHits: 5}, -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, c := enhance(tt.base, tt.baseConf, tt.f)
			assert.InDelta(t, tt.wantScore, s, 1e-9)
			assert.InDelta(t, tt.wantConf, c, 1e-9)
		})
	}
}

func TestExtractFeatures(t *testing.T) {
	f := extractFeatures("Good, GOOD day!! Was it bad? Smile.")

	assert.Equal(t, 7, f.TokenCount)
	assert.Equal(t, 3, f.PositiveHits)
	assert.Equal(t, 1, f.NegativeHits)
	assert.Equal(t, 2, f.Exclamations)
	assert.Equal(t, 1, f.Questions)
	assert.True(t, f.RepeatedPunctuation)
	assert.InDelta(t, 24.0/7.0, f.AvgWordLength, 1e-9)
}

func TestScoreSentence_Modifiers(t *testing.T) {
	assert.InDelta(t, 0.7, scoreSentence("i am happy"), 1e-9)
	assert.InDelta(t, 1.0, scoreSentence("i am very happy"), 1e-9)
	assert.InDelta(t, 0.35, scoreSentence("i am slightly happy"), 1e-9)
	assert.InDelta(t, -0.35, scoreSentence("i am not happy"), 1e-9)
	assert.InDelta(t, -0.35, scoreSentence("i don't feel happy"), 1e-9)
	// a clause boundary stops negation
	assert.InDelta(t, 0.7, scoreSentence("not really, but happy"), 1e-9)
	assert.Zero(t, scoreSentence("nothing to see"))
}

func TestLabelFor(t *testing.T) {
	assert.Equal(t, Positive, LabelFor(0.11))
	assert.Equal(t, Neutral, LabelFor(0.1))
	assert.Equal(t, Neutral, LabelFor(0))
	assert.Equal(t, Neutral, LabelFor(-0.1))
	assert.Equal(t, Negative, LabelFor(-0.11))
}

func TestNeutralResult(t *testing.T) {
	r := NeutralResult()
	assertWellFormed(t, r, "")
	assert.Equal(t, Neutral, r.Label)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, clamp(3, -1, 1))
	assert.Equal(t, -1.0, clamp(-3, -1, 1))
	assert.Equal(t, 0.0, clamp(math.NaN(), -1, 1))
}
