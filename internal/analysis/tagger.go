package analysis

import (
	"strings"
	"unicode"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// sentenceTagger is the baseline per-sentence sentiment tagger. Sentences
// come from the punkt segmenter; each is split into clauses, and a word's
// polarity is weakened by nearby diminishers, strengthened by intensifiers
// and flipped by a negation earlier in the same clause.
type sentenceTagger struct {
	segmenter *sentences.DefaultSentenceTokenizer
}

func newSentenceTagger() (*sentenceTagger, error) {
	seg, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, err
	}
	return &sentenceTagger{segmenter: seg}, nil
}

// Tag returns the mean sentence score of text, 0 when it has no sentences.
func (t *sentenceTagger) Tag(text string) float64 {
	var scores []float64
	for _, s := range t.segmenter.Tokenize(text) {
		sent := strings.TrimSpace(s.Text)
		if sent == "" {
			continue
		}
		scores = append(scores, scoreSentence(sent))
	}
	if len(scores) == 0 {
		return 0
	}
	return clamp(stat.Mean(scores, nil), -1, 1)
}

func scoreSentence(sentence string) float64 {
	var hits []float64
	for _, clause := range splitClauses(strings.ToLower(sentence)) {
		tokens := wordTokens(clause)
		for i, tok := range tokens {
			w, ok := sentimentLexicon[tok]
			if !ok || w == 0 {
				continue
			}
			w = applyModifiers(w, tokens, i)
			if negated(tokens, i) {
				w *= negationFactor
			}
			hits = append(hits, w)
		}
	}
	if len(hits) == 0 {
		return 0
	}
	return clamp(stat.Mean(hits, nil), -1, 1)
}

func splitClauses(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ':' || r == '—' || r == '(' || r == ')'
	})
}

// wordTokens keeps letters and apostrophes so contractions like "don't"
// survive as one token.
func wordTokens(s string) []string {
	s = strings.ReplaceAll(s, "’", "'")
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func applyModifiers(w float64, tokens []string, pos int) float64 {
	for i := pos - 1; i >= 0 && i >= pos-modifierWindow; i-- {
		switch {
		case intensifiers[tokens[i]]:
			return w * intensifierFactor
		case diminishers[tokens[i]]:
			return w * diminisherFactor
		}
	}
	return w
}

func negated(tokens []string, pos int) bool {
	for i := pos - 1; i >= 0 && i >= pos-negationWindow; i-- {
		if negations[tokens[i]] || strings.HasSuffix(tokens[i], "n't") {
			return true
		}
	}
	return false
}
