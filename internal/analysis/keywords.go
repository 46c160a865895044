package analysis

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bbalet/stopwords"
)

// MaxKeywords caps the keyword list of an entry.
const MaxKeywords = 8

const minKeywordLen = 4

// ExtractKeywords returns up to MaxKeywords distinct words of text longer
// than three letters that are not English stop words, most frequent first.
// Ties keep first-occurrence order.
func ExtractKeywords(text string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	type counted struct {
		word  string
		count int
	}
	var order []*counted
	index := make(map[string]*counted)

	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) < minKeywordLen || isStopword(tok, DefaultLanguage) {
			continue
		}
		if c, ok := index[tok]; ok {
			c.count++
			continue
		}
		c := &counted{word: tok, count: 1}
		index[tok] = c
		order = append(order, c)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].count > order[j].count
	})

	out := make([]string, 0, MaxKeywords)
	for _, c := range order {
		if len(out) == MaxKeywords {
			break
		}
		if c.word != "" {
			out = append(out, c.word)
		}
	}
	return out
}

// FilterStopwords drops keywords that are stop words of lang. English and
// languages outside the allow-list are returned unchanged.
func FilterStopwords(keywords []string, lang string) []string {
	code := BaseLanguage(lang)
	if code == "" || code == DefaultLanguage || !IsSupportedLanguage(code) {
		return keywords
	}

	out := make([]string, 0, len(keywords))
	for _, w := range keywords {
		if isStopword(w, code) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func isStopword(word, lang string) bool {
	return strings.TrimSpace(stopwords.CleanString(word, lang, false)) == ""
}
