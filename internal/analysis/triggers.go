package analysis

import (
	"sort"
	"strings"
)

// DetectTriggers returns the trigger categories found in text, sorted.
// A category fires when any of its words occurs as a substring of the
// lowercased text.
func DetectTriggers(text string) []string {
	lower := strings.ToLower(text)

	var out []string
	for _, table := range [][]category{concernCategories, positiveCategories} {
		for _, c := range table {
			if containsAny(lower, c.words) {
				out = append(out, c.name)
			}
		}
	}
	if containsAny(lower, emotionalStatePhrases) {
		out = append(out, TriggerEmotionalState)
	}
	if containsAny(lower, causalPhrases) {
		out = append(out, TriggerCausalThinking)
	}

	sort.Strings(out)
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// HasTrigger reports whether triggers contains name.
func HasTrigger(triggers []string, name string) bool {
	for _, t := range triggers {
		if t == name {
			return true
		}
	}
	return false
}
