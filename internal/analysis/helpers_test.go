package analysis

import (
	"math/rand"
	"strings"
)

var randomPool = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"     \t\n!!??..,,;:'\"-_()0123456789" +
	"😊😢🔥日本語한국어жизньéñüßçãõ 　")

var randomWords = []string{
	"good", "great", "love", "happy", "bad", "terrible", "hate", "sad",
	"not", "very", "slightly", "work", "boss", "deadline", "family", "the",
	"and", "because", "i", "feel", "today", "!", "?", ".", ",",
}

// randomTexts returns n deterministic pseudo-random inputs: raw rune soup,
// word salad from the lexicons, and a few fixed edge cases.
func randomTexts(n int) []string {
	r := rand.New(rand.NewSource(42))
	out := []string{"", " ", "\n\t ", "!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!", "...", "😊", "日本語", "ЖЖЖ"}

	for i := 0; i < n; i++ {
		var b strings.Builder
		if i%2 == 0 {
			l := r.Intn(120)
			for j := 0; j < l; j++ {
				b.WriteRune(randomPool[r.Intn(len(randomPool))])
			}
		} else {
			l := r.Intn(60)
			for j := 0; j < l; j++ {
				b.WriteString(randomWords[r.Intn(len(randomWords))])
				b.WriteByte(' ')
			}
		}
		out = append(out, b.String())
	}
	return out
}
