package analysis

import "strings"

// Normalize lowercases text, drops everything except ASCII letters and
// whitespace, collapses whitespace runs to one space and trims the ends.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			r += 'a' - 'A'
			fallthrough
		case r >= 'a' && r <= 'z':
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case isSpace(r):
			pendingSpace = true
		}
	}
	return b.String()
}

// isSpace matches the whitespace class of the normalizer: ASCII spaces plus
// the Unicode separators a pasted or dictated entry commonly carries.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r', 0x85, 0xA0, 0x2028, 0x2029, 0x3000:
		return true
	}
	return false
}

// wordCount counts whitespace-separated words of the raw text.
func wordCount(text string) int {
	return len(strings.Fields(text))
}
