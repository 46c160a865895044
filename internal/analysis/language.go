package analysis

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"golang.org/x/text/language"
)

// DefaultLanguage is used whenever detection fails or yields a language
// outside the allow-list.
const DefaultLanguage = common.DefaultLanguage

var supportedLanguages = []language.Tag{
	language.English,
	language.Spanish,
	language.French,
	language.German,
	language.Italian,
	language.Portuguese,
	language.Chinese,
	language.Japanese,
	language.Korean,
}

var supportedBases = func() map[string]bool {
	m := make(map[string]bool, len(supportedLanguages))
	for _, t := range supportedLanguages {
		b, _ := t.Base()
		m[b.String()] = true
	}
	return m
}()

// BaseLanguage canonicalizes a BCP 47 tag ("pt-BR", "zh_Hant") to its base
// language code, or "" if code does not parse.
func BaseLanguage(code string) string {
	t, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return ""
	}
	b, _ := t.Base()
	return b.String()
}

func IsSupportedLanguage(code string) bool {
	return supportedBases[BaseLanguage(code)]
}

// ResolveLanguage returns code when it is supported, DefaultLanguage
// otherwise.
func ResolveLanguage(code string, ok bool) string {
	if !ok || !IsSupportedLanguage(code) {
		return DefaultLanguage
	}
	return BaseLanguage(code)
}

const minDetectLen = 10

// LanguageDetector identifies the dominant language of a text. Scripts with
// their own blocks are recognized by rune class; Latin-script languages are
// scored by common-word patterns, trigram frequencies and telltale letters.
type LanguageDetector struct {
	patterns map[string]*regexp.Regexp
	ngrams   map[string]map[string]float64
}

func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{
		patterns: map[string]*regexp.Regexp{
			"en": regexp.MustCompile(`\b(the|and|that|have|for|not|with|you|this|but|was|from|they|today|feel)\b`),
			"es": regexp.MustCompile(`\b(que|de|no|la|el|es|en|un|por|con|como|para|pero|muy|estoy|hoy)\b`),
			"fr": regexp.MustCompile(`\b(le|et|les|des|un|une|il|est|pour|dans|ce|je|suis|très|aujourd)\b`),
			"de": regexp.MustCompile(`\b(der|die|und|in|den|von|zu|das|mit|sich|ist|ich|nicht|heute|sehr)\b`),
			"it": regexp.MustCompile(`\b(il|di|che|non|per|una|sono|mi|ho|della|molto|oggi|anche)\b`),
			"pt": regexp.MustCompile(`\b(que|não|uma|com|para|os|estou|muito|hoje|também|mas|foi|meu)\b`),
			"nl": regexp.MustCompile(`\b(de|het|een|en|van|ik|niet|dat|zijn|met|voor|vandaag|heel)\b`),
		},
		ngrams: map[string]map[string]float64{
			"en": {"the": 0.15, "and": 0.08, "ing": 0.06, "ion": 0.05, "tio": 0.04, "ent": 0.03, "for": 0.03, "her": 0.03},
			"es": {"que": 0.12, "ión": 0.08, "ado": 0.06, "con": 0.05, "est": 0.04, "par": 0.04, "del": 0.03, "los": 0.03},
			"fr": {"les": 0.10, "ent": 0.08, "ion": 0.07, "des": 0.06, "que": 0.05, "ait": 0.04, "eur": 0.04, "our": 0.03},
			"de": {"der": 0.12, "und": 0.08, "die": 0.07, "ung": 0.06, "ich": 0.05, "ein": 0.04, "sch": 0.04, "cht": 0.03},
			"it": {"che": 0.10, "ell": 0.06, "del": 0.05, "per": 0.05, "ato": 0.04, "non": 0.04, "zio": 0.04, "gli": 0.03},
			"pt": {"que": 0.10, "ção": 0.08, "ent": 0.05, "ado": 0.05, "com": 0.04, "não": 0.04, "nte": 0.03, "ões": 0.03},
			"nl": {"een": 0.10, "het": 0.08, "van": 0.07, "ijk": 0.05, "oor": 0.04, "aar": 0.04, "den": 0.03, "sch": 0.03},
		},
	}
}

// Detect returns the dominant language code of text, or ok=false when it
// cannot tell (too short, no letters, no signal).
func (d *LanguageDetector) Detect(text string) (code string, ok bool) {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minDetectLen {
		return "", false
	}

	var letters, han, kana, hangul, cyrillic, arabic int
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		switch {
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			kana++
		case unicode.Is(unicode.Hangul, r):
			hangul++
		case unicode.Is(unicode.Han, r):
			han++
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case unicode.Is(unicode.Arabic, r):
			arabic++
		}
	}
	if letters == 0 {
		return "", false
	}

	half := letters / 2
	switch {
	case kana > 0 && kana+han > half:
		return "ja", true
	case hangul > half:
		return "ko", true
	case han > half:
		return "zh", true
	case cyrillic > half:
		return "ru", true
	case arabic > half:
		return "ar", true
	}

	return d.detectLatin(strings.ToLower(text))
}

func (d *LanguageDetector) detectLatin(text string) (string, bool) {
	scores := make(map[string]float64, len(d.patterns))

	for lang, p := range d.patterns {
		scores[lang] += float64(len(p.FindAllString(text, -1))) * 0.1
	}

	trigrams := extractTrigrams(text)
	for lang, expected := range d.ngrams {
		for tri, freq := range trigrams {
			if e, ok := expected[tri]; ok {
				scores[lang] += freq * e
			}
		}
	}

	for lang, s := range scoreByCharacters(text) {
		scores[lang] += s
	}

	best, bestScore := "", 0.0
	for _, lang := range []string{"en", "es", "fr", "de", "it", "pt", "nl"} {
		if scores[lang] > bestScore {
			best, bestScore = lang, scores[lang]
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

func extractTrigrams(text string) map[string]float64 {
	out := make(map[string]float64)
	total := 0

	runes := []rune(text)
	for i := 0; i+3 <= len(runes); i++ {
		if !unicode.IsLetter(runes[i]) || !unicode.IsLetter(runes[i+1]) || !unicode.IsLetter(runes[i+2]) {
			continue
		}
		out[string(runes[i:i+3])]++
		total++
	}
	for k := range out {
		out[k] /= float64(total)
	}
	return out
}

func scoreByCharacters(text string) map[string]float64 {
	counts := make(map[rune]int)
	total := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			counts[r]++
			total++
		}
	}

	scores := make(map[string]float64)
	if total == 0 {
		return scores
	}
	for r, n := range counts {
		f := float64(n) / float64(total)
		switch r {
		case 'ñ':
			scores["es"] += f * 10
		case 'ç':
			scores["fr"] += f * 4
			scores["pt"] += f * 4
		case 'ã', 'õ':
			scores["pt"] += f * 10
		case 'ü', 'ö', 'ä', 'ß':
			scores["de"] += f * 8
		case 'è', 'ê', 'à':
			scores["fr"] += f * 3
			scores["it"] += f * 2
		case 'ì', 'ò':
			scores["it"] += f * 8
		case 'w':
			scores["en"] += f * 3
			scores["de"] += f * 2
			scores["nl"] += f * 2
		case 'k':
			scores["de"] += f * 2
			scores["nl"] += f * 2
			scores["en"] += f
		}
	}
	return scores
}
