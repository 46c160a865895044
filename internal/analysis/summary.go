package analysis

const (
	SummaryPositive      = "You expressed positive emotions in this entry."
	SummaryNegative      = "You expressed negative emotions in this entry."
	SummaryNeutral       = "Your entry reflects a neutral emotional tone."
	SummaryStress        = "Stress appears to be on your mind."
	SummaryWork          = "Work seems to be a significant topic."
	SummaryRelationships = "Relationships play an important role in your thoughts."
	SummaryAchievement   = "You're celebrating an accomplishment!"
	SummaryGratitude     = "You're expressing gratitude, which is wonderful."
	SummaryLong          = "You had a lot to share today."
	SummaryBrief         = "You kept it brief today."
)

const (
	summaryToneThreshold = 0.3
	longEntryWords       = 50
	briefEntryWords      = 10
)

var summaryTriggerLines = []struct {
	trigger string
	line    string
}{
	{TriggerStress, SummaryStress},
	{TriggerWork, SummaryWork},
	{TriggerRelationships, SummaryRelationships},
	{TriggerAchievement, SummaryAchievement},
	{TriggerGratitude, SummaryGratitude},
}

// Summarize builds the entry summary with a fixed rule cascade: one tone
// line, then one line per notable trigger, then a length remark for very
// long or very short entries. The result has 1 to 7 lines.
func Summarize(text string, sentiment float64, triggers []string) []string {
	out := make([]string, 0, 7)

	switch {
	case sentiment > summaryToneThreshold:
		out = append(out, SummaryPositive)
	case sentiment < -summaryToneThreshold:
		out = append(out, SummaryNegative)
	default:
		out = append(out, SummaryNeutral)
	}

	for _, r := range summaryTriggerLines {
		if HasTrigger(triggers, r.trigger) {
			out = append(out, r.line)
		}
	}

	switch n := wordCount(text); {
	case n > longEntryWords:
		out = append(out, SummaryLong)
	case n < briefEntryWords:
		out = append(out, SummaryBrief)
	}
	return out
}
