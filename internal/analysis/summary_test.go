package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_HappyBriefEntry(t *testing.T) {
	got := Summarize("I am so happy today, great news!", 0.6, nil)

	assert.Equal(t, []string{SummaryPositive, SummaryBrief}, got)
	for _, line := range []string{SummaryStress, SummaryWork, SummaryRelationships, SummaryAchievement, SummaryGratitude} {
		assert.NotContains(t, got, line)
	}
}

func TestSummarize(t *testing.T) {
	medium := strings.Repeat("word ", 20)
	long := strings.Repeat("word ", 51)

	tests := []struct {
		name      string
		text      string
		sentiment float64
		triggers  []string
		want      []string
	}{
		{"neutral medium", medium, 0, nil, []string{SummaryNeutral}},
		{"negative long", long, -0.5, nil, []string{SummaryNegative, SummaryLong}},
		{"tone boundary is neutral", medium, 0.3, nil, []string{SummaryNeutral}},
		{"negative boundary is neutral", medium, -0.3, nil, []string{SummaryNeutral}},
		{"exactly fifty words adds nothing", strings.Repeat("w ", 50), 0, nil, []string{SummaryNeutral}},
		{"exactly ten words adds nothing", strings.Repeat("w ", 10), 0, nil, []string{SummaryNeutral}},
		{
			"every rule fires in order",
			long, 0.9,
			[]string{TriggerGratitude, TriggerAchievement, TriggerRelationships, TriggerWork, TriggerStress},
			[]string{SummaryPositive, SummaryStress, SummaryWork, SummaryRelationships, SummaryAchievement, SummaryGratitude, SummaryLong},
		},
		{"unrelated triggers add nothing", medium, 0, []string{TriggerNature, TriggerHealth}, []string{SummaryNeutral}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.text, tt.sentiment, tt.triggers))
		})
	}
}

func TestNudge(t *testing.T) {
	tests := []struct {
		name      string
		sentiment float64
		triggers  []string
		want      string
	}{
		{"stress wins", 0.8, []string{TriggerAchievement, TriggerStress}, NudgeBreathing},
		{"negative work", -0.2, []string{TriggerWork}, NudgeBreak},
		{"positive work falls through", 0.5, []string{TriggerWork}, ""},
		{"health", 0, []string{TriggerHealth}, NudgeRest},
		{"lonely", -0.4, []string{TriggerSocial}, NudgeReachOut},
		{"financial", 0, []string{TriggerFinancial}, NudgePlan},
		{"just sad", -0.6, nil, NudgeKindness},
		{"achievement", 0.6, []string{TriggerAchievement}, NudgeCelebrate},
		{"gratitude", 0.6, []string{TriggerGratitude}, NudgeGratitude},
		{"nothing", 0.2, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nudge(tt.sentiment, tt.triggers))
		})
	}
}
