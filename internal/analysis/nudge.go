package analysis

const (
	NudgeBreathing = "Try a few minutes of slow, deep breathing to ease the pressure."
	NudgeBreak     = "Consider stepping away from work for a short break."
	NudgeRest      = "Your body may need rest. Be gentle with yourself today."
	NudgeReachOut  = "Reaching out to someone you trust could help."
	NudgePlan      = "Writing down one small, concrete money step can make things feel lighter."
	NudgeKindness  = "It's okay to have hard days. Treat yourself with kindness."
	NudgeCelebrate = "Take a moment to celebrate what you achieved."
	NudgeGratitude = "Jot down one more thing you're grateful for."
)

// Nudge picks one wellness suggestion for an entry, or "" when nothing
// calls for one. Concerns outrank tone, tone outranks positive triggers.
func Nudge(sentiment float64, triggers []string) string {
	switch {
	case HasTrigger(triggers, TriggerStress):
		return NudgeBreathing
	case HasTrigger(triggers, TriggerWork) && sentiment < 0:
		return NudgeBreak
	case HasTrigger(triggers, TriggerHealth):
		return NudgeRest
	case HasTrigger(triggers, TriggerRelationships) && sentiment < 0,
		HasTrigger(triggers, TriggerSocial) && sentiment < 0:
		return NudgeReachOut
	case HasTrigger(triggers, TriggerFinancial):
		return NudgePlan
	case sentiment < -summaryToneThreshold:
		return NudgeKindness
	case HasTrigger(triggers, TriggerAchievement):
		return NudgeCelebrate
	case HasTrigger(triggers, TriggerGratitude):
		return NudgeGratitude
	}
	return ""
}
