package journal

import (
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/analysis"
)

// HealthCorrelates are supplied by an external health-data provider and
// merged into an entry by the caller. Nothing here computes them.
type HealthCorrelates struct {
	SleepHours     *float64 `json:"sleepHours,omitempty"`
	StepCount      *int     `json:"stepCount,omitempty"`
	WorkoutMinutes *float64 `json:"workoutMinutes,omitempty"`
	MoodValue      *float64 `json:"moodValue,omitempty"`
	MoodCategory   string   `json:"moodCategory,omitempty"`
}

// JournalEntry is the decrypted view of a record. It only ever lives in
// memory.
type JournalEntry struct {
	ID               string           `json:"id"`
	Text             string           `json:"text"`
	Sentiment        *float64         `json:"sentiment,omitempty"`
	Keywords         []string         `json:"keywords"`
	Summary          []string         `json:"summary"`
	Triggers         []string         `json:"triggers"`
	WellnessNudge    string           `json:"wellnessNudge,omitempty"`
	Health           HealthCorrelates `json:"health"`
	DetectedLanguage string           `json:"detectedLanguage"`
	VoiceTranscribed bool             `json:"voiceTranscribed"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// EncryptedJournalEntry is the at-rest record. Text, keywords, summary,
// nudge and triggers are sealed blobs (base64 in the JSON document); list
// fields are sealed as one JSON array each. Sentiment, health correlates,
// language and timestamps stay in the clear.
type EncryptedJournalEntry struct {
	ID               string           `json:"id"`
	Text             []byte           `json:"text"`
	Keywords         []byte           `json:"keywords,omitempty"`
	Summary          []byte           `json:"summary,omitempty"`
	Triggers         []byte           `json:"triggers,omitempty"`
	WellnessNudge    []byte           `json:"wellnessNudge,omitempty"`
	Sentiment        *float64         `json:"sentiment,omitempty"`
	Health           HealthCorrelates `json:"health"`
	DetectedLanguage string           `json:"detectedLanguage"`
	VoiceTranscribed bool             `json:"voiceTranscribed"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// NewEntry carries the fields of an entry to create.
type NewEntry struct {
	Text             string
	Sentiment        *float64
	Keywords         []string
	Summary          []string
	Triggers         []string
	WellnessNudge    string
	Health           HealthCorrelates
	DetectedLanguage string
	VoiceTranscribed bool
}

// NewEntryFromAnalysis fills a NewEntry from the pipeline output for text.
func NewEntryFromAnalysis(text string, r analysis.FullAnalysisResult) NewEntry {
	score := r.Sentiment.Score
	return NewEntry{
		Text:             text,
		Sentiment:        &score,
		Keywords:         r.Keywords,
		Summary:          r.Summary,
		Triggers:         r.Triggers,
		WellnessNudge:    r.WellnessNudge,
		DetectedLanguage: r.Language,
	}
}

const collectionVersion = 1

type collection struct {
	Version int                     `json:"version"`
	Entries []EncryptedJournalEntry `json:"entries"`
}
