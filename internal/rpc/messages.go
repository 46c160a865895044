package rpc

import (
	"github.com/dmitrijs2005/moodkeeper/internal/analysis"
	"github.com/dmitrijs2005/moodkeeper/internal/journal"
)

type AnalyzeRequest struct {
	Text string `json:"text"`
}

type AnalyzeResponse struct {
	Result analysis.FullAnalysisResult `json:"result"`
}

type CreateEntryRequest struct {
	Text             string                   `json:"text"`
	Health           journal.HealthCorrelates `json:"health"`
	VoiceTranscribed bool                     `json:"voiceTranscribed"`
}

type CreateEntryResponse struct {
	ID     string                      `json:"id"`
	Result analysis.FullAnalysisResult `json:"result"`
}

type ListEntriesRequest struct{}

// ListEntriesResponse carries the readable entries, newest first, and the
// ids of records that could not be decrypted.
type ListEntriesResponse struct {
	Entries []journal.JournalEntry `json:"entries"`
	Failed  []string               `json:"failed,omitempty"`
}

type DeleteEntryRequest struct {
	ID string `json:"id"`
}

type DeleteEntryResponse struct{}
