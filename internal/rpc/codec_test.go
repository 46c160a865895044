package rpc

import (
	"testing"

	"github.com/dmitrijs2005/moodkeeper/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodecCarriesAnalysis(t *testing.T) {
	c := jsonCodec{}

	in := &AnalyzeResponse{Result: analysis.FullAnalysisResult{
		Sentiment: analysis.SentimentResult{
			Score: -0.4,
			Label: analysis.Negative,
			Probabilities: map[analysis.Label]float64{
				analysis.Positive: 0.1, analysis.Negative: 0.8, analysis.Neutral: 0.1,
			},
			Method: analysis.MethodHeuristic,
		},
		Language: "en",
		Keywords: []string{"deadline"},
		Triggers: []string{analysis.TriggerWork},
		Summary:  []string{analysis.SummaryNegative},
	}}

	b, err := c.Marshal(in)
	require.NoError(t, err)

	out := &AnalyzeResponse{}
	require.NoError(t, c.Unmarshal(b, out))
	assert.Equal(t, in.Result.Sentiment.Probabilities, out.Result.Sentiment.Probabilities)
	assert.Equal(t, in.Result.Triggers, out.Result.Triggers)
	assert.Empty(t, out.Result.WellnessNudge)
}

func TestServiceDescMethods(t *testing.T) {
	names := make([]string, 0, len(JournalServiceDesc.Methods))
	for _, m := range JournalServiceDesc.Methods {
		names = append(names, m.MethodName)
	}
	assert.Equal(t, []string{"Analyze", "CreateEntry", "ListEntries", "DeleteEntry"}, names)
	assert.Equal(t, "/moodkeeper.JournalService/Analyze", MethodAnalyze)
}
