package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare object",
			in:   `{"score": 80}`,
			want: `{"score": 80}`,
		},
		{
			name: "fenced json block",
			in:   "```json\n{\"score\": 80}\n```",
			want: `{"score": 80}`,
		},
		{
			name: "fence without language tag",
			in:   "```\n[{\"title\": \"a\"}]\n```",
			want: `[{"title": "a"}]`,
		},
		{
			name: "commentary around object",
			in:   "Here is the analysis you asked for:\n{\"score\": 80}\nHope this helps!",
			want: `{"score": 80}`,
		},
		{
			name: "array before object text",
			in:   `[{"title": "a"}, {"title": "b"}]`,
			want: `[{"title": "a"}, {"title": "b"}]`,
		},
		{
			name: "no json at all",
			in:   "I could not find any postings.",
			want: "I could not find any postings.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}

func TestParseAnalysis(t *testing.T) {
	a, err := parseAnalysis("```json\n" + `{
		"score": 85,
		"verdict": "Strong match",
		"isHighValue": true,
		"matchedKeywords": ["figma", "design systems"],
		"industry": "Fintech",
		"workPattern": "Hybrid"
	}` + "\n```")
	require.NoError(t, err)
	assert.Equal(t, 85, a.Score)
	assert.Equal(t, "Strong match", a.Verdict)
	assert.True(t, a.IsHighValue)
	assert.Equal(t, []string{"figma", "design systems"}, a.MatchedKeywords)
}

func TestParseAnalysis_ClampsScore(t *testing.T) {
	a, err := parseAnalysis(`{"score": 250, "verdict": "x"}`)
	require.NoError(t, err)
	assert.Equal(t, 100, a.Score)

	a, err = parseAnalysis(`{"score": -5, "verdict": "x"}`)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Score)
}

func TestParseAnalysis_NilKeywordsBecomeEmptyList(t *testing.T) {
	a, err := parseAnalysis(`{"score": 10, "verdict": "thin posting"}`)
	require.NoError(t, err)
	require.NotNil(t, a.MatchedKeywords)
	assert.Empty(t, a.MatchedKeywords)
}

func TestParseAnalysis_MalformedIsAnError(t *testing.T) {
	_, err := parseAnalysis("the model rambled instead of answering")
	require.Error(t, err)
}
