package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysis_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedScore Score
		criteria      map[string]string
		extra         []string
		expectError   bool
	}{
		{
			name:          "numeric scores",
			input:         `{"overallScore": 72, "criteriaScores": {"activityLevel": 80}, "summary": "Solid."}`,
			expectedScore: 72,
			criteria:      map[string]string{"activityLevel": `80`},
		},
		{
			name:          "criteria given as objects",
			input:         `{"overallScore": 64, "criteriaScores": {"activityLevel": {"score": 80, "comment": "Active"}}}`,
			expectedScore: 64,
			criteria:      map[string]string{"activityLevel": `{"score": 80, "comment": "Active"}`},
		},
		{
			name:          "score given as a string",
			input:         `{"overallScore": "78"}`,
			expectedScore: 78,
		},
		{
			name:          "score given as a fraction of 100",
			input:         `{"overallScore": " 55/100 "}`,
			expectedScore: 55,
		},
		{
			name:          "unknown fields are kept and a model rank is ignored",
			input:         `{"overallScore": 90, "recommendations": ["write tests"], "rank": "S"}`,
			expectedScore: 90,
			extra:         []string{"recommendations"},
		},
		{
			name:        "score that is not a number",
			input:       `{"overallScore": "high"}`,
			expectError: true,
		},
		{
			name:        "strengths of the wrong type",
			input:       `{"overallScore": 50, "strengths": "many"}`,
			expectError: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var a Analysis
			err := json.Unmarshal([]byte(tc.input), &a)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedScore, a.OverallScore)
			assert.Nil(t, a.Rank)
			for key, want := range tc.criteria {
				assert.JSONEq(t, want, string(a.CriteriaScores[key]))
			}
			assert.Len(t, a.Extra, len(tc.extra))
			for _, key := range tc.extra {
				assert.Contains(t, a.Extra, key)
			}
		})
	}
}

func TestAnalysis_MarshalJSON_KeepsExtraFields(t *testing.T) {
	var a Analysis
	require.NoError(t, json.Unmarshal([]byte(`{"overallScore": "81", "summary": "Great.", "badges": ["early adopter"]}`), &a))
	rank := RankForScore(float64(a.OverallScore))
	a.Rank = &rank

	out, err := json.Marshal(&a)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, 81.0, decoded["overallScore"])
	assert.Equal(t, "Great.", decoded["summary"])
	assert.Equal(t, []any{"early adopter"}, decoded["badges"])
	assert.Equal(t, "Legend", decoded["rank"].(map[string]any)["rank"])
}
