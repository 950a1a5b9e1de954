package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQualityReport(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expectError bool
		expected    *QualityReport
	}{
		{
			name: "plain json",
			raw:  `{"score": 87.5, "feedback": "solid coverage", "suggestions": ["add retention table"]}`,
			expected: &QualityReport{
				Score:       87.5,
				Feedback:    "solid coverage",
				Suggestions: []string{"add retention table"},
			},
		},
		{
			name: "json wrapped in code fence",
			raw:  "```json\n{\"score\": 62, \"feedback\": \"thin on specifics\", \"suggestions\": []}\n```",
			expected: &QualityReport{
				Score:    62,
				Feedback: "thin on specifics",
			},
		},
		{
			name: "bare fence without language tag",
			raw:  "```\n{\"score\": 91, \"feedback\": \"ready for review\"}\n```",
			expected: &QualityReport{
				Score:    91,
				Feedback: "ready for review",
			},
		},
		{
			name:        "not json at all",
			raw:         "I would rate this document very highly.",
			expectError: true,
		},
		{
			name:        "score out of range",
			raw:         `{"score": 140, "feedback": "impossible"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := parseQualityReport(tt.raw)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, report)
		})
	}
}
