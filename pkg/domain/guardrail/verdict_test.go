package guardrail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAction_Permissive(t *testing.T) {
	assert.True(t, ActionAllowed.Permissive())
	assert.True(t, ActionRedacted.Permissive())
	assert.True(t, ActionFlagged.Permissive())
	assert.False(t, ActionBlocked.Permissive())
	assert.False(t, ActionHumanReviewRequired.Permissive())
	assert.False(t, Action("unknown").Permissive())
}

func TestSeverityForScore(t *testing.T) {
	tests := []struct {
		score    float64
		expected Severity
	}{
		{0, SeverityLow},
		{3.5, SeverityLow},
		{4, SeverityMedium},
		{4.5, SeverityMedium},
		{6, SeverityHigh},
		{6.5, SeverityHigh},
		{8, SeverityHigh},
		{8.5, SeverityCritical},
		{10, SeverityCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SeverityForScore(tt.score), "score %v", tt.score)
	}
}
