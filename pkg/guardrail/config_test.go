package guardrail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig(map[string]interface{}{
		"extra_high_risk_keywords": []string{"leak the database"},
		"pii_entities": []map[string]interface{}{
			{"entity": "phone", "enabled": false},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"leak the database"}, cfg.ExtraHighRiskKeywords)
	require.Len(t, cfg.PIIEntities, 1)
	assert.Equal(t, "phone", cfg.PIIEntities[0].Entity)
	assert.False(t, cfg.PIIEntities[0].Enabled)
}

func TestDecodeConfig_UnknownEntity(t *testing.T) {
	_, err := DecodeConfig(map[string]interface{}{
		"pii_entities": []map[string]interface{}{
			{"entity": "passport", "enabled": true},
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "passport")
}

func TestKeywordModerationScorer(t *testing.T) {
	scorer := NewKeywordModerationScorer()

	flags := scorer.Score("they threaten to attack the office", Detection{PIITypes: []string{"email"}})

	assert.Equal(t, 0.8, flags[CategoryHarassment])
	assert.Equal(t, 0.8, flags[CategoryViolence])
	assert.Equal(t, 1.0, flags[CategoryPII])
	assert.Equal(t, 0.0, flags[CategoryHate])
}
