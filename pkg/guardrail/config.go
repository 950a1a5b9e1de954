package guardrail

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

type PIIEntityConfig struct {
	Entity  string `mapstructure:"entity"`
	Enabled bool   `mapstructure:"enabled"`
}

// Config tunes the guardrail pipeline. All fields are optional; zero values
// fall back to the built-in keyword lists and thresholds.
type Config struct {
	ExtraHighRiskKeywords     []string          `mapstructure:"extra_high_risk_keywords"`
	ExtraModerateRiskKeywords []string          `mapstructure:"extra_moderate_risk_keywords"`
	PIIEntities               []PIIEntityConfig `mapstructure:"pii_entities"`
}

// DecodeConfig decodes loosely-typed settings (e.g. straight out of a YAML
// map) into a Config.
func DecodeConfig(settings map[string]interface{}) (*Config, error) {
	var cfg Config
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode guardrail config: %w", err)
	}
	for _, e := range cfg.PIIEntities {
		if _, ok := piiPatterns[PIIEntity(e.Entity)]; !ok {
			return nil, fmt.Errorf("unknown pii entity: %s", e.Entity)
		}
	}
	return &cfg, nil
}
