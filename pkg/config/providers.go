package config

import "os"

// ProviderConfig holds the completion settings for one provider. The API key
// is read from the named environment variable, never stored in the file.
type ProviderConfig struct {
	Model       string  `mapstructure:"model"`
	APIKeyEnv   string  `mapstructure:"api_key_env"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

func (c ProviderConfig) APIKey() string {
	return os.Getenv(c.APIKeyEnv)
}

type ProvidersConfig struct {
	Anthropic ProviderConfig `mapstructure:"anthropic"`
	OpenAI    ProviderConfig `mapstructure:"openai"`
	Gemini    ProviderConfig `mapstructure:"gemini"`
}
