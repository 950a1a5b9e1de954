package providers

import (
	"context"
)

type Config struct {
	APIKey       string  `json:"api_key"`
	Model        string  `json:"model"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter

// Client is the pluggable per-provider completion call. Implementations may
// fail on network, auth or rate-limit errors; the orchestrator survives that
// through the circuit breaker and the fallback ring.
type Client interface {
	Complete(ctx context.Context, config *Config, prompt string) (*CompletionResponse, error)
}
