package factory

import (
	"context"
	"fmt"

	"github.com/complyport/compliance-engine/pkg/domain/generation"
	"github.com/complyport/compliance-engine/pkg/infra/providers"
	"github.com/complyport/compliance-engine/pkg/infra/providers/anthropic"
	"github.com/complyport/compliance-engine/pkg/infra/providers/gemini"
	"github.com/complyport/compliance-engine/pkg/infra/providers/openai"
)

//go:generate mockery --name=ProviderLocator --dir=. --output=./mocks --filename=provider_locator_mock.go --case=underscore --with-expecter

type ProviderLocator interface {
	Get(provider generation.Provider) (providers.Client, error)
}

type providerLocator struct {
	clients map[generation.Provider]providers.Client
}

// NewProviderLocator constructs every concrete provider client once. The
// switch over the provider enum stays exhaustive so that adding or removing
// a provider is a compile-time-checked change.
func NewProviderLocator(ctx context.Context, geminiAPIKey string) (ProviderLocator, error) {
	geminiClient, err := gemini.NewGeminiClient(ctx, geminiAPIKey)
	if err != nil {
		return nil, err
	}
	return &providerLocator{
		clients: map[generation.Provider]providers.Client{
			generation.ProviderAnthropic: anthropic.NewAnthropicClient(),
			generation.ProviderOpenAI:    openai.NewOpenaiClient(),
			generation.ProviderGemini:    geminiClient,
		},
	}, nil
}

func (f *providerLocator) Get(provider generation.Provider) (providers.Client, error) {
	switch provider {
	case generation.ProviderAnthropic, generation.ProviderOpenAI, generation.ProviderGemini:
		return f.clients[provider], nil
	case generation.ProviderAuto:
		return nil, fmt.Errorf("auto provider must be resolved before lookup")
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
