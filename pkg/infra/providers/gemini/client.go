package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/complyport/compliance-engine/pkg/infra/providers"
)

const defaultModel = "gemini-2.0-flash"

type client struct {
	genaiClient *genai.Client
}

func NewGeminiClient(ctx context.Context, apiKey string) (providers.Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &client{
		genaiClient: genaiClient,
	}, nil
}

func (c *client) Complete(
	ctx context.Context,
	config *providers.Config,
	prompt string,
) (*providers.CompletionResponse, error) {
	model := config.Model
	if model == "" {
		model = defaultModel
	}

	generateCfg := &genai.GenerateContentConfig{}
	if config.SystemPrompt != "" {
		generateCfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: config.SystemPrompt}},
			Role:  "system",
		}
	}

	result, err := c.genaiClient.Models.GenerateContent(
		ctx,
		model,
		genai.Text(prompt),
		generateCfg,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	responseText := strings.TrimSpace(result.Text())
	if responseText == "" {
		return nil, fmt.Errorf("no completions returned")
	}

	resp := &providers.CompletionResponse{
		ID:       fmt.Sprintf("gemini-%d", time.Now().UnixNano()),
		Model:    model,
		Response: responseText,
	}
	if result.UsageMetadata != nil {
		resp.Usage = providers.Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}

	return resp, nil
}
