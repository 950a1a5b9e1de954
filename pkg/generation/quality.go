package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/valyala/fastjson"

	domain "github.com/complyport/compliance-engine/pkg/domain/generation"
	"github.com/complyport/compliance-engine/pkg/infra/providers"
	"github.com/complyport/compliance-engine/pkg/infra/providers/factory"
)

type QualityReport struct {
	Score       float64  `json:"score"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}

//go:generate mockery --name=QualityAnalyzer --dir=. --output=./mocks --filename=quality_analyzer_mock.go --case=underscore --with-expecter

// QualityAnalyzer scores generated content against a compliance framework.
// A failing analyzer is non-fatal: the orchestrator simply omits the quality
// fields from the result.
type QualityAnalyzer interface {
	Analyze(ctx context.Context, content, framework string) (*QualityReport, error)
}

const qualityRubricPrompt = `You are a compliance document reviewer. Score the document below against the %s framework.
Reply with a single JSON object and nothing else:
{"score": <0-100>, "feedback": "<one paragraph>", "suggestions": ["<improvement>", ...]}

Document:
%s`

// llmQualityAnalyzer delegates scoring to a provider and parses the JSON
// reply leniently: models routinely wrap it in code fences.
type llmQualityAnalyzer struct {
	locator  factory.ProviderLocator
	provider domain.Provider
	settings *providers.Config
}

func NewLLMQualityAnalyzer(locator factory.ProviderLocator, provider domain.Provider, settings *providers.Config) QualityAnalyzer {
	return &llmQualityAnalyzer{
		locator:  locator,
		provider: provider,
		settings: settings,
	}
}

func (a *llmQualityAnalyzer) Analyze(ctx context.Context, content, framework string) (*QualityReport, error) {
	client, err := a.locator.Get(a.provider)
	if err != nil {
		return nil, err
	}

	resp, err := client.Complete(ctx, a.settings, fmt.Sprintf(qualityRubricPrompt, framework, content))
	if err != nil {
		return nil, fmt.Errorf("quality analysis call failed: %w", err)
	}

	return parseQualityReport(resp.Response)
}

func parseQualityReport(raw string) (*QualityReport, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var p fastjson.Parser
	v, err := p.Parse(cleaned)
	if err != nil {
		return nil, fmt.Errorf("quality analysis returned malformed JSON: %w", err)
	}

	report := &QualityReport{
		Score:    v.GetFloat64("score"),
		Feedback: string(v.GetStringBytes("feedback")),
	}
	for _, s := range v.GetArray("suggestions") {
		if b, err := s.StringBytes(); err == nil {
			report.Suggestions = append(report.Suggestions, string(b))
		}
	}
	if report.Score < 0 || report.Score > 100 {
		return nil, fmt.Errorf("quality score out of range: %f", report.Score)
	}
	return report, nil
}
