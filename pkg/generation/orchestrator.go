package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/complyport/compliance-engine/pkg/config"
	domain "github.com/complyport/compliance-engine/pkg/domain/generation"
	guarddomain "github.com/complyport/compliance-engine/pkg/domain/guardrail"
	"github.com/complyport/compliance-engine/pkg/domain/template"
	"github.com/complyport/compliance-engine/pkg/infra/breaker"
	"github.com/complyport/compliance-engine/pkg/infra/metrics"
	"github.com/complyport/compliance-engine/pkg/infra/providers"
	"github.com/complyport/compliance-engine/pkg/infra/providers/factory"
)

// BlockedMessage is the only text a caller sees for a rejected request. It
// never echoes the offending content or internal risk scores.
const BlockedMessage = "The request was blocked by content safety policies."

const systemPrompt = "You are a compliance documentation specialist. Produce complete, " +
	"professionally structured documents ready for legal review. Do not invent " +
	"company facts beyond the provided context."

//go:generate mockery --name=GuardrailChecker --dir=. --output=./mocks --filename=guardrail_checker_mock.go --case=underscore --with-expecter

// GuardrailChecker is the pre/post safety check applied around every
// provider call. Implementations never return errors; they fail secure.
type GuardrailChecker interface {
	Check(ctx context.Context, prompt, response string, checkCtx guarddomain.CheckContext) *guarddomain.Verdict
}

// ContentResult is the outcome of free-form content generation.
type ContentResult struct {
	Result        *domain.Result       `json:"result,omitempty"`
	Verdict       *guarddomain.Verdict `json:"guardrail_verdict,omitempty"`
	Blocked       bool                 `json:"blocked"`
	BlockedReason string               `json:"blocked_reason,omitempty"`
}

// Orchestrator is the single entry point for AI generation. It mediates
// every provider call through the guardrail pipeline, per-provider circuit
// breakers and the fallback ring. Construct one per process and share it.
type Orchestrator struct {
	logger   *logrus.Logger
	cfg      *config.Config
	locator  factory.ProviderLocator
	breakers *breaker.Registry
	checker  GuardrailChecker
	quality  QualityAnalyzer
	metrics  *metrics.Engine
}

func NewOrchestrator(
	logger *logrus.Logger,
	cfg *config.Config,
	locator factory.ProviderLocator,
	breakers *breaker.Registry,
	checker GuardrailChecker,
	quality QualityAnalyzer,
	engineMetrics *metrics.Engine,
) *Orchestrator {
	return &Orchestrator{
		logger:   logger,
		cfg:      cfg,
		locator:  locator,
		breakers: breakers,
		checker:  checker,
		quality:  quality,
		metrics:  engineMetrics,
	}
}

// GenerateDocument generates one compliance document from a template. The
// prompt is pre-checked before any provider is contacted; the raw output is
// post-checked before it is returned.
func (o *Orchestrator) GenerateDocument(
	ctx context.Context,
	tmpl template.Template,
	profile domain.CompanyProfile,
	target domain.Provider,
	opts domain.Options,
) (*domain.Result, error) {
	start := time.Now()
	requestID := uuid.New().String()
	prompt := buildPrompt(tmpl, profile)

	checkCtx := guarddomain.CheckContext{
		OrganizationID: profile.OrganizationID,
		RequestID:      requestID,
	}
	applyGuardrailContext(&checkCtx, opts.GuardrailContext)

	if opts.EnableGuardrails {
		verdict := o.CheckGuardrails(ctx, prompt, "", checkCtx)
		if !verdict.Allowed {
			return nil, fmt.Errorf("request %s: %w", requestID, domain.ErrBlockedByGuardrails)
		}
		if verdict.SanitizedPrompt != "" {
			prompt = verdict.SanitizedPrompt
		}
	}

	provider := SelectProvider(target, tmpl.Category)
	content, usedProvider, err := o.callWithFallback(ctx, provider, prompt, "", requestID)
	if err != nil {
		return nil, err
	}

	if opts.EnableGuardrails {
		checkCtx.Provider = usedProvider.String()
		verdict := o.CheckGuardrails(ctx, prompt, content, checkCtx)
		if !verdict.Allowed {
			return nil, fmt.Errorf("request %s: %w", requestID, domain.ErrBlockedByGuardrails)
		}
		if verdict.SanitizedResponse != "" {
			content = verdict.SanitizedResponse
		}
	}

	result := &domain.Result{
		Content:      content,
		ProviderUsed: usedProvider,
		RequestID:    requestID,
		Duration:     time.Since(start),
	}

	if opts.IncludeQualityAnalysis {
		o.attachQuality(ctx, result, tmpl.Framework)
	}

	o.metrics.GenerationDuration.WithLabelValues(usedProvider.String()).Observe(result.Duration.Seconds())
	return result, nil
}

// GenerateBatch generates the full fixed template list for a framework,
// sequentially and in template-list order. Progress is emitted once per item
// before generating it, with strictly increasing completed counts. A failed
// item becomes an error placeholder; the batch continues.
func (o *Orchestrator) GenerateBatch(
	ctx context.Context,
	framework string,
	profile domain.CompanyProfile,
	target domain.Provider,
	opts domain.Options,
	onProgress domain.ProgressFunc,
) ([]domain.BatchItemResult, error) {
	templates := template.ForFramework(framework)
	if len(templates) == 0 {
		return nil, fmt.Errorf("unknown framework: %s", framework)
	}

	itemOpts := opts
	if opts.EnableCrossValidation {
		// cross-validation compares quality scores, so they must be computed
		itemOpts.IncludeQualityAnalysis = true
	}

	results := make([]domain.BatchItemResult, 0, len(templates))
	for i, tmpl := range templates {
		provider := SelectProvider(target, tmpl.Category)
		if onProgress != nil {
			onProgress(domain.BatchProgress{
				PercentComplete:  float64(i) / float64(len(templates)) * 100,
				CurrentItemLabel: tmpl.Name,
				CompletedCount:   i,
				TotalCount:       len(templates),
				ProviderUsed:     provider,
			})
		}

		result, err := o.GenerateDocument(ctx, tmpl, profile, provider, itemOpts)
		if err != nil {
			o.logger.WithError(err).WithField("template", tmpl.Name).Error("batch item failed")
			results = append(results, domain.BatchItemResult{TemplateName: tmpl.Name, Err: err.Error()})
		} else {
			if opts.EnableCrossValidation {
				result = o.crossValidate(ctx, tmpl, profile, itemOpts, result)
			}
			results = append(results, domain.BatchItemResult{TemplateName: tmpl.Name, Result: result})
		}

		if !o.cfg.Batch.Offline && i < len(templates)-1 {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			case <-time.After(o.cfg.Batch.ItemDelay()):
			}
		}
	}
	return results, nil
}

// crossValidate regenerates a low-quality item once with the next provider
// in the ring and keeps whichever result scored higher.
func (o *Orchestrator) crossValidate(
	ctx context.Context,
	tmpl template.Template,
	profile domain.CompanyProfile,
	opts domain.Options,
	first *domain.Result,
) *domain.Result {
	if first.QualityScore == nil || *first.QualityScore >= o.cfg.Batch.CrossValidationThreshold {
		return first
	}

	alternate, err := first.ProviderUsed.Next()
	if err != nil {
		return first
	}

	o.logger.WithFields(logrus.Fields{
		"template":  tmpl.Name,
		"score":     *first.QualityScore,
		"alternate": alternate,
	}).Info("cross-validation regenerating low-quality result")

	second, err := o.GenerateDocument(ctx, tmpl, profile, alternate, opts)
	if err != nil || second.QualityScore == nil {
		return first
	}
	if *second.QualityScore > *first.QualityScore {
		return second
	}
	return first
}

// GenerateContent runs free-form generation under the same guardrail
// discipline as the document path, with exactly one fallback attempt.
func (o *Orchestrator) GenerateContent(ctx context.Context, req domain.ContentRequest) (*ContentResult, error) {
	requestID := uuid.New().String()
	prompt := req.Prompt

	checkCtx := guarddomain.CheckContext{
		OrganizationID: req.OrganizationID,
		UserID:         req.UserID,
		RequestID:      requestID,
		CallerIP:       req.CallerIP,
	}
	applyGuardrailContext(&checkCtx, req.Options.GuardrailContext)

	var preVerdict *guarddomain.Verdict
	if req.Options.EnableGuardrails {
		preVerdict = o.CheckGuardrails(ctx, prompt, "", checkCtx)
		if !preVerdict.Allowed {
			return &ContentResult{
				Verdict:       preVerdict,
				Blocked:       true,
				BlockedReason: BlockedMessage,
			}, nil
		}
		if preVerdict.SanitizedPrompt != "" {
			prompt = preVerdict.SanitizedPrompt
		}
	}

	provider := req.TargetProvider
	if !provider.Concrete() {
		provider = domain.ProviderAnthropic
	}

	content, usedProvider, err := o.callWithFallback(ctx, provider, prompt, req.SystemPrompt, requestID)
	if err != nil {
		return nil, err
	}

	verdict := preVerdict
	if req.Options.EnableGuardrails {
		checkCtx.Provider = usedProvider.String()
		verdict = o.CheckGuardrails(ctx, prompt, content, checkCtx)
		if !verdict.Allowed {
			return &ContentResult{
				Verdict:       verdict,
				Blocked:       true,
				BlockedReason: BlockedMessage,
			}, nil
		}
		if verdict.SanitizedResponse != "" {
			content = verdict.SanitizedResponse
		}
	}

	return &ContentResult{
		Result: &domain.Result{
			Content:      content,
			ProviderUsed: usedProvider,
			RequestID:    requestID,
		},
		Verdict: verdict,
	}, nil
}

// CheckGuardrails exposes the pipeline directly and carries the fail-secure
// policy one level up: a failure invoking the checker (nil wiring, panic) is
// treated exactly like an internal pipeline failure and blocks the request.
func (o *Orchestrator) CheckGuardrails(ctx context.Context, prompt, response string, checkCtx guarddomain.CheckContext) (verdict *guarddomain.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.WithField("panic", r).Error("guardrail invocation failed, failing secure")
			verdict = blockedVerdict()
		}
	}()

	if o.checker == nil {
		o.logger.Error("no guardrail checker wired, failing secure")
		return blockedVerdict()
	}
	verdict = o.checker.Check(ctx, prompt, response, checkCtx)
	o.metrics.GuardrailVerdicts.WithLabelValues(string(verdict.Action)).Inc()
	return verdict
}

func blockedVerdict() *guarddomain.Verdict {
	return &guarddomain.Verdict{
		Allowed:             false,
		Action:              guarddomain.ActionBlocked,
		Severity:            guarddomain.SeverityCritical,
		PromptRiskScore:     10,
		RequiresHumanReview: true,
		ContentCategories:   []string{"error"},
	}
}

// callWithFallback attempts the selected provider and, on failure, exactly
// one ring fallback. Both failing is terminal. An empty system prompt means
// the default document-specialist instruction.
func (o *Orchestrator) callWithFallback(
	ctx context.Context,
	provider domain.Provider,
	prompt string,
	system string,
	requestID string,
) (string, domain.Provider, error) {
	content, err := o.callProvider(ctx, provider, prompt, system)
	if err == nil {
		return content, provider, nil
	}
	primary := &domain.ProviderCallError{Provider: provider, Err: err}
	o.logger.WithError(primary).WithField("request_id", requestID).Warn("provider call failed, trying fallback")
	o.metrics.FallbackAttempts.WithLabelValues(provider.String()).Inc()

	fallback, ringErr := provider.Next()
	if ringErr != nil {
		return "", "", primary
	}

	content, err = o.callProvider(ctx, fallback, prompt, system)
	if err == nil {
		return content, fallback, nil
	}

	return "", "", &domain.AllProvidersFailedError{
		RequestID:   requestID,
		PrimaryErr:  primary,
		FallbackErr: &domain.ProviderCallError{Provider: fallback, Err: err},
	}
}

func (o *Orchestrator) callProvider(ctx context.Context, provider domain.Provider, prompt, system string) (string, error) {
	client, err := o.locator.Get(provider)
	if err != nil {
		return "", err
	}
	settings, err := o.providerSettings(provider, system)
	if err != nil {
		return "", err
	}

	content, err := o.breakers.ForProvider(provider).Execute(func() (string, error) {
		resp, err := client.Complete(ctx, settings, prompt)
		if err != nil {
			return "", err
		}
		return resp.Response, nil
	})
	if err != nil {
		if errors.Is(err, breaker.ErrCircuitOpen) {
			o.metrics.BreakerOpens.WithLabelValues(provider.String()).Inc()
		}
		o.metrics.ProviderCalls.WithLabelValues(provider.String(), "failure").Inc()
		return "", err
	}
	o.metrics.ProviderCalls.WithLabelValues(provider.String(), "success").Inc()
	return content, nil
}

func (o *Orchestrator) providerSettings(provider domain.Provider, system string) (*providers.Config, error) {
	if system == "" {
		system = systemPrompt
	}
	var pc config.ProviderConfig
	switch provider {
	case domain.ProviderAnthropic:
		pc = o.cfg.Providers.Anthropic
	case domain.ProviderOpenAI:
		pc = o.cfg.Providers.OpenAI
	case domain.ProviderGemini:
		pc = o.cfg.Providers.Gemini
	case domain.ProviderAuto:
		return nil, fmt.Errorf("auto provider must be resolved before dispatch")
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
	return &providers.Config{
		APIKey:       pc.APIKey(),
		Model:        pc.Model,
		MaxTokens:    pc.MaxTokens,
		Temperature:  pc.Temperature,
		SystemPrompt: system,
	}, nil
}

// attachQuality runs the optional quality analysis; failure is non-fatal
// and simply leaves the quality fields empty.
func (o *Orchestrator) attachQuality(ctx context.Context, result *domain.Result, framework string) {
	if o.quality == nil {
		return
	}
	report, err := o.quality.Analyze(ctx, result.Content, framework)
	if err != nil {
		o.logger.WithError(err).Warn("quality analysis failed, omitting quality fields")
		return
	}
	result.QualityScore = &report.Score
	result.Feedback = report.Feedback
	result.Suggestions = report.Suggestions
}

func buildPrompt(tmpl template.Template, profile domain.CompanyProfile) string {
	return fmt.Sprintf("%s\n\nCompany context:\n%s", tmpl.Outline, profile.Context())
}

func applyGuardrailContext(checkCtx *guarddomain.CheckContext, extra map[string]string) {
	if v := extra["organization_id"]; v != "" {
		checkCtx.OrganizationID = v
	}
	if v := extra["user_id"]; v != "" {
		checkCtx.UserID = v
	}
	if v := extra["caller_ip"]; v != "" {
		checkCtx.CallerIP = v
	}
}
