package guardrail

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	domain "github.com/complyport/compliance-engine/pkg/domain/guardrail"
)

const (
	humanReviewScoreThreshold = 8.0
	blockScoreThreshold       = 7.0
	flagScoreThreshold        = 5.0
)

//go:generate mockery --name=AuditSink --dir=. --output=./mocks --filename=audit_sink_mock.go --case=underscore --with-expecter

// AuditSink durably records one guardrail decision and returns the assigned
// entry id.
type AuditSink interface {
	Record(ctx context.Context, entry *domain.AuditEntry) (string, error)
}

// Pipeline runs the pre/post safety checks applied to every prompt and
// response. Each invocation computes a fresh verdict; no state is retained
// between calls.
type Pipeline struct {
	logger     *logrus.Logger
	detector   *Detector
	moderation ModerationScorer
	sink       AuditSink
}

func NewPipeline(logger *logrus.Logger, cfg *Config, moderation ModerationScorer, sink AuditSink) *Pipeline {
	if moderation == nil {
		moderation = NewKeywordModerationScorer()
	}
	return &Pipeline{
		logger:     logger,
		detector:   NewDetector(cfg),
		moderation: moderation,
		sink:       sink,
	}
}

// Check evaluates a prompt and, when non-empty, a provider response, and
// returns the verdict. It never returns an error: any failure inside the
// pipeline (including a panicking detector or an unavailable audit sink)
// yields the fail-secure blocked verdict instead, so a broken guardrail can
// never silently let unsafe content through.
func (p *Pipeline) Check(ctx context.Context, prompt, response string, checkCtx domain.CheckContext) *domain.Verdict {
	verdict, err := p.check(ctx, prompt, response, checkCtx)
	if err != nil {
		p.logger.WithError(err).WithField("request_id", checkCtx.RequestID).
			Error("guardrail pipeline failure, failing secure")
		return failSecureVerdict()
	}
	return verdict
}

func (p *Pipeline) check(ctx context.Context, prompt, response string, checkCtx domain.CheckContext) (verdict *domain.Verdict, err error) {
	defer func() {
		if r := recover(); r != nil {
			verdict = nil
			err = &panicError{value: r}
		}
	}()

	start := time.Now()

	promptDet := p.detector.Scan(prompt)
	promptScore := ScorePrompt(prompt, promptDet)

	var responseDet Detection
	responseScore := 0.0
	if response != "" {
		responseDet = p.detector.Scan(response)
		responseScore = ScoreResponse(response, responseDet)
	}

	maxScore := promptScore
	if responseScore > maxScore {
		maxScore = responseScore
	}
	severity := domain.SeverityForScore(maxScore)
	requiresHumanReview := severity == domain.SeverityCritical || promptScore > humanReviewScoreThreshold

	var action domain.Action
	switch {
	case requiresHumanReview:
		action = domain.ActionHumanReviewRequired
	case promptScore > blockScoreThreshold || responseScore > blockScoreThreshold:
		action = domain.ActionBlocked
	case len(promptDet.PIITypes) > 0 || len(responseDet.PIITypes) > 0:
		action = domain.ActionRedacted
	case promptScore > flagScoreThreshold:
		action = domain.ActionFlagged
	default:
		action = domain.ActionAllowed
	}

	piiTypes := unionTags(promptDet.PIITypes, responseDet.PIITypes)
	verdict = &domain.Verdict{
		Allowed:             action.Permissive(),
		Action:              action,
		Severity:            severity,
		PIIDetected:         len(piiTypes) > 0,
		PIITypes:            piiTypes,
		PromptRiskScore:     promptScore,
		ResponseRiskScore:   responseScore,
		RequiresHumanReview: requiresHumanReview,
		ContentCategories:   contentCategories(promptDet, responseDet, response),
		ModerationFlags:     p.moderation.Score(prompt+"\n"+response, Detection{PIITypes: piiTypes}),
	}
	if len(promptDet.PIITypes) > 0 {
		verdict.SanitizedPrompt = promptDet.Redacted
	}
	if len(responseDet.PIITypes) > 0 {
		verdict.SanitizedResponse = responseDet.Redacted
	}

	entry := &domain.AuditEntry{
		OrganizationID:      checkCtx.OrganizationID,
		UserID:              checkCtx.UserID,
		RequestID:           checkCtx.RequestID,
		Action:              verdict.Action,
		Severity:            verdict.Severity,
		Prompt:              prompt,
		SanitizedPrompt:     verdict.SanitizedPrompt,
		PromptRiskScore:     promptScore,
		PIIDetected:         verdict.PIIDetected,
		PIITypes:            piiTypes,
		Response:            response,
		SanitizedResponse:   verdict.SanitizedResponse,
		ResponseRiskScore:   responseScore,
		ContentCategories:   verdict.ContentCategories,
		ModerationFlags:     verdict.ModerationFlags,
		RequiresHumanReview: requiresHumanReview,
		Provider:            checkCtx.Provider,
		CallerIP:            checkCtx.CallerIP,
		ProcessingTime:      time.Since(start),
		CreatedAt:           start,
	}

	id, err := p.sink.Record(ctx, entry)
	if err != nil {
		return nil, err
	}
	verdict.AuditLogID = id

	if !verdict.Allowed {
		p.logger.WithFields(logrus.Fields{
			"action":     verdict.Action,
			"severity":   verdict.Severity,
			"request_id": checkCtx.RequestID,
		}).Warn("guardrail check rejected content")
	}

	return verdict, nil
}

// failSecureVerdict is the most restrictive possible outcome, returned
// whenever the pipeline itself breaks.
func failSecureVerdict() *domain.Verdict {
	return &domain.Verdict{
		Allowed:             false,
		Action:              domain.ActionBlocked,
		Severity:            domain.SeverityCritical,
		PromptRiskScore:     maxRiskScore,
		RequiresHumanReview: true,
		ContentCategories:   []string{"error"},
	}
}

func contentCategories(promptDet, responseDet Detection, response string) []string {
	var categories []string
	seen := make(map[string]bool)
	add := func(category string) {
		if !seen[category] {
			seen[category] = true
			categories = append(categories, category)
		}
	}

	for _, det := range []Detection{promptDet, responseDet} {
		for _, factor := range det.HighRiskFactors {
			add("injection_attempt_" + factor)
		}
		for _, factor := range det.ModerateRiskFactors {
			add("sensitive_" + factor)
		}
		for _, piiType := range det.PIITypes {
			add("pii_" + piiType)
		}
		if det.HasCodeMarkers {
			add("contains_code")
		}
	}
	if HarmfulContentMatches(response) > 0 {
		add("potentially_harmful")
	}
	return categories
}

func unionTags(a, b []string) []string {
	var union []string
	seen := make(map[string]bool)
	for _, tags := range [][]string{a, b} {
		for _, tag := range tags {
			if !seen[tag] {
				seen[tag] = true
				union = append(union, tag)
			}
		}
	}
	return union
}

type panicError struct {
	value interface{}
}

func (e *panicError) Error() string {
	return fmt.Sprintf("guardrail pipeline panic: %v", e.value)
}
