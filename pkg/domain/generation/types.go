package generation

import "time"

type Options struct {
	IncludeQualityAnalysis bool              `json:"include_quality_analysis"`
	EnableCrossValidation  bool              `json:"enable_cross_validation"`
	EnableGuardrails       bool              `json:"enable_guardrails"`
	GuardrailContext       map[string]string `json:"guardrail_context,omitempty"`
}

// ContentRequest is a free-form generation request, as opposed to the
// template-driven document path.
type ContentRequest struct {
	Prompt         string   `json:"prompt"`
	SystemPrompt   string   `json:"system_prompt,omitempty"`
	TargetProvider Provider `json:"target_provider"`
	Options        Options  `json:"options"`
	OrganizationID string   `json:"organization_id,omitempty"`
	UserID         string   `json:"user_id,omitempty"`
	CallerIP       string   `json:"caller_ip,omitempty"`
}

// Result is the outcome of one successful generation. ProviderUsed is
// always a concrete provider, never Auto.
type Result struct {
	Content      string        `json:"content"`
	ProviderUsed Provider      `json:"provider_used"`
	Model        string        `json:"model,omitempty"`
	QualityScore *float64      `json:"quality_score,omitempty"`
	Feedback     string        `json:"feedback,omitempty"`
	Suggestions  []string      `json:"suggestions,omitempty"`
	RequestID    string        `json:"request_id"`
	Duration     time.Duration `json:"-"`
}

// BatchItemResult holds either a generated document or the error placeholder
// recorded when that item failed. A failed item never aborts the batch.
type BatchItemResult struct {
	TemplateName string  `json:"template_name"`
	Result       *Result `json:"result,omitempty"`
	Err          string  `json:"error,omitempty"`
}

type BatchProgress struct {
	PercentComplete  float64  `json:"percent_complete"`
	CurrentItemLabel string   `json:"current_item_label"`
	CompletedCount   int      `json:"completed_count"`
	TotalCount       int      `json:"total_count"`
	ProviderUsed     Provider `json:"provider_used"`
}

type ProgressFunc func(BatchProgress)
