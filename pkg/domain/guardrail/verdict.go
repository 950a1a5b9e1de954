package guardrail

import "time"

// Action is the authoritative guardrail decision for one prompt/response
// pair. Allowed is always derived from it, never set directly.
type Action string

const (
	ActionAllowed             Action = "allowed"
	ActionBlocked             Action = "blocked"
	ActionRedacted            Action = "redacted"
	ActionFlagged             Action = "flagged"
	ActionHumanReviewRequired Action = "human_review_required"
)

// Permissive reports whether generation may proceed under this action.
func (a Action) Permissive() bool {
	switch a {
	case ActionAllowed, ActionRedacted, ActionFlagged:
		return true
	default:
		return false
	}
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SeverityForScore classifies the aggregate risk score. Critical applies
// strictly above 8 so that a bare injection-keyword hit (flat base 8) stays
// blockable without forcing human review; the lower bands are inclusive.
func SeverityForScore(score float64) Severity {
	switch {
	case score > 8:
		return SeverityCritical
	case score >= 6:
		return SeverityHigh
	case score >= 4:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Verdict is the structured output of one guardrail pipeline run.
type Verdict struct {
	Allowed             bool               `json:"allowed"`
	Action              Action             `json:"action"`
	Severity            Severity           `json:"severity"`
	SanitizedPrompt     string             `json:"sanitized_prompt,omitempty"`
	SanitizedResponse   string             `json:"sanitized_response,omitempty"`
	PIIDetected         bool               `json:"pii_detected"`
	PIITypes            []string           `json:"pii_types,omitempty"`
	PromptRiskScore     float64            `json:"prompt_risk_score"`
	ResponseRiskScore   float64            `json:"response_risk_score"`
	RequiresHumanReview bool               `json:"requires_human_review"`
	ContentCategories   []string           `json:"content_categories,omitempty"`
	ModerationFlags     map[string]float64 `json:"moderation_flags,omitempty"`
	AuditLogID          string             `json:"audit_log_id,omitempty"`
}

// CheckContext carries caller metadata persisted alongside the verdict.
type CheckContext struct {
	OrganizationID string
	UserID         string
	RequestID      string
	Provider       string
	CallerIP       string
}

// AuditEntry is the full record handed to the audit sink for one check.
type AuditEntry struct {
	OrganizationID      string
	UserID              string
	RequestID           string
	Action              Action
	Severity            Severity
	Prompt              string
	SanitizedPrompt     string
	PromptRiskScore     float64
	PIIDetected         bool
	PIITypes            []string
	Response            string
	SanitizedResponse   string
	ResponseRiskScore   float64
	ContentCategories   []string
	ModerationFlags     map[string]float64
	RequiresHumanReview bool
	Provider            string
	CallerIP            string
	ProcessingTime      time.Duration
	CreatedAt           time.Time
}
