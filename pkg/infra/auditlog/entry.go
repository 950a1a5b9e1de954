package auditlog

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Entry is the persisted form of one guardrail decision.
type Entry struct {
	ID                  uuid.UUID      `gorm:"primaryKey;type:uuid"`
	OrganizationID      string         `gorm:"index"`
	UserID              string         `gorm:"index"`
	RequestID           string         `gorm:"index"`
	Action              string
	Severity            string
	Prompt              string         `gorm:"type:text"`
	SanitizedPrompt     string         `gorm:"type:text"`
	PromptRiskScore     float64
	PIIDetected         bool
	PIITypes            pq.StringArray `gorm:"type:text[]"`
	Response            string         `gorm:"type:text"`
	SanitizedResponse   string         `gorm:"type:text"`
	ResponseRiskScore   float64
	ContentCategories   pq.StringArray `gorm:"type:text[]"`
	ModerationFlags     []byte         `gorm:"type:jsonb"`
	RequiresHumanReview bool
	Provider            string
	CallerIP            string
	ProcessingTimeMs    int64
	CreatedAt           time.Time
}

func (Entry) TableName() string {
	return "guardrail_audit_logs"
}
