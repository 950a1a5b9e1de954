package auditlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	domain "github.com/complyport/compliance-engine/pkg/domain/guardrail"
	"github.com/complyport/compliance-engine/pkg/guardrail"
)

// Repository persists guardrail audit entries through gorm. It implements
// guardrail.AuditSink; a write failure propagates so the pipeline can fail
// secure.
type Repository struct {
	db     *gorm.DB
	logger logrus.FieldLogger
}

func NewRepository(db *gorm.DB, logger logrus.FieldLogger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

var _ guardrail.AuditSink = (*Repository)(nil)

func (r *Repository) Record(ctx context.Context, entry *domain.AuditEntry) (string, error) {
	flags, err := json.Marshal(entry.ModerationFlags)
	if err != nil {
		return "", fmt.Errorf("failed to marshal moderation flags: %w", err)
	}

	row := &Entry{
		ID:                  uuid.New(),
		OrganizationID:      entry.OrganizationID,
		UserID:              entry.UserID,
		RequestID:           entry.RequestID,
		Action:              string(entry.Action),
		Severity:            string(entry.Severity),
		Prompt:              entry.Prompt,
		SanitizedPrompt:     entry.SanitizedPrompt,
		PromptRiskScore:     entry.PromptRiskScore,
		PIIDetected:         entry.PIIDetected,
		PIITypes:            entry.PIITypes,
		Response:            entry.Response,
		SanitizedResponse:   entry.SanitizedResponse,
		ResponseRiskScore:   entry.ResponseRiskScore,
		ContentCategories:   entry.ContentCategories,
		ModerationFlags:     flags,
		RequiresHumanReview: entry.RequiresHumanReview,
		Provider:            entry.Provider,
		CallerIP:            entry.CallerIP,
		ProcessingTimeMs:    entry.ProcessingTime.Milliseconds(),
		CreatedAt:           entry.CreatedAt,
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		r.logger.WithError(err).Error("failed to persist audit entry")
		return "", fmt.Errorf("failed to persist audit entry: %w", err)
	}
	return row.ID.String(), nil
}
