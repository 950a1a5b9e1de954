package generation

import (
	domain "github.com/complyport/compliance-engine/pkg/domain/generation"
	"github.com/complyport/compliance-engine/pkg/domain/template"
)

// SelectProvider resolves the provider for one document. A concrete request
// wins; Auto routes on the document category. The mapping is total and
// deterministic: every category maps to exactly one provider.
func SelectProvider(requested domain.Provider, category template.Category) domain.Provider {
	if requested.Concrete() {
		return requested
	}
	switch category {
	case template.CategoryAssessment, template.CategoryAudit:
		return domain.ProviderAnthropic
	case template.CategoryPolicy, template.CategoryNotice:
		return domain.ProviderOpenAI
	case template.CategoryProcedure, template.CategoryPlan:
		return domain.ProviderGemini
	default:
		// registers and anything unmatched go to the versatility default
		return domain.ProviderAnthropic
	}
}
