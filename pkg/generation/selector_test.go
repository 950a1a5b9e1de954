package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/complyport/compliance-engine/pkg/domain/generation"
	"github.com/complyport/compliance-engine/pkg/domain/template"
)

func TestSelectProvider_ConcreteRequestWins(t *testing.T) {
	assert.Equal(t, domain.ProviderGemini,
		SelectProvider(domain.ProviderGemini, template.CategoryAssessment))
	assert.Equal(t, domain.ProviderOpenAI,
		SelectProvider(domain.ProviderOpenAI, template.CategoryPlan))
}

func TestSelectProvider_AutoRoutesByCategory(t *testing.T) {
	tests := []struct {
		category template.Category
		expected domain.Provider
	}{
		{template.CategoryAssessment, domain.ProviderAnthropic},
		{template.CategoryAudit, domain.ProviderAnthropic},
		{template.CategoryPolicy, domain.ProviderOpenAI},
		{template.CategoryNotice, domain.ProviderOpenAI},
		{template.CategoryProcedure, domain.ProviderGemini},
		{template.CategoryPlan, domain.ProviderGemini},
		{template.CategoryRegister, domain.ProviderAnthropic},
		{template.Category("unmapped"), domain.ProviderAnthropic},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			selected := SelectProvider(domain.ProviderAuto, tt.category)
			assert.Equal(t, tt.expected, selected)
			assert.True(t, selected.Concrete(), "auto selection must always resolve to a concrete provider")
		})
	}
}
