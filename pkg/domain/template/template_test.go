package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForFramework(t *testing.T) {
	for _, framework := range Frameworks() {
		t.Run(framework, func(t *testing.T) {
			templates := ForFramework(framework)
			require.NotEmpty(t, templates)
			for _, tmpl := range templates {
				assert.Equal(t, framework, tmpl.Framework)
				assert.NotEmpty(t, tmpl.Name)
				assert.NotEmpty(t, tmpl.Outline)
				assert.NotEmpty(t, tmpl.Category)
			}
		})
	}
}

func TestForFramework_Unknown(t *testing.T) {
	assert.Empty(t, ForFramework("pci-dss"))
}

func TestFind(t *testing.T) {
	tmpl, ok := Find("gdpr", "Privacy Notice")
	require.True(t, ok)
	assert.Equal(t, CategoryNotice, tmpl.Category)

	_, ok = Find("gdpr", "Nonexistent Template")
	assert.False(t, ok)

	_, ok = Find("unknown", "Privacy Notice")
	assert.False(t, ok)
}
