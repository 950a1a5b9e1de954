package generation

import "fmt"

// Provider identifies an LLM backend. Auto is resolved to a concrete
// provider before any call is made; results never carry Auto.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
	ProviderAuto      Provider = "auto"
)

func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderAuto:
		return Provider(s), nil
	case "":
		return ProviderAuto, nil
	default:
		return "", fmt.Errorf("unsupported provider: %s", s)
	}
}

// Next returns the provider that follows p in the fixed fallback ring
// (anthropic -> openai -> gemini -> anthropic).
func (p Provider) Next() (Provider, error) {
	switch p {
	case ProviderAnthropic:
		return ProviderOpenAI, nil
	case ProviderOpenAI:
		return ProviderGemini, nil
	case ProviderGemini:
		return ProviderAnthropic, nil
	case ProviderAuto:
		return "", fmt.Errorf("auto provider has no ring position")
	default:
		return "", fmt.Errorf("unsupported provider: %s", p)
	}
}

func (p Provider) Concrete() bool {
	switch p {
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini:
		return true
	default:
		return false
	}
}

func (p Provider) String() string {
	return string(p)
}
