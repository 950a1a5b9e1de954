package guardrail

import (
	"fmt"
	"regexp"
	"strings"
)

type PIIEntity string

const (
	Email      PIIEntity = "email"
	SSN        PIIEntity = "ssn"
	CreditCard PIIEntity = "credit_card"
	Phone      PIIEntity = "phone"
	IPAddress  PIIEntity = "ip_address"
)

var piiPatterns = map[PIIEntity]*regexp.Regexp{
	Email:      regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	SSN:        regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
	CreditCard: regexp.MustCompile(`\b(?:\d{4}[-\s]?){3}\d{4}\b`),
	Phone:      regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]\d{3}[-.\s]?\d{4}\b`),
	IPAddress:  regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4]\d|[01]?\d\d?)\.){3}(?:25[0-5]|2[0-4]\d|[01]?\d\d?)\b`),
}

// Redaction order matters: the broad phone pattern must not see spans a more
// specific numeric entity already claimed, so SSN, credit card and IP
// addresses all run before phone.
var piiEntityOrder = []PIIEntity{
	Email,
	SSN,
	CreditCard,
	IPAddress,
	Phone,
}

// highRiskKeywords indicate an attempt to override system instructions.
// Matching is case-insensitive substring search.
var highRiskKeywords = []string{
	"ignore previous instructions",
	"ignore all previous instructions",
	"disregard previous instructions",
	"forget your instructions",
	"override your instructions",
	"system prompt",
	"developer mode",
	"jailbreak",
	"bypass",
	"do anything now",
	"pretend you have no restrictions",
}

// moderateRiskKeywords indicate exposure of secrets or sensitive material.
var moderateRiskKeywords = []string{
	"password",
	"api key",
	"api_key",
	"secret key",
	"private key",
	"access token",
	"credential",
	"confidential",
	"classified",
	"social security",
}

var (
	codeFencePattern = regexp.MustCompile("```")
	markupPattern    = regexp.MustCompile(`<[a-zA-Z/][^>]*>`)
)

// Detection is the stateless result of scanning one text blob. Scanning the
// same input twice yields identical output.
type Detection struct {
	PIITypes            []string
	Redacted            string
	HighRiskFactors     []string
	ModerateRiskFactors []string
	HasCodeMarkers      bool
}

type Detector struct {
	highRisk     []string
	moderateRisk []string
	entities     []PIIEntity
}

func NewDetector(cfg *Config) *Detector {
	d := &Detector{
		highRisk:     highRiskKeywords,
		moderateRisk: moderateRiskKeywords,
		entities:     piiEntityOrder,
	}
	if cfg == nil {
		return d
	}
	if len(cfg.ExtraHighRiskKeywords) > 0 {
		d.highRisk = append(append([]string{}, highRiskKeywords...), cfg.ExtraHighRiskKeywords...)
	}
	if len(cfg.ExtraModerateRiskKeywords) > 0 {
		d.moderateRisk = append(append([]string{}, moderateRiskKeywords...), cfg.ExtraModerateRiskKeywords...)
	}
	if len(cfg.PIIEntities) > 0 {
		disabled := make(map[PIIEntity]bool)
		for _, e := range cfg.PIIEntities {
			if !e.Enabled {
				disabled[PIIEntity(e.Entity)] = true
			}
		}
		var entities []PIIEntity
		for _, entity := range piiEntityOrder {
			if !disabled[entity] {
				entities = append(entities, entity)
			}
		}
		d.entities = entities
	}
	return d
}

// Scan detects PII and risk factors in text and produces the redacted form.
// Redaction replaces every matched span with a [REDACTED_<TYPE>] marker;
// markers never re-match a PII pattern, so redaction is idempotent.
func (d *Detector) Scan(text string) Detection {
	det := Detection{Redacted: text}

	for _, entity := range d.entities {
		pattern := piiPatterns[entity]
		if !pattern.MatchString(det.Redacted) {
			continue
		}
		det.PIITypes = append(det.PIITypes, string(entity))
		det.Redacted = pattern.ReplaceAllString(det.Redacted, redactionMarker(entity))
	}

	lower := strings.ToLower(text)
	for _, keyword := range d.highRisk {
		if strings.Contains(lower, keyword) {
			det.HighRiskFactors = append(det.HighRiskFactors, keywordSlug(keyword))
		}
	}
	for _, keyword := range d.moderateRisk {
		if strings.Contains(lower, keyword) {
			det.ModerateRiskFactors = append(det.ModerateRiskFactors, keywordSlug(keyword))
		}
	}

	det.HasCodeMarkers = codeFencePattern.MatchString(text) || markupPattern.MatchString(text)

	return det
}

func redactionMarker(entity PIIEntity) string {
	return fmt.Sprintf("[REDACTED_%s]", strings.ToUpper(string(entity)))
}

func keywordSlug(keyword string) string {
	return strings.ReplaceAll(strings.TrimSpace(keyword), " ", "_")
}
