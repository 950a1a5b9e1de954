package guardrail

import "regexp"

const (
	maxRiskScore = 10.0

	// injectionBaseScore is a flat contribution applied once when any
	// high-risk keyword matches. Keeping it flat (rather than compounding
	// per phrase) keeps a pure injection attempt in blockable range;
	// escalation to human review comes from moderate-risk factors and
	// oversized inputs stacking on top.
	injectionBaseScore = 8.0

	moderateFactorScore = 0.5
	longInputScore      = 1.0
	longInputThreshold  = 10000

	responsePIIScore    = 2.0
	harmfulPatternScore = 1.0
)

// harmfulContentPatterns is a small heuristic set applied to provider
// output: credential-looking key=value shapes and violence-adjacent verbs.
var harmfulContentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:api[_-]?key|secret|token|password|passwd)\s*[:=]\s*\S+`),
	regexp.MustCompile(`(?i)\b(?:kill|murder|attack|assault|bomb|explode|weaponize)\b`),
	regexp.MustCompile(`(?i)\b(?:-----BEGIN (?:RSA |EC )?PRIVATE KEY-----)`),
}

// ScorePrompt combines detector output into a bounded prompt risk score.
// Deterministic and pure: no I/O, no randomness.
func ScorePrompt(text string, det Detection) float64 {
	score := 0.0
	if len(det.HighRiskFactors) > 0 {
		score += injectionBaseScore
	}
	score += float64(len(det.ModerateRiskFactors)) * moderateFactorScore
	if len(text) > longInputThreshold {
		score += longInputScore
	}
	return clampScore(score)
}

// ScoreResponse scores provider output independently of the prompt side.
func ScoreResponse(text string, det Detection) float64 {
	score := 0.0
	if len(det.PIITypes) > 0 {
		score += responsePIIScore
	}
	score += float64(HarmfulContentMatches(text)) * harmfulPatternScore
	return clampScore(score)
}

// HarmfulContentMatches counts how many of the harmful-content patterns
// match the text.
func HarmfulContentMatches(text string) int {
	matches := 0
	for _, pattern := range harmfulContentPatterns {
		if pattern.MatchString(text) {
			matches++
		}
	}
	return matches
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > maxRiskScore {
		return maxRiskScore
	}
	return score
}
