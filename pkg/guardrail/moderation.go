package guardrail

import "strings"

const (
	CategoryHate       = "hate"
	CategoryHarassment = "harassment"
	CategoryViolence   = "violence"
	CategorySexual     = "sexual"
	CategorySelfHarm   = "self_harm"
	CategoryPII        = "pii"
)

// ModerationScorer produces per-category scores in [0,1] for a text blob.
// The shipped implementation is a keyword-presence heuristic, not a trained
// classifier; the interface exists so a real moderation model can be
// substituted without touching the pipeline's control flow.
type ModerationScorer interface {
	Score(text string, det Detection) map[string]float64
}

type keywordModerationScorer struct{}

func NewKeywordModerationScorer() ModerationScorer {
	return keywordModerationScorer{}
}

var moderationKeywords = map[string][]string{
	CategoryHate:       {"hate", "racist", "bigot"},
	CategoryHarassment: {"harass", "bully", "threaten"},
	CategoryViolence:   {"kill", "murder", "attack", "weapon", "bomb"},
	CategorySexual:     {"sexual", "explicit", "nsfw"},
	CategorySelfHarm:   {"suicide", "self-harm", "self harm"},
}

const moderationHitScore = 0.8

func (keywordModerationScorer) Score(text string, det Detection) map[string]float64 {
	flags := map[string]float64{
		CategoryHate:       0,
		CategoryHarassment: 0,
		CategoryViolence:   0,
		CategorySexual:     0,
		CategorySelfHarm:   0,
		CategoryPII:        0,
	}
	lower := strings.ToLower(text)
	for category, keywords := range moderationKeywords {
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				flags[category] = moderationHitScore
				break
			}
		}
	}
	if len(det.PIITypes) > 0 {
		flags[CategoryPII] = 1.0
	}
	return flags
}
