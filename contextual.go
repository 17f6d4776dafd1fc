package palate

import (
	"fmt"
	"sort"
	"strings"
)

// Context axis weights. Each axis contributes raw_score * weight.
const (
	timeAxisWeight     = 0.30
	weatherAxisWeight  = 0.25
	locationAxisWeight = 0.20
	moodAxisWeight     = 0.25

	// defaultAxisScore is the raw score for a recognized axis value with no
	// keyword match.
	defaultAxisScore = 0.1

	localityMatchScore = 1.0

	contextThreshold = 0.1
)

// keywordRule maps a context value to its matched raw score and keyword set.
// Kept as data rather than branching logic so the tables are testable and
// tunable in isolation.
type keywordRule struct {
	match    float64
	keywords []string
}

var timeOfDayRules = map[string]keywordRule{
	"breakfast":  {match: 0.8, keywords: []string{"breakfast", "coffee", "pastry", "juice"}},
	"lunch":      {match: 0.8, keywords: []string{"salad", "wrap", "sandwich", "light"}},
	"dinner":     {match: 0.8, keywords: []string{"dinner", "pizza", "pasta", "heavy"}},
	"late_night": {match: 0.8, keywords: []string{"snack", "dessert", "light"}},
}

var weatherRules = map[string]keywordRule{
	"hot":   {match: 0.8, keywords: []string{"cold", "salad", "ice", "fresh"}},
	"cold":  {match: 0.8, keywords: []string{"hot", "warm", "soup", "comfort"}},
	"rainy": {match: 0.7, keywords: []string{"warm", "comfort", "hearty"}},
}

var moodRules = map[string]keywordRule{
	"happy":    {match: 0.7, keywords: []string{"colorful", "vibrant", "dessert"}},
	"sad":      {match: 0.7, keywords: []string{"comfort", "warm", "cheese"}},
	"stressed": {match: 0.7, keywords: []string{"light", "simple", "quick"}},
	"excited":  {match: 0.7, keywords: []string{"spicy", "unique", "premium"}},
	"tired":    {match: 0.7, keywords: []string{"energizing", "coffee", "protein"}},
}

// scoreContext ranks catalog items by situational fit. Inactive when no
// context is supplied. Each present axis contributes raw * weight; items at
// or below the threshold are dropped, ties keep catalog iteration order.
func scoreContext(rctx *Context, items []ItemFeatures, local LocalityFunc, limit int) []Candidate {
	if rctx.IsZero() {
		return nil
	}

	candidates := make([]Candidate, 0, len(items))

	for i := range items {
		item := &items[i]
		score, reasons := contextScore(rctx, item, local)
		if score <= contextThreshold {
			continue
		}
		candidates = append(candidates, Candidate{
			ItemID:  item.ItemID,
			Score:   score,
			Method:  MethodContextual,
			Reasons: reasons,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

func contextScore(rctx *Context, item *ItemFeatures, local LocalityFunc) (float64, []string) {
	var score float64
	var reasons []string

	if rctx.TimeOfDay != "" {
		raw := keywordAxisScore(timeOfDayRules, rctx.TimeOfDay, item)
		score += raw * timeAxisWeight
		if raw > defaultAxisScore {
			reasons = append(reasons, fmt.Sprintf("Time appropriate (%s)", rctx.TimeOfDay))
		}
	}

	if rctx.Weather != "" {
		raw := keywordAxisScore(weatherRules, rctx.Weather, item)
		score += raw * weatherAxisWeight
		if raw > defaultAxisScore {
			reasons = append(reasons, fmt.Sprintf("Weather suitable (%s)", rctx.Weather))
		}
	}

	if rctx.Location != "" {
		raw := defaultAxisScore
		if local != nil && local(*item, rctx.Location) {
			raw = localityMatchScore
		}
		score += raw * locationAxisWeight
		if raw > defaultAxisScore {
			reasons = append(reasons, "Local preference")
		}
	}

	if rctx.Mood != "" {
		raw := keywordAxisScore(moodRules, rctx.Mood, item)
		score += raw * moodAxisWeight
		if raw > defaultAxisScore {
			reasons = append(reasons, fmt.Sprintf("Mood matching (%s)", rctx.Mood))
		}
	}

	return score, reasons
}

// keywordAxisScore returns the rule's match score when any keyword appears
// in the item's display name or tags, the default otherwise. Unrecognized
// axis values score the default as well.
func keywordAxisScore(rules map[string]keywordRule, value string, item *ItemFeatures) float64 {
	rule, ok := rules[value]
	if !ok {
		return defaultAxisScore
	}

	name := strings.ToLower(item.Name)
	for _, kw := range rule.keywords {
		if strings.Contains(name, kw) {
			return rule.match
		}
		for _, tag := range item.Tags {
			if strings.Contains(strings.ToLower(tag), kw) {
				return rule.match
			}
		}
	}
	return defaultAxisScore
}

// ParseContext converts a transport-level context bag into a Context.
// Unrecognized keys are ignored; a recognized key holding a non-string
// value is a malformed-context input error, rejected before pipeline entry.
func ParseContext(bag map[string]any) (*Context, error) {
	if bag == nil {
		return nil, nil
	}

	rctx := &Context{}
	for key, raw := range bag {
		var dst *string
		switch key {
		case ContextKeyTimeOfDay:
			dst = &rctx.TimeOfDay
		case ContextKeyWeather:
			dst = &rctx.Weather
		case ContextKeyLocation:
			dst = &rctx.Location
		case ContextKeyMood:
			dst = &rctx.Mood
		default:
			continue
		}

		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a string", ErrMalformedContext, key)
		}
		*dst = s
	}
	return rctx, nil
}
