package palate

import (
	"fmt"
	"sort"
)

// Content scoring component weights. Each component contributes only when
// its condition holds; the sum is capped at 1.0.
const (
	contentCuisineWeight = 0.30
	contentDietaryWeight = 0.25
	contentPriceWeight   = 0.20
	contentRatingWeight  = 0.25

	contentThreshold = 0.3
)

// scoreContent ranks catalog items by similarity to the user's stated
// preferences and constraints. Items scoring at or below the threshold are
// dropped; ties keep catalog iteration order.
func scoreContent(profile *UserProfile, items []ItemFeatures, limit int) []Candidate {
	candidates := make([]Candidate, 0, len(items))

	for i := range items {
		item := &items[i]
		score, reasons := contentSimilarity(profile, item)
		if score <= contentThreshold {
			continue
		}
		candidates = append(candidates, Candidate{
			ItemID:  item.ItemID,
			Score:   score,
			Method:  MethodContent,
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

// contentSimilarity computes the content score in [0, 1] for one item,
// returning the justification for each component that fired.
func contentSimilarity(profile *UserProfile, item *ItemFeatures) (float64, []string) {
	var score float64
	var reasons []string

	if containsString(profile.Preferences, item.Cuisine) {
		score += contentCuisineWeight
		reasons = append(reasons, fmt.Sprintf("Matches preferred cuisine (%s)", item.Cuisine))
	}

	if !violatesDietary(item, profile) {
		score += contentDietaryWeight
		reasons = append(reasons, "Meets dietary requirements")
	}

	if withinPriceBand(item, profile) {
		score += contentPriceWeight
		reasons = append(reasons, "Within your usual price range")
	}

	if item.Rating > 0 {
		score += (item.Rating / 5.0) * contentRatingWeight
		reasons = append(reasons, fmt.Sprintf("Highly rated (%.1f/5)", item.Rating))
	}

	if score > 1.0 {
		score = 1.0
	}
	return score, reasons
}

// violatesDietary reports whether an item breaks one of the user's dietary
// restrictions: a vegetarian restriction against an explicitly
// non-vegetarian item, or any restriction tag present in the item's tags.
// Shared by the content scorer and the business filter; the filter treats
// it as a hard constraint.
func violatesDietary(item *ItemFeatures, profile *UserProfile) bool {
	for _, restriction := range profile.DietaryRestrictions {
		if restriction == "vegetarian" && !item.IsVegetarian {
			return true
		}
		if containsString(item.Tags, restriction) {
			return true
		}
	}
	return false
}

// withinPriceBand reports whether the item price falls inclusively within
// [avg*(1-tol), avg*(1+tol)] where tol = sensitivity * 0.5.
func withinPriceBand(item *ItemFeatures, profile *UserProfile) bool {
	tolerance := profile.PriceSensitivity * 0.5
	minPrice := profile.AvgOrderValue * (1.0 - tolerance)
	maxPrice := profile.AvgOrderValue * (1.0 + tolerance)
	return item.Price >= minPrice && item.Price <= maxPrice
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
