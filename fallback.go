package palate

import "math"

// fallbackRecommendations is the fixed safe list returned when the pipeline
// fails. Content never varies, so a degraded response is still predictable.
func fallbackRecommendations(limit int) []Recommendation {
	items := []Recommendation{
		{
			ItemID:          "fallback_1",
			Name:            "Classic Margherita Pizza",
			TotalScore:      0.5,
			Reasons:         []string{"Popular choice", "Always available"},
			Personalization: 1.0,
		},
		{
			ItemID:          "fallback_2",
			Name:            "Chicken Caesar Salad",
			TotalScore:      0.45,
			Reasons:         []string{"Healthy option", "Customer favorite"},
			Personalization: 1.0,
		},
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// confidenceScore summarizes how trustworthy a final list is:
// mean(total_score) * (1 - stddev(total_score)), clamped to [0, 1].
// An empty list scores zero; a single item has zero deviation.
func confidenceScore(recs []Recommendation) float64 {
	if len(recs) == 0 {
		return 0
	}

	var sum float64
	for _, rec := range recs {
		sum += rec.TotalScore
	}
	mean := sum / float64(len(recs))

	var stddev float64
	if len(recs) > 1 {
		var variance float64
		for _, rec := range recs {
			d := rec.TotalScore - mean
			variance += d * d
		}
		stddev = math.Sqrt(variance / float64(len(recs)))
	}

	confidence := mean * (1.0 - stddev)
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

// trendingItems is the static stand-in for the external trending analytics
// collaborator. In production this would be derived from real order data.
var trendingItems = []TrendingItem{
	{
		ItemID:        "trending_burger_001",
		Name:          "Smash Double Burger",
		TrendingScore: 95.5,
		OrderCount24h: 1247,
		GrowthRate:    234.2,
		Price:         18.99,
		Rating:        4.7,
		Tags:          []string{"viral", "trending", "premium"},
	},
	{
		ItemID:        "trending_pizza_001",
		Name:          "Wood-Fired Truffle Pizza",
		TrendingScore: 89.3,
		OrderCount24h: 892,
		GrowthRate:    156.8,
		Price:         22.50,
		Rating:        4.5,
		Tags:          []string{"trending", "premium"},
	},
	{
		ItemID:        "trending_sushi_001",
		Name:          "Rainbow Dragon Roll",
		TrendingScore: 87.1,
		OrderCount24h: 634,
		GrowthRate:    189.4,
		Price:         16.75,
		Rating:        4.8,
		Tags:          []string{"fresh", "trending"},
	},
}

// Trending returns the current trending list, capped to limit. The time
// range only labels the analytics window; the static derivation ignores it.
func Trending(timeRange string, limit int) []TrendingItem {
	_ = timeRange

	out := make([]TrendingItem, len(trendingItems))
	copy(out, trendingItems)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
