package palate

import "sort"

// peerJustification replaces per-item reasons for peer-sourced candidates.
const peerJustification = "Similar users liked this"

// combineScores merges the three scorers' outputs keyed by item ID. Scores
// sum as score * method_weight across the methods present; weights are not
// renormalized when a method is absent, so a contextual-only item tops out
// near a quarter of an equivalent all-method item. A personalization
// multiplier (high rating, preferred cuisine, capped at 1.3) then scales
// each total. The result is sorted descending by total score, stable on
// ties in merge-encounter order: content first, then collaborative, then
// contextual.
func combineScores(content, collaborative, contextual []Candidate, profile *UserProfile, catalog *CatalogStore) []Recommendation {
	merged := make(map[string]*Recommendation)
	order := make([]string, 0, len(content)+len(collaborative)+len(contextual))

	mergeOne := func(c Candidate, weight float64, reasons []string) {
		rec, ok := merged[c.ItemID]
		if !ok {
			rec = &Recommendation{
				ItemID:       c.ItemID,
				MethodScores: make(map[Method]float64),
			}
			merged[c.ItemID] = rec
			order = append(order, c.ItemID)
		}
		rec.TotalScore += c.Score * weight
		rec.MethodScores[c.Method] = c.Score
		rec.Reasons = append(rec.Reasons, reasons...)
	}

	for _, c := range content {
		mergeOne(c, WeightContent, c.Reasons)
	}
	for _, c := range collaborative {
		mergeOne(c, WeightCollaborative, []string{peerJustification})
	}
	for _, c := range contextual {
		mergeOne(c, WeightContextual, c.Reasons)
	}

	out := make([]Recommendation, 0, len(order))
	for _, itemID := range order {
		rec := merged[itemID]

		boost := 1.0
		if item, ok := catalog.Get(itemID); ok {
			rec.Name = item.Name
			boost = personalizationBoost(item, profile)
		}
		rec.Personalization = boost
		rec.TotalScore *= boost

		out = append(out, *rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalScore > out[j].TotalScore
	})
	return out
}

// personalizationBoost starts at 1.0, multiplies by 1.1 for items rated at
// or above 4.5 and by 1.15 for items in a preferred cuisine, capped at 1.3.
func personalizationBoost(item *ItemFeatures, profile *UserProfile) float64 {
	boost := 1.0
	if item.Rating >= HighRatingThreshold {
		boost *= BoostHighRating
	}
	if containsString(profile.Preferences, item.Cuisine) {
		boost *= BoostCuisineMatch
	}
	if boost > MaxPersonalization {
		boost = MaxPersonalization
	}
	return boost
}
