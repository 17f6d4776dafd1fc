package palate

// Diversity constraint parameters: an accepted item is compared against the
// last diversityWindow already-accepted items; it is dropped when at least
// diversityMaxSimilar of them exceed the similarity cutoff. Deliberately a
// narrow recency-scoped heuristic, not a global deduplication.
const (
	diversityWindow     = 3
	diversityCutoff     = 0.8
	diversityMaxSimilar = 2
)

// applyBusinessRules prunes the hybrid-combined list in order. Per item, in
// sequence: dietary violations and out-of-band prices are hard drops, then
// the recency diversity constraint, then the injected availability check.
// Accepted items absent from the user's history are flagged new and get the
// novelty boost as a final score adjustment. Post-filter order is
// preserved; novelty boosts are not re-ranked.
func applyBusinessRules(recs []Recommendation, profile *UserProfile, catalog *CatalogStore, available AvailabilityFunc) []Recommendation {
	history := make(map[string]struct{}, len(profile.OrderHistory))
	for _, id := range profile.OrderHistory {
		history[id] = struct{}{}
	}

	accepted := make([]Recommendation, 0, len(recs))
	acceptedFeatures := make([]*ItemFeatures, 0, len(recs))

	for _, rec := range recs {
		item, ok := catalog.Get(rec.ItemID)
		if !ok {
			// Unknown items (e.g. stale peer history) can never be checked
			// against the hard constraints, so they are never surfaced.
			continue
		}

		if violatesDietary(item, profile) {
			continue
		}

		if !withinPriceBand(item, profile) {
			continue
		}

		if tooSimilar(item, acceptedFeatures) {
			continue
		}

		if available != nil && !available(rec.ItemID) {
			continue
		}

		if _, ordered := history[rec.ItemID]; !ordered {
			rec.IsNewToUser = true
			rec.TotalScore *= BoostNovelty
		}

		accepted = append(accepted, rec)
		acceptedFeatures = append(acceptedFeatures, item)
	}

	return accepted
}

// tooSimilar compares a candidate against the most recent accepted items.
func tooSimilar(item *ItemFeatures, accepted []*ItemFeatures) bool {
	if len(accepted) < diversityMaxSimilar {
		return false
	}

	window := accepted
	if len(window) > diversityWindow {
		window = window[len(window)-diversityWindow:]
	}

	similar := 0
	for _, prev := range window {
		if featureSimilarity(item, prev) > diversityCutoff {
			similar++
		}
	}
	return similar >= diversityMaxSimilar
}

// featureSimilarity is the fraction of compared feature keys with equal
// values between two items.
func featureSimilarity(a, b *ItemFeatures) float64 {
	matches := 0
	total := 6

	if a.Cuisine == b.Cuisine {
		matches++
	}
	if a.SpiceLevel == b.SpiceLevel {
		matches++
	}
	if a.IsVegetarian == b.IsVegetarian {
		matches++
	}
	if a.Price == b.Price {
		matches++
	}
	if a.Rating == b.Rating {
		matches++
	}
	if equalTags(a.Tags, b.Tags) {
		matches++
	}

	return float64(matches) / float64(total)
}

func equalTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]int, len(a))
	for _, s := range a {
		set[s]++
	}
	for _, s := range b {
		set[s]--
		if set[s] < 0 {
			return false
		}
	}
	return true
}
