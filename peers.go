package palate

import (
	"math"
	"sort"
)

// Peer discovery parameters: a weighted blend of preference overlap,
// dietary overlap, and price-sensitivity closeness.
const (
	peerPreferenceWeight  = 0.4
	peerDietaryWeight     = 0.3
	peerSensitivityWeight = 0.3

	peerThreshold = 0.5
	maxPeers      = 5

	// peerInteractionStrength scales peer similarity into an item score.
	// Constant, so peers with higher similarity always yield higher scores.
	peerInteractionStrength = 0.8
)

// scoredPeer pairs a peer profile with its similarity to the target user.
type scoredPeer struct {
	profile    *UserProfile
	similarity float64
}

// scorePeers recommends items from the order history of similar users.
// Discovery keeps peers strictly above the similarity threshold, capped to
// the top five; propagation assigns each unseen history item a score
// proportional to the contributing peer's similarity, first peer wins on
// duplicates.
func scorePeers(target *UserProfile, profiles []*UserProfile, limit int) []Candidate {
	peers := findPeers(target, profiles)

	seen := make(map[string]struct{})
	candidates := make([]Candidate, 0)

	for _, peer := range peers {
		for _, itemID := range peer.profile.OrderHistory {
			if _, ok := seen[itemID]; ok {
				continue
			}
			seen[itemID] = struct{}{}
			candidates = append(candidates, Candidate{
				ItemID: itemID,
				Score:  peer.similarity * peerInteractionStrength,
				Method: MethodCollaborative,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// findPeers ranks all other profiles by similarity to the target.
// The profiles slice must be in deterministic order (ProfileStore.Snapshot
// sorts by user ID), so equal-similarity peers tie-break consistently.
func findPeers(target *UserProfile, profiles []*UserProfile) []scoredPeer {
	peers := make([]scoredPeer, 0)

	for _, other := range profiles {
		if other.UserID == target.UserID {
			continue
		}
		sim := profileSimilarity(target, other)
		if sim <= peerThreshold {
			continue
		}
		peers = append(peers, scoredPeer{profile: other, similarity: sim})
	}

	sort.SliceStable(peers, func(i, j int) bool {
		return peers[i].similarity > peers[j].similarity
	})

	if len(peers) > maxPeers {
		peers = peers[:maxPeers]
	}
	return peers
}

// profileSimilarity computes pairwise user similarity in [0, 1]:
// 0.4 × preference-tag overlap + 0.3 × dietary-tag overlap +
// 0.3 × (1 − |sensitivity difference|). Tag overlaps contribute zero when
// either set is empty.
func profileSimilarity(a, b *UserProfile) float64 {
	score := tagOverlap(a.Preferences, b.Preferences)*peerPreferenceWeight +
		tagOverlap(a.DietaryRestrictions, b.DietaryRestrictions)*peerDietaryWeight +
		(1.0-math.Abs(a.PriceSensitivity-b.PriceSensitivity))*peerSensitivityWeight

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// tagOverlap is the shared-tag count divided by the larger set size, zero
// when either set is empty.
func tagOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}

	common := 0
	counted := make(map[string]struct{}, len(b))
	for _, s := range b {
		if _, dup := counted[s]; dup {
			continue
		}
		counted[s] = struct{}{}
		if _, ok := set[s]; ok {
			common++
		}
	}

	larger := len(a)
	if len(b) > larger {
		larger = len(b)
	}
	return float64(common) / float64(larger)
}
