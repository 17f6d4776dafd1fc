package palate

import "testing"

func TestFallbackRecommendations(t *testing.T) {
	got := fallbackRecommendations(10)
	if len(got) != 2 {
		t.Fatalf("fallback items = %d, want 2", len(got))
	}
	if got[0].ItemID != "fallback_1" || got[1].ItemID != "fallback_2" {
		t.Errorf("ids = [%s, %s], want [fallback_1, fallback_2]", got[0].ItemID, got[1].ItemID)
	}
	for _, rec := range got {
		if rec.TotalScore <= 0 || rec.Personalization != 1.0 || len(rec.Reasons) == 0 {
			t.Errorf("malformed fallback item: %+v", rec)
		}
	}
}

func TestFallbackRecommendations_Limit(t *testing.T) {
	if got := fallbackRecommendations(1); len(got) != 1 {
		t.Errorf("limit 1 yielded %d items", len(got))
	}
}

func TestFallbackRecommendations_Deterministic(t *testing.T) {
	a := fallbackRecommendations(10)
	b := fallbackRecommendations(10)
	for i := range a {
		if a[i].ItemID != b[i].ItemID || a[i].TotalScore != b[i].TotalScore {
			t.Errorf("fallback content varies between calls: %+v vs %+v", a[i], b[i])
		}
	}
}

func TestConfidenceScore(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{0.8}, 0.8},
		{"uniform", []float64{0.5, 0.5, 0.5}, 0.5},
		// mean 0.5, stddev 0.5 -> 0.5 * (1 - 0.5)
		{"spread", []float64{1.0, 0.0}, 0.25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recs := make([]Recommendation, len(tc.scores))
			for i, s := range tc.scores {
				recs[i] = Recommendation{TotalScore: s}
			}
			if got := confidenceScore(recs); !almostEqual(got, tc.want) {
				t.Errorf("confidenceScore = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestConfidenceScore_Clamped(t *testing.T) {
	// Scores above 1 (novelty-boosted) can push the mean past 1.
	recs := []Recommendation{{TotalScore: 1.4}, {TotalScore: 1.4}}
	if got := confidenceScore(recs); got != 1.0 {
		t.Errorf("confidenceScore = %v, want clamped to 1.0", got)
	}
}

func TestTrending(t *testing.T) {
	items := Trending("24h", 10)
	if len(items) != 3 {
		t.Fatalf("trending items = %d, want 3", len(items))
	}
	if items[0].ItemID != "trending_burger_001" {
		t.Errorf("first item = %q, want trending_burger_001", items[0].ItemID)
	}

	capped := Trending("7d", 2)
	if len(capped) != 2 {
		t.Errorf("capped trending items = %d, want 2", len(capped))
	}
}

func TestTrending_ReturnsCopy(t *testing.T) {
	items := Trending("24h", 10)
	items[0].Name = "mutated"

	fresh := Trending("24h", 10)
	if fresh[0].Name == "mutated" {
		t.Error("mutation of returned slice leaked into the static list")
	}
}
