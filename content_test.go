package palate

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func testProfile() *UserProfile {
	return &UserProfile{
		UserID:              "u1",
		Preferences:         []string{"italian"},
		OrderHistory:        []string{},
		DietaryRestrictions: []string{},
		PriceSensitivity:    0.5,
		AvgOrderValue:       20.0,
	}
}

func TestContentSimilarity_AllComponents(t *testing.T) {
	profile := testProfile()
	item := &ItemFeatures{
		ItemID:  "p1",
		Cuisine: "italian",
		Price:   18.0,
		Rating:  4.5,
	}

	// cuisine 0.30 + dietary 0.25 + price 0.20 + rating (4.5/5)*0.25
	score, reasons := contentSimilarity(profile, item)
	if !almostEqual(score, 0.975) {
		t.Errorf("score = %v, want 0.975", score)
	}
	if len(reasons) != 4 {
		t.Errorf("reasons = %v, want 4 entries", reasons)
	}
}

func TestContentSimilarity_CappedAtOne(t *testing.T) {
	profile := testProfile()
	item := &ItemFeatures{
		ItemID:  "p1",
		Cuisine: "italian",
		Price:   18.0,
		Rating:  5.0,
	}

	score, _ := contentSimilarity(profile, item)
	if score != 1.0 {
		t.Errorf("score = %v, want capped at 1.0", score)
	}
}

func TestScoreContent_ThresholdDrops(t *testing.T) {
	profile := testProfile()
	profile.DietaryRestrictions = []string{"vegetarian"}

	items := []ItemFeatures{
		{ItemID: "low", Cuisine: "french", Price: 99.0, Rating: 0.5, IsVegetarian: false},
		{ItemID: "ok", Cuisine: "italian", Price: 18.0, Rating: 4.0, IsVegetarian: true},
	}

	got := scoreContent(profile, items, 10)
	if len(got) != 1 {
		t.Fatalf("candidates = %d, want 1 (low-scoring item dropped)", len(got))
	}
	if got[0].ItemID != "ok" {
		t.Errorf("kept item = %q, want %q", got[0].ItemID, "ok")
	}
	if got[0].Method != MethodContent {
		t.Errorf("method = %q, want %q", got[0].Method, MethodContent)
	}
}

func TestScoreContent_LimitAndOrder(t *testing.T) {
	profile := testProfile()
	items := []ItemFeatures{
		{ItemID: "a", Cuisine: "french", Price: 18.0, Rating: 3.0},
		{ItemID: "b", Cuisine: "italian", Price: 18.0, Rating: 4.8},
		{ItemID: "c", Cuisine: "italian", Price: 18.0, Rating: 4.0},
	}

	got := scoreContent(profile, items, 2)
	if len(got) != 2 {
		t.Fatalf("candidates = %d, want 2", len(got))
	}
	if got[0].ItemID != "b" || got[1].ItemID != "c" {
		t.Errorf("order = [%s, %s], want [b, c]", got[0].ItemID, got[1].ItemID)
	}
}

func TestViolatesDietary(t *testing.T) {
	tests := []struct {
		name         string
		restrictions []string
		item         ItemFeatures
		want         bool
	}{
		{"no restrictions", nil, ItemFeatures{IsVegetarian: false}, false},
		{"vegetarian vs meat", []string{"vegetarian"}, ItemFeatures{IsVegetarian: false}, true},
		{"vegetarian ok", []string{"vegetarian"}, ItemFeatures{IsVegetarian: true}, false},
		{"tag match", []string{"gluten"}, ItemFeatures{IsVegetarian: true, Tags: []string{"gluten", "bread"}}, true},
		{"tag no match", []string{"gluten"}, ItemFeatures{IsVegetarian: true, Tags: []string{"rice"}}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			profile := &UserProfile{DietaryRestrictions: tc.restrictions}
			if got := violatesDietary(&tc.item, profile); got != tc.want {
				t.Errorf("violatesDietary = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWithinPriceBand(t *testing.T) {
	// avg 20, sensitivity 0.5 -> tolerance 0.25 -> band [15, 25]
	profile := testProfile()

	tests := []struct {
		price float64
		want  bool
	}{
		{15.0, true},
		{25.0, true},
		{20.0, true},
		{14.99, false},
		{25.01, false},
	}

	for _, tc := range tests {
		item := &ItemFeatures{Price: tc.price}
		if got := withinPriceBand(item, profile); got != tc.want {
			t.Errorf("withinPriceBand(%v) = %v, want %v", tc.price, got, tc.want)
		}
	}
}

func TestWithinPriceBand_SensitivityScalesBand(t *testing.T) {
	wide := &UserProfile{PriceSensitivity: 1.0, AvgOrderValue: 20.0}
	narrow := &UserProfile{PriceSensitivity: 0.2, AvgOrderValue: 20.0}

	item := &ItemFeatures{Price: 23.0}
	// wide band [10, 30], narrow band [18, 22]
	if !withinPriceBand(item, wide) {
		t.Error("price 23 should be inside [10, 30]")
	}
	if withinPriceBand(item, narrow) {
		t.Error("price 23 should be outside [18, 22]")
	}
}
