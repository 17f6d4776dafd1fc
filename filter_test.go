package palate

import "testing"

func recFor(itemID string, score float64) Recommendation {
	return Recommendation{ItemID: itemID, TotalScore: score, Personalization: 1.0}
}

func TestApplyBusinessRules_DietaryHardDrop(t *testing.T) {
	profile := &UserProfile{
		UserID:              "u1",
		DietaryRestrictions: []string{"vegetarian"},
		PriceSensitivity:    0.5,
		AvgOrderValue:       20.0,
	}
	catalog := testCatalog(
		ItemFeatures{ItemID: "meat", Name: "Steak", Price: 20.0, IsVegetarian: false},
		ItemFeatures{ItemID: "veg", Name: "Salad", Price: 20.0, IsVegetarian: true},
	)

	recs := []Recommendation{recFor("meat", 0.9), recFor("veg", 0.5)}
	got := applyBusinessRules(recs, profile, catalog, nil)

	if len(got) != 1 || got[0].ItemID != "veg" {
		t.Errorf("got %v, want only veg (dietary violation is a hard drop)", got)
	}
}

func TestApplyBusinessRules_PriceBandDrop(t *testing.T) {
	profile := &UserProfile{UserID: "u1", PriceSensitivity: 0.5, AvgOrderValue: 20.0}
	catalog := testCatalog(
		ItemFeatures{ItemID: "pricey", Name: "Truffle Plate", Price: 60.0},
		ItemFeatures{ItemID: "fair", Name: "Pasta", Price: 18.0},
	)

	recs := []Recommendation{recFor("pricey", 0.9), recFor("fair", 0.5)}
	got := applyBusinessRules(recs, profile, catalog, nil)

	if len(got) != 1 || got[0].ItemID != "fair" {
		t.Errorf("got %v, want only fair", got)
	}
}

func TestApplyBusinessRules_UnknownItemDropped(t *testing.T) {
	profile := &UserProfile{UserID: "u1", PriceSensitivity: 0.5, AvgOrderValue: 20.0}
	catalog := testCatalog(ItemFeatures{ItemID: "known", Name: "Pasta", Price: 18.0})

	recs := []Recommendation{recFor("ghost", 0.9), recFor("known", 0.5)}
	got := applyBusinessRules(recs, profile, catalog, nil)

	if len(got) != 1 || got[0].ItemID != "known" {
		t.Errorf("got %v, want only known", got)
	}
}

func TestApplyBusinessRules_AvailabilityDrop(t *testing.T) {
	profile := &UserProfile{UserID: "u1", PriceSensitivity: 0.5, AvgOrderValue: 20.0}
	catalog := testCatalog(
		ItemFeatures{ItemID: "in_stock", Name: "Pasta", Price: 18.0},
		ItemFeatures{ItemID: "sold_out", Name: "Pizza", Price: 18.0},
	)

	available := func(itemID string) bool { return itemID != "sold_out" }

	recs := []Recommendation{recFor("sold_out", 0.9), recFor("in_stock", 0.5)}
	got := applyBusinessRules(recs, profile, catalog, available)

	if len(got) != 1 || got[0].ItemID != "in_stock" {
		t.Errorf("got %v, want only in_stock", got)
	}
}

func TestApplyBusinessRules_NoveltyBoost(t *testing.T) {
	profile := &UserProfile{
		UserID:           "u1",
		OrderHistory:     []string{"familiar"},
		PriceSensitivity: 0.5,
		AvgOrderValue:    20.0,
	}
	catalog := testCatalog(
		ItemFeatures{ItemID: "familiar", Name: "Usual", Price: 18.0},
		ItemFeatures{ItemID: "novel", Name: "New Dish", Price: 18.0, Cuisine: "thai"},
	)

	recs := []Recommendation{recFor("familiar", 0.5), recFor("novel", 0.5)}
	got := applyBusinessRules(recs, profile, catalog, nil)

	if len(got) != 2 {
		t.Fatalf("results = %d, want 2", len(got))
	}

	if got[0].IsNewToUser || !almostEqual(got[0].TotalScore, 0.5) {
		t.Errorf("familiar item mutated: %+v", got[0])
	}
	if !got[1].IsNewToUser {
		t.Error("novel item should be flagged new")
	}
	if !almostEqual(got[1].TotalScore, 0.5*BoostNovelty) {
		t.Errorf("novel score = %v, want %v", got[1].TotalScore, 0.5*BoostNovelty)
	}
}

func TestApplyBusinessRules_NoveltyDoesNotResort(t *testing.T) {
	profile := &UserProfile{
		UserID:           "u1",
		OrderHistory:     []string{"first"},
		PriceSensitivity: 0.5,
		AvgOrderValue:    20.0,
	}
	catalog := testCatalog(
		ItemFeatures{ItemID: "first", Name: "First", Price: 18.0},
		ItemFeatures{ItemID: "second", Name: "Second", Price: 18.0, Cuisine: "thai"},
	)

	// second's boosted score (0.495*1.1 = 0.5445) overtakes first's 0.5,
	// but the incoming order must be preserved.
	recs := []Recommendation{recFor("first", 0.5), recFor("second", 0.495)}
	got := applyBusinessRules(recs, profile, catalog, nil)

	if got[0].ItemID != "first" || got[1].ItemID != "second" {
		t.Errorf("order = [%s, %s], want [first, second]", got[0].ItemID, got[1].ItemID)
	}
}

func TestApplyBusinessRules_DiversityWindow(t *testing.T) {
	profile := &UserProfile{UserID: "u1", PriceSensitivity: 0.5, AvgOrderValue: 20.0}

	clone := func(id string) ItemFeatures {
		return ItemFeatures{
			ItemID: id, Name: "Clone", Cuisine: "italian", SpiceLevel: 2,
			IsVegetarian: true, Price: 18.0, Rating: 4.0, Tags: []string{"pasta"},
		}
	}
	distinct := ItemFeatures{
		ItemID: "distinct", Name: "Sushi", Cuisine: "japanese", SpiceLevel: 0,
		IsVegetarian: false, Price: 19.0, Rating: 4.8, Tags: []string{"fresh"},
	}

	catalog := testCatalog(clone("c1"), clone("c2"), clone("c3"), distinct)

	recs := []Recommendation{
		recFor("c1", 0.9), recFor("c2", 0.8), recFor("c3", 0.7), recFor("distinct", 0.6),
	}
	got := applyBusinessRules(recs, profile, catalog, nil)

	ids := make([]string, 0, len(got))
	for _, rec := range got {
		ids = append(ids, rec.ItemID)
	}

	// c3 is dropped: two of the last accepted items exceed the similarity
	// cutoff. The distinct item still passes.
	want := []string{"c1", "c2", "distinct"}
	if len(ids) != len(want) {
		t.Fatalf("accepted = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("accepted[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestFeatureSimilarity(t *testing.T) {
	a := &ItemFeatures{Cuisine: "italian", SpiceLevel: 2, IsVegetarian: true, Price: 18, Rating: 4.0, Tags: []string{"x"}}
	b := &ItemFeatures{Cuisine: "italian", SpiceLevel: 2, IsVegetarian: true, Price: 18, Rating: 4.0, Tags: []string{"x"}}

	if got := featureSimilarity(a, b); got != 1.0 {
		t.Errorf("identical items similarity = %v, want 1.0", got)
	}

	c := &ItemFeatures{Cuisine: "japanese", SpiceLevel: 0, IsVegetarian: false, Price: 9, Rating: 3.0, Tags: []string{"y"}}
	if got := featureSimilarity(a, c); got != 0.0 {
		t.Errorf("disjoint items similarity = %v, want 0.0", got)
	}
}

func TestEqualTags(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want bool
	}{
		{"both empty", nil, nil, true},
		{"same order", []string{"a", "b"}, []string{"a", "b"}, true},
		{"different order", []string{"a", "b"}, []string{"b", "a"}, true},
		{"different length", []string{"a"}, []string{"a", "b"}, false},
		{"multiset mismatch", []string{"a", "a"}, []string{"a", "b"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := equalTags(tc.a, tc.b); got != tc.want {
				t.Errorf("equalTags(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}
