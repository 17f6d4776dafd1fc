package palate

import (
	"errors"
	"testing"
)

func TestScoreContext_NoContextInactive(t *testing.T) {
	items := []ItemFeatures{{ItemID: "a", Name: "Pizza"}}

	if got := scoreContext(nil, items, nil, 10); got != nil {
		t.Errorf("nil context should yield nil, got %v", got)
	}
	if got := scoreContext(&Context{}, items, nil, 10); got != nil {
		t.Errorf("empty context should yield nil, got %v", got)
	}
}

func TestKeywordAxisScore(t *testing.T) {
	tests := []struct {
		name  string
		value string
		item  ItemFeatures
		want  float64
	}{
		{"dinner matches name", "dinner", ItemFeatures{Name: "Margherita Pizza"}, 0.8},
		{"dinner matches tag", "dinner", ItemFeatures{Name: "Special", Tags: []string{"pasta"}}, 0.8},
		{"dinner no match", "dinner", ItemFeatures{Name: "Fruit Bowl"}, defaultAxisScore},
		{"unknown slot", "brunch", ItemFeatures{Name: "Margherita Pizza"}, defaultAxisScore},
		{"case insensitive", "dinner", ItemFeatures{Name: "PIZZA Supreme"}, 0.8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keywordAxisScore(timeOfDayRules, tc.value, &tc.item); got != tc.want {
				t.Errorf("keywordAxisScore = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestContextScore_MultipleAxes(t *testing.T) {
	rctx := &Context{TimeOfDay: "dinner", Weather: "cold"}
	item := &ItemFeatures{ItemID: "soup", Name: "Pasta Soup", Tags: []string{"warm"}}

	// time 0.8*0.30 + weather 0.8*0.25
	score, reasons := contextScore(rctx, item, nil)
	if !almostEqual(score, 0.44) {
		t.Errorf("score = %v, want 0.44", score)
	}
	if len(reasons) != 2 {
		t.Errorf("reasons = %v, want 2 entries", reasons)
	}
}

func TestContextScore_RainyWeather(t *testing.T) {
	rctx := &Context{Weather: "rainy"}
	item := &ItemFeatures{ItemID: "stew", Name: "Hearty Stew"}

	score, _ := contextScore(rctx, item, nil)
	if !almostEqual(score, 0.7*weatherAxisWeight) {
		t.Errorf("score = %v, want %v", score, 0.7*weatherAxisWeight)
	}
}

func TestContextScore_LocalityFunc(t *testing.T) {
	rctx := &Context{Location: "downtown"}
	item := &ItemFeatures{ItemID: "a", Name: "Plain Dish"}

	score, reasons := contextScore(rctx, item, nil)
	if !almostEqual(score, defaultAxisScore*locationAxisWeight) {
		t.Errorf("score without locality = %v, want %v", score, defaultAxisScore*locationAxisWeight)
	}
	if len(reasons) != 0 {
		t.Errorf("default axis should not produce a reason, got %v", reasons)
	}

	local := func(item ItemFeatures, location string) bool { return location == "downtown" }
	score, reasons = contextScore(rctx, item, local)
	if !almostEqual(score, localityMatchScore*locationAxisWeight) {
		t.Errorf("score with locality = %v, want %v", score, localityMatchScore*locationAxisWeight)
	}
	if len(reasons) != 1 || reasons[0] != "Local preference" {
		t.Errorf("reasons = %v, want [Local preference]", reasons)
	}
}

func TestScoreContext_ThresholdDrops(t *testing.T) {
	rctx := &Context{TimeOfDay: "dinner"}
	items := []ItemFeatures{
		{ItemID: "miss", Name: "Fruit Bowl"},    // 0.1*0.30 = 0.03, dropped
		{ItemID: "hit", Name: "Pepperoni Pizza"}, // 0.8*0.30 = 0.24, kept
	}

	got := scoreContext(rctx, items, nil, 10)
	if len(got) != 1 {
		t.Fatalf("candidates = %d, want 1", len(got))
	}
	if got[0].ItemID != "hit" {
		t.Errorf("kept item = %q, want hit", got[0].ItemID)
	}
	if got[0].Method != MethodContextual {
		t.Errorf("method = %q, want %q", got[0].Method, MethodContextual)
	}
}

func TestParseContext(t *testing.T) {
	t.Run("nil bag", func(t *testing.T) {
		rctx, err := ParseContext(nil)
		if err != nil || rctx != nil {
			t.Errorf("ParseContext(nil) = %v, %v; want nil, nil", rctx, err)
		}
	})

	t.Run("valid bag", func(t *testing.T) {
		rctx, err := ParseContext(map[string]any{
			"time_of_day": "dinner",
			"weather":     "cold",
			"location":    "downtown",
			"mood":        "sad",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rctx.TimeOfDay != "dinner" || rctx.Weather != "cold" || rctx.Location != "downtown" || rctx.Mood != "sad" {
			t.Errorf("parsed context = %+v", rctx)
		}
	})

	t.Run("unknown keys ignored", func(t *testing.T) {
		rctx, err := ParseContext(map[string]any{
			"time_of_day": "lunch",
			"user_id":     "u1",
			"limit":       float64(5),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rctx.TimeOfDay != "lunch" {
			t.Errorf("TimeOfDay = %q, want lunch", rctx.TimeOfDay)
		}
	})

	t.Run("wrong type rejected", func(t *testing.T) {
		_, err := ParseContext(map[string]any{"weather": 42})
		if !errors.Is(err, ErrMalformedContext) {
			t.Errorf("err = %v, want ErrMalformedContext", err)
		}
	})
}
