package palate

import "time"

// UserProfile captures a single user's tastes, constraints, and recent
// ordering behavior. Profiles are created lazily with defaults on first
// lookup and mutated only through ProfileStore.ApplyInteraction.
type UserProfile struct {
	UserID              string    `json:"user_id"`
	Preferences         []string  `json:"preferences"`
	OrderHistory        []string  `json:"order_history"`
	DietaryRestrictions []string  `json:"dietary_restrictions"`
	PriceSensitivity    float64   `json:"price_sensitivity"`
	AvgOrderValue       float64   `json:"avg_order_value"`
	LastUpdated         time.Time `json:"last_updated"`
}

// ItemFeatures describes a recommendable catalog item. Items are immutable
// for the duration of a scoring pass; the CatalogStore owns them.
type ItemFeatures struct {
	ItemID       string   `json:"item_id"`
	Name         string   `json:"name,omitempty"`
	Cuisine      string   `json:"cuisine"`
	SpiceLevel   int      `json:"spice_level"`
	IsVegetarian bool     `json:"is_vegetarian"`
	Price        float64  `json:"price"`
	Rating       float64  `json:"rating"`
	Tags         []string `json:"tags,omitempty"`
}

// Method identifies which scoring strategy produced a candidate.
type Method string

const (
	MethodContent       Method = "content_based"
	MethodCollaborative Method = "collaborative"
	MethodContextual    Method = "contextual"
	MethodHybrid        Method = "hybrid"
	MethodFallback      Method = "fallback"
)

// Candidate is a per-method partial scoring result, created fresh for every
// recommendation request and consumed by the hybrid combiner.
type Candidate struct {
	ItemID  string   `json:"item_id"`
	Score   float64  `json:"score"`
	Method  Method   `json:"method"`
	Reasons []string `json:"reasons,omitempty"`
}

// Recommendation is a fully combined and filtered scoring result.
type Recommendation struct {
	ItemID          string             `json:"item_id"`
	Name            string             `json:"name,omitempty"`
	TotalScore      float64            `json:"total_score"`
	MethodScores    map[Method]float64 `json:"method_scores,omitempty"`
	Reasons         []string           `json:"reasons,omitempty"`
	Personalization float64            `json:"personalization_boost"`
	IsNewToUser     bool               `json:"is_new_to_user"`
}

// Context is the optional situational signal bag supplied with a
// recommendation request. Empty fields contribute no score from that axis.
type Context struct {
	TimeOfDay string `json:"time_of_day,omitempty"`
	Weather   string `json:"weather,omitempty"`
	Location  string `json:"location,omitempty"`
	Mood      string `json:"mood,omitempty"`
}

// IsZero reports whether no context axis is set.
func (c *Context) IsZero() bool {
	return c == nil || (c.TimeOfDay == "" && c.Weather == "" && c.Location == "" && c.Mood == "")
}

// Recognized context bag keys. Unrecognized keys are ignored by ParseContext.
const (
	ContextKeyTimeOfDay = "time_of_day"
	ContextKeyWeather   = "weather"
	ContextKeyLocation  = "location"
	ContextKeyMood      = "mood"
)

// Interaction merges new user activity into a profile. All fields are
// optional; zero values leave the corresponding profile fields untouched.
type Interaction struct {
	OrderedItems   []string `json:"ordered_items,omitempty"`
	Preferences    []string `json:"preferences,omitempty"`
	OrderValue     float64  `json:"order_value,omitempty"`
	DietaryChanges []string `json:"dietary_changes,omitempty"`
}

// RecommendParams configures a recommendation request.
type RecommendParams struct {
	UserID  string   `json:"user_id"`
	Limit   int      `json:"limit"`
	Context *Context `json:"context,omitempty"`
}

// RecommendResult is the external contract of the pipeline: always a
// well-formed ranked list, even when degraded to the fallback provider.
type RecommendResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	Confidence      float64          `json:"confidence"`
	Method          Method           `json:"method"`
	UserID          string           `json:"user_id"`
	RequestID       string           `json:"request_id"`
	Timestamp       time.Time        `json:"timestamp"`
}

// TrendingItem is the output shape of the external trending analytics
// collaborator. The core only serves a static derivation of it.
type TrendingItem struct {
	ItemID        string   `json:"item_id"`
	Name          string   `json:"name"`
	TrendingScore float64  `json:"trending_score"`
	OrderCount24h int      `json:"order_count_24h"`
	GrowthRate    float64  `json:"growth_rate"`
	Price         float64  `json:"price"`
	Rating        float64  `json:"rating"`
	Tags          []string `json:"tags,omitempty"`
}

// EngineStats summarizes engine and model-store state.
type EngineStats struct {
	ProfileCount  int    `json:"profile_count"`
	CatalogCount  int    `json:"catalog_count"`
	Requests      int64  `json:"requests"`
	Fallbacks     int64  `json:"fallbacks"`
	Interactions  int64  `json:"interactions"`
	ModelPath     string `json:"model_path,omitempty"`
	SchemaVersion string `json:"schema_version,omitempty"`
}

// AvailabilityFunc reports whether an item can currently be fulfilled.
// Injected by the caller; the default treats every item as available.
type AvailabilityFunc func(itemID string) bool

// LocalityFunc reports whether an item matches a local preference for the
// given location. Injected by the caller; the default never matches.
type LocalityFunc func(item ItemFeatures, location string) bool

// Profile defaults applied on first lookup.
const (
	DefaultPriceSensitivity = 0.5
	DefaultAvgOrderValue    = 20.0
	MaxHistoryLength        = 50
)

// Hybrid combination weights. Deliberately not renormalized when a method
// is absent, so single-method items stay capped below all-method items.
const (
	WeightContent       = 0.40
	WeightCollaborative = 0.35
	WeightContextual    = 0.25
)

// Personalization multiplier parameters.
const (
	BoostHighRating     = 1.10
	BoostCuisineMatch   = 1.15
	BoostNovelty        = 1.10
	MaxPersonalization  = 1.30
	HighRatingThreshold = 4.5
)

// FallbackConfidence is the confidence reported with fallback results.
const FallbackConfidence = 0.3
