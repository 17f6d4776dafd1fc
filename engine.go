// Package palate implements a hybrid food recommendation engine. Three
// scoring methods (content similarity, peer collaboration, situational
// context) feed a weighted combiner, business rules prune the result, and a
// static fallback list guarantees a usable response when the pipeline fails.
package palate

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/savorworks/palate/internal/metrics"
)

// Engine is the top-level recommendation service. It owns the in-memory
// profile and catalog stores and, unless configured in-memory only, a SQLite
// model store that survives restarts.
//
// All methods are safe for concurrent use.
type Engine struct {
	cfg      Config
	logger   zerolog.Logger
	profiles *ProfileStore
	catalog  *CatalogStore
	store    *Store

	mu        sync.Mutex
	closed    bool
	available AvailabilityFunc
	local     LocalityFunc

	requests     atomic.Int64
	fallbacks    atomic.Int64
	interactions atomic.Int64
}

// NewEngine creates an engine from the given configuration. When a model
// store is configured and opens cleanly, previously persisted profiles and
// catalog items are loaded; persistence failures degrade the engine to
// in-memory operation instead of failing construction.
func NewEngine(cfg Config, logger zerolog.Logger) (*Engine, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		logger:   logger.With().Str("component", "engine").Logger(),
		profiles: NewProfileStore(),
		catalog:  NewCatalogStore(),
	}

	if !cfg.InMemory {
		store, err := NewStore(cfg.ModelPath)
		if err != nil {
			e.logger.Warn().Err(err).Str("path", cfg.ModelPath).
				Msg("model store unavailable, running in-memory")
		} else {
			e.store = store
			if err := e.loadModel(); err != nil {
				e.logger.Warn().Err(err).Msg("model load failed, starting empty")
			}
		}
	}

	return e, nil
}

func (e *Engine) loadModel() error {
	profiles, err := e.store.LoadProfiles()
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}
	items, err := e.store.LoadItems()
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	for _, prof := range profiles {
		e.profiles.Put(prof)
	}
	for _, item := range items {
		if err := e.catalog.Put(item); err != nil {
			return fmt.Errorf("restore item %q: %w", item.ItemID, err)
		}
	}

	e.logger.Info().
		Int("profiles", len(profiles)).
		Int("items", len(items)).
		Str("path", e.store.Path()).
		Msg("model loaded")
	return nil
}

// SetAvailabilityFunc installs the item availability check used by the
// business filter. Passing nil treats every item as available.
func (e *Engine) SetAvailabilityFunc(fn AvailabilityFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.available = fn
}

// SetLocalityFunc installs the locality check used by the context scorer.
// Passing nil means no item ever matches a local preference.
func (e *Engine) SetLocalityFunc(fn LocalityFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.local = fn
}

// Recommend runs the full pipeline for one user and returns a ranked list.
//
// Input errors (empty user ID, non-positive limit, malformed context) are
// returned to the caller. Any fault inside the pipeline itself is recovered,
// logged, and replaced by the static fallback list with reduced confidence,
// so a non-error result is always well formed.
func (e *Engine) Recommend(ctx context.Context, params RecommendParams) (result *RecommendResult, err error) {
	if params.UserID == "" {
		return nil, ErrEmptyUserID
	}
	if params.Limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrEngineClosed
	}
	available := e.available
	local := e.local
	e.mu.Unlock()

	requestID := ulid.Make().String()
	logger := e.logger.With().
		Str("request_id", requestID).
		Str("user_id", params.UserID).
		Logger()

	start := time.Now()
	defer func() {
		metrics.RequestDuration.Observe(time.Since(start).Seconds())
	}()

	defer func() {
		if r := recover(); r != nil {
			perr := &PipelineError{Stage: "scoring", Err: fmt.Errorf("%v", r)}
			logger.Error().Err(perr).Msg("pipeline failed, serving fallback")
			result = e.fallbackResult(params, requestID)
			err = nil
		}
	}()

	profile := e.profiles.Resolve(params.UserID)
	items := e.catalog.Snapshot()
	peers := e.profiles.Snapshot()

	content := scoreContent(profile, items, params.Limit)
	collaborative := scorePeers(profile, peers, params.Limit)
	contextual := scoreContext(params.Context, items, local, params.Limit)

	combined := combineScores(content, collaborative, contextual, profile, e.catalog)
	filtered := applyBusinessRules(combined, profile, e.catalog, available)

	if len(filtered) > params.Limit {
		filtered = filtered[:params.Limit]
	}

	e.requests.Add(1)
	metrics.RequestsTotal.WithLabelValues(string(MethodHybrid)).Inc()

	logger.Debug().
		Int("content", len(content)).
		Int("collaborative", len(collaborative)).
		Int("contextual", len(contextual)).
		Int("returned", len(filtered)).
		Msg("recommendations computed")

	return &RecommendResult{
		Recommendations: filtered,
		Confidence:      confidenceScore(filtered),
		Method:          MethodHybrid,
		UserID:          params.UserID,
		RequestID:       requestID,
		Timestamp:       time.Now().UTC(),
	}, nil
}

func (e *Engine) fallbackResult(params RecommendParams, requestID string) *RecommendResult {
	e.requests.Add(1)
	e.fallbacks.Add(1)
	metrics.RequestsTotal.WithLabelValues(string(MethodFallback)).Inc()
	metrics.FallbacksTotal.Inc()

	return &RecommendResult{
		Recommendations: fallbackRecommendations(params.Limit),
		Confidence:      FallbackConfidence,
		Method:          MethodFallback,
		UserID:          params.UserID,
		RequestID:       requestID,
		Timestamp:       time.Now().UTC(),
	}
}

// ApplyInteraction merges user activity into the profile and persists the
// updated profile when a model store is attached. Persistence failures are
// logged and counted, never surfaced.
func (e *Engine) ApplyInteraction(ctx context.Context, userID string, interaction Interaction) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrEngineClosed
	}
	e.mu.Unlock()

	e.profiles.ApplyInteraction(userID, interaction)
	e.interactions.Add(1)
	metrics.InteractionsTotal.Inc()

	if e.store != nil {
		if prof, ok := e.profiles.Get(userID); ok {
			if err := e.store.UpsertProfile(prof); err != nil {
				metrics.PersistErrors.Inc()
				e.logger.Warn().Err(err).Str("user_id", userID).
					Msg("profile persist failed")
			}
		}
	}

	return nil
}

// AddItem inserts or replaces a catalog item, persisting it when a model
// store is attached.
func (e *Engine) AddItem(item ItemFeatures) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrEngineClosed
	}
	e.mu.Unlock()

	if err := e.catalog.Put(item); err != nil {
		return err
	}

	if e.store != nil {
		if err := e.store.UpsertItem(&item); err != nil {
			metrics.PersistErrors.Inc()
			e.logger.Warn().Err(err).Str("item_id", item.ItemID).
				Msg("item persist failed")
		}
	}

	return nil
}

// Trending returns the current trending list for the given analytics window.
func (e *Engine) Trending(timeRange string, limit int) []TrendingItem {
	return Trending(timeRange, limit)
}

// Stats reports engine counters and model store details.
func (e *Engine) Stats() EngineStats {
	stats := EngineStats{
		ProfileCount: e.profiles.Count(),
		CatalogCount: e.catalog.Count(),
		Requests:     e.requests.Load(),
		Fallbacks:    e.fallbacks.Load(),
		Interactions: e.interactions.Load(),
	}
	if e.store != nil {
		stats.ModelPath = e.store.Path()
		stats.SchemaVersion = e.store.SchemaVersion()
	}
	return stats
}

// Profiles exposes the profile store for export and inspection.
func (e *Engine) Profiles() *ProfileStore { return e.profiles }

// Catalog exposes the catalog store for export and inspection.
func (e *Engine) Catalog() *CatalogStore { return e.catalog }

// SaveModel writes the full in-memory state to the model store.
// Returns nil when running in-memory only.
func (e *Engine) SaveModel() error {
	if e.store == nil {
		return nil
	}
	return e.store.SaveSnapshot(e.profiles.Snapshot(), e.catalog.Snapshot())
}

// Close flushes the model and closes the store. Safe to call twice.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	if e.store == nil {
		return nil
	}
	if err := e.SaveModel(); err != nil {
		e.logger.Warn().Err(err).Msg("final model save failed")
	}
	return e.store.Close()
}
