package palate

import (
	"sort"
	"sync"
	"time"
)

// ProfileStore holds user profiles in memory. Profiles are created lazily
// with defaults on first lookup and live for the process lifetime.
//
// Reads may run concurrently; updates are serialized per user so concurrent
// interactions for the same user never lose history or preference entries.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*UserProfile

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex

	now func() time.Time
}

// NewProfileStore creates an empty profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[string]*UserProfile),
		locks:    make(map[string]*sync.Mutex),
		now:      time.Now,
	}
}

// Resolve returns a copy of the profile for userID, creating and storing a
// default profile if none exists. It never fails.
func (p *ProfileStore) Resolve(userID string) *UserProfile {
	p.mu.RLock()
	if prof, ok := p.profiles[userID]; ok {
		clone := cloneProfile(prof)
		p.mu.RUnlock()
		return clone
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if prof, ok := p.profiles[userID]; ok {
		return cloneProfile(prof)
	}

	prof := &UserProfile{
		UserID:              userID,
		Preferences:         []string{},
		OrderHistory:        []string{},
		DietaryRestrictions: []string{},
		PriceSensitivity:    DefaultPriceSensitivity,
		AvgOrderValue:       DefaultAvgOrderValue,
		LastUpdated:         p.now().UTC(),
	}
	p.profiles[userID] = prof
	return cloneProfile(prof)
}

// ApplyInteraction merges an interaction into the user's profile:
// ordered items are appended to history (capped at MaxHistoryLength, FIFO
// eviction), preference and dietary tags are unioned with set semantics,
// and a non-zero order value folds into the running average as
// (old + new) / 2, an exponential-decay-like approximation rather than a
// true mean. The profile's last-updated timestamp is always refreshed.
func (p *ProfileStore) ApplyInteraction(userID string, interaction Interaction) {
	lock := p.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	p.Resolve(userID)

	p.mu.Lock()
	defer p.mu.Unlock()

	prof := p.profiles[userID]

	if len(interaction.OrderedItems) > 0 {
		prof.OrderHistory = append(prof.OrderHistory, interaction.OrderedItems...)
		if len(prof.OrderHistory) > MaxHistoryLength {
			prof.OrderHistory = prof.OrderHistory[len(prof.OrderHistory)-MaxHistoryLength:]
		}
	}

	if len(interaction.Preferences) > 0 {
		prof.Preferences = appendUnique(prof.Preferences, interaction.Preferences)
	}

	if interaction.OrderValue != 0 {
		prof.AvgOrderValue = (prof.AvgOrderValue + interaction.OrderValue) / 2
	}

	if len(interaction.DietaryChanges) > 0 {
		prof.DietaryRestrictions = appendUnique(prof.DietaryRestrictions, interaction.DietaryChanges)
	}

	prof.LastUpdated = p.now().UTC()
}

// Put stores a profile verbatim, replacing any existing entry.
// Used by model loading and import.
func (p *ProfileStore) Put(prof UserProfile) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profiles[prof.UserID] = cloneProfile(&prof)
}

// Get returns a copy of the profile for userID without creating a default.
func (p *ProfileStore) Get(userID string) (*UserProfile, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	prof, ok := p.profiles[userID]
	if !ok {
		return nil, false
	}
	return cloneProfile(prof), true
}

// Snapshot returns copies of all profiles, ordered by user ID so iteration
// over the snapshot is deterministic.
func (p *ProfileStore) Snapshot() []*UserProfile {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]*UserProfile, 0, len(p.profiles))
	for _, prof := range p.profiles {
		out = append(out, cloneProfile(prof))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// Count returns the number of stored profiles.
func (p *ProfileStore) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.profiles)
}

func (p *ProfileStore) userLock(userID string) *sync.Mutex {
	p.lockMu.Lock()
	defer p.lockMu.Unlock()

	lock, ok := p.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[userID] = lock
	}
	return lock
}

func cloneProfile(prof *UserProfile) *UserProfile {
	clone := *prof
	clone.Preferences = append([]string(nil), prof.Preferences...)
	clone.OrderHistory = append([]string(nil), prof.OrderHistory...)
	clone.DietaryRestrictions = append([]string(nil), prof.DietaryRestrictions...)
	return &clone
}

// appendUnique unions add into existing with set semantics, preserving
// first-seen order for determinism.
func appendUnique(existing, add []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(add))
	out := make([]string, 0, len(existing)+len(add))
	for _, s := range existing {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, s := range add {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
