package palate

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
)

// ExportVersion is the current export format version.
const ExportVersion = "1.0"

// ExportFormat is the portable JSON snapshot of an engine's model: every
// profile and catalog item, plus enough metadata to attribute the source.
type ExportFormat struct {
	Version    string         `json:"version"`
	ExportedAt time.Time      `json:"exported_at"`
	SourceID   string         `json:"source_id"`
	Profiles   []UserProfile  `json:"profiles"`
	Items      []ItemFeatures `json:"items"`
}

// Export writes the engine's full model as indented JSON.
func (e *Engine) Export(w io.Writer) error {
	profiles := e.profiles.Snapshot()
	out := ExportFormat{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
		SourceID:   e.cfg.SourceID,
		Profiles:   make([]UserProfile, 0, len(profiles)),
		Items:      e.catalog.Snapshot(),
	}
	for _, prof := range profiles {
		out.Profiles = append(out.Profiles, *prof)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// MergeStrategy controls how Import treats a profile or item that already
// exists locally.
type MergeStrategy string

const (
	// MergeSkip keeps the local record and ignores the imported one.
	MergeSkip MergeStrategy = "skip"

	// MergeReplace overwrites the local record with the imported one.
	MergeReplace MergeStrategy = "replace"

	// MergeCombine unions profile lists and keeps the fresher scalar
	// fields. Items fall back to replace, having no list state to union.
	MergeCombine MergeStrategy = "merge"
)

// ImportResult summarizes an import run.
type ImportResult struct {
	Profiles int `json:"profiles"`
	Items    int `json:"items"`
	Created  int `json:"created"`
	Merged   int `json:"merged"`
	Skipped  int `json:"skipped"`
}

// Import reads an export snapshot and merges it into the engine's model
// according to the given strategy. The persisted model is refreshed once at
// the end rather than per record.
func (e *Engine) Import(r io.Reader, strategy MergeStrategy) (*ImportResult, error) {
	switch strategy {
	case MergeSkip, MergeReplace, MergeCombine:
	default:
		return nil, &ValidationError{Field: "strategy", Message: fmt.Sprintf("unknown merge strategy %q", strategy)}
	}

	var in ExportFormat
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	if in.Version != ExportVersion {
		return nil, &ValidationError{Field: "version", Message: fmt.Sprintf("unsupported export version %q", in.Version)}
	}

	result := &ImportResult{}

	for _, prof := range in.Profiles {
		if prof.UserID == "" {
			result.Skipped++
			continue
		}
		result.Profiles++

		existing, ok := e.profiles.Get(prof.UserID)
		if !ok {
			e.profiles.Put(prof)
			result.Created++
			continue
		}

		switch strategy {
		case MergeSkip:
			result.Skipped++
		case MergeReplace:
			e.profiles.Put(prof)
			result.Merged++
		case MergeCombine:
			e.profiles.Put(*mergeProfiles(existing, &prof))
			result.Merged++
		}
	}

	for _, item := range in.Items {
		if item.ItemID == "" {
			result.Skipped++
			continue
		}
		result.Items++

		if _, ok := e.catalog.Get(item.ItemID); ok {
			if strategy == MergeSkip {
				result.Skipped++
				continue
			}
			result.Merged++
		} else {
			result.Created++
		}
		if err := e.catalog.Put(item); err != nil {
			return nil, err
		}
	}

	if err := e.SaveModel(); err != nil {
		return nil, fmt.Errorf("persist imported model: %w", err)
	}

	return result, nil
}

// mergeProfiles unions the list fields of two profiles and keeps the scalar
// fields of whichever was updated more recently.
func mergeProfiles(local, imported *UserProfile) *UserProfile {
	out := cloneProfile(local)
	out.Preferences = appendUnique(out.Preferences, imported.Preferences)
	out.DietaryRestrictions = appendUnique(out.DietaryRestrictions, imported.DietaryRestrictions)

	out.OrderHistory = append(out.OrderHistory, imported.OrderHistory...)
	if len(out.OrderHistory) > MaxHistoryLength {
		out.OrderHistory = out.OrderHistory[len(out.OrderHistory)-MaxHistoryLength:]
	}

	if imported.LastUpdated.After(local.LastUpdated) {
		out.PriceSensitivity = imported.PriceSensitivity
		out.AvgOrderValue = imported.AvgOrderValue
		out.LastUpdated = imported.LastUpdated
	}
	return out
}
