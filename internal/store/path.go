// Package store provides filesystem resolution for the Palate model database.
package store

import (
	"os"
	"path/filepath"
)

// DefaultDataDir returns the root directory for Palate data.
// Defaults to ~/.palate, falls back to ./.palate if home dir unavailable.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		cwd, _ := os.Getwd()
		return filepath.Join(cwd, ".palate")
	}
	return filepath.Join(home, ".palate")
}

// DefaultModelPath returns the default path to the model database file.
func DefaultModelPath() string {
	return filepath.Join(DefaultDataDir(), "model.db")
}

// ResolveModelPath resolves the model database path with the precedence
// explicit path > PALATE_DB_PATH env > default location.
func ResolveModelPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("PALATE_DB_PATH"); env != "" {
		return env
	}
	return DefaultModelPath()
}
