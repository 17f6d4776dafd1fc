package palate

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/savorworks/palate/internal/store"
)

// Config configures the Palate engine.
type Config struct {
	// ModelPath is the path to the local SQLite model database.
	// If empty, resolved via PALATE_DB_PATH env or the default location.
	ModelPath string `koanf:"model_path"`

	// InMemory disables durable persistence entirely. The engine then
	// operates on process-lifetime stores only.
	InMemory bool `koanf:"in_memory"`

	// SourceID identifies this engine instance in logs and exports.
	// Defaults to hostname if not set.
	SourceID string `koanf:"source_id"`

	// HTTPAddr is the listen address for the HTTP API (serve command).
	HTTPAddr string `koanf:"http_addr"`

	// LogLevel is the minimum zerolog level: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is the log output format: json or console.
	LogFormat string `koanf:"log_format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	hostname, _ := os.Hostname()
	return Config{
		ModelPath: store.DefaultModelPath(),
		SourceID:  hostname,
		HTTPAddr:  ":8086",
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// ConfigFromEnv reads configuration from environment variables.
//
//	PALATE_DB_PATH    → ModelPath
//	PALATE_IN_MEMORY  → InMemory (any non-empty value enables)
//	PALATE_SOURCE_ID  → SourceID
//	PALATE_HTTP_ADDR  → HTTPAddr
//	PALATE_LOG_LEVEL  → LogLevel
//	PALATE_LOG_FORMAT → LogFormat
func ConfigFromEnv() Config {
	return Config{
		ModelPath: os.Getenv("PALATE_DB_PATH"),
		InMemory:  os.Getenv("PALATE_IN_MEMORY") != "",
		SourceID:  os.Getenv("PALATE_SOURCE_ID"),
		HTTPAddr:  os.Getenv("PALATE_HTTP_ADDR"),
		LogLevel:  os.Getenv("PALATE_LOG_LEVEL"),
		LogFormat: os.Getenv("PALATE_LOG_FORMAT"),
	}
}

// LoadConfigFile loads configuration by layering, in order of increasing
// precedence: built-in defaults, the YAML file at path (skipped when path is
// empty), and PALATE_* environment variables.
func LoadConfigFile(path string) (Config, error) {
	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return Config{}, &ValidationError{Field: "defaults", Message: err.Error()}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, &ValidationError{Field: "config file", Message: err.Error()}
		}
	}

	err := k.Load(env.Provider("PALATE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PALATE_"))
	}), nil)
	if err != nil {
		return Config{}, &ValidationError{Field: "environment", Message: err.Error()}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, &ValidationError{Field: "config", Message: err.Error()}
	}

	return cfg.WithDefaults(), nil
}

// Validate checks the configuration for errors.
// Returns *ValidationError for invalid fields.
func (c *Config) Validate() error {
	if c.ModelPath == "" && !c.InMemory {
		return &ValidationError{Field: "ModelPath", Message: "required: path to model database"}
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return &ValidationError{Field: "LogLevel", Message: "must be one of debug, info, warn, error"}
	}

	switch c.LogFormat {
	case "", "json", "console":
	default:
		return &ValidationError{Field: "LogFormat", Message: "must be json or console"}
	}

	return nil
}

// WithDefaults fills in default values for unset fields.
// ModelPath resolution: explicit > PALATE_DB_PATH env > default location.
func (c Config) WithDefaults() Config {
	defaults := DefaultConfig()

	if c.ModelPath == "" && !c.InMemory {
		c.ModelPath = store.ResolveModelPath("")
	}
	if c.SourceID == "" {
		c.SourceID = defaults.SourceID
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = defaults.HTTPAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = defaults.LogFormat
	}

	return c
}
