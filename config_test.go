package palate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ModelPath == "" {
		t.Error("ModelPath should default to the home location")
	}
	if cfg.HTTPAddr != ":8086" {
		t.Errorf("HTTPAddr = %q, want :8086", cfg.HTTPAddr)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Errorf("logging defaults = (%q, %q), want (info, json)", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("PALATE_DB_PATH", "/tmp/test.db")
	t.Setenv("PALATE_SOURCE_ID", "test-node")
	t.Setenv("PALATE_IN_MEMORY", "1")

	cfg := ConfigFromEnv()
	if cfg.ModelPath != "/tmp/test.db" {
		t.Errorf("ModelPath = %q, want /tmp/test.db", cfg.ModelPath)
	}
	if cfg.SourceID != "test-node" {
		t.Errorf("SourceID = %q, want test-node", cfg.SourceID)
	}
	if !cfg.InMemory {
		t.Error("InMemory should be enabled by PALATE_IN_MEMORY")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		field   string
	}{
		{"valid", Config{ModelPath: "/tmp/x.db"}, false, ""},
		{"in-memory without path", Config{InMemory: true}, false, ""},
		{"missing path", Config{}, true, "ModelPath"},
		{"bad log level", Config{ModelPath: "/tmp/x.db", LogLevel: "verbose"}, true, "LogLevel"},
		{"bad log format", Config{ModelPath: "/tmp/x.db", LogFormat: "xml"}, true, "LogFormat"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if !tc.wantErr {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if verr.Field != tc.field {
				t.Errorf("Field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()

	if cfg.ModelPath == "" {
		t.Error("WithDefaults should resolve ModelPath")
	}
	if cfg.HTTPAddr != ":8086" || cfg.LogLevel != "info" {
		t.Errorf("defaults not applied: %+v", cfg)
	}

	custom := Config{HTTPAddr: ":9999", LogLevel: "debug"}.WithDefaults()
	if custom.HTTPAddr != ":9999" || custom.LogLevel != "debug" {
		t.Errorf("explicit values overwritten: %+v", custom)
	}
}

func TestConfig_WithDefaults_InMemorySkipsPath(t *testing.T) {
	cfg := Config{InMemory: true}.WithDefaults()
	if cfg.ModelPath != "" {
		t.Errorf("ModelPath = %q, want empty for in-memory config", cfg.ModelPath)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palate.yaml")
	content := "model_path: /data/model.db\nhttp_addr: \":7070\"\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}

	if cfg.ModelPath != "/data/model.db" {
		t.Errorf("ModelPath = %q, want /data/model.db", cfg.ModelPath)
	}
	if cfg.HTTPAddr != ":7070" {
		t.Errorf("HTTPAddr = %q, want :7070", cfg.HTTPAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	// Unset file keys fall back to defaults.
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}
}

func TestLoadConfigFile_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palate.yaml")
	if err := os.WriteFile(path, []byte("log_level: info\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("PALATE_LOG_LEVEL", "error")

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want error (env wins over file)", cfg.LogLevel)
	}
}

func TestLoadConfigFile_MissingFile(t *testing.T) {
	if _, err := LoadConfigFile("/nonexistent/palate.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
