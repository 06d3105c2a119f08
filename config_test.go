package genabilitybridge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_SetDefaults(t *testing.T) {
	t.Parallel()

	var cfg Config
	cfg.SetDefaults()

	if cfg.Endpoint != DefaultEndpoint {
		t.Errorf("Endpoint = %q, want %q", cfg.Endpoint, DefaultEndpoint)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q, want %q", cfg.UserAgent, DefaultUserAgent)
	}
	if !cfg.IsDefaultFormat() {
		t.Error("json should be the default format")
	}
}

func TestConfig_SetDefaults_PreservesExistingValues(t *testing.T) {
	t.Parallel()

	cfg := Config{Endpoint: "https://example.test/rest/", Format: "xml"}
	cfg.SetDefaults()

	if cfg.Endpoint != "https://example.test/rest/" || cfg.Format != "xml" {
		t.Errorf("cfg = %+v, existing values overwritten", cfg)
	}
	if cfg.IsDefaultFormat() {
		t.Error("xml is not the default format")
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"bad format", func(c *Config) { c.Format = "csv" }, "must be one of"},
		{"bad endpoint", func(c *Config) { c.Endpoint = "not a url" }, "must be a valid URL"},
		{"bad proxy", func(c *Config) { c.Proxy = "::" }, "Proxy must be a valid URL"},
		{"id without key", func(c *Config) { c.ApplicationID = "app" }, "ApplicationKey is required when"},
		{"id with key", func(c *Config) { c.ApplicationID, c.ApplicationKey = "app", "key" }, ""},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "must not be negative"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate err = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genability.yaml")
	content := `endpoint: https://sandbox.example.test/rest/
format: xml
application_id: app-id
application_key: app-key
timeout: 15s
debug_logging: true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Endpoint != "https://sandbox.example.test/rest/" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.Format != "xml" || cfg.ApplicationID != "app-id" || cfg.ApplicationKey != "app-key" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Timeout)
	}
	if !cfg.DebugLogging {
		t.Error("DebugLogging should be true")
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q, want default", cfg.UserAgent)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GENABILITY_APPLICATION_ID", "env-id")
	t.Setenv("GENABILITY_APPLICATION_KEY", "env-key")
	t.Setenv("GENABILITY_FORMAT", "xml")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ApplicationID != "env-id" || cfg.ApplicationKey != "env-key" {
		t.Errorf("credentials = %q/%q", cfg.ApplicationID, cfg.ApplicationKey)
	}
	if cfg.Format != "xml" {
		t.Errorf("Format = %q, want xml", cfg.Format)
	}
	if cfg.Endpoint != DefaultEndpoint {
		t.Errorf("Endpoint = %q, want default", cfg.Endpoint)
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genability.yaml")
	if err := os.WriteFile(path, []byte("format: csv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "config validation failed") {
		t.Fatalf("err = %v, want validation failure", err)
	}
	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
