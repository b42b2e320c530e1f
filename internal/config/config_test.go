package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvAPIBaseURL, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvRequestTimeout, "")
	t.Chdir(t.TempDir())
	return home
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL, defaultAPIBaseURL)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		t.Fatalf("RequestTimeout = %v, want %v", cfg.RequestTimeout, defaultRequestTimeout)
	}
	wantSession := filepath.Join(home, ".config", "crate", "session.toml")
	if cfg.SessionPath != wantSession {
		t.Fatalf("SessionPath = %q, want %q", cfg.SessionPath, wantSession)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
}

func TestLoad_ParsesAndTrimsTOML(t *testing.T) {
	home := isolate(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base_url = "  https://vinyl.example/api/v1  "
request_timeout = "3s"
poll_interval = 10
log_level = " DEBUG "
session_path = "~/sessions/crate.toml"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "https://vinyl.example/api/v1" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("RequestTimeout = %v, want 3s", cfg.RequestTimeout)
	}
	if cfg.PollInterval != 10*time.Second {
		t.Fatalf("PollInterval = %v, want 10s", cfg.PollInterval)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.SessionPath != filepath.Join(home, "sessions", "crate.toml") {
		t.Fatalf("SessionPath = %q", cfg.SessionPath)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_base_url: http://yaml.example/api\nrequest_timeout: 7\nlog_format: json\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "http://yaml.example/api" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 7*time.Second {
		t.Fatalf("RequestTimeout = %v, want 7s", cfg.RequestTimeout)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("LogFormat = %q, want json", cfg.LogFormat)
	}
}

func TestLoad_EnvOverridesFileAndDotenv(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base_url = "http://file.example/api"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(".env", []byte("CRATE_API_BASE_URL=http://dotenv.example/api\nCRATE_LOG_LEVEL=warn\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "http://dotenv.example/api" {
		t.Fatalf("APIBaseURL = %q, want dotenv value", cfg.APIBaseURL)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}

	t.Setenv(EnvAPIBaseURL, "http://env.example/api")
	t.Setenv(EnvRequestTimeout, "1m")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "http://env.example/api" {
		t.Fatalf("APIBaseURL = %q, want env value", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != time.Minute {
		t.Fatalf("RequestTimeout = %v, want 1m", cfg.RequestTimeout)
	}
}

func TestLoad_RejectsBadDurations(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`request_timeout = "soon"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unparseable request_timeout")
	}

	if err := os.WriteFile(path, []byte(`request_timeout = -5`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for negative request_timeout")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not valid toml {{{\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
