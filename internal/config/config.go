package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Config holds everything crate reads at startup.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	PollInterval   time.Duration
	LogLevel       string
	LogFormat      string
	LogFile        string
	SessionPath    string
	PrefsPath      string
}

const (
	defaultConfigPath     = "~/.config/crate/config.toml"
	defaultEnvFile        = ".env"
	defaultAPIBaseURL     = "http://127.0.0.1:8080/api"
	defaultRequestTimeout = 15 * time.Second
	defaultPollInterval   = 30 * time.Second
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultLogFile        = "~/.local/state/crate/crate.log"
	defaultSessionPath    = "~/.config/crate/session.toml"
	defaultPrefsPath      = "~/.config/crate/prefs.toml"
)

// Environment variables that override file values.
const (
	EnvAPIBaseURL     = "CRATE_API_BASE_URL"
	EnvLogLevel       = "CRATE_LOG_LEVEL"
	EnvRequestTimeout = "CRATE_REQUEST_TIMEOUT"
)

type fileConfig struct {
	APIBaseURL     string `toml:"api_base_url" yaml:"api_base_url"`
	RequestTimeout any    `toml:"request_timeout" yaml:"request_timeout"`
	PollInterval   any    `toml:"poll_interval" yaml:"poll_interval"`
	LogLevel       string `toml:"log_level" yaml:"log_level"`
	LogFormat      string `toml:"log_format" yaml:"log_format"`
	LogFile        string `toml:"log_file" yaml:"log_file"`
	SessionPath    string `toml:"session_path" yaml:"session_path"`
	PrefsPath      string `toml:"prefs_path" yaml:"prefs_path"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBaseURL:     defaultAPIBaseURL,
		RequestTimeout: defaultRequestTimeout,
		PollInterval:   defaultPollInterval,
		LogLevel:       defaultLogLevel,
		LogFormat:      defaultLogFormat,
		LogFile:        mustExpand(defaultLogFile),
		SessionPath:    mustExpand(defaultSessionPath),
		PrefsPath:      mustExpand(defaultPrefsPath),
	}
}

// Load reads the config file at path (TOML, or YAML for .yaml/.yml), then
// applies overrides from a .env file in the working directory and from the
// process environment. A missing config file means defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	raw, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.apply(raw); err != nil {
		return Config{}, err
	}

	env, err := readEnvFile(defaultEnvFile)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(env); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	var raw fileConfig
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return raw, nil
		}
		return raw, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return raw, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(bytes, &raw); err != nil {
			return raw, fmt.Errorf("parse config: %w", err)
		}
	default:
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return raw, fmt.Errorf("parse config: %w", err)
		}
	}
	return raw, nil
}

func (c *Config) apply(raw fileConfig) error {
	if s := strings.TrimSpace(raw.APIBaseURL); s != "" {
		c.APIBaseURL = s
	}
	if raw.RequestTimeout != nil {
		d, err := parseDuration(raw.RequestTimeout)
		if err != nil {
			return fmt.Errorf("parse config: request_timeout: %w", err)
		}
		c.RequestTimeout = d
	}
	if raw.PollInterval != nil {
		d, err := parseDuration(raw.PollInterval)
		if err != nil {
			return fmt.Errorf("parse config: poll_interval: %w", err)
		}
		c.PollInterval = d
	}
	if s := strings.TrimSpace(raw.LogLevel); s != "" {
		c.LogLevel = strings.ToLower(s)
	}
	if s := strings.TrimSpace(raw.LogFormat); s != "" {
		c.LogFormat = strings.ToLower(s)
	}
	if s := strings.TrimSpace(raw.LogFile); s != "" {
		c.LogFile = mustExpand(s)
	}
	if s := strings.TrimSpace(raw.SessionPath); s != "" {
		c.SessionPath = mustExpand(s)
	}
	if s := strings.TrimSpace(raw.PrefsPath); s != "" {
		c.PrefsPath = mustExpand(s)
	}
	return nil
}

// readEnvFile parses a dotenv file without touching the process
// environment. A missing file yields no values.
func readEnvFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}

// applyEnv overrides values from the process environment, falling back to
// the dotenv values.
func (c *Config) applyEnv(dotenv map[string]string) error {
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
		if v, ok := dotenv[key]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
		return "", false
	}
	if v, ok := lookup(EnvAPIBaseURL); ok {
		c.APIBaseURL = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvRequestTimeout); ok {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		c.RequestTimeout = d
	}
	return nil
}

// parseDuration accepts Go duration strings ("15s", "1m") and bare numbers,
// which are read as seconds.
func parseDuration(raw any) (time.Duration, error) {
	var d time.Duration
	if s, ok := raw.(string); ok && strings.IndexFunc(strings.TrimSpace(s), isUnit) >= 0 {
		parsed, err := cast.ToDurationE(strings.TrimSpace(s))
		if err != nil {
			return 0, err
		}
		d = parsed
	} else {
		secs, err := cast.ToFloat64E(raw)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %v", raw)
		}
		d = time.Duration(secs * float64(time.Second))
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %v", raw)
	}
	return d, nil
}

func isUnit(r rune) bool {
	return r >= 'a' && r <= 'z' || r == 'µ'
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
