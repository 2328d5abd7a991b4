package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings Showcase needs to reach the catalog service and
// run its timers.
type Config struct {
	APIURL         string
	RequestTimeout time.Duration
	PollInterval   time.Duration
	HireDelay      time.Duration
	NoticeTTL      time.Duration
	LogFile        string
	LogLevel       string
	SessionPath    string
	PrefsPath      string
}

const (
	defaultConfigPath     = "~/.config/showcase/config.toml"
	defaultAPIURL         = "http://127.0.0.1:3000"
	defaultRequestTimeout = 10 * time.Second
	defaultPollInterval   = 30 * time.Second
	defaultHireDelay      = 2 * time.Second
	defaultNoticeTTL      = 3 * time.Second
	defaultLogFile        = "~/.local/state/showcase/showcase.log"
	defaultLogLevel       = "info"
	defaultSessionPath    = "~/.config/showcase/session.toml"
	defaultPrefsPath      = "~/.config/showcase/prefs.toml"
)

// Environment variables that override file values.
const (
	EnvAPIURL   = "SHOWCASE_API_URL"
	EnvLogLevel = "SHOWCASE_LOG_LEVEL"
	EnvLogFile  = "SHOWCASE_LOG_FILE"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the built-in configuration with paths expanded.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		RequestTimeout: defaultRequestTimeout,
		PollInterval:   defaultPollInterval,
		HireDelay:      defaultHireDelay,
		NoticeTTL:      defaultNoticeTTL,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
		SessionPath:    mustExpand(defaultSessionPath),
		PrefsPath:      mustExpand(defaultPrefsPath),
	}
}

type rawConfig struct {
	APIURL         string `toml:"api_url"`
	RequestTimeout string `toml:"request_timeout"`
	PollInterval   string `toml:"poll_interval"`
	HireDelay      string `toml:"hire_delay"`
	NoticeTTL      string `toml:"notice_ttl"`
	LogFile        string `toml:"log_file"`
	LogLevel       string `toml:"log_level"`
	SessionPath    string `toml:"session_path"`
	PrefsPath      string `toml:"prefs_path"`
}

// Load parses the config at path, falling back to defaults when the file is
// missing or a key is blank. Environment overrides apply last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"request_timeout", raw.RequestTimeout, &cfg.RequestTimeout},
		{"poll_interval", raw.PollInterval, &cfg.PollInterval},
		{"hire_delay", raw.HireDelay, &cfg.HireDelay},
		{"notice_ttl", raw.NoticeTTL, &cfg.NoticeTTL},
	}
	for _, d := range durations {
		if err := parseDuration(d.key, d.raw, d.dst); err != nil {
			return Config{}, err
		}
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	paths := []struct {
		raw string
		dst *string
	}{
		{raw.LogFile, &cfg.LogFile},
		{raw.SessionPath, &cfg.SessionPath},
		{raw.PrefsPath, &cfg.PrefsPath},
	}
	for _, p := range paths {
		if v := strings.TrimSpace(p.raw); v != "" {
			*p.dst = mustExpand(v)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func parseDuration(key, raw string, dst *time.Duration) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return fmt.Errorf("parse config: %s: %w", key, err)
	}
	if d <= 0 {
		return fmt.Errorf("parse config: %s must be positive, got %s", key, trimmed)
	}
	*dst = d
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.LogFile = mustExpand(v)
	}
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
