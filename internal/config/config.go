// Package config loads feedtune settings from defaults, an optional .env
// file, FEEDTUNE_* environment variables and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all client configuration.
type Config struct {
	// APIURL is the base URL of the feed backend.
	APIURL string `yaml:"api_url"`

	// DBPath is the SQLite database file. Empty means DefaultDBPath().
	DBPath string `yaml:"db_path"`

	// Profile keys stored preferences, so several learners can share a machine.
	Profile string `yaml:"profile"`

	// LogMode is "dev" or "prod".
	LogMode string `yaml:"log_mode"`

	// LogFile receives logs. The TUI owns the terminal, so logs never go to stderr.
	LogFile string `yaml:"log_file"`

	// RequestTimeout bounds a single feed API call.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// SliderStep is how far one arrow key press moves a mix slider.
	SliderStep float64 `yaml:"slider_step"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		APIURL:         "http://localhost:8000",
		Profile:        "default",
		LogMode:        "dev",
		RequestTimeout: 15 * time.Second,
		SliderStep:     0.05,
	}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values. A .env file in the working directory is loaded
// first when present; real environment variables win over it.
func FromEnv() Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if u := os.Getenv("NEXT_PUBLIC_API_URL"); u != "" {
		cfg.APIURL = u
	}
	if u := os.Getenv("FEEDTUNE_API_URL"); u != "" {
		cfg.APIURL = u
	}
	if p := os.Getenv("FEEDTUNE_DB"); p != "" {
		cfg.DBPath = p
	}
	if p := os.Getenv("FEEDTUNE_PROFILE"); p != "" {
		cfg.Profile = p
	}
	if m := os.Getenv("FEEDTUNE_LOG_MODE"); m != "" {
		cfg.LogMode = m
	}
	if f := os.Getenv("FEEDTUNE_LOG_FILE"); f != "" {
		cfg.LogFile = f
	}
	if t := os.Getenv("FEEDTUNE_REQUEST_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if s := os.Getenv("FEEDTUNE_SLIDER_STEP"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			cfg.SliderStep = v
		}
	}

	return cfg
}

// LoadFile overlays the non-zero fields of a YAML file onto cfg. A missing
// file is not an error.
func LoadFile(cfg Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if file.APIURL != "" {
		cfg.APIURL = file.APIURL
	}
	if file.DBPath != "" {
		cfg.DBPath = file.DBPath
	}
	if file.Profile != "" {
		cfg.Profile = file.Profile
	}
	if file.LogMode != "" {
		cfg.LogMode = file.LogMode
	}
	if file.LogFile != "" {
		cfg.LogFile = file.LogFile
	}
	if file.RequestTimeout != 0 {
		cfg.RequestTimeout = file.RequestTimeout
	}
	if file.SliderStep != 0 {
		cfg.SliderStep = file.SliderStep
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api url %q must be an absolute http(s) URL", c.APIURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api url scheme %q is not supported", u.Scheme)
	}
	if strings.TrimSpace(c.Profile) == "" {
		return fmt.Errorf("profile must not be empty")
	}
	switch strings.ToLower(c.LogMode) {
	case "dev", "development", "prod", "production":
	default:
		return fmt.Errorf("unknown log mode %q", c.LogMode)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.SliderStep <= 0 || c.SliderStep > 0.5 {
		return fmt.Errorf("slider step must be within (0, 0.5], got %v", c.SliderStep)
	}
	return nil
}

// DefaultConfigPath is $XDG_CONFIG_HOME/feedtune/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "feedtune", "config.yaml"), nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. FEEDTUNE_DB environment variable
// 2. $XDG_DATA_HOME/feedtune/feedtune.db
// 3. ~/.local/share/feedtune/feedtune.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("FEEDTUNE_DB"); p != "" {
		return p, EnsureDir(p)
	}
	dataHome, err := dataHome()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dataHome, "feedtune", "feedtune.db")
	return p, EnsureDir(p)
}

// DefaultLogPath is the log file next to the database.
func DefaultLogPath() (string, error) {
	dataHome, err := dataHome()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dataHome, "feedtune", "feedtune.log")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func dataHome() (string, error) {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share"), nil
}
