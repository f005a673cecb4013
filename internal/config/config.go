// Package config loads curl-mapper settings from a YAML file, a .env file
// and CURL_MAPPER_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config path is given. It may be absent.
const DefaultPath = "curl-mapper.yaml"

// Colour modes for table output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Config struct {
	Server struct {
		Listen         string `yaml:"listen"`
		ReadTimeoutMs  int    `yaml:"read_timeout_ms"`
		WriteTimeoutMs int    `yaml:"write_timeout_ms"`
	} `yaml:"server"`

	Companion struct {
		// Dir holds the companion JSON/YAML documents offered for mapping.
		Dir        string `yaml:"dir"`
		Watch      bool   `yaml:"watch"`
		DebounceMs int    `yaml:"debounce_ms"`
		CacheSize  int    `yaml:"cache_size"`
	} `yaml:"companion"`

	Suggest struct {
		Limit    int     `yaml:"limit"`
		MinScore float64 `yaml:"min_score"`
	} `yaml:"suggest"`

	Output struct {
		Color string `yaml:"color"`
	} `yaml:"output"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	var cfg Config

	applyDefaults(&cfg)

	return &cfg
}

// Load reads path (DefaultPath when empty), then .env and the environment.
// A missing DefaultPath is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath
	}

	var cfg Config

	// #nosec G304 -- path is provided by trusted config/flag.
	b, err := os.ReadFile(path)

	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Debounce returns the watcher debounce as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Companion.DebounceMs) * time.Millisecond
}

// ReadTimeout returns the HTTP server read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeoutMs) * time.Millisecond
}

// WriteTimeout returns the HTTP server write timeout.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeoutMs) * time.Millisecond
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Server.Listen) == "" {
		cfg.Server.Listen = ":8080"
	}

	if cfg.Server.ReadTimeoutMs <= 0 {
		cfg.Server.ReadTimeoutMs = 15000
	}

	if cfg.Server.WriteTimeoutMs <= 0 {
		cfg.Server.WriteTimeoutMs = 15000
	}

	if cfg.Companion.DebounceMs <= 0 {
		cfg.Companion.DebounceMs = 200
	}

	if cfg.Companion.CacheSize <= 0 {
		cfg.Companion.CacheSize = 256
	}

	if cfg.Suggest.Limit <= 0 {
		cfg.Suggest.Limit = 5
	}

	if strings.TrimSpace(cfg.Output.Color) == "" {
		cfg.Output.Color = ColorAuto
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("CURL_MAPPER_LISTEN")); v != "" {
		cfg.Server.Listen = v
	} else if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if strings.HasPrefix(v, ":") {
			cfg.Server.Listen = v
		} else {
			cfg.Server.Listen = ":" + v
		}
	}

	if v := strings.TrimSpace(os.Getenv("CURL_MAPPER_DOCS_DIR")); v != "" {
		cfg.Companion.Dir = v
	}

	cfg.Companion.Watch = envBool("CURL_MAPPER_WATCH", cfg.Companion.Watch)

	if n, ok := envInt("CURL_MAPPER_DEBOUNCE_MS"); ok && n > 0 {
		cfg.Companion.DebounceMs = n
	}

	if n, ok := envInt("CURL_MAPPER_CACHE_SIZE"); ok && n > 0 {
		cfg.Companion.CacheSize = n
	}

	if n, ok := envInt("CURL_MAPPER_SUGGEST_LIMIT"); ok && n > 0 {
		cfg.Suggest.Limit = n
	}

	if v := strings.TrimSpace(os.Getenv("CURL_MAPPER_COLOR")); v != "" {
		cfg.Output.Color = strings.ToLower(v)
	}
}

func validate(cfg *Config) error {
	switch cfg.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid output.color %q (want auto, always or never)", cfg.Output.Color)
	}

	if cfg.Suggest.MinScore < 0 || cfg.Suggest.MinScore > 1 {
		return fmt.Errorf("invalid suggest.min_score %v (want 0..1)", cfg.Suggest.MinScore)
	}

	if cfg.Companion.Watch && strings.TrimSpace(cfg.Companion.Dir) == "" {
		return errors.New("companion.watch requires companion.dir")
	}

	return nil
}

func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}

	return v
}

func envInt(key string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}

	return n, true
}
