package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/jobcolor/internal/gateway"
)

// APIConfig locates the job API the editor talks to.
type APIConfig struct {
	URL             string `yaml:"url"`
	TimeoutMs       int    `yaml:"timeout_ms"`
	MaxRetries      int    `yaml:"max_retries"`
	SearchTimeoutMs int    `yaml:"search_timeout_ms"`
	SaveTimeoutMs   int    `yaml:"save_timeout_ms"`
}

// StoreConfig configures the local job store served by `serve`.
type StoreConfig struct {
	DB         string `yaml:"db"`
	ListenAddr string `yaml:"listen_addr"`
}

// Config is the full application configuration.
type Config struct {
	Env      string      `yaml:"env"`
	LogLevel string      `yaml:"log_level"`
	LogCalls bool        `yaml:"log_calls"`
	API      APIConfig   `yaml:"api"`
	Store    StoreConfig `yaml:"store"`

	// PushgatewayURL receives job API client metrics at the end of each
	// command. Empty disables client metrics.
	PushgatewayURL string `yaml:"pushgateway_url"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	gw := gateway.DefaultConfig()
	return Config{
		Env:      "development",
		LogLevel: "info",
		API: APIConfig{
			URL:             gw.BaseURL,
			TimeoutMs:       gw.TimeoutMs,
			MaxRetries:      gw.MaxRetries,
			SearchTimeoutMs: gw.OpTimeoutsMs[gateway.OpSearch],
			SaveTimeoutMs:   gw.OpTimeoutsMs[gateway.OpSave],
		},
		Store: StoreConfig{
			DB:         "jobcolor.db",
			ListenAddr: ":3001",
		},
	}
}

// Load builds the configuration from defaults, an optional .env file, the
// YAML file named by JOBCOLOR_CONFIG and JOBCOLOR_* environment variables,
// later sources winning.
func Load() (Config, error) {
	// Missing .env is fine.
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("JOBCOLOR_CONFIG"); path != "" {
		fileCfg, err := ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		// fileCfg already carries defaults for unset keys, so every value
		// in it, zero or not, is authoritative.
		if err := mergo.Merge(&cfg, fileCfg, mergo.WithOverride, mergo.WithOverwriteWithEmptyValue); err != nil {
			return Config{}, fmt.Errorf("merging %s: %w", path, err)
		}
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadFile parses a YAML configuration file. Unset keys keep their
// default values; keys set to zero stay zero.
func ReadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("JOBCOLOR_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("JOBCOLOR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("JOBCOLOR_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("JOBCOLOR_API_URL"); v != "" {
		cfg.API.URL = v
	}
	if v := os.Getenv("JOBCOLOR_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.API.TimeoutMs = n
		}
	}
	if v := os.Getenv("JOBCOLOR_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.API.MaxRetries = n
		}
	}
	if v := os.Getenv("JOBCOLOR_DB"); v != "" {
		cfg.Store.DB = v
	}
	if v := os.Getenv("JOBCOLOR_LISTEN_ADDR"); v != "" {
		cfg.Store.ListenAddr = v
	}
	if v := os.Getenv("JOBCOLOR_PUSHGATEWAY_URL"); v != "" {
		cfg.PushgatewayURL = v
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.URL) == "" {
		return fmt.Errorf("api url is required")
	}
	if c.API.TimeoutMs <= 0 {
		return fmt.Errorf("api timeout must be positive, got %d", c.API.TimeoutMs)
	}
	if c.API.MaxRetries < 0 {
		return fmt.Errorf("api max retries must not be negative, got %d", c.API.MaxRetries)
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return fmt.Errorf("log level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	return nil
}

// Gateway converts the API settings into a gateway configuration.
func (c Config) Gateway() gateway.Config {
	return gateway.Config{
		BaseURL:    c.API.URL,
		TimeoutMs:  c.API.TimeoutMs,
		MaxRetries: c.API.MaxRetries,
		OpTimeoutsMs: map[gateway.Operation]int{
			gateway.OpSearch: c.API.SearchTimeoutMs,
			gateway.OpSave:   c.API.SaveTimeoutMs,
		},
	}
}

// BindFlags registers the global flags that override cfg in place.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.API.URL, "api", cfg.API.URL, "job API base URL")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
}
