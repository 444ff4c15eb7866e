package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/vango-dev/showcase/internal/errors"
	"github.com/vango-dev/showcase/pkg/router"
)

const (
	// JSONFileName is the JSON configuration file name.
	JSONFileName = "showcase.json"

	// TOMLFileName is the TOML configuration file name.
	TOMLFileName = "showcase.toml"

	// DefaultName is the default application name.
	DefaultName = "showcase"

	// DefaultBase is the default base URL.
	DefaultBase = "/"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
)

// Environment variables read by FromEnv and ApplyEnv.
const (
	EnvBaseURL  = "BASE_URL"
	EnvHistory  = "SHOWCASE_HISTORY"
	EnvLogLevel = "SHOWCASE_LOG_LEVEL"
)

// Config is the complete showcase configuration.
type Config struct {
	// Name is the application name.
	Name string `json:"name,omitempty" toml:"name,omitempty"`

	// Base is the base URL the history strategy is bound to.
	Base string `json:"base,omitempty" toml:"base,omitempty"`

	// History selects the history strategy: web, hash or memory.
	History string `json:"history,omitempty" toml:"history,omitempty"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"logLevel,omitempty" toml:"log_level,omitempty"`

	// Metrics configures navigation metrics.
	Metrics MetricsConfig `json:"metrics,omitempty" toml:"metrics,omitempty"`

	// Tracing configures navigation tracing.
	Tracing TracingConfig `json:"tracing,omitempty" toml:"tracing,omitempty"`

	path string
}

// MetricsConfig configures navigation metrics.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" toml:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty" toml:"namespace,omitempty"`
}

// TracingConfig configures navigation tracing.
type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty" toml:"enabled,omitempty"`
	TracerName string `json:"tracerName,omitempty" toml:"tracer_name,omitempty"`
}

// New returns a configuration with defaults applied.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// FromEnv returns the defaults overridden by the environment.
func FromEnv() (*Config, error) {
	c := New()
	c.ApplyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the configuration file in dir, preferring JSON over TOML.
func Load(dir string) (*Config, error) {
	for _, name := range []string{JSONFileName, TOMLFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E141").
		WithDetail("No " + JSONFileName + " or " + TOMLFileName + " found in " + dir)
}

// LoadFile reads a configuration file. The format follows the extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").WithDetail("No configuration file at " + path)
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return nil, errors.New("E120").
			WithDetail("Unsupported configuration format " + filepath.Ext(path))
	}
	if err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error())
	}

	cfg.path = path
	cfg.applyDefaults()
	return cfg, nil
}

// Path returns the file the configuration was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Base == "" {
		c.Base = DefaultBase
	}
	if c.History == "" {
		c.History = string(router.ModeWeb)
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = c.Name
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = c.Name
	}
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvBaseURL); ok && v != "" {
		c.Base = v
	}
	if v := os.Getenv(EnvHistory); v != "" {
		c.History = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if _, ok := router.ParseHistoryMode(c.History); !ok {
		return errors.New("E121").
			WithDetail("Unknown history mode " + `"` + c.History + `"`)
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return errors.New("E121").
			WithDetail("Unknown log level " + `"` + c.LogLevel + `"`).
			WithSuggestion("logLevel must be one of debug, info, warn or error")
	}
	return nil
}

// HistoryMode returns the parsed history mode.
func (c *Config) HistoryMode() router.HistoryMode {
	mode, _ := router.ParseHistoryMode(c.History)
	return mode
}

// NewHistory builds the configured history strategy.
func (c *Config) NewHistory(opts ...router.HistoryOption) *router.StackHistory {
	return router.NewHistory(c.HistoryMode(), c.Base, opts...)
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, false
	}
	return level, true
}
