package host

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/blueprint/pkg/errors"
)

// DefaultSizeCacheCapacity is the number of size-that-fits results kept by
// default.
const DefaultSizeCacheCapacity = 8

// Config holds host settings that can be loaded from YAML.
type Config struct {
	// SizeCacheCapacity is the number of constraints whose measured size is
	// cached. Zero disables the cache.
	SizeCacheCapacity int `yaml:"size_cache_capacity"`
	// RoundToPixels snaps view frames to the device pixel grid.
	RoundToPixels bool `yaml:"round_to_pixels"`
	// Scale overrides the platform's device pixel ratio when positive.
	Scale float64 `yaml:"scale"`
	// LogLevel is a slog level name such as "debug" or "warn".
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the settings used when none are given.
func DefaultConfig() Config {
	return Config{
		SizeCacheCapacity: DefaultSizeCacheCapacity,
		RoundToPixels:     true,
		LogLevel:          "info",
	}
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, configError("host.LoadConfig", fmt.Errorf("read %s: %w", path, err))
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, configError("host.LoadConfig", fmt.Errorf("%s: %w", path, err))
	}
	return cfg, nil
}

// ParseConfig decodes YAML config data over the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.SizeCacheCapacity < 0 {
		return fmt.Errorf("size_cache_capacity must not be negative, got %d", c.SizeCacheCapacity)
	}
	if c.Scale < 0 {
		return fmt.Errorf("scale must not be negative, got %v", c.Scale)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level. An empty level is Info.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// configError wraps err as a config error and reports it to the error
// handler before it is returned.
func configError(op string, err error) error {
	e := &errors.BlueprintError{Op: op, Kind: errors.KindConfig, Err: err}
	errors.Report(e)
	return e
}
