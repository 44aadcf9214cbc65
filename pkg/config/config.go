// Package config holds the settings threaded into the cascade and layout
// entry points.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync/atomic"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Debug toggles the painter's debug overlays.
type Debug struct {
	MarginRects  bool `toml:"margin_rects"`
	PaddingRects bool `toml:"padding_rects"`
	ContentRects bool `toml:"content_rects"`
}

// Any reports whether any overlay is enabled.
func (d Debug) Any() bool { return d.MarginRects || d.PaddingRects || d.ContentRects }

// Config is passed by value; a Config is never mutated after Validate.
type Config struct {
	// Scale multiplies every length during cascade resolution.
	Scale float64 `toml:"scale"`
	// ThreadedCascade resolves styles on worker goroutines before layout.
	ThreadedCascade bool `toml:"threaded_cascade"`
	// CascadeWorkers bounds the number of cascade goroutines.
	CascadeWorkers int `toml:"cascade_workers"`
	// MaxStabilizationPasses is the number of extra sizing passes allowed
	// when text measured after growth disagrees with the first pass.
	MaxStabilizationPasses int `toml:"max_stabilization_passes"`

	Debug    Debug  `toml:"debug"`
	LogLevel string `toml:"log_level"`
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		Scale:                  1,
		CascadeWorkers:         4,
		MaxStabilizationPasses: 1,
		LogLevel:               "info",
	}
}

// Validate checks ranges and the log level name.
func (c Config) Validate() error {
	switch {
	case !(c.Scale > 0) || math.IsInf(c.Scale, 0):
		return fmt.Errorf("%w: scale must be positive and finite, got %v", ErrInvalid, c.Scale)
	case c.CascadeWorkers < 1:
		return fmt.Errorf("%w: cascade_workers must be at least 1, got %d", ErrInvalid, c.CascadeWorkers)
	case c.MaxStabilizationPasses < 0:
		return fmt.Errorf("%w: max_stabilization_passes must not be negative, got %d", ErrInvalid, c.MaxStabilizationPasses)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Parse decodes TOML on top of the defaults and validates the result.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a TOML config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

var global atomic.Pointer[Config]

func init() {
	cfg := Default()
	global.Store(&cfg)
}

// Global returns the process-wide default used by callers that do not
// pass their own Config.
func Global() Config { return *global.Load() }

// SetGlobal replaces the process-wide default after validating it.
func SetGlobal(c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	global.Store(&c)
	return nil
}
