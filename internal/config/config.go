// Package config loads the optional canvasflow configuration file.
//
// The file lives at $XDG_CONFIG_HOME/canvasflow/config.toml (falling back to
// ~/.config/canvasflow/config.toml). A missing file yields [Default]. Command
// line flags take precedence over anything loaded here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/canvasflow/pkg/cache"
	"github.com/matzehuels/canvasflow/pkg/errors"
	"github.com/matzehuels/canvasflow/pkg/pipeline"
)

const appName = "canvasflow"

// Config is the decoded configuration file.
type Config struct {
	Cache  Cache  `toml:"cache"`
	Render Render `toml:"render"`
}

// Cache configures where rendered artifacts are stored.
type Cache struct {
	Disabled bool `toml:"disabled"`
	// Dir overrides the file cache location.
	Dir string `toml:"dir"`
	// RedisURL selects the Redis backend when non-empty.
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

// Render holds defaults for the render command.
type Render struct {
	Formats  []string `toml:"formats"`
	Detailed bool     `toml:"detailed"`
}

// Duration is a time.Duration written as a string such as "168h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration %q", text)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Cache: Cache{TTL: Duration{cache.TTLArtifact}},
		Render: Render{
			Formats: []string{pipeline.FormatSVG},
		},
	}
}

// DefaultPath returns the XDG location of the config file.
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultCacheDir returns the XDG cache directory for canvasflow.
func DefaultCacheDir() (string, error) {
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the file at path on top of [Default]. An empty path means
// [DefaultPath]. A missing file is not an error unless path was given
// explicitly. Unknown keys are rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.New(errors.ErrCodeInvalidConfig,
			"unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that TOML decoding cannot.
func (c *Config) Validate() error {
	if len(c.Render.Formats) == 0 {
		c.Render.Formats = []string{pipeline.FormatSVG}
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.formats")
	}
	if c.Cache.RedisURL != "" &&
		!strings.HasPrefix(c.Cache.RedisURL, "redis://") &&
		!strings.HasPrefix(c.Cache.RedisURL, "rediss://") {
		return errors.New(errors.ErrCodeInvalidConfig,
			"cache.redis_url must start with redis:// or rediss://")
	}
	return nil
}

// CacheDir returns the configured cache directory or the XDG default.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}
