// Package config loads rbver settings from an optional TOML file.
//
// Defaults reproduce the public service: listing http://ftp.ruby-lang.org,
// families from 1.8 up, a five minute cache. A file only needs the keys it
// changes:
//
//	listen = ":8080"
//	cache_ttl = "10m"
//	strategy = "flat"
package config

import (
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/rbver/pkg/cache"
	"github.com/matzehuels/rbver/pkg/catalog"
	rberrors "github.com/matzehuels/rbver/pkg/errors"
	"github.com/matzehuels/rbver/pkg/httputil"
	"github.com/matzehuels/rbver/pkg/integrations"
	"github.com/matzehuels/rbver/pkg/integrations/rubylang"
	"github.com/matzehuels/rbver/pkg/server"
	"github.com/matzehuels/rbver/pkg/version"
)

// DefaultListen matches the port the service has always used.
const DefaultListen = ":4567"

// Duration is a time.Duration written as a string ("5m", "1.5s") in TOML.
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config holds every setting of the serve and list commands.
type Config struct {
	Listen         string   `toml:"listen"`
	BaseURL        string   `toml:"base_url"`
	RootPrefix     string   `toml:"root_prefix"`
	MinFamily      string   `toml:"min_family"`
	Strategy       string   `toml:"strategy"`
	CacheTTL       Duration `toml:"cache_ttl"`
	RequestTimeout Duration `toml:"request_timeout"`
	RetryAttempts  int      `toml:"retry_attempts"`
	RetryDelay     Duration `toml:"retry_delay"`
	Concurrency    int      `toml:"concurrency"`
	SourceURL      string   `toml:"source_url"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen:         DefaultListen,
		BaseURL:        rubylang.DefaultBaseURL,
		RootPrefix:     catalog.DefaultRootPrefix,
		MinFamily:      catalog.DefaultFloor,
		Strategy:       string(catalog.StrategyFamily),
		CacheTTL:       Duration{cache.DefaultExpiry},
		RequestTimeout: Duration{integrations.DefaultTimeout},
		RetryAttempts:  httputil.DefaultAttempts,
		RetryDelay:     Duration{httputil.DefaultDelay},
		Concurrency:    catalog.DefaultConcurrency,
		SourceURL:      server.DefaultSourceURL,
	}
}

// Load returns the defaults overlaid with the file at path and validated.
// An empty path skips the file. Unknown keys are rejected so that typos do
// not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, rberrors.Wrap(rberrors.ErrCodeInvalidConfig, err, "read config")
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, rberrors.Wrap(rberrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, rberrors.New(rberrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting as an INVALID_CONFIG error.
func (c Config) Validate() error {
	if c.Listen == "" {
		return rberrors.New(rberrors.ErrCodeInvalidConfig, "listen address cannot be empty")
	}
	if err := rberrors.ValidateBaseURL(c.BaseURL); err != nil {
		return err
	}
	if err := rberrors.ValidatePrefix(c.RootPrefix); err != nil {
		return err
	}
	if _, err := c.Floor(); err != nil {
		return err
	}
	if _, err := catalog.ParseStrategy(c.Strategy); err != nil {
		return err
	}

	switch {
	case c.CacheTTL.Duration <= 0:
		return rberrors.New(rberrors.ErrCodeInvalidConfig, "cache_ttl must be positive, got %s", c.CacheTTL)
	case c.RequestTimeout.Duration <= 0:
		return rberrors.New(rberrors.ErrCodeInvalidConfig, "request_timeout must be positive, got %s", c.RequestTimeout)
	case c.RetryAttempts < 1:
		return rberrors.New(rberrors.ErrCodeInvalidConfig, "retry_attempts must be at least 1, got %d", c.RetryAttempts)
	case c.RetryDelay.Duration < 0:
		return rberrors.New(rberrors.ErrCodeInvalidConfig, "retry_delay cannot be negative")
	case c.Concurrency < 1:
		return rberrors.New(rberrors.ErrCodeInvalidConfig, "concurrency must be at least 1, got %d", c.Concurrency)
	}

	if u, err := url.Parse(c.SourceURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return rberrors.New(rberrors.ErrCodeInvalidConfig, "source_url %q must be an http or https URL", c.SourceURL)
	}
	return nil
}

// Floor parses MinFamily.
func (c Config) Floor() (version.Version, error) {
	v, err := version.Parse(c.MinFamily)
	if err != nil {
		return version.Version{}, rberrors.Wrap(rberrors.ErrCodeInvalidConfig, err, "min_family %q", c.MinFamily)
	}
	return v, nil
}

// RetryPolicy returns the listing retry settings.
func (c Config) RetryPolicy() httputil.Policy {
	return httputil.Policy{Attempts: c.RetryAttempts, Delay: c.RetryDelay.Duration}
}
