// Package config loads graphkit's TOML configuration.
//
// A configuration file looks like:
//
//	[graphml]
//	store_ids = true
//	ordered_vertices = false
//
//	[server]
//	addr = ":8080"
//	max_body = 33554432
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "12h"
//
// Missing sections and keys keep their defaults. Command-line flags override
// file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/graphkit/pkg/cache"
	"github.com/matzehuels/graphkit/pkg/errors"
)

const appName = "graphkit"

// Defaults.
const (
	DefaultAddr    = ":8080"
	DefaultMaxBody = 32 << 20
	DefaultTTL     = 24 * time.Hour
)

// Config is the complete configuration.
type Config struct {
	GraphML GraphML `toml:"graphml"`
	Server  Server  `toml:"server"`
	Cache   Cache   `toml:"cache"`
}

// GraphML holds codec defaults.
type GraphML struct {
	StoreIDs        bool `toml:"store_ids"`
	OrderedVertices bool `toml:"ordered_vertices"`
}

// Server configures `graphkit serve`.
type Server struct {
	Addr    string `toml:"addr"`
	MaxBody int64  `toml:"max_body"` // request body limit in bytes
}

// Cache selects the result cache backend.
type Cache struct {
	Backend  string   `toml:"backend"` // null, file or redis
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

// Options converts the section into cache.Open options.
func (c Cache) Options() cache.Options {
	return cache.Options{Backend: c.Backend, Dir: c.Dir, RedisURL: c.RedisURL}
}

// Duration is a time.Duration written as a string such as "90m".
type Duration struct {
	time.Duration
}

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

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server: Server{Addr: DefaultAddr, MaxBody: DefaultMaxBody},
		Cache: Cache{
			Backend: cache.BackendFile,
			Dir:     CacheDir(),
			TTL:     Duration{DefaultTTL},
		},
	}
}

// Load reads the file at path on top of the defaults. An empty path means
// DefaultPath; a missing default file is not an error, a missing explicit
// one is.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
			}
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges and the cache backend.
func (c Config) Validate() error {
	if c.Server.MaxBody <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server.max_body must be positive, got %d", c.Server.MaxBody)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	switch c.Cache.Backend {
	case "", cache.BackendNull, cache.BackendFile, cache.BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend %q is not one of null, file, redis", c.Cache.Backend)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis_url is required for the redis backend")
	}
	return nil
}

// Write encodes c as TOML to path, creating parent directories.
func Write(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

// =============================================================================
// Paths
// =============================================================================

// DefaultPath returns $XDG_CONFIG_HOME/graphkit/config.toml, falling back to
// ~/.config. It is empty if neither can be determined.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// CacheDir returns the cache directory using XDG standard (~/.cache/graphkit/).
func CacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}
