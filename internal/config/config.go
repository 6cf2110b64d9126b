// Package config loads the pagesmith configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/pagesmith/config.toml
// (~/.config/pagesmith/config.toml) unless a path is given:
//
//	[store]
//	uri = "sqlite:/var/lib/pagesmith/sites.db"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	public_url = "https://sites.example.com"
//	session_idle = "30m"
//
//	[editor]
//	history_limit = 50
//	save_attempts = 3
//	retry_delay = "1s"
//	autoplay_interval = "5s"
//
//	[log]
//	level = "info"
//
// Every field is optional. PAGESMITH_* environment variables override the
// file; see [Config.ApplyEnv].
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagesmith/pkg/cache"
	"github.com/matzehuels/pagesmith/pkg/history"
)

const appName = "pagesmith"

// Defaults.
const (
	DefaultAddr             = "127.0.0.1:8080"
	DefaultSaveAttempts     = 3
	DefaultRetryDelay       = time.Second
	DefaultAutoplayInterval = 5 * time.Second
	DefaultLogLevel         = "info"
)

// Config is the whole configuration file.
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Editor EditorConfig `toml:"editor"`
	Log    LogConfig    `toml:"log"`
}

// StoreConfig selects the website store. URI forms: "memory:",
// "file:<dir>", "sqlite:<path>", "mongodb://...".
type StoreConfig struct {
	URI string `toml:"uri"`
}

// CacheConfig selects the published page cache.
type CacheConfig struct {
	Backend  string `toml:"backend"` // none | file | redis
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
}

// ServerConfig configures `pagesmith serve`.
type ServerConfig struct {
	Addr        string        `toml:"addr"`
	PublicURL   string        `toml:"public_url"`
	SessionIdle time.Duration `toml:"session_idle"`
}

// EditorConfig configures editor sessions.
type EditorConfig struct {
	HistoryLimit     int           `toml:"history_limit"`
	SaveAttempts     int           `toml:"save_attempts"`
	RetryDelay       time.Duration `toml:"retry_delay"`
	AutoplayInterval time.Duration `toml:"autoplay_interval"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// =============================================================================
// Loading
// =============================================================================

// Load reads the file at path, or the default path when path is empty.
// A missing default file is not an error; a missing explicit file is.
// Defaults and environment overrides are applied to the result.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg = Config{}
		} else {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Parse decodes TOML from data and applies defaults. Environment overrides
// are not applied.
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overrides fields from the environment:
//
//	PAGESMITH_STORE       store.uri
//	PAGESMITH_CACHE       cache.backend
//	PAGESMITH_REDIS_URL   cache.redis_url
//	PAGESMITH_ADDR        server.addr
//	PAGESMITH_PUBLIC_URL  server.public_url
//	PAGESMITH_LOG_LEVEL   log.level
func (c *Config) ApplyEnv() {
	for env, field := range map[string]*string{
		"PAGESMITH_STORE":      &c.Store.URI,
		"PAGESMITH_CACHE":      &c.Cache.Backend,
		"PAGESMITH_REDIS_URL":  &c.Cache.RedisURL,
		"PAGESMITH_ADDR":       &c.Server.Addr,
		"PAGESMITH_PUBLIC_URL": &c.Server.PublicURL,
		"PAGESMITH_LOG_LEVEL":  &c.Log.Level,
	} {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}
}

// ApplyDefaults fills in unset fields. Paths default to the XDG data and
// cache directories.
func (c *Config) ApplyDefaults() error {
	if c.Store.URI == "" {
		dir, err := DataDir()
		if err != nil {
			return err
		}
		c.Store.URI = "file:" + filepath.Join(dir, "sites")
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = cache.BackendFile
	}
	if c.Cache.Backend == cache.BackendFile && c.Cache.Dir == "" {
		dir, err := CacheDir()
		if err != nil {
			return err
		}
		c.Cache.Dir = dir
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Editor.HistoryLimit <= 0 {
		c.Editor.HistoryLimit = history.DefaultLimit
	}
	if c.Editor.SaveAttempts <= 0 {
		c.Editor.SaveAttempts = DefaultSaveAttempts
	}
	if c.Editor.RetryDelay <= 0 {
		c.Editor.RetryDelay = DefaultRetryDelay
	}
	if c.Editor.AutoplayInterval <= 0 {
		c.Editor.AutoplayInterval = DefaultAutoplayInterval
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	return nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendFile:
	case cache.BackendRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("cache.backend: unknown backend %q (expected none, file or redis)", c.Cache.Backend)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// CacheConfig converts the cache section for cache.New.
func (c *Config) CacheConfig() cache.Config {
	return cache.Config{
		Backend:  c.Cache.Backend,
		Dir:      c.Cache.Dir,
		RedisURL: c.Cache.RedisURL,
	}
}

// =============================================================================
// Paths
// =============================================================================

// DefaultPath is the config file location (~/.config/pagesmith/config.toml).
func DefaultPath() (string, error) {
	return xdgPath("XDG_CONFIG_HOME", ".config", "config.toml")
}

// DataDir is the data directory (~/.local/share/pagesmith/).
func DataDir() (string, error) {
	return xdgPath("XDG_DATA_HOME", filepath.Join(".local", "share"), "")
}

// CacheDir is the cache directory (~/.cache/pagesmith/).
func CacheDir() (string, error) {
	return xdgPath("XDG_CACHE_HOME", ".cache", "")
}

func xdgPath(env, fallback, file string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, fallback)
	}
	return filepath.Join(base, appName, file), nil
}
