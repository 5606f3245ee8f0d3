// Package config loads archview's optional TOML configuration.
//
// Every field has a default, so a missing file is not an error. Command-line
// flags override file values.
//
//	[server]
//	port = 3000
//	debounce = "100ms"
//
//	[render]
//	theme = "light"
//	layout = "TB"
//	nodesep = 50
//	ranksep = 70
//
//	[cache]
//	backend = "memory"   # none | memory | file | redis
//	ttl = "10m"
//	redis_addr = "localhost:6379"
//
//	[theme.dark]
//	api = "#2b213a"
package config

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/archview/pkg/cache"
	"github.com/matzehuels/archview/pkg/errors"
	"github.com/matzehuels/archview/pkg/theme"
)

// AppName names the per-user config and cache directories.
const AppName = "archview"

// Cache backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Duration is a time.Duration written as a Go duration string.
type Duration struct{ time.Duration }

// UnmarshalText parses strings such as "100ms" or "10m".
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Config is the full configuration.
type Config struct {
	Server ServerConfig                 `toml:"server"`
	Render RenderConfig                 `toml:"render"`
	Cache  CacheConfig                  `toml:"cache"`
	Theme  map[string]map[string]string `toml:"theme"`
}

// ServerConfig configures `archview serve`.
type ServerConfig struct {
	Port     int      `toml:"port"`
	Debounce Duration `toml:"debounce"`
}

// RenderConfig holds the default render options.
type RenderConfig struct {
	Theme   string  `toml:"theme"`
	Layout  string  `toml:"layout"`
	NodeSep float64 `toml:"nodesep"`
	RankSep float64 `toml:"ranksep"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	TTL       Duration `toml:"ttl"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	Prefix    string   `toml:"prefix"`
}

// Default returns the built-in configuration.
func Default() *Config {
	defaults := theme.DefaultConfig()
	return &Config{
		Server: ServerConfig{Port: 3000, Debounce: Duration{100 * time.Millisecond}},
		Render: RenderConfig{
			Theme:   theme.Light,
			Layout:  defaults.RankDir,
			NodeSep: defaults.NodeSep,
			RankSep: defaults.RankSep,
		},
		Cache: CacheConfig{
			Backend:   BackendMemory,
			TTL:       Duration{10 * time.Minute},
			RedisAddr: "localhost:6379",
		},
	}
}

// DefaultPath returns <user config dir>/archview/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

// Load reads path over the defaults and validates the result. An empty
// path loads the file at DefaultPath if it exists.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	if err := cfg.Decode(data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Decode applies TOML data on top of c and validates the result. Unknown
// keys are rejected.
func (c *Config) Decode(data []byte) error {
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return c.Validate()
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.port %d out of range", c.Server.Port)
	}
	if c.Server.Debounce.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.debounce must not be negative")
	}
	if c.Render.Theme != "" && !theme.IsKnown(c.Render.Theme) {
		return errors.New(errors.ErrCodeInvalidConfig, "render.theme %q (want one of %s)",
			c.Render.Theme, strings.Join(theme.Names(), ", "))
	}
	if !theme.ValidRankDir(strings.ToUpper(c.Render.Layout)) {
		return errors.New(errors.ErrCodeInvalidConfig, "render.layout %q (want one of %s)",
			c.Render.Layout, strings.Join(theme.RankDirs, ", "))
	}
	if c.Render.NodeSep < 0 || c.Render.RankSep < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.nodesep and render.ranksep must not be negative")
	}
	switch c.Cache.Backend {
	case BackendNone, BackendMemory, BackendFile, BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q (want none, memory, file or redis)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if _, err := c.Themes(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "theme")
	}
	return nil
}

// Themes builds the palette registry with the [theme.*] overrides applied.
func (c *Config) Themes() (*theme.Registry, error) {
	return theme.NewRegistry(theme.Overrides(c.Theme))
}

// OpenCache opens the configured artifact cache backend.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendFile:
		dir := c.Cache.Dir
		if dir == "" {
			d, err := cache.DefaultDir(AppName)
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	case BackendRedis:
		return cache.NewRedisCache(ctx, c.Cache.RedisAddr)
	default:
		return cache.NewMemoryCache(), nil
	}
}

// Keyer returns the cache keyer, scoped by Cache.Prefix when set.
func (c *Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Cache.Prefix)
}
