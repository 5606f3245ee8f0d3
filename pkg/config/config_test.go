package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/archview/pkg/cache"
	"github.com/matzehuels/archview/pkg/errors"
	"github.com/matzehuels/archview/pkg/theme"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Server.Port != 3000 || cfg.Server.Debounce.Duration != 100*time.Millisecond {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Render.Layout != "TB" || cfg.Render.NodeSep != 50 || cfg.Render.RankSep != 70 {
		t.Errorf("render = %+v", cfg.Render)
	}
}

func TestDecode(t *testing.T) {
	src := `
[server]
port = 8080
debounce = "250ms"

[render]
theme = "dark"
layout = "LR"

[cache]
backend = "file"
ttl = "1h"
prefix = "staging:"

[theme.dark]
api = "#123456"
`
	cfg := Default()
	if err := cfg.Decode([]byte(src)); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Server.Debounce.Duration != 250*time.Millisecond {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Render.Theme != "dark" || cfg.Render.Layout != "LR" || cfg.Render.RankSep != 70 {
		t.Errorf("render = %+v (unset fields should keep defaults)", cfg.Render)
	}
	if cfg.Cache.TTL.Duration != time.Hour || cfg.Cache.Backend != BackendFile {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	themes, err := cfg.Themes()
	if err != nil {
		t.Fatal(err)
	}
	if got := themes.Resolve("dark").Get(theme.KeyAPI); got != "#123456" {
		t.Errorf("override api = %q", got)
	}
	if got := themes.Resolve("light").Get(theme.KeyAPI); got != "#fae8ff" {
		t.Errorf("light api = %q, want untouched", got)
	}
	key := cfg.Keyer().ArtifactKey("doc", cache.ArtifactKeyOpts{})
	if key[:8] != "staging:" {
		t.Errorf("keyer prefix missing: %q", key)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", "[server\nport = 1"},
		{"unknown key", "[server]\nhost = \"x\""},
		{"bad duration", "[server]\ndebounce = \"soon\""},
		{"port range", "[server]\nport = 70000"},
		{"theme", "[render]\ntheme = \"purple\""},
		{"layout", "[render]\nlayout = \"diagonal\""},
		{"backend", "[cache]\nbackend = \"memcached\""},
		{"redis without addr", "[cache]\nbackend = \"redis\"\nredis_addr = \"\""},
		{"override palette", "[theme.purple]\napi = \"#fff\""},
		{"override key", "[theme.dark]\nsparkle = \"#fff\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Default().Decode([]byte(tt.src))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Decode() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "archview.toml")
	if err := os.WriteFile(path, []byte("[render]\nlayout = \"BT\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.Layout != "BT" {
		t.Errorf("layout = %q", cfg.Render.Layout)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("explicit missing file error = %v", err)
	}
}

func TestOpenCache(t *testing.T) {
	tests := []struct {
		backend string
		check   func(cache.Cache) bool
	}{
		{BackendNone, func(c cache.Cache) bool { _, ok := c.(cache.NullCache); return ok }},
		{BackendMemory, func(c cache.Cache) bool { _, ok := c.(*cache.MemoryCache); return ok }},
		{BackendFile, func(c cache.Cache) bool { _, ok := c.(*cache.FileCache); return ok }},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := Default()
			cfg.Cache.Backend = tt.backend
			cfg.Cache.Dir = t.TempDir()
			c, err := cfg.OpenCache(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			defer c.Close()
			if !tt.check(c) {
				t.Errorf("OpenCache() = %T", c)
			}
		})
	}
}
