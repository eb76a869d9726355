package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8501" || cfg.DataSource.Provider != ProviderYahoo {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.DataSource.Timeout != 10*time.Second {
		t.Errorf("timeout = %v", cfg.DataSource.Timeout)
	}
	if cfg.Cache.Policy != "unbounded" || cfg.Cache.SweepCron == "" {
		t.Errorf("cache defaults = %+v", cfg.Cache)
	}
	if cfg.Defaults.Symbol != "AAPL" || cfg.Defaults.Period != "1d" || cfg.Defaults.Interval != "1m" {
		t.Errorf("input defaults = %+v", cfg.Defaults)
	}
	if cfg.Database.SQLitePath != "" {
		t.Error("journal must be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, `
data_source:
  provider: rest
  base_url: http://bars.internal
  timeout: 3s
cache:
  policy: ttl
  ttl: 90s
defaults:
  symbol: MSFT
  period: 1y
  interval: 1d
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataSource.Provider != ProviderREST || cfg.DataSource.BaseURL != "http://bars.internal" {
		t.Errorf("data source = %+v", cfg.DataSource)
	}
	if cfg.DataSource.Timeout != 3*time.Second || cfg.Cache.TTL != 90*time.Second {
		t.Errorf("durations = %v / %v", cfg.DataSource.Timeout, cfg.Cache.TTL)
	}
	if cfg.Defaults.Symbol != "MSFT" {
		t.Errorf("symbol = %q", cfg.Defaults.Symbol)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	opts := cfg.CacheOptions()
	if opts.Policy != "ttl" || opts.TTL != 90*time.Second {
		t.Errorf("cache options = %+v", opts)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "data_source:\n  provider: yahoo\n")
	t.Setenv("DATA_PROVIDER", "mock")
	t.Setenv("FETCH_TIMEOUT", "250ms")
	t.Setenv("CACHE_POLICY", "lru")
	t.Setenv("CACHE_MAX_ENTRIES", "8")
	t.Setenv("DASHBOARD_ADDR", "127.0.0.1:9000")
	t.Setenv("SQLITE_PATH", "/tmp/runs.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataSource.Provider != ProviderMock || cfg.DataSource.Timeout != 250*time.Millisecond {
		t.Errorf("data source = %+v", cfg.DataSource)
	}
	if cfg.Cache.Policy != "lru" || cfg.Cache.MaxEntries != 8 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Database.SQLitePath != "/tmp/runs.db" {
		t.Errorf("server/db = %q / %q", cfg.Server.Addr, cfg.Database.SQLitePath)
	}
}

func TestLoad_BadEnvDuration(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "soon")
	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "server: [unterminated")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"rest without base url", func(c *Config) { c.DataSource.Provider = ProviderREST }, "base_url"},
		{"unknown provider", func(c *Config) { c.DataSource.Provider = "bloomberg" }, "provider"},
		{"negative timeout", func(c *Config) { c.DataSource.Timeout = -time.Second }, "timeout"},
		{"unknown policy", func(c *Config) { c.Cache.Policy = "fifo" }, "cache.policy"},
		{"lru without size", func(c *Config) { c.Cache.Policy = "lru"; c.Cache.MaxEntries = 0 }, "max_entries"},
		{"ttl without ttl", func(c *Config) { c.Cache.Policy = "ttl"; c.Cache.TTL = 0 }, "cache.ttl"},
		{"bad period", func(c *Config) { c.Defaults.Period = "2y" }, "defaults.period"},
		{"bad interval", func(c *Config) { c.Defaults.Interval = "90m" }, "defaults.interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("expected error containing %q, got %v", tt.errSub, err)
			}
		})
	}
}
