package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"StockDashboard/internal/cache"
	"StockDashboard/internal/model"

	"gopkg.in/yaml.v3"
)

// Data source providers.
const (
	ProviderYahoo     = "yahoo"
	ProviderFinanceGo = "finance-go"
	ProviderREST      = "rest"
	ProviderMock      = "mock"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	DataSource struct {
		Provider string        `yaml:"provider"`
		BaseURL  string        `yaml:"base_url"`
		APIKey   string        `yaml:"api_key"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"data_source"`
	Cache struct {
		Policy     string        `yaml:"policy"`
		MaxEntries int           `yaml:"max_entries"`
		TTL        time.Duration `yaml:"ttl"`
		SweepCron  string        `yaml:"sweep_cron"`
	} `yaml:"cache"`
	Defaults struct {
		Symbol   string `yaml:"symbol"`
		Period   string `yaml:"period"`
		Interval string `yaml:"interval"`
	} `yaml:"defaults"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DASHBOARD_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse FETCH_TIMEOUT: %w", err)
		}
		cfg.DataSource.Timeout = d
	}
	if v := os.Getenv("CACHE_POLICY"); v != "" {
		cfg.Cache.Policy = v
	}
	if v := os.Getenv("CACHE_MAX_ENTRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse CACHE_MAX_ENTRIES: %w", err)
		}
		cfg.Cache.MaxEntries = n
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse CACHE_TTL: %w", err)
		}
		cfg.Cache.TTL = d
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8501"
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = ProviderYahoo
	}
	if cfg.DataSource.Timeout == 0 {
		cfg.DataSource.Timeout = 10 * time.Second
	}
	if cfg.Cache.Policy == "" {
		cfg.Cache.Policy = cache.PolicyUnbounded
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = 256
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 15 * time.Minute
	}
	if cfg.Cache.SweepCron == "" {
		cfg.Cache.SweepCron = "0 */5 * * * *"
	}
	if cfg.Defaults.Symbol == "" {
		cfg.Defaults.Symbol = "AAPL"
	}
	if cfg.Defaults.Period == "" {
		cfg.Defaults.Period = string(model.Period1d)
	}
	if cfg.Defaults.Interval == "" {
		cfg.Defaults.Interval = string(model.Interval1m)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case ProviderYahoo, ProviderFinanceGo, ProviderMock:
	case ProviderREST:
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not one of yahoo, finance-go, rest, mock", c.DataSource.Provider)
	}
	if c.DataSource.Timeout <= 0 {
		return fmt.Errorf("data_source.timeout must be positive")
	}
	switch c.Cache.Policy {
	case cache.PolicyUnbounded:
	case cache.PolicyLRU:
		if c.Cache.MaxEntries <= 0 {
			return fmt.Errorf("cache.max_entries must be positive for the lru policy")
		}
	case cache.PolicyTTL:
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive for the ttl policy")
		}
	default:
		return fmt.Errorf("cache.policy %q is not one of unbounded, lru, ttl", c.Cache.Policy)
	}
	if !model.Period(c.Defaults.Period).Valid() {
		return fmt.Errorf("defaults.period %q is not a listed period", c.Defaults.Period)
	}
	if !model.Interval(c.Defaults.Interval).Valid() {
		return fmt.Errorf("defaults.interval %q is not a listed interval", c.Defaults.Interval)
	}
	return nil
}

// CacheOptions converts the cache section for cache.New.
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Policy:     c.Cache.Policy,
		MaxEntries: c.Cache.MaxEntries,
		TTL:        c.Cache.TTL,
	}
}
