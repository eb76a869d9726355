package main

import (
	"fmt"
	"log"
	"os"

	"StockDashboard/internal/cache"
	"StockDashboard/internal/collector"
	"StockDashboard/internal/config"
	"StockDashboard/internal/dashboard"
	"StockDashboard/internal/input"
	"StockDashboard/internal/loader"
	"StockDashboard/internal/model"
	"StockDashboard/internal/recorder"
	"StockDashboard/internal/scheduler"
)

// app holds the long-lived pieces shared by every command.
type app struct {
	cfg   *config.Config
	dash  *dashboard.Dashboard
	rec   recorder.Recorder
	sched *scheduler.Scheduler
}

func newApp(cfgPath string) (*app, error) {
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			cfgPath = v
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("init fetcher: %w", err)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	store, err := cache.New(cfg.CacheOptions())
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}
	log.Printf("[INFO] cache policy: %s", store.Policy())

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	sched := scheduler.NewScheduler(store)
	if err := sched.RegisterSweep(cfg.Cache.SweepCron); err != nil {
		rec.Close()
		return nil, fmt.Errorf("register cache sweep: %w", err)
	}
	sched.Start()

	in := input.NewCollector(cfg.Defaults.Symbol, model.Period(cfg.Defaults.Period), model.Interval(cfg.Defaults.Interval))
	l := loader.New(fetcher, store, cfg.DataSource.Timeout)

	return &app{
		cfg:   cfg,
		dash:  dashboard.New(in, l, rec),
		rec:   rec,
		sched: sched,
	}, nil
}

func newFetcher(cfg *config.Config) (collector.Fetcher, error) {
	ds := cfg.DataSource
	switch ds.Provider {
	case config.ProviderFinanceGo:
		f, err := collector.NewFinanceGoFetcher(cfg.Proxy, ds.Timeout)
		if err != nil {
			return nil, err
		}
		return f, nil
	case config.ProviderREST:
		return collector.NewRESTFetcher(ds.BaseURL, ds.APIKey, cfg.Proxy, ds.Timeout), nil
	case config.ProviderMock:
		return &collector.MockFetcher{Price: 150, Rows: 390}, nil
	default:
		return collector.NewYahooFetcher(ds.BaseURL, cfg.Proxy, ds.Timeout), nil
	}
}

func (a *app) Close() {
	a.sched.Stop()
	if err := a.rec.Close(); err != nil {
		log.Printf("[WARN] close recorder: %v", err)
	}
}
