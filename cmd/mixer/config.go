package main

import (
	"fmt"
	"time"
)

type Config struct {
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	Host            string        `env:"HOST,default=localhost"`
	Port            int           `env:"PORT,default=8080"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	CatalogFilepath string        `env:"CATALOG_FILEPATH"`
	RandomSeed      int64         `env:"RANDOM_SEED"`
	HistoryLimit    *int          `env:"HISTORY_LIMIT"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=2s"`
	GCInterval      time.Duration `env:"GC_INTERVAL,default=10m"`
	MetricInterval  time.Duration `env:"METRIC_INTERVAL,default=15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
	RateLimit       int           `env:"RATE_LIMIT_REQUESTS,default=0"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW,default=1m"`
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be within 1..65535, got %d", c.Port)
	}
	if c.HistoryLimit != nil && *c.HistoryLimit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be positive, got %d", *c.HistoryLimit)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must not be negative, got %d", c.RateLimit)
	}
	for name, d := range map[string]time.Duration{
		"RESTART_INTERVAL":  c.RestartInterval,
		"GC_INTERVAL":       c.GCInterval,
		"METRIC_INTERVAL":   c.MetricInterval,
		"SHUTDOWN_TIMEOUT":  c.ShutdownTimeout,
		"RATE_LIMIT_WINDOW": c.RateLimitWindow,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	return nil
}
