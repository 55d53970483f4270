package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"pop-lab/catalog"
	"pop-lab/domain"
	"pop-lab/extraction"
	"pop-lab/infrastructure/http/server"
	"pop-lab/observability"
	"pop-lab/recommender"
	"pop-lab/repositories"
	"pop-lab/runtime/workers"
	"pop-lab/services"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Mixer terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run keeps every deferred cleanup on the exit path; main only translates the code.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Catalog
	menu, err := loadCatalog(config.CatalogFilepath)
	if err != nil {
		return exitConfig, err
	}
	log.Info("Catalog loaded",
		"syrups", menu.Len(domain.Syrup),
		"sodas", menu.Len(domain.Soda),
		"addins", menu.Len(domain.AddIn),
		"featured", len(menu.Featured()),
	)

	// 3. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 4. Domain wiring
	seed := uint64(config.RandomSeed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rnd := recommender.NewLockedSource(recommender.NewSeededSource(seed))
	composer, err := recommender.NewComposer(menu, rnd, log)
	if err != nil {
		return exitConfig, fmt.Errorf("composer: %w", err)
	}
	extractor, err := extraction.NewExtractor(extractableNames(menu))
	if err != nil {
		return exitConfig, fmt.Errorf("extractor: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := observability.NewMetrics(registry)

	mixerService := services.NewMixerService(
		composer, menu, extractor,
		repositories.NewPreferenceRepository(db),
		repositories.NewCompositionRepository(db, log, config.HistoryLimit),
		metrics, rnd, log,
	)
	mixerServer := server.NewMixerServer(log, mixerService, registry).
		WithRateLimit(config.RateLimit, config.RateLimitWindow)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Supervision
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		workers.NewHTTPServerWorker(log, config.Address(), mixerServer.Routes(), config.ShutdownTimeout),
		workers.NewBadgerGCWorker(log, db, config.GCInterval),
		workers.NewProcessMetricsWorker(log, metrics, config.MetricInterval),
	)

	log.Info("Mixer started", "address", config.Address(), "seed", seed, "at", time.Now().UTC())
	sup.Run(ctx)
	log.Info("Program stopped cleanly")
	return exitOK, nil
}

func loadCatalog(path string) (*domain.Catalog, error) {
	if path == "" {
		return catalog.LoadDefault()
	}
	return catalog.LoadFile(path)
}

func extractableNames(menu *domain.Catalog) []string {
	var names []string
	for _, category := range domain.Categories {
		names = append(names, menu.Names(category)...)
	}
	return append(names, recommender.DietToken)
}
