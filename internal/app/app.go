package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"visit-analytics/internal/aggregators"
	"visit-analytics/internal/events"
	internalhttp "visit-analytics/internal/http"
	"visit-analytics/internal/ingestors"
	"visit-analytics/internal/queries"
	"visit-analytics/internal/shared/configs"
	"visit-analytics/internal/shared/filestorages"
	"visit-analytics/internal/shared/loggers"
	"visit-analytics/internal/stores"
	"visit-analytics/internal/streams"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	registry      aggregators.ServiceRegistry
	sweeper       aggregators.RetentionSweeper
	eventConsumer streams.EventConsumer

	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
	backgroundWg     sync.WaitGroup
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "visit-analytics").
		Logger()

	// Initialize blob store
	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize day aggregates
	newCardinality, err := aggregators.NewCardinalityFactory(config.Cardinality.Mode, config.Cardinality.Precision)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cardinality: %w", err)
	}
	var evictionHook aggregators.EvictionHook
	if config.Retention.Archive {
		evictionHook = stores.NewDayArchiveStore(fileStorage)
	}
	registry := aggregators.NewServiceRegistry(newCardinality, evictionHook)
	retention := aggregators.RetentionWindow{Days: config.Retention.Days}
	sweeper, err := aggregators.NewRetentionSweeper(registry, retention, config.Retention.Policy, evictionHook)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize retention: %w", err)
	}
	rollupCoordinator := aggregators.NewRollupCoordinator(registry, retention)

	// Initialize stream queue
	visitEventQueue := streams.NewPartitionedQueue[events.VisitEvent](config.Stream.Partitions, config.Stream.Buffer)
	consumerLogger := loggers.Component(appLogger, "consumer")
	eventConsumer := streams.NewEventConsumer(visitEventQueue, rollupCoordinator, consumerLogger)

	// Initialize ingestionService
	batchStore := stores.NewRawBatchStore(fileStorage)
	eventProducer := streams.NewEventProducer(visitEventQueue)
	ingestionService := ingestors.NewIngestionService(ingestors.NewNormalizer(), batchStore, eventProducer, config.Ingestion.MaxBatchBytes)

	queryService := queries.NewQueryService(registry)

	// Initialize http router
	httpLogger := loggers.Component(appLogger, "http")
	router := internalhttp.NewRouter(ingestionService, queryService, httpLogger,
		time.Duration(config.Server.QueryTimeout)*time.Second)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:        config,
		appLogger:     appLogger,
		server:        server,
		registry:      registry,
		sweeper:       sweeper,
		eventConsumer: eventConsumer,
	}, nil
}

// Start starts the background workers and the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting visit-analytics service on port %d (log_level=%s, file_storage_root_dir=%s, cardinality=%s, retention_days=%d)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.FileStorage.RootDir,
			app.config.Cardinality.Mode,
			app.config.Retention.Days)

	app.startBackground()

	return app.server.ListenAndServe()
}

func (app *App) startBackground() {
	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
	app.eventConsumer.Start(app.backgroundCtx)

	if app.config.Retention.Days > 0 {
		sweeperLogger := loggers.Component(app.appLogger, "retention")
		interval := time.Duration(app.config.Retention.SweepInterval) * time.Second
		app.backgroundWg.Add(1)
		go func() {
			defer app.backgroundWg.Done()
			app.runRetentionSweeper(sweeperLogger.WithContext(app.backgroundCtx), interval)
		}()
	}
}

func (app *App) runRetentionSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if _, err := app.sweeper.Sweep(ctx, now); err != nil {
				loggers.Ctx(ctx).Warn().Err(err).Msg("retention sweep incomplete")
			}
		}
	}
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server, no new events are published after this
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Drain the stream into the day aggregates
	app.eventConsumer.Stop()
	app.appLogger.Info().Msg("Background consumers stopped")

	// 3) Cancel and wait for the retention sweeper
	if app.backgroundCancel != nil {
		app.backgroundCancel()
	}
	app.backgroundWg.Wait()

	// 4) Tear down the day aggregates, archiving them when enabled
	if err := app.registry.Close(app.appLogger.WithContext(ctx)); err != nil {
		return fmt.Errorf("registry close failed: %w", err)
	}
	app.appLogger.Info().Msg("Service registry closed")

	return nil
}
