package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/exercise-tracker/internal/config"
	"github.com/phrazzld/exercise-tracker/internal/events"
	"github.com/phrazzld/exercise-tracker/internal/observability"
	"github.com/phrazzld/exercise-tracker/internal/platform/kafka"
	"github.com/phrazzld/exercise-tracker/internal/platform/postgres"
	"github.com/phrazzld/exercise-tracker/internal/service"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	metrics *observability.Metrics

	// Event system; producer is nil when Kafka publishing is disabled
	eventEmitter *events.InMemoryEventEmitter
	producer     *kafka.Producer

	userService     service.UserService
	exerciseService service.ExerciseService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	app := &application{
		config:       cfg,
		logger:       logger,
		db:           db,
		metrics:      observability.NewMetrics(),
		eventEmitter: events.NewInMemoryEventEmitter(logger),
	}

	if cfg.Events.Enabled() {
		app.producer = kafka.NewProducer(cfg.Events.KafkaBrokers, cfg.Events.WriteTimeout)
		publisher := kafka.NewPublisher(app.producer, cfg.Events.Topic, cfg.Events.WriteTimeout, logger)
		app.eventEmitter.RegisterHandler(instrumentHandler(publisher, app.metrics))
		logger.Info("Kafka event publishing enabled",
			"brokers", cfg.Events.KafkaBrokers,
			"topic", cfg.Events.Topic)
	} else {
		logger.Info("Kafka event publishing disabled")
	}

	userStore := postgres.NewPostgresUserStore(db, logger)
	exerciseStore := postgres.NewPostgresExerciseStore(db, logger)

	app.userService = service.NewUserService(userStore, app.eventEmitter, app.metrics, logger)
	app.exerciseService = service.NewExerciseService(
		db,
		userStore,
		exerciseStore,
		app.eventEmitter,
		app.metrics,
		logger,
	)

	logger.Info("Application initialized successfully",
		"event_handlers", app.eventEmitter.HandlerCount())
	return app, nil
}

// instrumentHandler counts the outcome of every event handed to next.
func instrumentHandler(next events.EventHandler, metrics *observability.Metrics) events.EventHandler {
	return events.HandlerFunc(func(ctx context.Context, event *events.Event) error {
		err := next.HandleEvent(ctx, event)
		metrics.EventPublished(event.Type, err)
		return err
	})
}

// Run serves HTTP until ctx is canceled or a shutdown signal arrives,
// then releases all resources.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.producer != nil {
		if err := app.producer.Close(); err != nil {
			app.logger.Error("Error closing Kafka producer", "error", err)
		}
	}

	if app.db != nil {
		closeDatabase(app.db, app.logger)
	}

	app.logger.Info("Application shutdown completed")
}
