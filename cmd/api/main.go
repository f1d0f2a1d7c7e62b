package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moana_backoffice/internal/brokers"
	"moana_backoffice/internal/http/router"
	"moana_backoffice/internal/leads"
	"moana_backoffice/internal/scheduler"
	"moana_backoffice/internal/webhook"
	"moana_backoffice/platform/config"
	"moana_backoffice/platform/db"
	platformevents "moana_backoffice/platform/events"
	"moana_backoffice/platform/logger"
	"moana_backoffice/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	eventBus := platformevents.NewInMemoryBus(log)
	val := validator.New()

	// Task queue client; broker notifications degrade to dashboard-only
	// when redis is not configured.
	if cfg.GetRedisURL() != "" {
		taskClient, err := scheduler.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize task queue client", "error", err)
			panic("failed to initialize task queue client: " + err.Error())
		}
		defer func() { _ = taskClient.Close() }()
		scheduler.RegisterLeadNotifyDispatcher(eventBus, taskClient, log)
		log.Info("task queue client initialized", "queue", cfg.GetAsynqQueueName())
	} else {
		log.Warn("REDIS_URL not configured; broker notifications disabled")
	}

	aliases, err := webhook.LoadAliasConfig(cfg.GetBrokerAliasFile())
	if err != nil {
		log.Error("failed to load broker alias config", "error", err, "file", cfg.GetBrokerAliasFile())
		panic("failed to load broker alias config: " + err.Error())
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	brokersModule := brokers.NewModule(pool)
	leadsModule := leads.NewModule(pool, eventBus, val, log)

	resolver := webhook.NewBrokerResolver(brokersModule.Directory(), aliases, log)
	webhookService := webhook.NewService(leadsModule.WebhookStore(), resolver, val, eventBus, log)
	webhookModule := webhook.NewModule(webhookService, cfg, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	engine := router.New(cfg, log,
		webhookModule,
		leadsModule,
		brokersModule,
	)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	var err error
	delay := baseDelay
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		log.Warn(name+" failed, retrying", "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
