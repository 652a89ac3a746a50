package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/config"
	"resume-builder/internal/domain"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"
	infra "resume-builder/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := infra.NewLogger(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := usecase.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	httpMetrics, err := httpadapter.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	autosave := usecase.NewAutosaver(store, domain.AutosaveKey, cfg.Autosave.Debounce,
		usecase.WithClock(clockwork.NewRealClock()),
		usecase.WithWriteTimeout(cfg.Autosave.WriteTimeout),
		usecase.WithMetrics(metrics),
	)
	session := usecase.NewSession(autosave, metrics)
	if session.Restore(ctx) {
		logger.Info("restored autosaved session")
	}

	var suggester usecase.Suggester
	if cfg.AI.BaseURL != "" {
		suggester = ai.NewClient(cfg.AI)
	} else {
		logger.Info("writing suggestions disabled: AI_SERVICE_URL not set")
	}
	processor := usecase.NewProcessor(infra.NewChromedpRenderer(cfg.Render), suggester)

	app := fiber.New(fiber.Config{
		AppName:               "resume-builder",
		ErrorHandler:          httpadapter.ErrorHandler(),
		BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		DisableStartupMessage: true,
	})
	app.Use(httpadapter.RequestID())
	app.Use(httpadapter.RequestLogger(logger))
	app.Use(httpMetrics.Handler())
	httpadapter.NewHandler(session, processor, reg).Register(app)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr(), "storage", cfg.Storage.Driver)
		errCh <- app.Listen(cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
	autosave.Flush(shutdownCtx)
	return nil
}

// openStore builds the configured snapshot store. The returned func
// releases its resources.
func openStore(ctx context.Context, cfg *config.Config) (usecase.SnapshotStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return repo.NewMemoryStore(), func() {}, nil
	case config.StoragePostgres:
		pool, err := infra.NewSnapshotPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect snapshot db: %w", err)
		}
		if err := migration.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return repo.NewPostgresStore(pool), pool.Close, nil
	default:
		if err := os.MkdirAll(cfg.Storage.Dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create storage dir: %w", err)
		}
		return repo.NewFileStore(cfg.Storage.Dir), func() {}, nil
	}
}
