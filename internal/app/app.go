package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/people-backend/internal/data/db"
	"github.com/yungbote/people-backend/internal/http"
	"github.com/yungbote/people-backend/internal/observability"
	"github.com/yungbote/people-backend/internal/platform/logger"
	"github.com/yungbote/people-backend/internal/services"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Metrics  *observability.Metrics
	Clients  Clients
	Repos    Repos
	Services Services

	server       *http.Server
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load config: %w", err)
	}
	a, err := NewWithConfig(ctx, log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}
	return a, nil
}

// NewWithConfig wires the application from an already loaded config.
func NewWithConfig(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	metrics := observability.NewMetrics()
	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)

	theDB, err := db.Open(cfg.DB, log)
	if err != nil {
		_ = otelShutdown(ctx)
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := db.AutoMigrateAll(theDB); err != nil {
		closeDB(theDB)
		_ = otelShutdown(ctx)
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	a := &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Metrics:      metrics,
		otelShutdown: otelShutdown,
	}
	fail := func(err error) (*App, error) {
		a.Close(ctx)
		return nil, err
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		return fail(err)
	}
	a.Clients = clients

	storageSvc, err := resolveStorageService(ctx, log, metrics, cfg.Storage)
	if err != nil {
		return fail(err)
	}

	a.Repos = wireRepos(theDB, log)
	a.Services, err = wireServices(theDB, log, cfg, a.Repos, &a.Clients, storageSvc, metrics)
	if err != nil {
		return fail(err)
	}

	handlerset := wireHandlers(log, theDB, cfg, a.Services)
	middleware := wireMiddleware(log, a.Services)
	a.server = wireServer(log, metrics, cfg, handlerset, middleware)
	a.Router = a.server.Engine
	return a, nil
}

// Start runs one-off startup work that needs the wired services.
func (a *App) Start(ctx context.Context) error {
	if a == nil {
		return errors.New("app not initialized")
	}
	if !a.Cfg.SeedDemoData {
		return nil
	}
	return services.SeedDemoData(ctx, a.DB, a.Log, a.Services.People)
}

// Run serves HTTP on addr until Shutdown is called.
func (a *App) Run(addr string) error {
	if a == nil || a.server == nil {
		return errors.New("app not initialized")
	}
	if addr == "" {
		addr = a.Cfg.HTTPAddr
	}
	a.Log.Info("HTTP server listening", "addr", addr)
	return a.server.Run(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (a *App) Shutdown(ctx context.Context) error {
	if a == nil || a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		if err := a.otelShutdown(shutdownCtx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
		a.otelShutdown = nil
	}
	a.Clients.Close()
	closeDB(a.DB)
	if a.Log != nil {
		a.Log.Sync()
	}
}

func closeDB(gdb *gorm.DB) {
	if gdb == nil {
		return
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
