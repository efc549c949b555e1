package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/linkbatch/internal/config"
	"github.com/MrSnakeDoc/linkbatch/internal/httpserver"
	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbatch/internal/logger"
	"github.com/MrSnakeDoc/linkbatch/internal/metrics"
	"github.com/MrSnakeDoc/linkbatch/internal/scheduler"
	"github.com/MrSnakeDoc/linkbatch/internal/store"
	"github.com/MrSnakeDoc/linkbatch/internal/utils"
	"github.com/MrSnakeDoc/linkbatch/internal/version"
)

type App struct {
	cfg     *config.Config
	logger  logger.Logger
	server  *httpserver.Server
	store   *store.Service
	janitor *scheduler.ShareJanitor // nil when shares never expire
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize the storage backend early - fail fast if unavailable
	loggerClient.Info("opening store", logger.String("store", cfg.Store))
	backend, err := openBackend(context.Background(), cfg, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to open %s store: %v", cfg.Store, err)
		os.Exit(1)
	}

	return build(cfg, loggerClient, backend)
}

// build wires the server and background jobs around an opened backend.
func build(cfg *config.Config, loggerClient logger.Logger, backend store.Backend) *App {
	recorder := metrics.NewRecorder()

	svc := store.NewService(backend, store.Options{
		ShareTTL: cfg.ShareTTL,
		Recorder: recorder,
	})

	var janitor *scheduler.ShareJanitor
	if svc.Configured() && cfg.ShareTTL > 0 {
		janitor = scheduler.NewShareJanitor(svc, loggerClient, cfg.GCInterval)
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		Store:        svc,
		Metrics:      recorder,
		StaticDir:    cfg.StaticDir,
		CORSOrigins:  cfg.CORSOrigins,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
	}

	return &App{
		cfg:     cfg,
		logger:  loggerClient,
		server:  httpserver.New(cfg, loggerClient, d),
		store:   svc,
		janitor: janitor,
	}
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	a.logger.Infof("🚀 Starting linkbatch v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String("linkbatch-server"))

	// Start share janitor (only with a retention limit)
	if a.janitor != nil {
		a.janitor.Start(ctx)
		a.logger.Info("share janitor started",
			logger.Duration("interval", a.cfg.GCInterval),
			logger.Duration("share_ttl", a.cfg.ShareTTL))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.shutdownStore()
		return err
	}

	if a.janitor != nil {
		a.janitor.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.shutdownStore()
	a.logger.Info("✅ linkbatch stopped cleanly")
	return nil
}

func (a *App) shutdownStore() {
	if !a.store.Configured() {
		return
	}
	utils.MustClose(a.store, "store", a.logger)
	a.logger.Info("✅ Store closed", logger.String("store", a.store.Backend().Name()))
}
