package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
	httpapi "github.com/aussiebroadwan/usermgmt/internal/usermgmt/http"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/notify"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/screen"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/service"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/store"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/store/drivers/sqlite"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/view"
	"github.com/aussiebroadwan/usermgmt/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the user-management service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	directoryService    *service.DirectoryService
	updater             service.RoleUpdater
	sessions            *screen.Registry
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "usermgmt",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.seed(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("usermgmt service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown stops the server, waits for in-flight role updates and closes the
// database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down usermgmt service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	// Toggles run detached from requests and may still write to the store.
	done := make(chan struct{})
	go func() {
		app.sessions.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		app.logger.Warn("role updates still running at shutdown")
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("usermgmt service stopped")
	return nil
}

// initDatabase opens the database and applies migrations.
func (app *Application) initDatabase() error {
	dsn := app.cfg.DatabaseFile
	if dsn != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	}
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) seed(ctx context.Context) error {
	if !app.cfg.SeedFixtures {
		return nil
	}

	wrote, err := (&service.SeedService{Store: app.db}).Seed(ctx, domain.DefaultFixtures())
	if err != nil {
		return fmt.Errorf("failed to seed directory: %w", err)
	}
	if wrote {
		app.logger.Info("directory seeded with fixtures")
	}
	return nil
}

// initServices builds the directory, the role updater and the session
// registry.
func (app *Application) initServices() {
	app.directoryService = &service.DirectoryService{Store: app.db}

	var next service.RoleUpdater
	if app.cfg.RemotePersist {
		next = &service.StoreUpdater{Store: app.db}
	}
	simulated := service.NewSimulatedUpdater(next)
	simulated.Latency = app.cfg.RemoteLatency
	simulated.SuccessRate = app.cfg.RemoteSuccessRate
	app.updater = simulated

	app.sessions = screen.NewRegistry(func(n notify.Notifier) *screen.Screen {
		return screen.New(app.directoryService, app.updater, n)
	})
	app.sessions.Notifier = notify.Logger(app.logger)

	app.housekeepingService = service.NewHousekeepingService(
		app.sessions,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.ScreenIdleTTL,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() error {
	renderer, err := view.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to load page templates: %w", err)
	}

	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)
	router.Groups = app.directoryService
	router.Sessions = app.sessions
	router.Renderer = renderer
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
