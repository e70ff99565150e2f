// Package app wires configuration, storage, services and HTTP routing into
// a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/moneysplits/internal/config"
	"github.com/mmynk/moneysplits/internal/export"
	"github.com/mmynk/moneysplits/internal/handler"
	"github.com/mmynk/moneysplits/internal/middleware"
	"github.com/mmynk/moneysplits/internal/service"
	"github.com/mmynk/moneysplits/internal/storage"
	"github.com/mmynk/moneysplits/internal/storage/sqlstore"
	"github.com/mmynk/moneysplits/pkg/api/apiconnect"
)

// App holds the server and everything it depends on.
type App struct {
	config  *config.Config
	store   storage.Store
	metrics *middleware.Metrics
	writeMu sync.Mutex
	router  chi.Router
	server  *http.Server
}

// New opens the configured store and builds the HTTP server.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	a := &App{
		config:  cfg,
		store:   store,
		metrics: middleware.NewMetrics(),
	}
	a.setupRouter()

	a.server = &http.Server{
		Addr: cfg.Server.Addr(),
		// Wrap with h2c for HTTP/2 without TLS
		Handler:           h2c.NewHandler(a.router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	slog.Info("Application initialized", "addr", a.server.Addr, "store", cfg.Store.Driver)
	return a, nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (storage.Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		store, err := sqlstore.NewPostgres(ctx, cfg.DSN(), cfg.MaxConns)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "dialect", store.Dialect(), "host", cfg.Host, "database", cfg.Name)
		return store, nil
	case config.DriverSQLite:
		store, err := sqlstore.New(cfg.Path)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "dialect", store.Dialect(), "database", cfg.Path)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func (a *App) setupRouter() {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		a.metrics.Interceptor(),
	)

	// Connect services
	// Every writer of the store shares one lock
	r.Mount(apiconnect.NewGroupServiceHandler(service.NewGroupService(a.store, &a.writeMu), interceptors))
	r.Mount(apiconnect.NewExpenseServiceHandler(service.NewExpenseService(a.store, &a.writeMu), interceptors))
	r.Mount(apiconnect.NewCalculatorServiceHandler(service.NewCalculatorService(), interceptors))

	// REST export/import
	r.Route("/api", handler.NewExportHandler(export.NewExporter(a.store, &a.writeMu)).Routes)

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.HandlerFor(a.metrics.Registry(), promhttp.HandlerOpts{}))

	a.router = r
}

// Handler returns the root HTTP handler without the h2c wrapper.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run serves HTTP until the server is shut down.
func (a *App) Run() error {
	slog.Info("Connect server starting", "addr", a.server.Addr)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones and closes
// the store.
func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application")

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	if err := a.store.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}

	slog.Info("Application stopped gracefully")
	return nil
}
