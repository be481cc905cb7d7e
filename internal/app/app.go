package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/gauthamsrinivas7/CourtSide/internal/catalog"
	"github.com/gauthamsrinivas7/CourtSide/internal/config"
	"github.com/gauthamsrinivas7/CourtSide/internal/digest"
	"github.com/gauthamsrinivas7/CourtSide/internal/httpapi"
	"github.com/gauthamsrinivas7/CourtSide/internal/prefs"
	"github.com/gauthamsrinivas7/CourtSide/internal/provider"
	"github.com/gauthamsrinivas7/CourtSide/internal/scheduler"
	"github.com/gauthamsrinivas7/CourtSide/internal/store"
)

// App assembles the digest daemon: preference store, scheduler, content
// provider, and the local API the UI talks to.
type App struct {
	cfg     config.Config
	log     *zap.Logger
	catalog *catalog.Catalog
	prov    provider.Provider
}

// New validates the static pieces that need no I/O yet.
func New(cfg config.Config, log *zap.Logger) (*App, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}

	prov := provider.NewGemini(provider.GeminiConfig{
		BaseURL: cfg.GeminiBaseURL,
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.ProviderTimeout,
		Logger:  log,
	})

	return &App{cfg: cfg, log: log, catalog: cat, prov: prov}, nil
}

// Run opens storage, starts the scheduler and HTTP server, and blocks until
// a shutdown signal arrives.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting courtside-pulse",
		zap.String("http", a.cfg.HTTPAddr),
		zap.Duration("poll", a.cfg.PollInterval),
	)

	// Open SQLite and run migrations.
	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	defer func() { _ = repo.Close() }()
	a.log.Info("sqlite ready")

	gate := prefs.NewGate(repo)
	if err := gate.Load(ctx); err != nil {
		// A missing or unusable document just means onboarding has to
		// happen (again); the daemon still serves the API.
		a.log.Warn("preferences unavailable, onboarding required", zap.Error(err))
	}

	hub := httpapi.NewHub(a.log)
	view := digest.NewView(hub)
	fetcher := digest.NewFetcher(a.prov, view, a.log)
	sched := scheduler.New(gate, fetcher, view, a.log, a.cfg.PollInterval)
	router := httpapi.NewRouter(a.log, gate, a.catalog, fetcher, view, hub)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 3 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sched.Run(ctx)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	a.log.Info("shutdown signal received")

	// Stop accepting view mutations from fetches still in flight.
	view.Close()

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(shCtx)
	cancel()
	if err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}
	return nil
}
