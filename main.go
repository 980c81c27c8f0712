package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auction "auction-tracker/internal/auctionService"
	"auction-tracker/internal/config"
	"auction-tracker/internal/notifier"
	"auction-tracker/internal/repository"
	"auction-tracker/internal/repository/postgres"
	"auction-tracker/internal/repository/postgres/migrations"
	"auction-tracker/internal/scheduler"
	"auction-tracker/internal/server"
	"auction-tracker/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("failed to load configuration", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLevel(cfg.Log.Level); err != nil {
		utils.Fatal("failed to set log level", map[string]any{"error": err.Error()})
	}
	utils.Info("configuration loaded", map[string]any{"config": cfg.String()})

	repo, closeRepo, err := openStore(ctx, cfg)
	if err != nil {
		utils.Fatal("failed to open store", map[string]any{"driver": cfg.Store.Driver, "error": err.Error()})
	}
	defer closeRepo()

	notifierCfg, err := cfg.NotifierSettings()
	if err != nil {
		utils.Fatal("invalid notifier settings", map[string]any{"error": err.Error()})
	}
	emailNotifier, err := notifier.NewEmailNotifier(notifierCfg)
	if err != nil {
		utils.Fatal("failed to create notifier", map[string]any{"error": err.Error()})
	}

	manager := auction.NewAuctionManager(repo, emailNotifier)

	if cfg.Scheduler.Enabled {
		sched := scheduler.NewCronScheduler(manager, cfg.Scheduler.Spec, time.Now)
		if err := sched.Start(ctx); err != nil {
			utils.Fatal("failed to start scheduler", map[string]any{"error": err.Error()})
		}
		defer sched.Stop()
	}

	router := server.SetupRouter(manager, emailNotifier, time.Now)
	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Info("starting auction server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Error("server stopped unexpectedly", map[string]any{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	utils.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
	}
}

// openStore returns the configured AuctionDB and a function releasing its resources
func openStore(ctx context.Context, cfg *config.Config) (repository.AuctionDB, func(), error) {
	if cfg.Store.Driver != config.DriverPostgres {
		return repository.NewMemoryRepo(), func() {}, nil
	}

	dsn := cfg.Postgres.DSN()
	if cfg.Postgres.Migrate {
		if err := migrations.RunMigrations(dsn); err != nil {
			return nil, nil, err
		}
	}
	pool, err := postgres.Connect(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewStore(pool), pool.Close, nil
}
