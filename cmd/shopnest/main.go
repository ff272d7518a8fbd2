package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/shopnest/backend/auth"
	"github.com/shopnest/backend/config"
	"github.com/shopnest/backend/httpapi"
	"github.com/shopnest/backend/store"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yml", "path to the configuration file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	lgr := setupLogger(cfg.Env)
	lgr.Info("starting shopnest backend", "env", cfg.Env, "address", cfg.Address)

	authLogger := slogAdapter{lgr}

	db, err := openDB(cfg.DSN)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := store.CreateTables(ctx, db); err != nil {
		log.Fatalf("failed to create schema: %v", err)
	}
	if err := store.SeedProducts(ctx, db); err != nil {
		log.Fatalf("failed to seed catalog: %v", err)
	}

	repo := store.NewRepositoryManager(db)
	repo.MustValidate()

	adminSeed := store.DefaultAdminSeed
	adminSeed.Email = cfg.Seed.AdminEmail
	adminSeed.Password = cfg.Seed.AdminPassword
	if err := store.SeedAdmin(ctx, repo.Users(), adminSeed); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}

	provider := store.NewIdentityAdapter(repo.Users()).WithLogger(authLogger)
	auther := auth.NewAuthenticator(provider, cfg.Auth).WithLogger(authLogger)

	srv := httpapi.New(httpapi.Options{
		Config: cfg,
		Repo:   repo,
		Auther: auther,
		Logger: authLogger,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-stop:
		lgr.Info("shutting down", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown error", "error", err)
		}
	}
}

func openDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	// sqlite serializes writers; a single connection avoids lock contention.
	sqldb.SetMaxOpenConns(1)

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

func setupLogger(env string) *slog.Logger {
	var lgr *slog.Logger

	switch env {
	case envLocal:
		lgr = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		lgr = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		lgr = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		lgr = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
	return lgr
}

// slogAdapter bridges printf-style logging onto slog.
type slogAdapter struct {
	lgr *slog.Logger
}

func (a slogAdapter) Debug(format string, args ...any) {
	a.lgr.Debug(fmt.Sprintf(format, args...))
}

func (a slogAdapter) Info(format string, args ...any) {
	a.lgr.Info(fmt.Sprintf(format, args...))
}

func (a slogAdapter) Error(format string, args ...any) {
	a.lgr.Error(fmt.Sprintf(format, args...))
}
