package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/PUSHKARDEORE/Finalytics/internal/auth"
	authMemStore "github.com/PUSHKARDEORE/Finalytics/internal/auth/store/memory"
	authPgStore "github.com/PUSHKARDEORE/Finalytics/internal/auth/store/postgres"
	"github.com/PUSHKARDEORE/Finalytics/internal/config"
	"github.com/PUSHKARDEORE/Finalytics/internal/database"
	"github.com/PUSHKARDEORE/Finalytics/internal/export"
	finHttp "github.com/PUSHKARDEORE/Finalytics/internal/http"
	authHandler "github.com/PUSHKARDEORE/Finalytics/internal/http/auth"
	txHandler "github.com/PUSHKARDEORE/Finalytics/internal/http/transaction"
	"github.com/PUSHKARDEORE/Finalytics/internal/seed"
	"github.com/PUSHKARDEORE/Finalytics/internal/stats"
	"github.com/PUSHKARDEORE/Finalytics/internal/transaction"
	txMemStore "github.com/PUSHKARDEORE/Finalytics/internal/transaction/store/memory"
	txPgStore "github.com/PUSHKARDEORE/Finalytics/internal/transaction/store/postgres"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	txRepo, authRepo, err := buildRepositories(cfg)
	if err != nil {
		slog.Error("failed to initialize storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}

	var (
		transactionService = transaction.NewService(txRepo)
		statsService       = stats.NewService(txRepo)
		exportService      = export.NewService(txRepo)
		authService        = auth.NewService(authRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	)

	var (
		authH        = authHandler.NewHandler(authService)
		transactionH = txHandler.NewHandler(transactionService, statsService, exportService)
	)

	router := finHttp.New(authH, transactionH, cfg.Server.CORSOrigins)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "backend", cfg.Storage.Backend)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// buildRepositories selects the storage backend. The memory backend seeds
// itself from the configured data file before the server starts; the
// postgres backend expects cmd/seed to have run.
func buildRepositories(cfg *config.Config) (transaction.Repository, auth.Repository, error) {
	switch cfg.Storage.Backend {
	case "memory":
		store := txMemStore.New()

		n, err := seed.LoadFile(context.Background(), cfg.Storage.SeedFile, store)
		if err != nil {
			return nil, nil, err
		}

		slog.Info("seeded transaction store", "file", cfg.Storage.SeedFile, "transactions", n)

		return store, authMemStore.New(), nil

	case "postgres":
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		if err := database.EnsureSchema(context.Background(), db); err != nil {
			return nil, nil, err
		}

		return txPgStore.New(db), authPgStore.New(db), nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
