// Command seed loads the transactions JSON file into Postgres, replacing any
// existing rows. Run it once before starting the API with the postgres
// backend.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/PUSHKARDEORE/Finalytics/internal/config"
	"github.com/PUSHKARDEORE/Finalytics/internal/database"
	"github.com/PUSHKARDEORE/Finalytics/internal/seed"
	txPgStore "github.com/PUSHKARDEORE/Finalytics/internal/transaction/store/postgres"
)

func main() {
	_ = godotenv.Load()

	file := flag.String("file", "", "seed file path (defaults to SEED_FILE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	path := cfg.Storage.SeedFile
	if *file != "" {
		path = *file
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.EnsureSchema(ctx, db); err != nil {
		slog.Error("failed to create schema", "error", err)
		os.Exit(1)
	}

	n, err := seed.LoadFile(ctx, path, txPgStore.New(db))
	if err != nil {
		slog.Error("seeding failed", "file", path, "error", err)
		os.Exit(1)
	}

	slog.Info("database seeded", "file", path, "transactions", n)
}
