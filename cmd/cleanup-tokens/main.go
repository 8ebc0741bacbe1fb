// Command cleanup-tokens deletes expired and revoked refresh tokens.
//
// Usage:
//
//	cleanup-tokens
//
// Reads the DATABASE_* variables; DATABASE_DSN is required.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/sahildmk/intention-app/internal/adapter/postgres"
	tokenrepo "github.com/sahildmk/intention-app/internal/adapter/postgres/token"
	"github.com/sahildmk/intention-app/internal/app"
	"github.com/sahildmk/intention-app/internal/config"
)

func main() {
	logger := app.NewLogger(config.LogConfig{Level: "info", Format: "text"})

	var cfg config.DatabaseConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		logger.Error("read config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	n, err := tokenrepo.New(pool).DeleteExpired(ctx)
	if err != nil {
		logger.Error("cleanup tokens", slog.String("error", err.Error()))
		pool.Close()
		os.Exit(1)
	}

	fmt.Printf("Deleted %d expired/revoked refresh tokens.\n", n)
}
