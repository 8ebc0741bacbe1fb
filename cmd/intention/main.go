// Command intention is the terminal editor for the current intention.
//
// It signs in against INTENTION_SERVER_URL, loads the earliest intention and
// saves edits in the background. Logs go to INTENTION_LOG_FILE because the
// terminal belongs to the UI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sahildmk/intention-app/internal/app"
	"github.com/sahildmk/intention-app/internal/client"
	"github.com/sahildmk/intention-app/internal/config"
	"github.com/sahildmk/intention-app/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "intention: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}

	logger, closeLog, err := app.NewFileLogger(cfg.Log, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := client.New(cfg.ServerURL, client.NewFileStore(cfg.TokenFile), logger,
		client.WithTimeout(cfg.RequestTimeout))

	ui := tui.New(c, tui.Options{
		AutosaveDelay:  cfg.AutosaveDelay,
		FlushOnClose:   cfg.FlushOnClose,
		RequestTimeout: cfg.RequestTimeout,
	}, logger)

	logger.Info("starting client",
		slog.String("version", app.BuildVersion()),
		slog.String("server", cfg.ServerURL))
	return ui.Run(ctx)
}
