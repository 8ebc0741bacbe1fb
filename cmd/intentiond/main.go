// Command intentiond serves the intention collection API.
//
// Configuration is read from CONFIG_PATH (default ./config.yaml) and
// environment variables; see internal/config.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sahildmk/intention-app/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "intentiond: %v\n", err)
		os.Exit(1)
	}
}
