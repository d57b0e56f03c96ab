// Command orderpack downloads the files of an order into a single archive.
package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/orderpack/internal/adapters/driving/cli"
	"github.com/custodia-labs/orderpack/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Ignoring .env: %v", err)
	}
	if v := os.Getenv("ORDERPACK_VERBOSE"); v == "1" || v == "true" {
		logger.SetVerbose(true)
	}

	app, err := wire(os.Getenv("ORDERPACK_HOME"))
	if err != nil {
		logger.Error("%v", err)
		return 1
	}
	defer app.Close()

	cli.SetVersion(version)
	cli.SetServices(app.Services)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}
