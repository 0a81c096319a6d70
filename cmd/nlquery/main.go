// Command nlquery translates natural-language clothing searches into
// structured Typesense queries.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/nlquery/internal/adapters/driving/cli"
	"github.com/custodia-labs/nlquery/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(build)

	if err := cli.Execute(ctx); err != nil {
		logger.Debug("command failed: %v", err)
		stop()
		os.Exit(1)
	}
}
