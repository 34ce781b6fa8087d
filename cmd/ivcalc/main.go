package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/contactkeval/option-iv/internal/cli"
	"github.com/contactkeval/option-iv/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
