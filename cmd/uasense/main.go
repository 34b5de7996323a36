package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/uasense/uasense/cmd/uasense/commands"
	"github.com/uasense/uasense/pkg/classify"
)

// main builds the root command and runs it. Exit codes:
//   - 0: success
//   - 1: general error (default)
//   - 2: invalid usage/input (missing signals, catalog source errors)
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := commands.NewCommand()

	if err := command.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(classify.ExitCode(err))
	}
}
