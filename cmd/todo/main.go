package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/on-the-ground/action_object_go/examples/todo/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
