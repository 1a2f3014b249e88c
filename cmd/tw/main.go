package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"task-widget/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(
		cli.WithRepositoryFactory(NewRepositoryFactory(getEnvironment()).Create),
	)

	if err := root.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
