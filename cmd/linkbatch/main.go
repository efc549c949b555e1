package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MrSnakeDoc/linkbatch/internal/cli"
	"github.com/MrSnakeDoc/linkbatch/internal/client"
	"github.com/MrSnakeDoc/linkbatch/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := client.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid configuration: %v\n", err)
		return 1
	}

	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := &cli.Env{
		In:     os.Stdin,
		Out:    os.Stdout,
		Config: cfg,
		API:    client.NewFromConfig(cfg),
		Logger: log,
	}
	if err := cli.Execute(ctx, env, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
