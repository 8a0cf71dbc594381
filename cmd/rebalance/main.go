package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"

	"github.com/simaogato/rebalancer/internal/adapter/cli"
	"github.com/simaogato/rebalancer/internal/config"
	"github.com/simaogato/rebalancer/internal/logger"
)

func main() {
	// 1. Load configuration (environment, then .env)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	// 2. Global flags override the environment
	flag.StringVar(&cfg.Storage, "storage", cfg.Storage, "Storage backend: memory, file:<dir>, gzip:<dir> or sqlite:<path>")
	flag.StringVar(&cfg.Currency, "currency", cfg.Currency, "Currency amounts are displayed in")
	plain := flag.Bool("plain", !isatty.IsTerminal(os.Stdout.Fd()), "Print raw markdown without terminal styling")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cli.Register(commander)
	flag.Parse()

	// 3. Logger
	logger.Init(cfg.AppEnv)
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	log := logger.Get()

	// 4. Run the selected subcommand until it finishes or is interrupted
	app := cli.NewApp(cfg, log)
	app.Plain = *plain

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	status := commander.Execute(ctx, app)
	stop()

	if err := app.Close(); err != nil {
		log.Errorw("Failed to close storage", "error", err)
	}
	logger.Sync()
	os.Exit(int(status))
}
