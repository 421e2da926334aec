package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/i474232898/weather-history/internal/config"
	"github.com/i474232898/weather-history/pkg/logger"
)

const usage = `usage: weather-history <command> [flags]

commands:
  report   load a region, write the markdown report and print a summary table
  serve    load the configured regions and serve them over HTTP (default)
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	l := logger.NewZapLogger(cfg.AppName, cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cmd, args := "serve", os.Args[1:]
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "report":
		err = runReport(ctx, cfg, l, args)
	case "serve":
		err = runServe(ctx, cfg, l)
	default:
		fmt.Fprint(os.Stderr, usage)
		err = fmt.Errorf("unknown command %q", cmd)
	}

	stop()
	if err != nil {
		l.Error(err, map[string]any{"command": cmd})
	}
	l.Stop()
	if err != nil {
		os.Exit(1)
	}
}
