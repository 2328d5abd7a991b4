package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/five82/showcase/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/showcase/config.toml)")
	poll := flag.Duration("poll", 0, "catalog refresh interval (optional, overrides poll_interval)")
	envFile := flag.String("env", ".env", "dotenv file with SHOWCASE_* overrides (optional)")
	flag.Parse()

	// A missing dotenv file is normal.
	_ = godotenv.Load(*envFile)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath}
	if *poll > 0 {
		opts.PollEvery = *poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "showcase: %v\n", err)
		return 1
	}
	return 0
}
