package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vocabpop/internal/app"
	"vocabpop/internal/config"
)

func main() {
	var (
		cfgPath  = flag.String("config", "", "path to config file (yaml or json)")
		dir      = flag.String("dir", "", "vocab directory (text files, one entry per line)")
		interval = flag.Int("interval", 0, "interval in minutes between notifications")
		cadence  = flag.String("cadence", "", "cadence override (duration, HH:MM, or cron expression)")
		force    = flag.Bool("force", false, "show a single notification immediately and exit")
		shuffle  = flag.Bool("shuffle", true, "shuffle vocab entries")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	// Flags win over file values; only explicitly set flags apply.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dir":
			cfg.Vocab.Dir = *dir
		case "interval":
			cfg.Rotation.Cadence = fmt.Sprintf("%dm", *interval)
		case "cadence":
			cfg.Rotation.Cadence = *cadence
		case "force":
			cfg.Rotation.Force = *force
		case "shuffle":
			cfg.Vocab.Shuffle = *shuffle
		}
	})

	a, err := app.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}
