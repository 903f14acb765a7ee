// Command orb shows the beam orb in a preview window, or drives it headless.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/Carmen-Shannon/beam-orb/config"
	"github.com/Carmen-Shannon/beam-orb/engine/gpu"
)

func main() {
	var (
		configPath string
		headless   headlessConfig
	)
	flag.StringVar(&configPath, "config", "", "Path to a JSON config file.")
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.Float64Var(&headless.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.IntVar(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		cfg = loaded
	}
	if headless.Enabled {
		cfg.Profiling = true
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := gpu.VerifyLayouts(); err != nil {
		logger.Error("shader layouts out of date", slog.Any("error", err))
		os.Exit(1)
	}

	if headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := runHeadless(ctx, cfg, headless, logger); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			logger.Error("headless run failed", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	if err := runPreview(cfg, logger); err != nil {
		logger.Error("preview failed", slog.Any("error", err))
		os.Exit(1)
	}
}
