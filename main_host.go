package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"tickos/app"
	"tickos/hal"
)

func main() {
	var cfg hal.HeadlessConfig
	var sleepers int
	var debug bool
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Frame rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N kernel ticks in headless mode (0 = run forever).")
	flag.IntVar(&sleepers, "sleepers", 8, "Number of napper threads.")
	flag.BoolVar(&debug, "debug", false, "Log individual scheduler events.")
	flag.Parse()

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	newApp := func(h hal.HAL) func() error {
		log := zerolog.New(zerolog.ConsoleWriter{Out: hal.Writer(h.Logger())}).
			Level(level).
			With().Timestamp().Logger()
		return app.New(h, log, app.Config{Sleepers: sleepers})
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if err == context.Canceled {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
