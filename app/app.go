// Package app wires the demo workload: a kernel, a handful of sleeper
// threads, and the bridge from scheduler trace events to structured logging
// and the window timeline.
package app

import (
	"context"
	"fmt"
	"image/color"

	"github.com/rs/zerolog"

	"tickos/hal"
	"tickos/kernel"
)

// Config controls the demo workload.
type Config struct {
	// Sleepers is the number of napper threads to spawn.
	Sleepers int
}

type app struct {
	h   hal.HAL
	log zerolog.Logger
	k   *kernel.Kernel

	lastTick kernel.Tick
	lastLoad kernel.Tick
	events   [128]kernel.Event
	column   []color.RGBA
}

// New builds the workload and returns the per-frame step function expected
// by hal.RunWindow and hal.RunHeadless.
func New(h hal.HAL, log zerolog.Logger, cfg Config) func() error {
	if cfg.Sleepers <= 0 {
		cfg.Sleepers = 8
	}

	a := &app{h: h, log: log, k: kernel.New()}

	go func() {
		// The pump stops when the process does; the kernel has no teardown.
		_ = a.k.Run(context.Background(), h.Time().Ticks())
	}()

	for i := 0; i < cfg.Sleepers; i++ {
		period := kernel.Tick(5 * (i + 1))
		a.k.Spawn(fmt.Sprintf("napper-%d", period), func(ctx *kernel.Context) {
			for {
				ctx.Sleep(period)
			}
		})
	}

	// One thread that actually computes, so the timeline shows running
	// alongside sleeping and the load average has something to chew on.
	a.k.Spawn("cruncher", func(ctx *kernel.Context) {
		for {
			for !ctx.ShouldYield() {
				crunch()
			}
			ctx.Yield()
			ctx.Sleep(3)
		}
	})

	a.log.Info().Int("sleepers", cfg.Sleepers).Int("tick_hz", hal.TickHz).Msg("workload started")
	return a.step
}

// step runs once per frame: drain trace events into the log, then extend the
// timeline by one column per elapsed tick.
func (a *app) step() error {
	n := a.k.PollEvents(a.events[:])
	for _, ev := range a.events[:n] {
		a.log.Debug().
			Int64("tick", int64(ev.Tick)).
			Uint32("thread", uint32(ev.Thread)).
			Str("event", ev.Kind.String()).
			Msg("sched")
	}

	now := a.k.Now()
	if now-a.lastLoad >= kernel.TicksPerSecond {
		a.lastLoad = now
		s := a.k.Stats()
		a.log.Info().
			Int64("tick", int64(now)).
			Int32("load_avg_100", a.k.LoadAvg100()).
			Uint64("wakes", s.Wakes).
			Uint64("scans", s.Scans).
			Uint64("trace_drops", s.Drops).
			Msg("tick second")
	}

	// Cap the catch-up so a stalled frame cannot spin here for long; the
	// timeline skips ahead instead.
	if now-a.lastTick > 32 {
		a.lastTick = now - 32
	}
	if now == a.lastTick {
		return nil
	}

	threads := a.k.Snapshot()
	if a.column == nil {
		_, rows := a.h.Timeline().Size()
		a.column = make([]color.RGBA, rows)
	}
	for i := range a.column {
		a.column[i] = color.RGBA{}
	}
	for i, ti := range threads {
		if i >= len(a.column) {
			break
		}
		a.column[i] = stateColor(ti.State)
	}
	for a.lastTick < now {
		a.h.Timeline().Push(a.column)
		a.lastTick++
	}
	return nil
}

var crunchSink uint64

// crunch burns a little CPU between ShouldYield checks.
func crunch() {
	v := crunchSink
	for i := 0; i < 1024; i++ {
		v = v*1664525 + 1013904223
	}
	crunchSink = v
}

func stateColor(s kernel.State) color.RGBA {
	switch s {
	case kernel.StateRunning:
		return color.RGBA{R: 0x2E, G: 0xCC, B: 0x40}
	case kernel.StateReady:
		return color.RGBA{R: 0xFF, G: 0xDC, B: 0x00}
	case kernel.StateSleeping:
		return color.RGBA{R: 0x00, G: 0x74, B: 0xD9}
	case kernel.StateExited:
		return color.RGBA{R: 0x31, G: 0x31, B: 0x31}
	default:
		return color.RGBA{R: 0xAA, G: 0xAA, B: 0xAA}
	}
}
