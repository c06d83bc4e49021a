package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"trafficctl/internal/hal"
	"trafficctl/internal/job"
	"trafficctl/internal/trace"
	"trafficctl/internal/traffic"
)

// pressHold is how long a scripted press keeps the button down; it must
// outlast the debounce interval.
const pressHold = 60 * time.Millisecond

func main() {
	configPath := flag.String("config", "trafficctl.yml", "path to the YAML config")
	flag.Parse()

	logger := log.New(os.Stderr, "trafficctl: ", log.LstdFlags|log.Lmicroseconds)

	// Read the configuration
	cfg, err := traffic.Load(*configPath)
	if err != nil {
		logger.Fatalf("config %s: %v", *configPath, err)
	}
	logger.Printf("loaded config: %+v", cfg)

	board, err := hal.Open(hal.PinMap{
		Red:        cfg.Pins.Red,
		Green:      cfg.Pins.Green,
		Yellow:     cfg.Pins.Yellow,
		Pedestrian: cfg.Pins.Pedestrian,
		Button:     cfg.Pins.Button,
	})
	if err != nil {
		logger.Fatalf("board: %v", err)
	}

	var flush func() error
	if cfg.Output == "expander" {
		bus, err := board.Buses.ByID(cfg.Expander.Bus)
		if err != nil {
			logger.Fatalf("expander: %v", err)
		}
		exp, err := hal.NewExpander(bus, cfg.Expander.Address)
		if err != nil {
			logger.Fatalf("expander: %v", err)
		}
		if err := board.UseExpander(exp); err != nil {
			logger.Fatalf("expander: %v", err)
		}
		flush = exp.Flush
	}

	clock := traffic.NewCycleClock(1)
	ctrl := traffic.NewController(clock, traffic.Options{
		Panel: traffic.Panel{
			Red:        board.Red,
			Yellow:     board.Yellow,
			Green:      board.Green,
			Pedestrian: board.Pedestrian,
		},
		Button:      board.Button,
		Flush:       flush,
		EventBuffer: 256,
	})

	rec := trace.New(logger, cfg.Verbose)
	if cfg.EventLog != "" {
		if err := rec.EnableCSV(cfg.EventLog); err != nil {
			logger.Fatalf("%v", err)
		}
	}
	logger.Printf("run %s", rec.RunID())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.RunForMS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.RunForMS)*time.Millisecond)
		defer cancel()
	}

	// scripted presses only make sense against a host button
	if btn, ok := board.Button.(*hal.FakePin); ok && len(cfg.Presses) > 0 {
		presses := slices.Clone(cfg.Presses)
		slices.Sort(presses)
		offsets := make([]time.Duration, 0, len(presses))
		for _, ms := range presses {
			offsets = append(offsets, time.Duration(ms)*time.Millisecond)
		}
		go func() {
			if err := job.Script(ctx, btn, offsets, pressHold); err != nil && ctx.Err() == nil {
				logger.Printf("press script: %v", err)
			}
		}()
	}

	done := make(chan error, 1)
	go func() { done <- rec.Consume(ctrl.Events()) }()

	clock.Start(time.Duration(cfg.TickMS) * time.Millisecond)
	if err := ctrl.Run(ctx); err != nil {
		logger.Printf("controller: %v", err)
	}
	clock.Stop()

	if err := <-done; err != nil {
		logger.Printf("event log: %v", err)
	}
	logger.Printf("stopped: %v", rec.Counts())
}
