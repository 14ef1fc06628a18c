package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wireboids/app"
	"wireboids/engine/game"
	"wireboids/hal"
	"wireboids/hal/ebitenhost"
	"wireboids/internal/buildinfo"
	"wireboids/internal/config"
	"wireboids/internal/logging"
	"wireboids/internal/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath     string
		headless       bool
		hz             int
		ticks          uint64
		seed           uint
		logLevel       string
		metricsAddr    string
		exitOnGameOver bool
	)
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file (default $"+config.EnvPath+").")
	flag.BoolVar(&headless, "headless", false, "Run without a window; the game starts by itself.")
	flag.IntVar(&hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.UintVar(&seed, "seed", 0, "Obstacle seed (0 = from the clock).")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error.")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address.")
	flag.BoolVar(&exitOnGameOver, "exit-on-game-over", false, "Headless: stop when the game is lost.")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "headless":
			cfg.Headless.Enabled = headless
		case "hz":
			cfg.Headless.Hz = hz
		case "ticks":
			cfg.Headless.Ticks = ticks
		case "seed":
			cfg.Game.Seed = uint32(seed)
		case "log-level":
			cfg.Log.Level = logLevel
		case "metrics-addr":
			cfg.Metrics.Addr = metricsAddr
		case "exit-on-game-over":
			cfg.Headless.ExitOnGameOver = exitOnGameOver
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log.Info("starting",
		zap.String("name", buildinfo.Name),
		zap.String("version", buildinfo.Version),
		zap.String("commit", buildinfo.Commit),
		zap.Bool("headless", cfg.Headless.Enabled),
	)

	collector := metrics.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Addr != "" {
		g.Go(func() error {
			return collector.Serve(ctx, cfg.Metrics.Addr, log.Named("metrics"))
		})
	}

	appCfg := app.Config{
		Game:           game.DefaultConfig(),
		Seed:           cfg.Game.Seed,
		AutoStart:      cfg.Headless.Enabled,
		ExitOnGameOver: cfg.Headless.Enabled && cfg.Headless.ExitOnGameOver,
	}
	host := hal.HostConfig{Width: cfg.Framebuffer.Width, Height: cfg.Framebuffer.Height}
	newApp := func(h hal.HAL) func() error {
		return app.NewStep(h, appCfg, log, collector)
	}

	if cfg.Headless.Enabled {
		g.Go(func() error {
			defer stop()
			err := hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
				Hz:    cfg.Headless.Hz,
				Ticks: cfg.Headless.Ticks,
				Host:  host,
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
		return g.Wait()
	}

	// The window loop has to own the main goroutine.
	werr := ebitenhost.RunWindow(ctx, newApp, ebitenhost.WindowConfig{
		Host:  host,
		Scale: cfg.Window.Scale,
		TPS:   cfg.Window.TPS,
	})
	stop()
	return errors.Join(werr, g.Wait())
}
