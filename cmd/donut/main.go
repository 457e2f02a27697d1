// Package main is the donut command: a rotating, shaded ASCII torus.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/lixenwraith/ascii-donut/audio"
	"github.com/lixenwraith/ascii-donut/config"
	"github.com/lixenwraith/ascii-donut/core"
	"github.com/lixenwraith/ascii-donut/engine"
	"github.com/lixenwraith/ascii-donut/logging"
	"github.com/lixenwraith/ascii-donut/render"
	"github.com/lixenwraith/ascii-donut/terminal"
	"github.com/lixenwraith/ascii-donut/torus"
)

const (
	// Flags.
	flagConfig      = "config"
	flagBackend     = "backend"
	flagMajorRadius = "major-radius"
	flagMinorRadius = "minor-radius"
	flagInterval    = "interval"
	flagSteerPeriod = "steer-period"
	flagSteerRange  = "steer-range"
	flagSeed        = "seed"
	flagChime       = "chime"
	flagDebug       = "debug"
	flagLogFile     = "log-file"
	flagDump        = "dump"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "donut: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "donut",
		Usage: "spin a shaded ASCII torus in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load settings from TOML `FILE`",
				EnvVars: []string{"DONUT_CONFIG"},
			},
			&cli.StringFlag{
				Name:    flagBackend,
				Usage:   "terminal backend: ansi or tcell",
				EnvVars: []string{"DONUT_BACKEND"},
			},
			&cli.Float64Flag{
				Name:    flagMajorRadius,
				Usage:   "distance from the torus center to the tube center",
				EnvVars: []string{"DONUT_MAJOR_RADIUS"},
			},
			&cli.Float64Flag{
				Name:    flagMinorRadius,
				Usage:   "tube radius",
				EnvVars: []string{"DONUT_MINOR_RADIUS"},
			},
			&cli.DurationFlag{
				Name:    flagInterval,
				Usage:   "pause between frames",
				EnvVars: []string{"DONUT_INTERVAL"},
			},
			&cli.IntFlag{
				Name:    flagSteerPeriod,
				Usage:   "frames between spin changes",
				EnvVars: []string{"DONUT_STEER_PERIOD"},
			},
			&cli.Float64Flag{
				Name:    flagSteerRange,
				Usage:   "spin rates are drawn from [-range, range) radians per frame",
				EnvVars: []string{"DONUT_STEER_RANGE"},
			},
			&cli.Uint64Flag{
				Name:    flagSeed,
				Usage:   "seed for the spin rates, 0 picks one from the clock",
				EnvVars: []string{"DONUT_SEED"},
			},
			&cli.BoolFlag{
				Name:    flagChime,
				Usage:   "play a chime when the spin changes",
				EnvVars: []string{"DONUT_CHIME"},
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Usage:   "write debug logs to the log file",
				EnvVars: []string{"DONUT_DEBUG"},
			},
			&cli.StringFlag{
				Name:    flagLogFile,
				Usage:   "log `FILE`, rotated past 10MB",
				EnvVars: []string{"DONUT_LOG_FILE"},
			},
			&cli.BoolFlag{
				Name:  flagDump,
				Usage: "print the untransformed point cloud and exit",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if c.Bool(flagDump) {
				_, err := fmt.Fprint(c.App.Writer, torus.New(cfg.MajorRadius, cfg.MinorRadius).String())
				return err
			}
			return run(c.Context, cfg)
		},
	}
}

// loadConfig layers the config file, then environment and flags, over the defaults
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String(flagConfig))
	if err != nil {
		return config.Config{}, err
	}

	if c.IsSet(flagBackend) {
		cfg.Backend = c.String(flagBackend)
	}
	if c.IsSet(flagMajorRadius) {
		cfg.MajorRadius = c.Float64(flagMajorRadius)
	}
	if c.IsSet(flagMinorRadius) {
		cfg.MinorRadius = c.Float64(flagMinorRadius)
	}
	if c.IsSet(flagInterval) {
		cfg.FrameInterval = c.Duration(flagInterval)
	}
	if c.IsSet(flagSteerPeriod) {
		cfg.SteerPeriod = c.Int(flagSteerPeriod)
	}
	if c.IsSet(flagSteerRange) {
		cfg.SteerRange = c.Float64(flagSteerRange)
	}
	if c.IsSet(flagSeed) {
		cfg.Seed = c.Uint64(flagSeed)
	}
	if c.IsSet(flagChime) {
		cfg.Chime = c.Bool(flagChime)
	}
	if c.IsSet(flagDebug) {
		cfg.Debug = c.Bool(flagDebug)
	}
	if c.IsSet(flagLogFile) {
		cfg.LogFile = c.String(flagLogFile)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// newTerminal picks the backend named in the config
func newTerminal(backend string) terminal.Terminal {
	if backend == config.BackendTcell {
		return terminal.NewTcell(nil)
	}
	return terminal.New()
}

// run owns the terminal for the whole animation and releases it on every exit path
func run(ctx context.Context, cfg config.Config) (err error) {
	logger, closeLog, err := logging.Setup(logging.Options{
		Enabled: cfg.Debug,
		File:    cfg.LogFile,
		Debug:   cfg.Debug,
	})
	if err != nil {
		return errors.Wrap(err, "setup logging")
	}

	chime, cerr := audio.NewChime(cfg.Chime)
	if cerr != nil {
		logger.Warnw("audio unavailable, continuing without chime", "error", cerr)
		chime = audio.Silent()
	}

	defer func() {
		err = multierr.Combine(err, chime.Close(), closeLog())
	}()

	term := newTerminal(cfg.Backend)
	if err := term.Init(); err != nil {
		return errors.Wrap(err, "init terminal")
	}
	defer term.Fini()

	core.RegisterTerminal(term)
	core.OnCrash(func(r any) {
		logger.Errorw("crashed", "panic", r)
		_ = closeLog()
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Backends that swallow Ctrl-C report quit keys through Done
	core.Go(func() {
		select {
		case <-term.Done():
			cancel()
		case <-ctx.Done():
		}
	})

	loop, err := engine.NewLoop(
		torus.New(cfg.MajorRadius, cfg.MinorRadius),
		render.NewScreen(term),
		engine.Options{
			Interval:    cfg.FrameInterval,
			SteerPeriod: uint64(cfg.SteerPeriod),
			SteerRange:  cfg.SteerRange,
			Rand:        engine.NewRand(cfg.Seed),
			Logger:      logger,
			OnSteer:     func(a, b float64) { chime.Play() },
		},
	)
	if err != nil {
		return errors.Wrap(err, "create loop")
	}

	return animate(ctx, loop, logger)
}

// animate runs the loop with crash handling; a cancelled context is a normal stop
func animate(ctx context.Context, loop *engine.Loop, logger *zap.SugaredLogger) error {
	defer core.Recover()

	err := loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Infow("stopped", "frames", loop.Frames())
		return nil
	}
	return errors.Wrap(err, "animate")
}
