package engine

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/ascii-donut/constants"
	"github.com/lixenwraith/ascii-donut/torus"
)

// Presenter shows one shaded frame
type Presenter interface {
	Present(frame torus.Frame)
}

// Rand is the source of spin rates, uniform in [0, 1)
type Rand interface {
	Float64() float64
}

// NewRand returns a PCG source; seed 0 picks one from the wall clock
func NewRand(seed uint64) Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>32|1))
}

// Options tunes the loop; zero values fall back to the stock animation
type Options struct {
	Interval    time.Duration // wait after each frame
	SteerPeriod uint64        // frames between re-steers
	SteerRange  float64       // rates are drawn from [-SteerRange, SteerRange)

	Clock  clock.Clock
	Rand   Rand
	Logger *zap.SugaredLogger

	// OnSteer runs on the loop goroutine after new rates are drawn
	OnSteer func(a, b float64)
}

func (o *Options) setDefaults() {
	if o.Interval == 0 {
		o.Interval = constants.FrameInterval
	}
	if o.SteerPeriod == 0 {
		o.SteerPeriod = constants.SteerPeriod
	}
	if o.SteerRange == 0 {
		o.SteerRange = constants.SteerRange
	}
	if o.Clock == nil {
		o.Clock = clock.New()
	}
	if o.Rand == nil {
		o.Rand = NewRand(0)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop().Sugar()
	}
}

// Loop drives rotate, render, present and wait on a single goroutine
// It owns the torus for its whole life
type Loop struct {
	tor    *torus.Torus
	screen Presenter

	clk    clock.Clock
	rng    Rand
	log    *zap.SugaredLogger
	steerF func(a, b float64)

	interval    time.Duration
	steerPeriod uint64
	steerRange  float64

	// Current per-frame rotation rates
	angleA float64
	angleB float64

	// Frame counter for re-steering and debugging
	frames uint64
}

// NewLoop creates a loop and draws the initial spin rates
func NewLoop(tor *torus.Torus, screen Presenter, opts Options) (*Loop, error) {
	if tor == nil {
		return nil, errors.New("loop needs a torus")
	}
	if screen == nil {
		return nil, errors.New("loop needs a presenter")
	}
	opts.setDefaults()
	if opts.Interval < 0 {
		return nil, errors.Errorf("frame interval %s is negative", opts.Interval)
	}
	if opts.SteerRange < 0 {
		return nil, errors.Errorf("steer range %g is negative", opts.SteerRange)
	}

	l := &Loop{
		tor:         tor,
		screen:      screen,
		clk:         opts.Clock,
		rng:         opts.Rand,
		log:         opts.Logger,
		steerF:      opts.OnSteer,
		interval:    opts.Interval,
		steerPeriod: opts.SteerPeriod,
		steerRange:  opts.SteerRange,
	}
	l.angleA = l.draw()
	l.angleB = l.draw()
	return l, nil
}

// draw returns a rate uniform in [-steerRange, steerRange)
func (l *Loop) draw() float64 {
	return (l.rng.Float64()*2 - 1) * l.steerRange
}

// Angles returns the current per-frame rotation rates
func (l *Loop) Angles() (a, b float64) {
	return l.angleA, l.angleB
}

// Frames returns the number of frames presented so far
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Step renders one frame: rotate by the current rates, shade, present,
// then re-steer when the frame count reaches a multiple of the steer period
func (l *Loop) Step() {
	l.tor.Rotate(l.angleA, l.angleB)
	l.screen.Present(l.tor.Render())

	l.frames++
	n := l.frames
	if n%l.steerPeriod == 0 {
		l.steer(n)
	}
}

func (l *Loop) steer(frame uint64) {
	l.angleA = l.draw()
	l.angleB = l.draw()
	l.log.Debugw("re-steer", "frame", frame, "a", l.angleA, "b", l.angleB)
	if l.steerF != nil {
		l.steerF(l.angleA, l.angleB)
	}
}

// Run applies the initial tilt and animates until ctx is done
// Always returns ctx.Err()
func (l *Loop) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.log.Infow("loop started",
		"interval", l.interval,
		"steer_period", l.steerPeriod,
		"a", l.angleA, "b", l.angleB)

	l.tor.Rotate(constants.InitialTiltA, constants.InitialTiltB)

	for {
		if err := ctx.Err(); err != nil {
			return l.stopped(err)
		}

		l.Step()

		select {
		case <-ctx.Done():
			return l.stopped(ctx.Err())
		case <-l.clk.After(l.interval):
		}
	}
}

func (l *Loop) stopped(err error) error {
	l.log.Infow("loop stopped", "frames", l.frames, "reason", err)
	return err
}
