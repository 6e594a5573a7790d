// Package engine drives the reveal animation on a single goroutine
//
// Input is applied as soon as it arrives so finger tracking never waits for a frame;
// animations advance on a fixed frame ticker using pausable clock deltas. Nothing the
// handlers touch needs locking because both run on the loop goroutine.
package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/blinds/constants"
	"github.com/lixenwraith/blinds/status"
)

// ErrQuit is returned by a handler to stop the loop cleanly
var ErrQuit = errors.New("quit")

// Metric keys published by the loop
const (
	MetricFrames = "engine.frames"
	MetricInputs = "engine.inputs"
	MetricFPS    = "engine.fps"
	MetricPaused = "engine.paused"
)

// LoopConfig wires a Loop
type LoopConfig[E any] struct {
	Clock    *PausableClock
	Interval time.Duration // Frame interval, 0 uses FrameUpdateInterval
	MaxDelta time.Duration // Upper bound for one frame delta, 0 uses MaxFrameDelta
	Input    <-chan E
	OnInput  func(E) error
	OnFrame  func(dt time.Duration) error
	Status   *status.Registry
}

// Loop multiplexes input events and frame ticks onto one goroutine
type Loop[E any] struct {
	clock    *PausableClock
	interval time.Duration
	maxDelta time.Duration
	input    <-chan E
	onInput  func(E) error
	onFrame  func(dt time.Duration) error

	lastFrame time.Time

	statFrames *atomic.Int64
	statInputs *atomic.Int64
	statFPS    *status.AtomicFloat
	statPaused *atomic.Bool
}

// NewLoop creates a loop, missing collaborators get defaults
func NewLoop[E any](cfg LoopConfig[E]) *Loop[E] {
	if cfg.Clock == nil {
		cfg.Clock = NewPausableClock(nil)
	}
	if cfg.Interval <= 0 {
		cfg.Interval = constants.FrameUpdateInterval
	}
	if cfg.MaxDelta <= 0 {
		cfg.MaxDelta = constants.MaxFrameDelta
	}
	if cfg.Status == nil {
		cfg.Status = status.NewRegistry()
	}

	return &Loop[E]{
		clock:      cfg.Clock,
		interval:   cfg.Interval,
		maxDelta:   cfg.MaxDelta,
		input:      cfg.Input,
		onInput:    cfg.OnInput,
		onFrame:    cfg.OnFrame,
		lastFrame:  cfg.Clock.Now(),
		statFrames: cfg.Status.Ints.Get(MetricFrames),
		statInputs: cfg.Status.Ints.Get(MetricInputs),
		statFPS:    cfg.Status.Floats.Get(MetricFPS),
		statPaused: cfg.Status.Bools.Get(MetricPaused),
	}
}

// Clock returns the loop's animation clock
func (l *Loop[E]) Clock() *PausableClock { return l.clock }

// Dispatch applies one input event immediately
func (l *Loop[E]) Dispatch(ev E) error {
	l.statInputs.Add(1)
	if l.onInput == nil {
		return nil
	}
	return l.onInput(ev)
}

// Frame advances by the clock delta since the previous frame
// The delta is zero while the clock is paused and never exceeds MaxDelta
func (l *Loop[E]) Frame() error {
	now := l.clock.Now()
	dt := now.Sub(l.lastFrame)
	l.lastFrame = now

	if dt < 0 {
		dt = 0
	}
	if dt > l.maxDelta {
		dt = l.maxDelta
	}

	l.statFrames.Add(1)
	l.statPaused.Store(l.clock.IsPaused())
	if dt > 0 {
		// Smoothed instantaneous rate
		fps := float64(time.Second) / float64(dt)
		if prev := l.statFPS.Get(); prev > 0 {
			fps = prev*0.9 + fps*0.1
		}
		l.statFPS.Set(fps)
	}

	if l.onFrame == nil {
		return nil
	}
	return l.onFrame(dt)
}

// Run processes input and frames until ctx ends or a handler fails
// ErrQuit stops the loop and is reported as a nil error
func (l *Loop[E]) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.lastFrame = l.clock.Now()
	input := l.input

	for {
		var err error
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-input:
			if !ok {
				// Closed input leaves the loop frame-driven
				input = nil
				continue
			}
			err = l.Dispatch(ev)
		case <-ticker.C:
			err = l.Frame()
		}

		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
