// Package reveal owns the strip overlay lifecycle: show trigger, capture and slicing of
// the content, gesture routing, crossfade and the dismissal signal to the host
package reveal

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lixenwraith/blinds/capture"
	"github.com/lixenwraith/blinds/cascade"
	"github.com/lixenwraith/blinds/constants"
	"github.com/lixenwraith/blinds/gesture"
	"github.com/lixenwraith/blinds/slicer"
	"github.com/lixenwraith/blinds/status"
	"github.com/lixenwraith/blinds/strip"
)

var (
	ErrNoCapturer = errors.New("no capturer configured")
	ErrScreenSize = errors.New("screen size must be positive")
)

// Metric keys published by the controller
const (
	MetricPhase         = "reveal.phase"
	MetricActive        = "reveal.active"
	MetricCommits       = "reveal.commits"
	MetricReverts       = "reveal.reverts"
	MetricCaptures      = "reveal.captures"
	MetricCaptureErrors = "reveal.capture_errors"
)

// Cues receives sound cues, implemented by audio.Player
type Cues interface {
	PlayCommit()
	PlayRevert()
	PlayEntrance()
}

type silentCues struct{}

func (silentCues) PlayCommit()   {}
func (silentCues) PlayRevert()   {}
func (silentCues) PlayEntrance() {}

// Options configures a Controller
type Options struct {
	Strips       int
	ScreenWidth  float64
	ScreenHeight float64

	EntranceDuration  time.Duration
	SettleDuration    time.Duration
	ChaseDuration     time.Duration
	VelocityThreshold float64
	MovedThreshold    float64

	Capturer capture.Capturer
	Logger   *log.Logger
	Cues     Cues
	Status   *status.Registry

	// OnDismiss is called once per committed gesture with show=false
	OnDismiss func(show bool)
	// OnPhase observes every phase transition
	OnPhase func(from, to Phase)
}

// DefaultOptions returns the design values for a screen of the given size
func DefaultOptions(width, height float64) Options {
	return Options{
		Strips:            constants.DefaultStripCount,
		ScreenWidth:       width,
		ScreenHeight:      height,
		EntranceDuration:  constants.EntranceDuration,
		SettleDuration:    constants.SettleDuration,
		ChaseDuration:     constants.ChaseDuration,
		VelocityThreshold: constants.VelocityThreshold,
		MovedThreshold:    constants.MovedThreshold,
	}
}

// Controller drives one strip overlay
// All methods must be called from the animation goroutine; jobs returned by PrepareJob may run anywhere
type Controller struct {
	opts     Options
	logger   *log.Logger
	cues     Cues
	store    *strip.Store
	gestures *gesture.Interpreter
	cascade  *cascade.Propagator

	phase       Phase
	commitIndex int
	dismissed   bool
	captureID   uuid.UUID

	statPhase         *status.AtomicString
	statActive        *atomic.Int64
	statCommits       *atomic.Int64
	statReverts       *atomic.Int64
	statCaptures      *atomic.Int64
	statCaptureErrors *atomic.Int64
}

// New creates a closed controller with every strip parked at the screen width
func New(opts Options) (*Controller, error) {
	if opts.Strips < 1 || opts.Strips > constants.MaxStripCount {
		return nil, fmt.Errorf("%w: got %d, want 1..%d", strip.ErrStripCount, opts.Strips, constants.MaxStripCount)
	}
	if !(opts.ScreenWidth > 0) || !(opts.ScreenHeight > 0) {
		return nil, fmt.Errorf("%w: %vx%v", ErrScreenSize, opts.ScreenWidth, opts.ScreenHeight)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Cues == nil {
		opts.Cues = silentCues{}
	}
	if opts.Status == nil {
		opts.Status = status.NewRegistry()
	}

	store, err := strip.NewStore(opts.Strips, opts.ScreenWidth)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		opts:   opts,
		logger: opts.Logger.WithPrefix("reveal"),
		cues:   opts.Cues,
		store:  store,
		phase:  PhaseClosed,

		statPhase:         opts.Status.Strings.Get(MetricPhase),
		statActive:        opts.Status.Ints.Get(MetricActive),
		statCommits:       opts.Status.Ints.Get(MetricCommits),
		statReverts:       opts.Status.Ints.Get(MetricReverts),
		statCaptures:      opts.Status.Ints.Get(MetricCaptures),
		statCaptureErrors: opts.Status.Ints.Get(MetricCaptureErrors),
	}
	c.statPhase.Store(c.phase.String())

	c.gestures = gesture.NewInterpreter(store, gesture.Config{
		ScreenWidth:       opts.ScreenWidth,
		ScreenHeight:      opts.ScreenHeight,
		VelocityThreshold: opts.VelocityThreshold,
		SettleDuration:    opts.SettleDuration,
	})
	c.gestures.OnRelease = c.onRelease
	c.gestures.OnCommit = c.onCommit

	c.cascade = cascade.New(store, cascade.Config{ChaseDuration: opts.ChaseDuration})
	return c, nil
}

// Close detaches the cascade from the store
func (c *Controller) Close() {
	c.cascade.Close()
}

// Phase returns the current lifecycle phase
func (c *Controller) Phase() Phase { return c.phase }

// Store exposes the strip state for rendering
func (c *Controller) Store() *strip.Store { return c.store }

// Gesture returns the in-flight gesture state, nil outside a gesture
func (c *Controller) Gesture() *gesture.State { return c.gestures.State() }

// CaptureID identifies the snapshot the current strip images were cut from
func (c *Controller) CaptureID() uuid.UUID { return c.captureID }

// Dismissed reports whether the current closing cycle has signalled dismissal
func (c *Controller) Dismissed() bool { return c.dismissed }

// Show handles the rising edge of the host's show flag
// It acts only while closed, or closing after dismissal, and reports whether it did
func (c *Controller) Show() bool {
	switch {
	case c.phase == PhaseClosed:
	case c.phase == PhaseClosing && c.dismissed:
	default:
		c.logger.Debug("show ignored", "phase", c.phase)
		return false
	}

	c.store.SetOpacityIndex(c.store.Len() - 1)
	c.store.SetActiveIndex(0)
	c.store.AnimateTo(0, 0, c.opts.EntranceDuration, nil)
	c.dismissed = false

	c.transition(PhaseOpening)
	c.cues.PlayEntrance()
	return true
}

// HandleGesture routes one pointer event
// Events are dropped while the overlay is hidden or already dismissed
func (c *Controller) HandleGesture(ev gesture.Event) error {
	switch {
	case c.phase == PhaseClosed:
		return nil
	case c.phase == PhaseClosing && c.dismissed:
		return nil
	}

	if ev.Type != gesture.EventStart {
		return c.gestures.Handle(ev)
	}

	if c.phase == PhaseClosing {
		// Re-grab: cancel the commit before it can signal
		c.store.Set(c.commitIndex, c.store.Get(c.commitIndex))
	}
	if err := c.gestures.Start(ev.Y); err != nil {
		return err
	}
	c.statActive.Store(int64(c.store.ActiveIndex()))
	c.transition(PhasePeeling)
	return nil
}

// Tick advances every animation by dt and settles finished phases
func (c *Controller) Tick(dt time.Duration) {
	c.store.Advance(dt)

	if c.store.Animating() {
		return
	}
	switch {
	case c.phase == PhaseOpening:
		c.transition(PhaseOpen)
	case c.phase == PhaseClosing && c.dismissed:
		// The commit target may predate a resize
		c.park()
		c.transition(PhaseClosed)
	}
}

// Crossfade returns the opacity of the strip overlay and of the real content
// The content is shown only while the crossfade strip rests within MovedThreshold
func (c *Controller) Crossfade() (stripAlpha, contentAlpha float64) {
	if c.store.Get(c.store.OpacityIndex()) <= c.opts.MovedThreshold {
		return 0, 1
	}
	return 1, 0
}

// Resize updates the screen geometry; parked strips follow the new width
func (c *Controller) Resize(width, height float64) error {
	if !(width > 0) || !(height > 0) {
		return fmt.Errorf("%w: %vx%v", ErrScreenSize, width, height)
	}
	c.opts.ScreenWidth = width
	c.opts.ScreenHeight = height
	c.gestures.Resize(width, height)

	if c.phase == PhaseClosed {
		c.park()
	}
	return nil
}

// park places every strip at the screen width without animating
func (c *Controller) park() {
	c.cascade.SetPaused(true)
	for i := 0; i < c.store.Len(); i++ {
		c.store.Set(i, c.opts.ScreenWidth)
	}
	c.cascade.SetPaused(false)
}

// Prepare captures and slices the content
// It reads controller state, use PrepareJob to run the capture off the animation goroutine
func (c *Controller) Prepare(ctx context.Context) ([]image.Image, error) {
	return c.PrepareJob()(ctx)
}

// PrepareJob snapshots the capturer and geometry and returns a job that touches no
// controller state, so it may run on any goroutine
func (c *Controller) PrepareJob() func(ctx context.Context) ([]image.Image, error) {
	capturer := c.opts.Capturer
	w := int(math.Round(c.opts.ScreenWidth))
	h := int(math.Round(c.opts.ScreenHeight))
	n := c.store.Len()

	return func(ctx context.Context) ([]image.Image, error) {
		if capturer == nil {
			return nil, ErrNoCapturer
		}
		img, err := capturer.Capture(ctx)
		if err != nil {
			return nil, fmt.Errorf("capture: %w", err)
		}
		strips, err := slicer.Slice(capture.Fit(img, w, h), n)
		if err != nil {
			return nil, fmt.Errorf("slice: %w", err)
		}
		return strips, nil
	}
}

// Install replaces the strip images with a prepared set
func (c *Controller) Install(images []image.Image) error {
	if err := c.store.SetImages(images); err != nil {
		return err
	}
	c.captureID = uuid.New()
	c.statCaptures.Add(1)
	c.logger.Info("strips installed", "capture", c.captureID, "strips", len(images))
	return nil
}

// CaptureFailed records a failed Prepare, the overlay stays interactive without images
func (c *Controller) CaptureFailed(err error) {
	c.statCaptureErrors.Add(1)
	c.logger.Warn("capture failed, strips stay imageless", "err", err)
}

// ContentReady captures, slices and installs the content in one step
func (c *Controller) ContentReady(ctx context.Context) error {
	images, err := c.Prepare(ctx)
	if err == nil {
		err = c.Install(images)
	}
	if err != nil {
		c.CaptureFailed(err)
		return err
	}
	return nil
}

func (c *Controller) onRelease(rel gesture.Release) {
	c.logger.Debug("release", "index", rel.ActiveIndex, "velocity", rel.Velocity, "target", rel.Target)

	if rel.Commit {
		c.commitIndex = rel.ActiveIndex
		c.dismissed = false
		c.transition(PhaseClosing)
		c.cues.PlayCommit()
		return
	}
	c.statReverts.Add(1)
	c.transition(PhaseOpen)
	c.cues.PlayRevert()
}

func (c *Controller) onCommit(rel gesture.Release) {
	if c.phase != PhaseClosing || c.dismissed {
		return
	}
	c.dismissed = true
	c.statCommits.Add(1)
	c.logger.Info("dismissed", "index", rel.ActiveIndex, "capture", c.captureID)
	if c.opts.OnDismiss != nil {
		c.opts.OnDismiss(false)
	}
}

func (c *Controller) transition(to Phase) bool {
	from := c.phase
	if !CanTransition(from, to) {
		c.logger.Warn("invalid phase transition", "from", from, "to", to)
		return false
	}
	c.phase = to
	c.statPhase.Store(to.String())
	c.logger.Debug("phase", "from", from, "to", to)
	if c.opts.OnPhase != nil {
		c.opts.OnPhase(from, to)
	}
	return true
}
