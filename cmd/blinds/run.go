package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blinds/audio"
	"github.com/lixenwraith/blinds/capture"
	"github.com/lixenwraith/blinds/config"
	"github.com/lixenwraith/blinds/constants"
	"github.com/lixenwraith/blinds/engine"
	"github.com/lixenwraith/blinds/gesture"
	"github.com/lixenwraith/blinds/reveal"
	"github.com/lixenwraith/blinds/status"
	"github.com/lixenwraith/blinds/terminal"
)

var errScreenTooSmall = errors.New("terminal too small")

// prepared carries a background capture result back onto the loop goroutine
type prepared struct {
	generation int
	images     []image.Image
	err        error
}

// app is the host around one reveal controller
// Everything except the capture jobs runs on the loop goroutine
type app struct {
	ctx    context.Context
	cfg    *config.Config
	logger *log.Logger
	reg    *status.Registry

	screen  *terminal.Screen
	pointer *terminal.Pointer
	ctrl    *reveal.Controller
	comp    *terminal.Compositor
	clock   *engine.PausableClock

	// show is the host flag driving the overlay, cleared by the dismissal callback
	show bool
	// swallow drops the rest of the click that opened the overlay
	swallow    bool
	generation int
}

func runInteractive(ctx context.Context, cfg *config.Config) error {
	logger, logFile := setupLogging(cfg.Log.Debug, cfg.Log.File, logLevel(cfg))
	if logFile != nil {
		defer logFile.Close()
	}

	defer func() {
		if r := recover(); r != nil {
			terminal.HandleCrash(r)
		}
	}()

	player := audio.NewPlayer(cfg.AudioSettings(audio.LoadAudioConfig()))
	if err := player.Initialize(); err != nil {
		logger.Warn("audio disabled", "err", err)
	}
	defer player.Cleanup()

	screen, err := terminal.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Close()

	a, err := newApp(ctx, screen, cfg, logger, player)
	if err != nil {
		return err
	}
	defer a.close()

	loop := engine.NewLoop(engine.LoopConfig[tcell.Event]{
		Clock:    a.clock,
		Interval: time.Duration(cfg.Timing.Frame),
		Input:    screen.Events(ctx),
		OnInput:  a.handle,
		OnFrame:  a.frame,
		Status:   a.reg,
	})

	a.prepare()
	logger.Info("session started", "strips", cfg.Strips.Count, "source", cfg.Capture.Source)
	err = loop.Run(ctx)
	logger.Info("session ended", a.reg.KeyValues()...)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newApp(ctx context.Context, screen *terminal.Screen, cfg *config.Config, logger *log.Logger, cues reveal.Cues) (*app, error) {
	if cols, rows := screen.Size(); cols < constants.MinScreenWidth || rows < constants.MinScreenHeight {
		return nil, fmt.Errorf("%w: %dx%d, need %dx%d", errScreenTooSmall, cols, rows,
			constants.MinScreenWidth, constants.MinScreenHeight)
	}
	w, h := screen.PixelSize()

	a := &app{
		ctx:     ctx,
		cfg:     cfg,
		logger:  logger,
		reg:     status.NewRegistry(),
		screen:  screen,
		pointer: terminal.NewPointer(),
		clock:   engine.NewPausableClock(nil),
	}
	a.pointer.Window = time.Duration(cfg.Gesture.VelocityWindow)

	home, err := capture.HomeScreen(w, h)
	if err != nil {
		return nil, err
	}
	a.comp = terminal.NewCompositor(home, a.reg)

	opts := cfg.Options(float64(w), float64(h))
	opts.Capturer = cfg.Capturer(w, h)
	opts.Logger = logger
	opts.Cues = cues
	opts.Status = a.reg
	opts.OnDismiss = func(show bool) { a.show = show }

	a.ctrl, err = reveal.New(opts)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) close() {
	a.ctrl.Close()
}

// prepare starts a background capture for the current geometry
// Results from an older geometry are dropped on arrival
func (a *app) prepare() {
	a.generation++
	gen := a.generation
	job := a.ctrl.PrepareJob()

	terminal.Go(func() {
		images, err := job(a.ctx)
		if a.ctx.Err() != nil {
			return
		}
		ev := tcell.NewEventInterrupt(prepared{generation: gen, images: images, err: err})
		if perr := a.screen.PostEvent(ev); perr != nil {
			a.logger.Warn("capture result dropped", "err", perr)
		}
	})
}

// requestShow raises the host show flag, the controller reacts to the rising edge
func (a *app) requestShow() {
	if a.show {
		return
	}
	a.show = true
	if !a.ctrl.Show() {
		a.logger.Debug("show rejected", "phase", a.ctrl.Phase())
	}
}

func (a *app) handle(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.handleResize()
	case *tcell.EventInterrupt:
		if p, ok := ev.Data().(prepared); ok {
			a.install(p)
		}
	}
	return nil
}

func (a *app) handleKey(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return engine.ErrQuit
	case tcell.KeyEnter:
		a.requestShow()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return engine.ErrQuit
		case 'p':
			paused := a.clock.Toggle()
			a.logger.Debug("pause toggled", "paused", paused)
		}
	}
	return nil
}

func (a *app) handleMouse(ev *tcell.EventMouse) {
	down := ev.Buttons()&tcell.Button1 != 0

	if a.swallow {
		if !down {
			a.swallow = false
		}
		return
	}

	if a.ctrl.Phase() == reveal.PhaseClosed {
		if down {
			a.pointer.Cancel()
			a.swallow = true
			a.requestShow()
		}
		return
	}

	g, ok := a.pointer.Mouse(ev)
	if !ok {
		return
	}
	if err := a.ctrl.HandleGesture(g); err != nil {
		a.logger.Debug("gesture rejected", "event", g.Type, "err", err)
		if g.Type == gesture.EventStart {
			a.pointer.Cancel()
		}
	}
}

func (a *app) handleResize() {
	a.screen.Sync()
	if cols, rows := a.screen.Size(); cols < constants.MinScreenWidth || rows < constants.MinScreenHeight {
		a.logger.Warn("terminal too small, keeping geometry", "cols", cols, "rows", rows)
		return
	}
	w, h := a.screen.PixelSize()
	if err := a.ctrl.Resize(float64(w), float64(h)); err != nil {
		a.logger.Warn("resize failed", "err", err)
		return
	}
	if home, err := capture.HomeScreen(w, h); err == nil {
		a.comp = terminal.NewCompositor(home, a.reg)
	}
	a.logger.Debug("resized", "width", w, "height", h)
	a.prepare()
}

func (a *app) install(p prepared) {
	if p.generation != a.generation {
		return
	}
	if p.err == nil {
		p.err = a.ctrl.Install(p.images)
	}
	if p.err != nil {
		a.ctrl.CaptureFailed(p.err)
	}
}

func (a *app) frame(dt time.Duration) error {
	a.ctrl.Tick(dt)
	a.comp.Draw(a.screen, a.ctrl)
	return nil
}
