// Package gesture maps a start/move/end drag stream onto strip offsets
//
// A gesture grabs the strip under the finger on Start, tracks the finger 1:1 on Move
// through the store's immediate Set path, and on End animates the strip either off
// screen (commit) or back to rest (revert) depending on release velocity.
package gesture

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/blinds/constants"
	"github.com/lixenwraith/blinds/strip"
)

var (
	ErrNoGesture     = errors.New("no gesture in progress")
	ErrGestureActive = errors.New("gesture already in progress")
	ErrEventType     = errors.New("unknown gesture event type")
)

// EventType is the kind of a pointer event
type EventType int

const (
	EventStart EventType = iota
	EventMove
	EventEnd
)

func (t EventType) String() string {
	switch t {
	case EventStart:
		return "start"
	case EventMove:
		return "move"
	case EventEnd:
		return "end"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is one element of the gesture input stream
// Y is read on start, TranslationX on move, VelocityX on end
type Event struct {
	Type         EventType
	Y            float64
	TranslationX float64
	VelocityX    float64
}

// Start, Move and End build events
func Start(y float64) Event           { return Event{Type: EventStart, Y: y} }
func Move(translationX float64) Event { return Event{Type: EventMove, TranslationX: translationX} }
func End(velocityX float64) Event     { return Event{Type: EventEnd, VelocityX: velocityX} }

// State is the transient per-gesture record
type State struct {
	ActiveIndex int
	DragOrigin  float64
	Translation float64
	Velocity    float64
}

// Release is the outcome of an End event
type Release struct {
	ActiveIndex int
	Target      float64
	Velocity    float64
	Commit      bool
}

// Config holds screen geometry and release tuning
type Config struct {
	ScreenWidth       float64
	ScreenHeight      float64
	VelocityThreshold float64
	SettleDuration    time.Duration
}

// DefaultConfig returns the design values for a screen of the given size
func DefaultConfig(width, height float64) Config {
	return Config{
		ScreenWidth:       width,
		ScreenHeight:      height,
		VelocityThreshold: constants.VelocityThreshold,
		SettleDuration:    constants.SettleDuration,
	}
}

// Interpreter applies gesture events to a strip store
type Interpreter struct {
	store *strip.Store
	cfg   Config
	state *State
	last  State

	// OnRelease is called on every End, before the settle animation runs
	OnRelease func(Release)
	// OnCommit is called once the settle animation of a committing release finishes
	OnCommit func(Release)
}

// NewInterpreter creates an interpreter driving store
func NewInterpreter(store *strip.Store, cfg Config) *Interpreter {
	return &Interpreter{store: store, cfg: cfg}
}

// Config returns the active configuration
func (in *Interpreter) Config() Config { return in.cfg }

// Resize updates screen geometry, taking effect on the next Start
func (in *Interpreter) Resize(width, height float64) {
	in.cfg.ScreenWidth = width
	in.cfg.ScreenHeight = height
}

// State returns a copy of the current gesture state, nil outside a gesture
func (in *Interpreter) State() *State {
	if in.state == nil {
		return nil
	}
	s := *in.state
	return &s
}

// Last returns the state of the most recently released gesture
func (in *Interpreter) Last() State { return in.last }

// Active reports whether a gesture is in progress
func (in *Interpreter) Active() bool { return in.state != nil }

// Cancel drops the current gesture without touching the store
func (in *Interpreter) Cancel() { in.state = nil }

// Handle dispatches one event
func (in *Interpreter) Handle(ev Event) error {
	switch ev.Type {
	case EventStart:
		return in.Start(ev.Y)
	case EventMove:
		return in.Move(ev.TranslationX)
	case EventEnd:
		_, err := in.End(ev.VelocityX)
		return err
	default:
		return fmt.Errorf("%w: %d", ErrEventType, ev.Type)
	}
}

// Start grabs the strip under y
func (in *Interpreter) Start(y float64) error {
	if in.state != nil {
		return ErrGestureActive
	}

	n := in.store.Len()
	active := ActiveIndexFor(y, in.cfg.ScreenHeight, n)

	in.store.SetOpacityIndex(OpacityIndexFor(active, n))
	in.store.SetActiveIndex(active)

	in.state = &State{
		ActiveIndex: active,
		DragOrigin:  in.store.Get(active),
	}
	return nil
}

// Move tracks the finger: offset = origin + translation, never below zero
func (in *Interpreter) Move(translationX float64) error {
	if in.state == nil {
		return ErrNoGesture
	}
	in.state.Translation = translationX
	in.store.Set(in.state.ActiveIndex, math.Max(0, in.state.DragOrigin+translationX))
	return nil
}

// End releases the strip and starts the settle animation
func (in *Interpreter) End(velocityX float64) (Release, error) {
	if in.state == nil {
		return Release{}, ErrNoGesture
	}
	in.state.Velocity = velocityX
	in.last = *in.state

	commit := Decide(velocityX, in.cfg.VelocityThreshold)
	rel := Release{
		ActiveIndex: in.state.ActiveIndex,
		Velocity:    velocityX,
		Commit:      commit,
	}
	if commit {
		rel.Target = in.cfg.ScreenWidth
	}
	in.state = nil

	if in.OnRelease != nil {
		in.OnRelease(rel)
	}

	in.store.AnimateTo(rel.ActiveIndex, rel.Target, in.cfg.SettleDuration, func(finished bool) {
		if finished && rel.Commit && rel.Target > 0 && in.OnCommit != nil {
			in.OnCommit(rel)
		}
	})
	return rel, nil
}

// Decide reports whether a release at velocity commits, velocity equal to threshold reverts
func Decide(velocity, threshold float64) bool {
	return velocity > threshold
}

// ActiveIndexFor maps a vertical position to a strip index in [0, n-1]
func ActiveIndexFor(y, screenHeight float64, n int) int {
	if n <= 1 || screenHeight <= 0 || math.IsNaN(y) || y <= 0 {
		return 0
	}
	idx := math.Floor(y / (screenHeight / float64(n)))
	if idx >= float64(n) {
		return n - 1
	}
	return int(idx)
}

// OpacityIndexFor picks the crossfade strip: the last strip for gestures starting in the
// upper half (active <= n/2), the first strip otherwise
func OpacityIndexFor(active, n int) int {
	if active <= n/2 {
		return n - 1
	}
	return 0
}
