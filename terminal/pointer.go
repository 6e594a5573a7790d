package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blinds/constants"
	"github.com/lixenwraith/blinds/gesture"
)

// Pointer turns primary-button mouse reports into gesture events
type Pointer struct {
	Window     time.Duration
	MinSamples int

	pressed bool
	originX int
	lastX   int
	samples []Sample
}

// NewPointer creates a pointer with the default velocity window
func NewPointer() *Pointer {
	return &Pointer{
		Window:     constants.VelocityWindow,
		MinSamples: constants.MinVelocitySamples,
	}
}

// Pressed reports whether a drag is in progress
func (p *Pointer) Pressed() bool { return p.pressed }

// Mouse translates a tcell mouse event
func (p *Pointer) Mouse(ev *tcell.EventMouse) (gesture.Event, bool) {
	x, y := ev.Position()
	return p.Translate(ev.Buttons()&tcell.Button1 != 0, x, y, ev.When())
}

// Translate maps a primary button state at cell (x, y) to at most one gesture event
// Press starts a gesture at the pixel centre of row y, drag reports translation in
// columns, release reports the estimated velocity
func (p *Pointer) Translate(down bool, x, y int, when time.Time) (gesture.Event, bool) {
	switch {
	case down && !p.pressed:
		p.pressed = true
		p.originX, p.lastX = x, x
		p.samples = append(p.samples[:0], Sample{T: when, X: float64(x)})
		py := float64(y*constants.PixelsPerRow) + float64(constants.PixelsPerRow)/2
		return gesture.Start(py), true

	case down && p.pressed:
		p.record(when, x)
		if x == p.lastX {
			return gesture.Event{}, false
		}
		p.lastX = x
		return gesture.Move(float64(x - p.originX)), true

	case !down && p.pressed:
		p.pressed = false
		p.record(when, x)
		v := Velocity(p.samples, p.Window, p.MinSamples)
		p.samples = p.samples[:0]
		return gesture.End(v), true
	}
	return gesture.Event{}, false
}

// Cancel forgets a drag in progress, used when the terminal loses the release
func (p *Pointer) Cancel() {
	p.pressed = false
	p.samples = p.samples[:0]
}

func (p *Pointer) record(when time.Time, x int) {
	p.samples = append(p.samples, Sample{T: when, X: float64(x)})
	// Samples older than the window never contribute
	cutoff := when.Add(-p.Window)
	drop := 0
	for drop < len(p.samples)-1 && p.samples[drop].T.Before(cutoff) {
		drop++
	}
	p.samples = p.samples[drop:]
}
