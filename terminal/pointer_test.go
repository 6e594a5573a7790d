package terminal

import (
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blinds/gesture"
)

func TestPointerStream(t *testing.T) {
	p := NewPointer()

	ev, ok := p.Translate(true, 5, 3, t0)
	if !ok || ev.Type != gesture.EventStart || ev.Y != 7 {
		t.Fatalf("Expected start at pixel row 7, got %+v ok=%v", ev, ok)
	}
	if !p.Pressed() {
		t.Error("Expected pressed after start")
	}

	ev, ok = p.Translate(true, 15, 3, t0.Add(10*time.Millisecond))
	if !ok || ev.Type != gesture.EventMove || ev.TranslationX != 10 {
		t.Errorf("Expected move of 10, got %+v ok=%v", ev, ok)
	}

	// Vertical-only motion produces no event
	if _, ok := p.Translate(true, 15, 9, t0.Add(15*time.Millisecond)); ok {
		t.Error("Expected no event without horizontal motion")
	}

	ev, ok = p.Translate(true, 0, 3, t0.Add(20*time.Millisecond))
	if !ok || ev.TranslationX != -5 {
		t.Errorf("Expected move of -5, got %+v", ev)
	}

	ev, ok = p.Translate(false, 0, 3, t0.Add(30*time.Millisecond))
	if !ok || ev.Type != gesture.EventEnd {
		t.Fatalf("Expected end, got %+v ok=%v", ev, ok)
	}
	if p.Pressed() {
		t.Error("Expected released")
	}

	if _, ok := p.Translate(false, 3, 3, t0.Add(40*time.Millisecond)); ok {
		t.Error("Expected no event for hover")
	}
}

func TestPointerReleaseVelocity(t *testing.T) {
	p := NewPointer()

	p.Translate(true, 0, 0, t0)
	p.Translate(true, 10, 0, t0.Add(10*time.Millisecond))
	p.Translate(true, 20, 0, t0.Add(20*time.Millisecond))
	ev, _ := p.Translate(false, 30, 0, t0.Add(30*time.Millisecond))

	if math.Abs(ev.VelocityX-1000) > 1e-6 {
		t.Errorf("Expected 1000 px/s, got %v", ev.VelocityX)
	}
}

func TestPointerCancel(t *testing.T) {
	p := NewPointer()
	p.Translate(true, 0, 0, t0)
	p.Cancel()

	ev, ok := p.Translate(true, 4, 1, t0.Add(time.Second))
	if !ok || ev.Type != gesture.EventStart {
		t.Errorf("Expected fresh start after cancel, got %+v", ev)
	}
}

func TestPointerMouseEvent(t *testing.T) {
	p := NewPointer()

	ev, ok := p.Mouse(tcell.NewEventMouse(2, 4, tcell.Button1, tcell.ModNone))
	if !ok || ev.Type != gesture.EventStart || ev.Y != 9 {
		t.Errorf("Expected start at pixel row 9, got %+v", ev)
	}
	ev, ok = p.Mouse(tcell.NewEventMouse(2, 4, tcell.ButtonNone, tcell.ModNone))
	if !ok || ev.Type != gesture.EventEnd {
		t.Errorf("Expected end on button release, got %+v", ev)
	}
}
