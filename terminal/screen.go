package terminal

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blinds/constants"
)

// Screen wraps a tcell screen with mouse reporting enabled
type Screen struct {
	tcell.Screen
}

// NewScreen opens the controlling terminal
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return Wrap(s)
}

// Wrap initialises s, tests pass a simulation screen
func Wrap(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	s.EnableMouse()
	s.HideCursor()
	s.SetStyle(tcell.StyleDefault)
	s.Clear()
	SetCrashScreen(s)
	return &Screen{Screen: s}, nil
}

// Close restores the terminal
func (s *Screen) Close() {
	SetCrashScreen(nil)
	s.Fini()
}

// PixelSize returns the drawable canvas in pixels, excluding the status line
func (s *Screen) PixelSize() (w, h int) {
	cols, rows := s.Size()
	return PixelSize(cols, rows)
}

// PixelSize converts a terminal size in cells to canvas pixels
func PixelSize(cols, rows int) (w, h int) {
	rows -= constants.StatusBarHeight
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return cols, rows * constants.PixelsPerRow
}

// Events pumps screen events into a channel until the screen is finalised or ctx ends
func (s *Screen) Events(ctx context.Context) <-chan tcell.Event {
	ch := make(chan tcell.Event, constants.InputQueueSize)
	Go(func() {
		defer close(ch)
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	})
	return ch
}
