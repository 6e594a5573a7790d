package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/blinds/status"
)

func newMockLoop(t *testing.T, onFrame func(time.Duration) error) (*Loop[int], *MockTimeProvider, *status.Registry) {
	t.Helper()
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	reg := status.NewRegistry()
	loop := NewLoop(LoopConfig[int]{
		Clock:   NewPausableClock(mock),
		OnFrame: onFrame,
		Status:  reg,
	})
	return loop, mock, reg
}

func TestFrameDelta(t *testing.T) {
	var deltas []time.Duration
	loop, mock, reg := newMockLoop(t, func(dt time.Duration) error {
		deltas = append(deltas, dt)
		return nil
	})

	mock.Advance(16 * time.Millisecond)
	_ = loop.Frame()
	mock.Advance(time.Second)
	_ = loop.Frame()

	loop.Clock().Pause()
	mock.Advance(40 * time.Millisecond)
	_ = loop.Frame()

	expected := []time.Duration{16 * time.Millisecond, 100 * time.Millisecond, 0}
	for i, want := range expected {
		if deltas[i] != want {
			t.Errorf("Frame %d: expected dt %v, got %v", i, want, deltas[i])
		}
	}

	if got := reg.Ints.Get(MetricFrames).Load(); got != 3 {
		t.Errorf("Expected 3 frames counted, got %d", got)
	}
	if !reg.Bools.Get(MetricPaused).Load() {
		t.Error("Expected paused flag published")
	}
	if reg.Floats.Get(MetricFPS).Get() <= 0 {
		t.Error("Expected fps published")
	}
}

func TestRunAppliesInputImmediately(t *testing.T) {
	input := make(chan int)
	var got []int

	loop := NewLoop(LoopConfig[int]{
		Clock:    NewPausableClock(nil),
		Interval: time.Hour, // no frames during the test
		Input:    input,
		OnInput: func(v int) error {
			got = append(got, v)
			if v == 3 {
				return ErrQuit
			}
			return nil
		},
	})

	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background()) }()

	for i := 1; i <= 3; i++ {
		input <- i
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil error on quit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Loop did not stop on ErrQuit")
	}

	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("Expected inputs 1..3 in order, got %v", got)
	}
}

func TestRunFramesAndContext(t *testing.T) {
	frames := make(chan struct{}, 16)
	loop := NewLoop(LoopConfig[int]{
		Interval: time.Millisecond,
		OnFrame: func(time.Duration) error {
			select {
			case frames <- struct{}{}:
			default:
			}
			return nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	select {
	case <-frames:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected at least one frame")
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Loop did not stop on cancel")
	}
}

func TestRunPropagatesHandlerError(t *testing.T) {
	boom := errors.New("boom")
	loop := NewLoop(LoopConfig[int]{
		Interval: time.Millisecond,
		OnFrame:  func(time.Duration) error { return boom },
	})

	if err := loop.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Expected handler error, got %v", err)
	}
}
