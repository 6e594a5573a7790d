// Package strip holds the per-strip offset state of the blind overlay
//
// Every strip is an independently versioned cell. Values change either immediately
// through Set (finger tracking) or over time through AnimateTo, which is advanced by
// the owner's frame loop via Advance. The store is single-threaded: all calls must
// come from the animation goroutine.
package strip

import (
	"errors"
	"fmt"
	"image"
	"math"
	"time"
)

var (
	ErrStripCount = errors.New("strip count must be at least 1")
	ErrRest       = errors.New("rest offset must not be negative")
	ErrImageCount = errors.New("image count does not match strip count")
)

// Strip is a read-only view of one cell
type Strip struct {
	Index  int
	Offset float64
	Image  image.Image
}

// Change describes one notification to observers
// Indices lists strips whose offset changed; ActiveChanged is set when the active index moved
type Change struct {
	Indices       []int
	ActiveChanged bool
}

type cell struct {
	offset  float64
	version uint64
	task    *Task
}

type observer struct {
	id int
	fn func(Change)
}

// Store owns the offsets, images and active/opacity indices of a strip set
type Store struct {
	cells  []cell
	images []image.Image

	active  int
	opacity int

	observers []observer
	nextID    int
}

// NewStore creates a store of n strips, all resting at offset rest
func NewStore(n int, rest float64) (*Store, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrStripCount, n)
	}
	if rest < 0 || math.IsNaN(rest) {
		return nil, fmt.Errorf("%w: got %v", ErrRest, rest)
	}

	s := &Store{
		cells:   make([]cell, n),
		images:  make([]image.Image, n),
		opacity: n - 1,
	}
	for i := range s.cells {
		s.cells[i].offset = rest
	}
	return s, nil
}

// Len returns the strip count
func (s *Store) Len() int { return len(s.cells) }

// Get returns the offset of strip i
func (s *Store) Get(i int) float64 {
	s.check(i)
	return s.cells[i].offset
}

// Version returns the write counter of strip i
func (s *Store) Version(i int) uint64 {
	s.check(i)
	return s.cells[i].version
}

// Set writes offset to strip i immediately, preempting any running animation on it
func (s *Store) Set(i int, offset float64) {
	s.check(i)
	s.interrupt(i)
	if s.write(i, offset) {
		s.notify(Change{Indices: []int{i}})
	}
}

// AnimateTo starts an eased animation of strip i toward target
// A running task on i is interrupted first (its completion fires with finished=false),
// unless it is callback-free and already heads to the same target with the same duration,
// in which case that task is returned as is
func (s *Store) AnimateTo(i int, target float64, duration time.Duration, onComplete func(finished bool)) *Task {
	s.check(i)
	target = clampOffset(target)

	if prev := s.cells[i].task; prev != nil && onComplete == nil && prev.onComplete == nil &&
		prev.to == target && prev.duration == duration {
		return prev
	}

	s.interrupt(i)

	t := newTask(i, s.cells[i].offset, target, duration, onComplete)
	s.cells[i].task = t
	return t
}

// Advance steps every running animation by dt
// Completion callbacks of finished tasks run first, then observers receive one batched change
func (s *Store) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}

	var changed []int
	var finished []*Task

	for i := range s.cells {
		t := s.cells[i].task
		if t == nil {
			continue
		}
		value, done := t.step(dt)
		if s.write(i, value) {
			changed = append(changed, i)
		}
		if done {
			s.cells[i].task = nil
			finished = append(finished, t)
		}
	}

	for _, t := range finished {
		t.complete(TaskFinished)
	}

	if len(changed) > 0 {
		s.notify(Change{Indices: changed})
	}
}

// Running reports whether strip i has an animation in flight
func (s *Store) Running(i int) bool {
	s.check(i)
	return s.cells[i].task != nil
}

// Task returns the in-flight task of strip i, nil when idle
func (s *Store) Task(i int) *Task {
	s.check(i)
	return s.cells[i].task
}

// Animating reports whether any strip has an animation in flight
func (s *Store) Animating() bool {
	for i := range s.cells {
		if s.cells[i].task != nil {
			return true
		}
	}
	return false
}

// ActiveIndex returns the strip under the finger
func (s *Store) ActiveIndex() int { return s.active }

// SetActiveIndex clamps i into range and notifies observers when it changes
func (s *Store) SetActiveIndex(i int) {
	i = s.ClampIndex(i)
	if i == s.active {
		return
	}
	s.active = i
	s.notify(Change{ActiveChanged: true})
}

// OpacityIndex returns the strip whose offset drives the crossfade
func (s *Store) OpacityIndex() int { return s.opacity }

// SetOpacityIndex clamps i into range
func (s *Store) SetOpacityIndex(i int) {
	s.opacity = s.ClampIndex(i)
}

// ClampIndex clamps i into [0, Len()-1]
func (s *Store) ClampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(s.cells) {
		return len(s.cells) - 1
	}
	return i
}

// SetImages installs one image per strip
func (s *Store) SetImages(images []image.Image) error {
	if len(images) != len(s.cells) {
		return fmt.Errorf("%w: %d images for %d strips", ErrImageCount, len(images), len(s.cells))
	}
	copy(s.images, images)
	return nil
}

// ClearImages drops all strip images
func (s *Store) ClearImages() {
	clear(s.images)
}

// Image returns the image of strip i, nil before slicing completed
func (s *Store) Image(i int) image.Image {
	s.check(i)
	return s.images[i]
}

// HasImages reports whether every strip has an image
func (s *Store) HasImages() bool {
	for _, img := range s.images {
		if img == nil {
			return false
		}
	}
	return true
}

// Snapshot returns a copy of all strips
func (s *Store) Snapshot() []Strip {
	out := make([]Strip, len(s.cells))
	for i := range s.cells {
		out[i] = Strip{Index: i, Offset: s.cells[i].offset, Image: s.images[i]}
	}
	return out
}

// Observe registers fn for change notifications, the returned func unregisters it
func (s *Store) Observe(fn func(Change)) (cancel func()) {
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observer{id: id, fn: fn})

	return func() {
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// interrupt resolves every task on i, including ones installed by interrupted callbacks
func (s *Store) interrupt(i int) {
	for s.cells[i].task != nil {
		prev := s.cells[i].task
		s.cells[i].task = nil
		prev.complete(TaskInterrupted)
	}
}

func (s *Store) write(i int, offset float64) bool {
	offset = clampOffset(offset)
	c := &s.cells[i]
	if c.offset == offset {
		return false
	}
	c.offset = offset
	c.version++
	return true
}

func (s *Store) notify(ch Change) {
	if len(s.observers) == 0 {
		return
	}
	// Observers may register, unregister or write back into the store
	observers := make([]observer, len(s.observers))
	copy(observers, s.observers)
	for _, o := range observers {
		o.fn(ch)
	}
}

func (s *Store) check(i int) {
	if i < 0 || i >= len(s.cells) {
		panic(fmt.Sprintf("strip: index %d out of range [0,%d)", i, len(s.cells)))
	}
}

func clampOffset(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
