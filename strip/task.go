package strip

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TaskState reports how an animation task ended
type TaskState int

const (
	TaskRunning TaskState = iota
	TaskFinished
	TaskInterrupted
)

func (s TaskState) String() string {
	switch s {
	case TaskRunning:
		return "running"
	case TaskFinished:
		return "finished"
	case TaskInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Easing is the interpolation curve used by every strip animation
var Easing ease.TweenFunc = ease.InOutQuad

// Task is the handle of one AnimateTo request
// A task is superseded by the next AnimateTo or Set on the same index, in which case
// its completion fires with finished=false
type Task struct {
	index      int
	from, to   float64
	duration   time.Duration
	tween      *gween.Tween
	state      TaskState
	onComplete func(finished bool)
}

func newTask(index int, from, to float64, duration time.Duration, onComplete func(bool)) *Task {
	t := &Task{
		index:      index,
		from:       from,
		to:         to,
		duration:   duration,
		onComplete: onComplete,
	}
	if duration > 0 {
		// Progress runs 0..1 in float32, value is interpolated in float64 to keep the endpoint exact
		t.tween = gween.New(0, 1, float32(duration.Seconds()), Easing)
	}
	return t
}

// Index returns the strip index the task animates
func (t *Task) Index() int { return t.index }

// Target returns the offset the task animates toward
func (t *Task) Target() float64 { return t.to }

// Duration returns the requested duration
func (t *Task) Duration() time.Duration { return t.duration }

// State returns the current task state
func (t *Task) State() TaskState { return t.state }

// Done reports whether the task has finished or been interrupted
func (t *Task) Done() bool { return t.state != TaskRunning }

// step advances the tween by dt and returns the new value
func (t *Task) step(dt time.Duration) (float64, bool) {
	if t.tween == nil {
		return t.to, true
	}
	progress, done := t.tween.Update(float32(dt.Seconds()))
	if done {
		return t.to, true
	}
	return t.from + (t.to-t.from)*float64(progress), false
}

// complete resolves the task exactly once
func (t *Task) complete(state TaskState) {
	if t.state != TaskRunning {
		return
	}
	t.state = state
	if t.onComplete != nil {
		t.onComplete(state == TaskFinished)
	}
}
