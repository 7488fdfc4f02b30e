package quill

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Task is one scheduled interpolation of a single numeric property over a
// fixed frame count. Tasks are created by Primitive.Animate and advanced once
// per Registry.Update.
//
// The completion callback fires exactly once per task; the fired flag lives
// on the task itself, so reusing one callback value across several Animate
// calls is safe.
type Task struct {
	Property string

	initial    float64
	delta      float64
	total      int
	remaining  int
	tween      *gween.Tween
	onComplete func()
	fired      bool
	done       bool
}

func newTask(property string, initial, target float64, frames int, fn ease.TweenFunc, onComplete func()) *Task {
	delta := target - initial
	return &Task{
		Property:   property,
		initial:    initial,
		delta:      delta,
		total:      frames,
		remaining:  frames,
		tween:      gween.New(0, float32(delta), float32(frames), fn),
		onComplete: onComplete,
	}
}

// Remaining returns the number of frames left before the task completes.
// It strictly decreases to zero, one per advance.
func (t *Task) Remaining() int {
	return t.remaining
}

// advanceTasks runs one frame of the animation queue: every active task
// writes its eased value, a task completing this frame snaps the property to
// the exact target, and tasks spent on a previous frame are dropped.
//
// Completion callbacks fire after the queue has been rebuilt, so a callback
// that schedules a follow-up Animate (or calls ClearTasks) operates on the
// live queue instead of being clobbered by the rebuild.
//
// Several tasks may target the same property; they advance independently and
// the later-enqueued task writes last each frame.
func (p *Primitive) advanceTasks() {
	if len(p.tasks) == 0 {
		return
	}
	keep := p.tasks[:0]
	var completed []func()
	for _, t := range p.tasks {
		if t.done {
			// Completed last frame; retained for one extra advance, drop now.
			continue
		}
		offset, _ := t.tween.Update(1)
		value := t.initial + float64(offset)
		t.remaining--
		if t.remaining <= 0 {
			// Snap to the exact target regardless of float32 curve drift.
			value = t.initial + t.delta
			t.done = true
		}
		p.SetProperty(t.Property, value)
		if t.done && !t.fired {
			t.fired = true
			if t.onComplete != nil {
				completed = append(completed, t.onComplete)
			}
		}
		keep = append(keep, t)
	}
	// Nil out the tail to avoid retaining dropped tasks in the backing array.
	for i := len(keep); i < len(p.tasks); i++ {
		p.tasks[i] = nil
	}
	p.tasks = keep
	for _, fn := range completed {
		fn()
	}
}

// Tasks returns the live animation task queue. The returned slice MUST NOT be
// mutated by the caller.
func (p *Primitive) Tasks() []*Task {
	return p.tasks
}

// ClearTasks drops every pending animation task without firing completion
// callbacks. The only other way to end an in-flight task is letting its
// remaining frame count reach zero.
func (p *Primitive) ClearTasks() {
	for i := range p.tasks {
		p.tasks[i] = nil
	}
	p.tasks = p.tasks[:0]
}
