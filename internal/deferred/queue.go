// Package deferred holds callbacks that must run on the next turn of the
// host event loop, after the render tree has caught up with a structural edit.
//
// Tasks are keyed by line index. Scheduling a task for a key replaces any
// pending task with that key, and structural edits cancel tasks whose line
// may have moved. The queue is not safe for concurrent use; it belongs to the
// single goroutine that drives the editor.
package deferred

// Task is a pending callback.
type Task struct {
	key int
	fn  func()

	canceled bool
	done     bool
}

// Key returns the line index the task was scheduled for.
func (t *Task) Key() int { return t.key }

// Cancel prevents a pending task from running. It is a no-op once the task ran.
func (t *Task) Cancel() {
	if t != nil {
		t.canceled = true
	}
}

// Canceled reports whether the task was canceled before it ran.
func (t *Task) Canceled() bool { return t != nil && t.canceled }

// Done reports whether the task ran.
func (t *Task) Done() bool { return t != nil && t.done }

// Queue is a FIFO of tasks waiting for the next flush.
type Queue struct {
	pending []*Task
	closed  bool

	// OnDrop, when set, observes tasks that were canceled before running.
	OnDrop func(key int)
}

// Schedule queues fn under key. A pending task with the same key is canceled.
// A closed queue returns a canceled task and never runs fn.
func (q *Queue) Schedule(key int, fn func()) *Task {
	t := &Task{key: key, fn: fn}
	if q.closed || fn == nil {
		t.canceled = true
		return t
	}
	for _, p := range q.pending {
		if p.key == key && !p.canceled {
			q.drop(p)
		}
	}
	q.pending = append(q.pending, t)
	return t
}

// Cancel cancels pending tasks scheduled under key.
func (q *Queue) Cancel(key int) {
	for _, p := range q.pending {
		if p.key == key && !p.canceled {
			q.drop(p)
		}
	}
}

// CancelFrom cancels pending tasks whose key is >= from.
func (q *Queue) CancelFrom(from int) {
	for _, p := range q.pending {
		if p.key >= from && !p.canceled {
			q.drop(p)
		}
	}
}

// Pending returns the number of tasks that will run on the next Flush.
func (q *Queue) Pending() int {
	n := 0
	for _, p := range q.pending {
		if !p.canceled {
			n++
		}
	}
	return n
}

// Flush runs pending tasks in scheduling order and returns how many ran.
// Tasks scheduled while flushing wait for the next Flush.
func (q *Queue) Flush() int {
	if len(q.pending) == 0 {
		return 0
	}
	batch := q.pending
	q.pending = nil

	ran := 0
	for _, t := range batch {
		if t.canceled || q.closed {
			continue
		}
		t.done = true
		t.fn()
		ran++
	}
	return ran
}

// Close cancels everything pending and rejects future tasks.
func (q *Queue) Close() {
	for _, p := range q.pending {
		if !p.canceled {
			q.drop(p)
		}
	}
	q.pending = nil
	q.closed = true
}

// Closed reports whether Close was called.
func (q *Queue) Closed() bool { return q.closed }

func (q *Queue) drop(t *Task) {
	t.canceled = true
	if q.OnDrop != nil {
		q.OnDrop(t.key)
	}
}
