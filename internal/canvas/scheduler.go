package canvas

import "sync"

// Scheduler runs callbacks after the current operation has returned, so a
// listener never re-enters the controller while it holds its lock.
type Scheduler interface {
	Post(fn func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(fn func())

// Post calls f(fn).
func (f SchedulerFunc) Post(fn func()) { f(fn) }

// Deferred runs each posted callback on its own goroutine.
type Deferred struct{}

// Post starts fn in a new goroutine.
func (Deferred) Post(fn func()) { go fn() }

// Queue holds posted callbacks until Flush is called. Hosts with their own
// event loop drain it once per iteration.
type Queue struct {
	mu    sync.Mutex
	tasks []func()
}

// Post appends fn to the queue.
func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()
}

// Flush runs queued callbacks in order, including any they post, and
// reports how many ran.
func (q *Queue) Flush() int {
	n := 0
	for {
		q.mu.Lock()
		tasks := q.tasks
		q.tasks = nil
		q.mu.Unlock()
		if len(tasks) == 0 {
			return n
		}
		for _, fn := range tasks {
			fn()
			n++
		}
	}
}

// Len reports the number of pending callbacks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
