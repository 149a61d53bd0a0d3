package router

import (
	"context"
	"sync"

	"go.uber.org/atomic"
)

// Dispatcher runs work on the goroutine that owns the containers. Every
// present and dismiss the router issues goes through it, as do completions.
type Dispatcher interface {
	Dispatch(fn func())
}

// Inline runs work immediately on the calling goroutine. Use it when the caller
// already owns the containers, or in tests.
type Inline struct{}

func (Inline) Dispatch(fn func()) { fn() }

// Loop is a FIFO work queue drained by whichever goroutine calls Run or
// RunPending, typically the UI main loop. Dispatch never blocks, so work queued
// from inside a running task can't deadlock; it runs after the current task.
type Loop struct {
	mu     sync.Mutex
	tasks  []func()
	wake   chan struct{}
	closed atomic.Bool
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
	}
}

// Dispatch queues fn, also when called from a task the loop is running; it
// never runs fn synchronously. Work dispatched after Close is dropped, so a
// navigation still in flight when the loop closes never calls its Done and
// the router stays busy.
func (l *Loop) Dispatch(fn func()) {
	if l.closed.Load() {
		return
	}

	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// RunPending drains the queue, including work queued by the tasks it runs,
// and returns how many tasks ran. It fits a frame loop that polls between
// renders.
func (l *Loop) RunPending() int {
	ran := 0
	for {
		l.mu.Lock()
		if len(l.tasks) == 0 {
			l.mu.Unlock()
			return ran
		}
		fn := l.tasks[0]
		l.tasks[0] = nil
		l.tasks = l.tasks[1:]
		l.mu.Unlock()

		fn()
		ran++
	}
}

// Run drains tasks on the calling goroutine until ctx is done or the loop is
// closed.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.RunPending()
		if l.closed.Load() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Close stops Run after the current drain and drops further work.
func (l *Loop) Close() {
	if l.closed.CompareAndSwap(false, true) {
		select {
		case l.wake <- struct{}{}:
		default:
		}
	}
}
