package sim

import (
	"fmt"
	"sync"

	"go.uber.org/atomic"
)

// Log is an ordered record of everything the simulated containers did.
type Log struct {
	mu     sync.Mutex
	events []string

	attached atomic.Int64
	detached atomic.Int64
}

func (l *Log) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, fmt.Sprintf(format, args...))
}

// Events returns a copy of the recorded events.
func (l *Log) Events() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

// Take returns the recorded events and clears the log.
func (l *Log) Take() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := l.events
	l.events = nil
	return events
}

// Attached is the number of attachments made so far.
func (l *Log) Attached() int64 { return l.attached.Load() }

// Detached is the number of detachments made so far.
func (l *Log) Detached() int64 { return l.detached.Load() }
