package router

import (
	"time"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

// Operation names a public navigation entry point.
type Operation string

const (
	OpExecute Operation = "execute"
	OpAppend  Operation = "append"
	OpPop     Operation = "pop"
	OpBack    Operation = "back"
	OpForward Operation = "forward"
)

// Observer receives navigation events, e.g. for metrics. Calls happen on the
// dispatcher's goroutine.
type Observer interface {
	NavigationFinished(op Operation, elapsed time.Duration, err error)
	SegmentPresented(id route.Identifier)
	SegmentDismissed(id route.Identifier)
	OverlappingNavigation(op Operation)
}

type nopObserver struct{}

func (nopObserver) NavigationFinished(Operation, time.Duration, error) {}
func (nopObserver) SegmentPresented(route.Identifier)                  {}
func (nopObserver) SegmentDismissed(route.Identifier)                  {}
func (nopObserver) OverlappingNavigation(Operation)                    {}
