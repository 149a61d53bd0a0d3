package router

import (
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

// Capability is the closed set of things a presenter can do. The router picks
// an operation by matching on it rather than probing for interfaces.
type Capability uint8

const (
	CanPresent      Capability = 1 << iota // Visual: attach a container to a parent
	CanDismiss                             // Reversible: detach what it attached
	CanSelectBranch                        // Branch: select a branch in a trunk
)

// Has reports whether all flags in c are set.
func (c Capability) Has(f Capability) bool {
	return c&f == f
}

// Completion reports the outcome of a present or dismiss. It must be called
// exactly once.
type Completion func(err error)

// BranchCompletion reports the outcome of a branch selection together with the
// container now showing. A nil container means the trunk itself.
type BranchCompletion func(selected Container, err error)

// PresentRequest is handed to Visual.Present.
type PresentRequest struct {
	Segment   route.Identifier
	Container Container
	Parent    Container // nil for the first item of a sequence
	Window    Container // the router's root window, if any
	Options   route.Options
}

// DismissRequest is handed to Reversible.Dismiss.
type DismissRequest struct {
	Segment   route.Identifier
	Container Container
	Parent    Container
	Window    Container
	Options   route.Options
}

// BranchRequest is handed to Brancher.SelectBranch.
type BranchRequest struct {
	Branch    route.Identifier
	Trunk     Container
	Container Container // the branch's own container for branched segments, else nil
	Window    Container
	Options   route.Options
}

// Presenter is a strategy for one presentation style.
type Presenter interface {
	Identifier() route.Identifier
	Capabilities() Capability
}

// Visual presenters attach containers.
type Visual interface {
	Present(req PresentRequest, done Completion)
}

// Reversible presenters detach containers they attached.
type Reversible interface {
	Dismiss(req DismissRequest, done Completion)
}

// Brancher presenters select branches of a trunk without touching the others.
type Brancher interface {
	SelectBranch(req BranchRequest, done BranchCompletion)
}

// Backtracker is implemented by containers that can remove themselves from
// whatever hosts them, like a screen closing itself. The router calls it on a
// record's own container when the presenter that attached it can't reverse
// it. It is never called on a parent to remove a child.
type Backtracker interface {
	NavigateBack(animated bool, done Completion)
}

// Funcs adapts plain functions into a Presenter. Its capabilities are derived
// from which functions are set.
type Funcs struct {
	ID       route.Identifier
	PresentF func(req PresentRequest, done Completion)
	DismissF func(req DismissRequest, done Completion)
	SelectF  func(req BranchRequest, done BranchCompletion)
}

func (f *Funcs) Identifier() route.Identifier { return f.ID }

func (f *Funcs) Capabilities() Capability {
	var c Capability
	if f.PresentF != nil {
		c |= CanPresent
	}
	if f.DismissF != nil {
		c |= CanDismiss
	}
	if f.SelectF != nil {
		c |= CanSelectBranch
	}
	return c
}

func (f *Funcs) Present(req PresentRequest, done Completion) {
	f.PresentF(req, done)
}

func (f *Funcs) Dismiss(req DismissRequest, done Completion) {
	f.DismissF(req, done)
}

func (f *Funcs) SelectBranch(req BranchRequest, done BranchCompletion) {
	f.SelectF(req, done)
}

// requiredCapability is what a segment of kind k needs from its presenter.
func requiredCapability(k SegmentKind) Capability {
	if k.Has(SegmentBranch) {
		return CanSelectBranch
	}
	return CanPresent
}

// checkPresenter verifies that p can serve seg: the declared capability must
// be present and backed by the matching method set.
func checkPresenter(seg *Segment, p Presenter) error {
	need := requiredCapability(seg.Kind())
	caps := p.Capabilities()
	if !caps.Has(need) {
		return invalidConfiguration(seg.Identifier(), p.Identifier(), "presenter lacks the capability the segment requires")
	}

	switch need {
	case CanSelectBranch:
		if _, ok := p.(Brancher); !ok {
			return invalidConfiguration(seg.Identifier(), p.Identifier(), "presenter declares branch selection but does not implement it")
		}
	case CanPresent:
		if _, ok := p.(Visual); !ok {
			return invalidConfiguration(seg.Identifier(), p.Identifier(), "presenter declares presentation but does not implement it")
		}
	}
	if caps.Has(CanDismiss) {
		if _, ok := p.(Reversible); !ok {
			return invalidConfiguration(seg.Identifier(), p.Identifier(), "presenter declares dismissal but does not implement it")
		}
	}
	return nil
}
