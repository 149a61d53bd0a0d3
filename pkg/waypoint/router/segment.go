package router

import (
	"slices"
	"sync"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

// Container is an opaque handle to whatever a presenter attaches: a view, a
// screen, a window subtree.
type Container = any

// Loader builds the container for one item. Returning a nil container or an
// error means nothing was produced; neither is cached.
type Loader func(item route.Item) (Container, error)

// SegmentKind is the closed set of segment capabilities.
type SegmentKind uint8

const (
	// SegmentVisual segments realize their own container through a loader.
	SegmentVisual SegmentKind = 1 << iota
	// SegmentBranching segments host branches (tab bars, split views).
	SegmentBranching
	// SegmentBranch segments are selected inside a branching parent.
	SegmentBranch

	// SegmentBranched is a branch that carries its own container.
	SegmentBranched = SegmentBranch | SegmentVisual
)

// Has reports whether all flags in f are set.
func (k SegmentKind) Has(f SegmentKind) bool {
	return k&f == f
}

func (k SegmentKind) String() string {
	switch {
	case k.Has(SegmentBranched):
		return "branched"
	case k.Has(SegmentBranch):
		return "branch"
	case k.Has(SegmentBranching):
		return "branching"
	case k.Has(SegmentVisual):
		return "visual"
	default:
		return "none"
	}
}

// Segment is a registered definition of one navigable step.
type Segment struct {
	id          route.Identifier
	presenterID route.Identifier
	kind        SegmentKind
	singleton   bool
	title       string
	branches    []route.Identifier
	loader      Loader

	mu     sync.Mutex
	cached Container
	loaded bool
}

// SegmentOption configures a Segment at construction.
type SegmentOption func(*Segment)

// Singleton makes the segment realize its container once and reuse it.
func Singleton() SegmentOption {
	return func(s *Segment) {
		s.singleton = true
	}
}

// WithTitle sets a human readable title, used by tooling.
func WithTitle(title string) SegmentOption {
	return func(s *Segment) {
		s.title = title
	}
}

func newSegment(kind SegmentKind, id, presenter route.Identifier, loader Loader, opts []SegmentOption) *Segment {
	s := &Segment{
		id:          id,
		presenterID: presenter,
		kind:        kind,
		loader:      loader,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSegment defines a visual segment.
func NewSegment(id, presenter route.Identifier, loader Loader, opts ...SegmentOption) *Segment {
	return newSegment(SegmentVisual, id, presenter, loader, opts)
}

// NewBranchingSegment defines a visual segment whose container hosts the given
// branches.
func NewBranchingSegment(id, presenter route.Identifier, loader Loader, branches []route.Identifier, opts ...SegmentOption) *Segment {
	s := newSegment(SegmentVisual|SegmentBranching, id, presenter, loader, opts)
	s.branches = slices.Clone(branches)
	return s
}

// NewBranchSegment defines a branch that selects an existing child of its
// branching parent. It has no loader.
func NewBranchSegment(id, presenter route.Identifier, opts ...SegmentOption) *Segment {
	return newSegment(SegmentBranch, id, presenter, nil, opts)
}

// NewBranchedSegment defines a branch that loads its own container, which the
// presenter adds to the parent if it isn't there yet.
func NewBranchedSegment(id, presenter route.Identifier, loader Loader, opts ...SegmentOption) *Segment {
	return newSegment(SegmentBranched, id, presenter, loader, opts)
}

func (s *Segment) Identifier() route.Identifier          { return s.id }
func (s *Segment) PresenterIdentifier() route.Identifier { return s.presenterID }
func (s *Segment) Kind() SegmentKind                     { return s.kind }
func (s *Segment) IsSingleton() bool                     { return s.singleton }
func (s *Segment) Title() string                         { return s.title }

// Branches returns the branch identifiers a branching segment declares.
func (s *Segment) Branches() []route.Identifier {
	return slices.Clone(s.branches)
}

// HostsBranch reports whether id is one of the segment's declared branches.
func (s *Segment) HostsBranch(id route.Identifier) bool {
	return s.kind.Has(SegmentBranching) && slices.Contains(s.branches, id)
}

// Realize returns the segment's container for item. Singletons run the loader
// at most once per successful load; other segments run it on every call.
// Segments without a loader realize to nil.
func (s *Segment) Realize(item route.Item) (Container, error) {
	if s.loader == nil {
		return nil, nil
	}
	if !s.singleton {
		return s.loader(item)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.cached, nil
	}

	c, err := s.loader(item)
	if err != nil || c == nil {
		return c, err
	}
	s.cached = c
	s.loaded = true
	return c, nil
}

// Cached returns the singleton's container if it has been realized.
func (s *Segment) Cached() (Container, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cached, s.loaded
}

// Reset drops a cached singleton container so the next Realize loads again.
func (s *Segment) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.loaded = false
}
