package router

import (
	"log/slog"
	"maps"
	"sync"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

// Context is the router's registry of segments and presenters. Registration is
// additive for the lifetime of the process; a later registration with the same
// identifier replaces the earlier one.
type Context struct {
	mu         sync.RWMutex
	segments   map[route.Identifier]*Segment
	presenters map[route.Identifier]Presenter
	logger     *slog.Logger
}

// ContextOption configures a Context at construction.
type ContextOption func(*Context)

// WithPresenters registers presenters when the context is created.
func WithPresenters(presenters ...Presenter) ContextOption {
	return func(c *Context) {
		for _, p := range presenters {
			c.presenters[p.Identifier()] = p
		}
	}
}

// WithSegments registers segments when the context is created.
func WithSegments(segments ...*Segment) ContextOption {
	return func(c *Context) {
		for _, s := range segments {
			c.segments[s.Identifier()] = s
		}
	}
}

// NewContext creates an empty registry.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		segments:   make(map[route.Identifier]*Segment),
		presenters: make(map[route.Identifier]Presenter),
		logger:     internal.GetInternalLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterSegment adds or replaces a segment definition.
func (c *Context) RegisterSegment(s *Segment) *Context {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.segments[s.Identifier()]; exists {
		c.logger.Debug("replacing segment", "segment", s.Identifier().Name())
	}
	c.segments[s.Identifier()] = s
	return c
}

// RegisterPresenter adds or replaces a presenter.
func (c *Context) RegisterPresenter(p Presenter) *Context {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.presenters[p.Identifier()]; exists {
		c.logger.Debug("replacing presenter", "presenter", p.Identifier().Name())
	}
	c.presenters[p.Identifier()] = p
	return c
}

// Segments returns a snapshot of the registered segments.
func (c *Context) Segments() map[route.Identifier]*Segment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.segments)
}

// Presenters returns a snapshot of the registered presenters.
func (c *Context) Presenters() map[route.Identifier]Presenter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.presenters)
}

// Segment looks up one segment.
func (c *Context) Segment(id route.Identifier) (*Segment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.segments[id]
	return s, ok
}

// Presenter looks up one presenter.
func (c *Context) Presenter(id route.Identifier) (Presenter, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.presenters[id]
	return p, ok
}

// Validate resolves every item of seq to its segment.
func (c *Context) Validate(seq route.Sequence) ([]*Segment, error) {
	if seq.IsEmpty() {
		return nil, invalidRouteSequence("sequence is empty", nil)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	segments := make([]*Segment, seq.Len())
	for i := range seq.Len() {
		id := seq.At(i).ID
		s, ok := c.segments[id]
		if !ok {
			return nil, segmentNotRegistered(id)
		}
		segments[i] = s
	}
	return segments, nil
}

// resolve validates seq and pairs each segment with its presenter, checking
// capabilities before anything is touched.
func (c *Context) resolve(seq route.Sequence) ([]step, error) {
	segments, err := c.Validate(seq)
	if err != nil {
		return nil, err
	}

	steps := make([]step, len(segments))
	for i, s := range segments {
		p, ok := c.Presenter(s.PresenterIdentifier())
		if !ok {
			return nil, presenterNotRegistered(s.Identifier(), s.PresenterIdentifier())
		}
		if err := checkPresenter(s, p); err != nil {
			return nil, err
		}
		steps[i] = step{item: seq.At(i), segment: s, presenter: p}
	}
	return steps, nil
}

// step is one resolved item of a requested sequence.
type step struct {
	item      route.Item
	segment   *Segment
	presenter Presenter
}
