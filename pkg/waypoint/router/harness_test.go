package router_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
)

// node is the container used by the router tests. Every load produces a new
// node, so reuse is visible through pointer identity.
type node struct {
	name   string
	serial int
}

func (n *node) String() string {
	return fmt.Sprintf("%s#%d", n.name, n.serial)
}

// backNode can step back on its own.
type backNode struct {
	node
	h *harness
}

func (b *backNode) NavigateBack(animated bool, done router.Completion) {
	b.h.record("back " + b.name)
	done(nil)
}

// harness wires a context with recording presenters.
type harness struct {
	t   *testing.T
	ctx *router.Context

	mu          sync.Mutex
	events      []string
	serial      int
	loads       map[string]int
	presents    map[string]int
	presentFail map[string]error
	dismissFail map[string]error
}

func newHarness(t *testing.T) *harness {
	h := &harness{
		t:           t,
		ctx:         router.NewContext(),
		loads:       map[string]int{},
		presents:    map[string]int{},
		presentFail: map[string]error{},
		dismissFail: map[string]error{},
	}
	h.ctx.RegisterPresenter(h.presenter("root", true))
	h.ctx.RegisterPresenter(h.presenter("push", true))
	h.ctx.RegisterPresenter(h.presenter("replace", false))
	return h
}

func (h *harness) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *harness) takeEvents() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.events
	h.events = nil
	return out
}

func (h *harness) presentCount(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.presents[name]
}

func (h *harness) presenter(name string, reversible bool) *router.Funcs {
	f := &router.Funcs{
		ID: route.ID(name),
		PresentF: func(req router.PresentRequest, done router.Completion) {
			seg := req.Segment.Name()
			h.mu.Lock()
			err := h.presentFail[seg]
			h.presents[seg]++
			h.mu.Unlock()
			if err != nil {
				h.record("fail " + seg)
				done(err)
				return
			}
			h.record("present " + seg)
			done(nil)
		},
	}
	if reversible {
		f.DismissF = func(req router.DismissRequest, done router.Completion) {
			seg := req.Segment.Name()
			h.mu.Lock()
			err := h.dismissFail[seg]
			h.mu.Unlock()
			if err != nil {
				done(err)
				return
			}
			h.record("dismiss " + seg)
			done(nil)
		}
	}
	return f
}

func (h *harness) loader(name string) router.Loader {
	return func(item route.Item) (router.Container, error) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.serial++
		h.loads[name]++
		return &node{name: name, serial: h.serial}, nil
	}
}

func (h *harness) segment(name, presenter string, opts ...router.SegmentOption) *router.Segment {
	s := router.NewSegment(route.ID(name), route.ID(presenter), h.loader(name), opts...)
	h.ctx.RegisterSegment(s)
	return s
}

// standard registers a root segment "a" and pushed segments for the rest.
func (h *harness) standard(names ...string) {
	h.segment("a", "root")
	for _, n := range names {
		h.segment(n, "push")
	}
}

type outcome struct {
	res   router.Result
	err   error
	calls int
}

// run drives a navigation with the inline dispatcher and checks Done fired once.
func run(t *testing.T, nav func(done router.Done)) (router.Result, error) {
	t.Helper()
	var o outcome
	nav(func(res router.Result, err error) {
		o.calls++
		o.res, o.err = res, err
	})
	require.Equal(t, 1, o.calls, "done must fire exactly once")
	return o.res, o.err
}

func execute(t *testing.T, r *router.Router, literal string, opts ...router.NavigateOption) (router.Result, error) {
	t.Helper()
	seq, err := route.Parse(literal)
	require.NoError(t, err)
	return run(t, func(done router.Done) { r.Execute(context.Background(), seq, done, opts...) })
}

func mustExecute(t *testing.T, r *router.Router, literal string) router.Result {
	t.Helper()
	res, err := execute(t, r, literal)
	require.NoError(t, err)
	return res
}

func names(containers []router.Container) []string {
	out := make([]string, len(containers))
	for i, c := range containers {
		switch v := c.(type) {
		case *node:
			out[i] = v.name
		case *backNode:
			out[i] = v.name
		default:
			out[i] = fmt.Sprint(c)
		}
	}
	return out
}
