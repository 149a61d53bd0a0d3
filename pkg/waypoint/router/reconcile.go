package router

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

type historyMode int

const (
	historyRecord historyMode = iota
	historySkip
	historyBack
	historyForward
)

// navigation is one call into the router.
type navigation struct {
	id         string
	op         Operation
	requested  route.Sequence
	appendOnly bool
	allowEmpty bool // only Pop may converge to an empty stack
	history    historyMode
	err        error // set when the request is rejected before planning
	done       Done
}

// reconciliation carries one navigation through validate, plan, pop and
// present. Each side-effecting step continues only from the previous step's
// completion, and the router's stack is written once, at commit.
type reconciliation struct {
	router  *Router
	nav     navigation
	span    trace.Span
	log     *slog.Logger
	started time.Time
	owned   bool

	current records
	steps   []step
	plan    Plan
	next    records
}

func newReconciliation(r *Router, nav navigation, span trace.Span, log *slog.Logger, owned bool) *reconciliation {
	return &reconciliation{
		router:  r,
		nav:     nav,
		span:    span,
		log:     log,
		started: time.Now(),
		owned:   owned,
	}
}

func (rc *reconciliation) start() {
	if rc.nav.err != nil {
		rc.reject(rc.nav.err)
		return
	}

	rc.current = rc.router.snapshot()

	target := rc.nav.requested
	if rc.nav.appendOnly {
		if target.IsEmpty() {
			rc.reject(invalidRouteSequence("nothing to append", nil))
			return
		}
		target = rc.current.sequence().Append(target)
	}

	if target.IsEmpty() {
		if !rc.nav.allowEmpty {
			rc.reject(invalidRouteSequence("sequence is empty", nil))
			return
		}
	} else {
		steps, err := rc.router.registry.resolve(target)
		if err != nil {
			rc.reject(err)
			return
		}
		rc.steps = steps
	}

	plan, err := rc.router.planFor(rc.current, target, rc.nav.appendOnly)
	if err != nil {
		rc.reject(err)
		return
	}
	rc.plan = plan

	rc.log.Debug("reconciling",
		"reuse", plan.Reuse,
		"pops", len(plan.Pops),
		"presents", len(plan.Presents),
		"replay", plan.Replay,
	)

	rc.next = make(records, 0, target.Len())
	for i := range plan.Reuse {
		rec := rc.current[i]
		rec.Item = target.At(i)
		rc.next = append(rc.next, rec)
	}

	rc.router.dispatcher.Dispatch(func() { rc.pop(0) })
}

// pop reverses plan.Pops[k:], deepest first.
func (rc *reconciliation) pop(k int) {
	if k >= len(rc.plan.Pops) {
		rc.present(0)
		return
	}

	i := rc.plan.Pops[k]
	rec := rc.current[i]
	id := rec.Identifier()

	reverse := rc.router.reverser(rc.current, i)
	if reverse == nil {
		rc.fail(couldNotReverse(id, errNotReversible))
		return
	}

	rc.span.AddEvent("dismiss", trace.WithAttributes(attribute.String("waypoint.segment", id.Name())))
	rc.log.Debug("dismissing", "segment", id.Name(), "index", i)

	reverse(rc.router.completion("dismiss "+id.Name(), func(err error) {
		if err != nil {
			rc.fail(couldNotReverse(id, err))
			return
		}
		rc.router.observer.SegmentDismissed(id)
		rc.pop(k + 1)
	}))
}

// present presents plan.Presents[k:], shallowest first. Each presented record
// becomes the parent of the next.
func (rc *reconciliation) present(k int) {
	if k >= len(rc.plan.Presents) {
		rc.commit()
		return
	}

	st := rc.steps[rc.plan.Presents[k]]
	id := st.segment.Identifier()

	var parent *Record
	if top, ok := rc.next.top(); ok {
		parent = &top
	}

	rc.span.AddEvent("present", trace.WithAttributes(
		attribute.String("waypoint.segment", id.Name()),
		attribute.String("waypoint.presenter", st.presenter.Identifier().Name()),
	))
	rc.log.Debug("presenting", "segment", id.Name(), "presenter", st.presenter.Identifier().Name(), "index", len(rc.next))

	if st.segment.Kind().Has(SegmentBranch) {
		rc.selectBranch(k, st, parent)
		return
	}

	c, err := st.segment.Realize(st.item)
	if err != nil || c == nil {
		rc.fail(noViewControllerProduced(id, err))
		return
	}

	req := PresentRequest{
		Segment:   id,
		Container: c,
		Window:    rc.router.window,
		Options:   st.item.Options.Clone(),
	}
	if parent != nil {
		req.Parent = parent.Container
	}

	st.presenter.(Visual).Present(req, rc.router.completion("present "+id.Name(), func(err error) {
		if err != nil {
			rc.fail(cannotPresent(st.presenter.Identifier(), id, err))
			return
		}
		rc.next = append(rc.next, Record{Item: st.item, Segment: st.segment, Container: c})
		rc.router.observer.SegmentPresented(id)
		rc.present(k + 1)
	}))
}

func (rc *reconciliation) selectBranch(k int, st step, parent *Record) {
	id := st.segment.Identifier()
	pid := st.presenter.Identifier()

	if parent == nil || !parent.Segment.HostsBranch(id) {
		rc.fail(cannotPresent(pid, id, fmt.Errorf("branch %q needs a branching parent that declares it", id)))
		return
	}

	var own Container
	if st.segment.Kind().Has(SegmentVisual) {
		c, err := st.segment.Realize(st.item)
		if err != nil || c == nil {
			rc.fail(noViewControllerProduced(id, err))
			return
		}
		own = c
	}

	req := BranchRequest{
		Branch:    id,
		Trunk:     parent.Container,
		Container: own,
		Window:    rc.router.window,
		Options:   st.item.Options.Clone(),
	}

	st.presenter.(Brancher).SelectBranch(req, rc.router.branchCompletion("select "+id.Name(), func(selected Container, err error) {
		if err != nil {
			rc.fail(cannotPresent(pid, id, err))
			return
		}
		if selected == nil {
			selected = own
		}
		borrowed := false
		if selected == nil {
			selected = parent.Container
			borrowed = true
		}
		borrowed = borrowed || sameContainer(selected, parent.Container)
		rc.next = append(rc.next, Record{Item: st.item, Segment: st.segment, Container: selected, borrowed: borrowed})
		rc.router.observer.SegmentPresented(id)
		rc.present(k + 1)
	}))
}

func (rc *reconciliation) commit() {
	r := rc.router

	r.mu.Lock()
	r.stack = rc.next
	switch rc.nav.history {
	case historyRecord:
		if len(rc.next) > 0 {
			r.historyLocked().RecordForward(rc.next.sequence())
		}
	case historyBack:
		if r.history != nil {
			r.history.MoveBackward()
		}
	case historyForward:
		if r.history != nil {
			r.history.MoveForward()
		}
	}
	r.mu.Unlock()

	res := Result{Stack: rc.next.clone()}
	if top, ok := rc.next.top(); ok {
		res.Container = top.Container
	}
	rc.finish(res, nil)
}

// reject reports a failure found before any side effect, on the dispatcher.
func (rc *reconciliation) reject(err error) {
	rc.router.dispatcher.Dispatch(func() { rc.fail(err) })
}

// fail ends the navigation leaving the router's stack as it was.
func (rc *reconciliation) fail(err error) {
	rc.finish(Result{}, err)
}

func (rc *reconciliation) finish(res Result, err error) {
	elapsed := time.Since(rc.started)

	if err != nil {
		rc.span.RecordError(err)
		rc.span.SetStatus(codes.Error, err.Error())
		rc.log.Error("navigation failed", "error", err, "elapsed", elapsed)
	} else {
		rc.span.SetStatus(codes.Ok, "")
		rc.log.Info("navigation finished", "depth", len(res.Stack), "elapsed", elapsed)
	}
	rc.span.End()

	rc.router.observer.NavigationFinished(rc.nav.op, elapsed, err)
	if rc.owned {
		rc.router.busy.Store(false)
	}
	if rc.nav.done != nil {
		rc.nav.done(res, err)
	}
}

var errNotReversible = errors.New("neither the presenter nor back navigation can reverse it")

// planFor diffs current against target and checks that everything it pops can
// come off. An irreversible pop turns the plan into a replay when allowed.
func (r *Router) planFor(current records, target route.Sequence, appendOnly bool) (Plan, error) {
	p := diff(current.identifiers(), target, appendOnly)
	for _, i := range p.Pops {
		if r.reverser(current, i) != nil {
			continue
		}
		if r.replay && !target.IsEmpty() {
			r.logger.Debug("replaying from root", "irreversible", current[i].Identifier().Name())
			return p.replay(), nil
		}
		return Plan{}, couldNotReverse(current[i].Identifier(), errNotReversible)
	}
	return p, nil
}

// reverser picks how record i comes off the stack: its presenter's Dismiss,
// else the container's own back navigation. A record whose container belongs
// to its parent has no back navigation of its own. It returns nil when
// neither applies.
func (r *Router) reverser(stack records, i int) func(Completion) {
	rec := stack[i]

	var parent Container
	if i > 0 {
		parent = stack[i-1].Container
	}

	if p, ok := r.registry.Presenter(rec.Segment.PresenterIdentifier()); ok && p.Capabilities().Has(CanDismiss) {
		if rev, ok := p.(Reversible); ok {
			req := DismissRequest{
				Segment:   rec.Identifier(),
				Container: rec.Container,
				Parent:    parent,
				Window:    r.window,
				Options:   rec.Item.Options.Clone(),
			}
			return func(done Completion) { rev.Dismiss(req, done) }
		}
	}

	if rec.borrowed {
		return nil
	}
	if b, ok := rec.Container.(Backtracker); ok {
		animated := rec.Item.Options.Bool(constants.OptionAnimated, true)
		return func(done Completion) { b.NavigateBack(animated, done) }
	}
	return nil
}

// sameContainer reports whether a and b are the same comparable value.
func sameContainer(a, b Container) bool {
	if a == nil || b == nil {
		return false
	}
	t := reflect.TypeOf(a)
	return t == reflect.TypeOf(b) && t.Comparable() && a == b
}
