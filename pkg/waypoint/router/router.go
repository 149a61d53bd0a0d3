package router

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

// Result is what a successful navigation reports: the deepest container and
// the stack now realized.
type Result struct {
	Container Container
	Stack     []Record
}

// Done receives the outcome of a navigation. It is called exactly once, on
// the dispatcher's goroutine.
type Done func(res Result, err error)

// Router reconciles requested sequences against the stack it realized last.
//
// Navigations must be serialized by the caller: issue the next one from the
// previous one's Done, or queue them externally. Overlap is logged, not
// prevented.
//
// A failed navigation never changes the realized stack, even when it had
// already reversed some records before failing. See the package
// documentation.
type Router struct {
	registry    *Context
	dispatcher  Dispatcher
	window      Container
	logger      *slog.Logger
	observer    Observer
	tracer      trace.Tracer
	historySize int
	record      bool
	replay      bool

	mu      sync.Mutex
	stack   records
	history *History

	busy        atomic.Bool
	navigations atomic.Int64
}

// Option configures a Router.
type Option func(*Router)

// WithDispatcher sets where presenter calls and completions run. The default
// runs them inline.
func WithDispatcher(d Dispatcher) Option {
	return func(r *Router) {
		r.dispatcher = d
	}
}

// WithWindow sets the root window handed to presenters.
func WithWindow(window Container) Option {
	return func(r *Router) {
		r.window = window
	}
}

// WithHistorySize bounds the navigation history.
func WithHistorySize(n int) Option {
	return func(r *Router) {
		r.historySize = n
	}
}

// WithLogger replaces the internal logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		r.logger = l
	}
}

// WithObserver registers an Observer for navigation events.
func WithObserver(o Observer) Option {
	return func(r *Router) {
		r.observer = o
	}
}

// WithTracer sets the tracer used for navigation spans.
func WithTracer(t trace.Tracer) Option {
	return func(r *Router) {
		r.tracer = t
	}
}

// WithHistoryRecording sets whether navigations are recorded by default.
// WithoutHistory still opts a single navigation out when enabled.
func WithHistoryRecording(enabled bool) Option {
	return func(r *Router) {
		r.record = enabled
	}
}

// WithReplayOnIrreversible controls what happens when a record that has to be
// popped can be reversed neither by its presenter nor by back navigation.
// When enabled (the default) the whole target is presented again from the
// root; otherwise the navigation fails.
func WithReplayOnIrreversible(enabled bool) Option {
	return func(r *Router) {
		r.replay = enabled
	}
}

// New creates a Router reading its segments and presenters from ctx.
func New(ctx *Context, opts ...Option) *Router {
	r := &Router{
		registry:    ctx,
		dispatcher:  Inline{},
		logger:      internal.GetInternalLogger(),
		observer:    nopObserver{},
		tracer:      otel.Tracer(constants.DefaultTracerName),
		historySize: constants.DefaultHistorySize,
		record:      true,
		replay:      true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NavigateOption tunes a single Execute or Append.
type NavigateOption func(*navigateOptions)

type navigateOptions struct {
	skipHistory bool
}

// WithoutHistory keeps the navigation out of the history.
func WithoutHistory() NavigateOption {
	return func(o *navigateOptions) {
		o.skipHistory = true
	}
}

func (r *Router) historyModeFor(opts []NavigateOption) historyMode {
	var o navigateOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.skipHistory || !r.record {
		return historySkip
	}
	return historyRecord
}

// Execute reconciles the stack to exactly seq.
func (r *Router) Execute(ctx context.Context, seq route.Sequence, done Done, opts ...NavigateOption) {
	r.navigate(ctx, navigation{
		op:        OpExecute,
		requested: seq,
		history:   r.historyModeFor(opts),
		done:      done,
	})
}

// Append presents seq on top of the current stack without popping anything.
func (r *Router) Append(ctx context.Context, seq route.Sequence, done Done, opts ...NavigateOption) {
	r.navigate(ctx, navigation{
		op:         OpAppend,
		requested:  seq,
		appendOnly: true,
		history:    r.historyModeFor(opts),
		done:       done,
	})
}

// Pop removes the deepest record. Popping the last record leaves an empty
// stack; popping an empty stack fails with ErrNoHistory.
func (r *Router) Pop(ctx context.Context, done Done) {
	nav := navigation{op: OpPop, allowEmpty: true, history: r.historyModeFor(nil), done: done}

	current := r.snapshot()
	if len(current) == 0 {
		nav.err = noHistory("stack is empty")
	} else {
		nav.requested = current.sequence().DropLast()
	}
	r.navigate(ctx, nav)
}

// GoBack executes the previous history entry and moves the cursor back.
func (r *Router) GoBack(ctx context.Context, done Done) {
	nav := navigation{op: OpBack, history: historyBack, done: done}
	if prev, ok := r.PreviousHistoryItem(); ok {
		nav.requested = prev
	} else {
		nav.err = noHistory("no previous history entry")
	}
	r.navigate(ctx, nav)
}

// GoForward executes the next history entry and moves the cursor forward.
func (r *Router) GoForward(ctx context.Context, done Done) {
	nav := navigation{op: OpForward, history: historyForward, done: done}
	if next, ok := r.NextHistoryItem(); ok {
		nav.requested = next
	} else {
		nav.err = noHistory("no next history entry")
	}
	r.navigate(ctx, nav)
}

// Plan computes what navigating to seq would do, without doing it.
func (r *Router) Plan(seq route.Sequence, appendOnly bool) (Plan, error) {
	current := r.snapshot()
	target := seq
	if appendOnly {
		if seq.IsEmpty() {
			return Plan{}, invalidRouteSequence("nothing to append", nil)
		}
		target = current.sequence().Append(seq)
	}
	if _, err := r.registry.resolve(target); err != nil {
		return Plan{}, err
	}
	return r.planFor(current, target, appendOnly)
}

// ClearHistory drops all history entries.
func (r *Router) ClearHistory() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = nil
}

// PreviousHistoryItem returns the history entry before the current one.
func (r *Router) PreviousHistoryItem() (route.Sequence, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.history == nil {
		return route.Sequence{}, false
	}
	return r.history.Previous()
}

// NextHistoryItem returns the history entry after the current one.
func (r *Router) NextHistoryItem() (route.Sequence, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.history == nil {
		return route.Sequence{}, false
	}
	return r.history.Next()
}

// HistoryEntries returns every recorded sequence, oldest first, and the
// cursor position (-1 when there is no history).
func (r *Router) HistoryEntries() ([]route.Sequence, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.history == nil {
		return nil, -1
	}
	return r.history.Entries(), r.history.Cursor()
}

// ViewControllers returns the realized containers, root first.
func (r *Router) ViewControllers() []Container {
	return r.snapshot().containers()
}

// Stack returns a copy of the realized records, root first.
func (r *Router) Stack() []Record {
	return r.snapshot()
}

// Sequence returns the sequence currently realized.
func (r *Router) Sequence() route.Sequence {
	return r.snapshot().sequence()
}

// Context returns the router's registry.
func (r *Router) Context() *Context {
	return r.registry
}

// IsNavigating reports whether a navigation is in flight.
func (r *Router) IsNavigating() bool {
	return r.busy.Load()
}

// Navigations returns how many navigations have been started.
func (r *Router) Navigations() int64 {
	return r.navigations.Load()
}

func (r *Router) snapshot() records {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stack.clone()
}

// historyLocked returns the history, creating it on first use. r.mu must be held.
func (r *Router) historyLocked() *History {
	if r.history == nil {
		r.history = NewHistory(r.historySize)
	}
	return r.history
}

func (r *Router) navigate(ctx context.Context, nav navigation) {
	if ctx == nil {
		ctx = context.Background()
	}
	nav.id = uuid.NewString()

	_, span := r.tracer.Start(ctx, "waypoint."+string(nav.op), trace.WithAttributes(
		attribute.String("waypoint.navigation_id", nav.id),
		attribute.String("waypoint.sequence", nav.requested.String()),
		attribute.Bool("waypoint.append", nav.appendOnly),
	))
	log := r.logger.With("navigation_id", nav.id, "op", string(nav.op))

	owned := r.busy.CompareAndSwap(false, true)
	if !owned {
		log.Warn("navigation started while another is in flight; calls must be serialized")
		r.observer.OverlappingNavigation(nav.op)
	}
	r.navigations.Inc()

	log.Info("navigation started", "sequence", nav.requested.String())

	rc := newReconciliation(r, nav, span, log, owned)
	rc.start()
}

// completion wraps a presenter callback so it fires once and continues on the
// dispatcher.
func (r *Router) completion(step string, fn func(error)) Completion {
	var fired atomic.Bool
	return func(err error) {
		if !fired.CompareAndSwap(false, true) {
			r.logger.Warn("presenter completion called more than once", "step", step)
			return
		}
		r.dispatcher.Dispatch(func() { fn(err) })
	}
}

func (r *Router) branchCompletion(step string, fn func(Container, error)) BranchCompletion {
	var fired atomic.Bool
	return func(selected Container, err error) {
		if !fired.CompareAndSwap(false, true) {
			r.logger.Warn("presenter completion called more than once", "step", step)
			return
		}
		r.dispatcher.Dispatch(func() { fn(selected, err) })
	}
}
