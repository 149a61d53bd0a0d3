// Package router reconciles a requested route.Sequence against the stack of
// containers it realized last, the way a virtual DOM diff patches a tree.
//
// Unlike a push/pop screen router, callers never say how to get somewhere.
// They describe where they want to be and the router works out the minimal set
// of dismissals and presentations to get there.
//
// # Basic Usage
//
//	ctx := router.NewContext()
//	presenters.Seed(ctx) // root, push, modal, replace, tab
//
//	ctx.RegisterSegment(router.NewSegment(route.ID("home"), route.ID("root"), loadHome, router.Singleton()))
//	ctx.RegisterSegment(router.NewSegment(route.ID("detail"), route.ID("push"), loadDetail))
//
//	r := router.New(ctx, router.WithWindow(window), router.WithDispatcher(loop))
//
//	seq := route.MustSequence("home", "detail;id=42")
//	r.Execute(context.Background(), seq, func(res router.Result, err error) {
//	    if err != nil {
//	        // errors.Is(err, router.ErrCannotPresent) etc.
//	        return
//	    }
//	    // res.Container is the detail screen
//	})
//
// # Reconciliation
//
// Items are compared to the realized stack index by index. While identifiers
// match, realized containers are reused without calling their presenter. From
// the first mismatch on, every requested item is presented fresh, even if an
// identifier further down happens to match again. Realized records past the
// reconciliation point are reversed deepest first, then the new items are
// presented shallowest first, each parented to the one before it.
//
// A record comes off the stack through its presenter's Dismiss if the presenter
// is Reversible, else through the container's own Backtracker, which removes
// the container from its host. A branch recorded with its trunk's container
// has no Backtracker of its own. If neither applies the router replays the
// whole target from the root, or fails with ErrCouldNotReversePresentation
// when replay is disabled or the target is empty.
//
// A failure anywhere leaves the realized stack and history exactly as they
// were before the call. That includes failures after some records were
// already reversed: the stack then lists records whose containers are gone,
// and a later navigation that reverses them again may fail the same way.
// Recover by building a new Router over the same Context.
//
// # Threading
//
// Presenter calls and completions run through a Dispatcher. Inline runs them
// on the caller's goroutine; Loop queues them for the goroutine that owns the
// UI. Each step is dispatched only from the previous step's completion.
// Navigations themselves are not queued: callers must not start one before the
// previous Done has fired.
package router
