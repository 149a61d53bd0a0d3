// Package presenters provides the built-in presentation strategies: root,
// push, modal, replace and tab. Each one drives a host interface implemented
// by the containers it attaches to, so any container model that implements
// RootHost, Stacker, ModalHost, Replacer or BranchHost can be routed.
package presenters

import (
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
)

func animated(opts route.Options) bool {
	return opts.Bool(constants.OptionAnimated, true)
}

// Root installs a container as the window's root.
type Root struct{}

func (Root) Identifier() route.Identifier { return route.ID(constants.PresenterRoot) }

func (Root) Capabilities() router.Capability { return router.CanPresent | router.CanDismiss }

func (Root) Present(req router.PresentRequest, done router.Completion) {
	host, err := rootHost(req.Window, "present")
	if err != nil {
		done(err)
		return
	}
	done(hostError(constants.PresenterRoot, "present", host.SetRoot(req.Container, animated(req.Options))))
}

func (Root) Dismiss(req router.DismissRequest, done router.Completion) {
	host, err := rootHost(req.Window, "dismiss")
	if err != nil {
		done(err)
		return
	}
	done(hostError(constants.PresenterRoot, "dismiss", host.ClearRoot(req.Container, animated(req.Options))))
}

func rootHost(window router.Container, op string) (RootHost, error) {
	if window == nil {
		return nil, hostError(constants.PresenterRoot, op, ErrNoWindow)
	}
	host, ok := window.(RootHost)
	if !ok {
		return nil, wrongHost(constants.PresenterRoot, op, window, "RootHost")
	}
	return host, nil
}

// Push pushes a container onto its parent's stack.
type Push struct{}

func (Push) Identifier() route.Identifier { return route.ID(constants.PresenterPush) }

func (Push) Capabilities() router.Capability { return router.CanPresent | router.CanDismiss }

func (Push) Present(req router.PresentRequest, done router.Completion) {
	host, err := parentAs[Stacker](req.Parent, constants.PresenterPush, "present", "Stacker")
	if err != nil {
		done(err)
		return
	}
	done(hostError(constants.PresenterPush, "present", host.PushChild(req.Container, animated(req.Options))))
}

func (Push) Dismiss(req router.DismissRequest, done router.Completion) {
	host, err := parentAs[Stacker](req.Parent, constants.PresenterPush, "dismiss", "Stacker")
	if err != nil {
		done(err)
		return
	}
	done(hostError(constants.PresenterPush, "dismiss", host.PopChild(req.Container, animated(req.Options))))
}

// Modal shows a container over its parent using the modalPresentationStyle
// option.
type Modal struct{}

func (Modal) Identifier() route.Identifier { return route.ID(constants.PresenterModal) }

func (Modal) Capabilities() router.Capability { return router.CanPresent | router.CanDismiss }

func (Modal) Present(req router.PresentRequest, done router.Completion) {
	host, err := parentAs[ModalHost](req.Parent, constants.PresenterModal, "present", "ModalHost")
	if err != nil {
		done(err)
		return
	}
	style := modalStyle(req.Options)
	done(hostError(constants.PresenterModal, "present", host.PresentModal(req.Container, style, animated(req.Options))))
}

func (Modal) Dismiss(req router.DismissRequest, done router.Completion) {
	host, err := parentAs[ModalHost](req.Parent, constants.PresenterModal, "dismiss", "ModalHost")
	if err != nil {
		done(err)
		return
	}
	done(hostError(constants.PresenterModal, "dismiss", host.DismissModal(req.Container, animated(req.Options))))
}

// Replace swaps the parent's content. It can't be undone by the presenter;
// the router falls back to back navigation or a replay from the root.
type Replace struct{}

func (Replace) Identifier() route.Identifier { return route.ID(constants.PresenterReplace) }

func (Replace) Capabilities() router.Capability { return router.CanPresent }

func (Replace) Present(req router.PresentRequest, done router.Completion) {
	host, err := parentAs[Replacer](req.Parent, constants.PresenterReplace, "present", "Replacer")
	if err != nil {
		done(err)
		return
	}
	done(hostError(constants.PresenterReplace, "present", host.ReplaceContent(req.Container, animated(req.Options))))
}

// Tab selects a branch of a BranchHost trunk. With appendOnly set the branch
// is added without changing the current selection.
type Tab struct{}

func (Tab) Identifier() route.Identifier { return route.ID(constants.PresenterTab) }

func (Tab) Capabilities() router.Capability { return router.CanSelectBranch | router.CanDismiss }

func (Tab) SelectBranch(req router.BranchRequest, done router.BranchCompletion) {
	host, err := parentAs[BranchHost](req.Trunk, constants.PresenterTab, "select", "BranchHost")
	if err != nil {
		done(nil, err)
		return
	}
	appendOnly := req.Options.Bool(constants.OptionAppendOnly, false)
	selected, err := host.ShowBranch(req.Branch, req.Container, appendOnly)
	if err != nil {
		done(nil, hostError(constants.PresenterTab, "select", err))
		return
	}
	done(selected, nil)
}

func (Tab) Dismiss(req router.DismissRequest, done router.Completion) {
	host, err := parentAs[BranchHost](req.Parent, constants.PresenterTab, "dismiss", "BranchHost")
	if err != nil {
		done(err)
		return
	}
	done(hostError(constants.PresenterTab, "dismiss", host.HideBranch(req.Segment, animated(req.Options))))
}

func parentAs[H any](parent router.Container, presenter, op, want string) (H, error) {
	var zero H
	if parent == nil {
		return zero, hostError(presenter, op, ErrNoParent)
	}
	host, ok := parent.(H)
	if !ok {
		return zero, wrongHost(presenter, op, parent, want)
	}
	return host, nil
}

// Standard returns one of each built-in presenter.
func Standard() []router.Presenter {
	return []router.Presenter{Root{}, Push{}, Modal{}, Replace{}, Tab{}}
}

// Seed registers the built-in presenters on ctx.
func Seed(ctx *router.Context) *router.Context {
	for _, p := range Standard() {
		ctx.RegisterPresenter(p)
	}
	return ctx
}
