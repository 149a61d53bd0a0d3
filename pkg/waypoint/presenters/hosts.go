package presenters

import (
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
)

// RootHost is a window that shows a single root container.
type RootHost interface {
	SetRoot(c router.Container, animated bool) error
	ClearRoot(c router.Container, animated bool) error
}

// Stacker is a container that keeps a stack of children, like a navigation
// controller.
type Stacker interface {
	PushChild(c router.Container, animated bool) error
	PopChild(c router.Container, animated bool) error
}

// ModalHost shows one container over itself.
type ModalHost interface {
	PresentModal(c router.Container, style ModalStyle, animated bool) error
	DismissModal(c router.Container, animated bool) error
}

// Replacer swaps its visible content for another container. There is no way
// back to the previous content.
type Replacer interface {
	ReplaceContent(c router.Container, animated bool) error
}

// BranchHost is a trunk with named branches, like a tab bar. ShowBranch adds
// the branch if needed and selects it unless appendOnly is set. It returns the
// container now showing for that branch, or nil for the trunk itself.
type BranchHost interface {
	ShowBranch(id route.Identifier, c router.Container, appendOnly bool) (router.Container, error)
	HideBranch(id route.Identifier, animated bool) error
}
