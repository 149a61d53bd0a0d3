// Package sim is an in-memory container model. A Window hosts a root Node and
// every Node can stack children, show a modal, replace its content and host
// branches, recording each change in a shared Log. It backs the tests and the
// routectl simulate command.
package sim

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/presenters"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
)

var (
	ErrForeign     = errors.New("sim: container is not a sim node")
	ErrNotAttached = errors.New("sim: node is not attached")
	ErrNotShowing  = errors.New("sim: node is not the one showing")
	ErrOccupied    = errors.New("sim: a modal is already showing")
)

var (
	_ presenters.RootHost   = (*Window)(nil)
	_ presenters.Stacker    = (*Node)(nil)
	_ presenters.ModalHost  = (*Node)(nil)
	_ presenters.Replacer   = (*Node)(nil)
	_ presenters.BranchHost = (*Node)(nil)
	_ router.Backtracker    = (*Node)(nil)
)

type relation int

const (
	detached relation = iota
	asRoot
	asChild
	asModal
	asContent
	asBranch
)

// Window is the top of the hierarchy.
type Window struct {
	mu   sync.Mutex
	log  *Log
	root *Node
}

// NewWindow creates an empty window with its own log.
func NewWindow() *Window {
	return &Window{log: &Log{}}
}

// Log returns the event log shared by the window and its nodes.
func (w *Window) Log() *Log { return w.log }

// Node creates a detached node that logs to the window's log.
func (w *Window) Node(name string) *Node {
	return &Node{name: name, window: w, log: w.log}
}

// Loader returns a loader that creates a fresh node named after the item.
func (w *Window) Loader() router.Loader {
	return func(item route.Item) (router.Container, error) {
		n := w.Node(item.ID.Name())
		n.item = item
		return n, nil
	}
}

// Root returns the current root node.
func (w *Window) Root() *Node {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.root
}

func (w *Window) SetRoot(c router.Container, animated bool) error {
	n, err := asNode(c)
	if err != nil {
		return err
	}
	w.mu.Lock()
	old := w.root
	w.root = n
	w.mu.Unlock()

	if old != nil && old != n {
		old.detach()
	}
	n.attach(nil, asRoot)
	w.log.add("window: root %s%s", n.name, suffix(animated))
	return nil
}

func (w *Window) ClearRoot(c router.Container, animated bool) error {
	n, err := asNode(c)
	if err != nil {
		return err
	}
	w.mu.Lock()
	if w.root != n {
		w.mu.Unlock()
		return fmt.Errorf("clear root %s: %w", n.name, ErrNotShowing)
	}
	w.root = nil
	w.mu.Unlock()

	n.detach()
	w.log.add("window: clear %s%s", n.name, suffix(animated))
	return nil
}

// Visible lists the names along the visible path, from the root to whatever
// is on top.
func (w *Window) Visible() []string {
	var path []string
	for n := w.Root(); n != nil; n = n.front() {
		path = append(path, n.name)
	}
	return path
}

// String renders the visible path, e.g. "home > detail".
func (w *Window) String() string {
	return strings.Join(w.Visible(), " > ")
}

type branch struct {
	id        route.Identifier
	container *Node
}

// Node is a simulated container.
type Node struct {
	name   string
	item   route.Item
	window *Window
	log    *Log

	mu       sync.Mutex
	parent   *Node
	relation relation
	children []*Node
	modal    *Node
	style    presenters.ModalStyle
	content  *Node
	branches []branch
	selected route.Identifier
}

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// Item returns the route item the node was loaded for.
func (n *Node) Item() route.Item { return n.item }

func (n *Node) String() string { return n.name }

// IsAttached reports whether the node is part of the hierarchy.
func (n *Node) IsAttached() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.relation != detached
}

// Children returns the names of the stacked children, bottom first.
func (n *Node) Children() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	names := make([]string, len(n.children))
	for i, c := range n.children {
		names[i] = c.name
	}
	return names
}

// Modal returns the node shown modally over n and its style.
func (n *Node) Modal() (*Node, presenters.ModalStyle) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.modal, n.style
}

// Branches returns the hosted branch identifiers in insertion order and the
// selected one.
func (n *Node) Branches() ([]route.Identifier, route.Identifier) {
	n.mu.Lock()
	defer n.mu.Unlock()
	ids := make([]route.Identifier, len(n.branches))
	for i, b := range n.branches {
		ids[i] = b.id
	}
	return ids, n.selected
}

func (n *Node) PushChild(c router.Container, animated bool) error {
	child, err := asNode(c)
	if err != nil {
		return err
	}
	n.mu.Lock()
	n.children = append(n.children, child)
	n.mu.Unlock()

	child.attach(n, asChild)
	n.log.add("%s: push %s%s", n.name, child.name, suffix(animated))
	return nil
}

func (n *Node) PopChild(c router.Container, animated bool) error {
	child, err := asNode(c)
	if err != nil {
		return err
	}
	n.mu.Lock()
	last := len(n.children) - 1
	if last < 0 || n.children[last] != child {
		n.mu.Unlock()
		return fmt.Errorf("pop %s from %s: %w", child.name, n.name, ErrNotShowing)
	}
	n.children = n.children[:last]
	n.mu.Unlock()

	child.detach()
	n.log.add("%s: pop %s%s", n.name, child.name, suffix(animated))
	return nil
}

func (n *Node) PresentModal(c router.Container, style presenters.ModalStyle, animated bool) error {
	m, err := asNode(c)
	if err != nil {
		return err
	}
	n.mu.Lock()
	if n.modal != nil {
		n.mu.Unlock()
		return fmt.Errorf("present %s over %s: %w", m.name, n.name, ErrOccupied)
	}
	n.modal = m
	n.style = style
	n.mu.Unlock()

	m.attach(n, asModal)
	n.log.add("%s: modal %s (%s)%s", n.name, m.name, style, suffix(animated))
	return nil
}

func (n *Node) DismissModal(c router.Container, animated bool) error {
	m, err := asNode(c)
	if err != nil {
		return err
	}
	n.mu.Lock()
	if n.modal != m {
		n.mu.Unlock()
		return fmt.Errorf("dismiss %s from %s: %w", m.name, n.name, ErrNotShowing)
	}
	n.modal = nil
	n.mu.Unlock()

	m.detach()
	n.log.add("%s: dismiss %s%s", n.name, m.name, suffix(animated))
	return nil
}

func (n *Node) ReplaceContent(c router.Container, animated bool) error {
	content, err := asNode(c)
	if err != nil {
		return err
	}
	n.mu.Lock()
	old := n.content
	n.content = content
	n.mu.Unlock()

	if old != nil && old != content {
		old.detach()
	}
	content.attach(n, asContent)
	n.log.add("%s: replace %s%s", n.name, content.name, suffix(animated))
	return nil
}

func (n *Node) ShowBranch(id route.Identifier, c router.Container, appendOnly bool) (router.Container, error) {
	var own *Node
	if c != nil {
		var err error
		if own, err = asNode(c); err != nil {
			return nil, err
		}
	}

	n.mu.Lock()
	idx := -1
	for i, b := range n.branches {
		if b.id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		n.branches = append(n.branches, branch{id: id})
		idx = len(n.branches) - 1
	}
	if own != nil {
		n.branches[idx].container = own
	}
	if !appendOnly {
		n.selected = id
	}
	showing := n.branches[idx].container
	n.mu.Unlock()

	if own != nil {
		own.attach(n, asBranch)
	}
	verb := "select"
	if appendOnly {
		verb = "add"
	}
	n.log.add("%s: %s %s", n.name, verb, id)

	if showing == nil {
		return nil, nil
	}
	return showing, nil
}

func (n *Node) HideBranch(id route.Identifier, animated bool) error {
	n.mu.Lock()
	idx := -1
	for i, b := range n.branches {
		if b.id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		n.mu.Unlock()
		return fmt.Errorf("hide %s in %s: %w", id, n.name, ErrNotShowing)
	}
	own := n.branches[idx].container
	n.branches = append(n.branches[:idx], n.branches[idx+1:]...)
	if n.selected == id {
		n.selected = route.Identifier{}
		if len(n.branches) > 0 {
			n.selected = n.branches[len(n.branches)-1].id
		}
	}
	n.mu.Unlock()

	if own != nil {
		own.detach()
	}
	n.log.add("%s: hide %s%s", n.name, id, suffix(animated))
	return nil
}

// NavigateBack removes the node from whatever it is attached to.
func (n *Node) NavigateBack(animated bool, done router.Completion) {
	n.mu.Lock()
	parent, rel := n.parent, n.relation
	n.mu.Unlock()

	n.log.add("%s: back", n.name)
	switch rel {
	case asRoot:
		done(n.window.ClearRoot(n, animated))
	case asChild:
		done(parent.PopChild(n, animated))
	case asModal:
		done(parent.DismissModal(n, animated))
	case asContent:
		parent.mu.Lock()
		if parent.content == n {
			parent.content = nil
		}
		parent.mu.Unlock()
		n.detach()
		done(nil)
	case asBranch:
		done(parent.HideBranch(n.branchID(parent), animated))
	default:
		done(fmt.Errorf("back from %s: %w", n.name, ErrNotAttached))
	}
}

func (n *Node) branchID(parent *Node) route.Identifier {
	parent.mu.Lock()
	defer parent.mu.Unlock()
	for _, b := range parent.branches {
		if b.container == n {
			return b.id
		}
	}
	return route.Identifier{}
}

// front is whatever is drawn on top of n: its modal, its top child, its
// replaced content or its selected branch, in that order.
func (n *Node) front() *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	switch {
	case n.modal != nil:
		return n.modal
	case len(n.children) > 0:
		return n.children[len(n.children)-1]
	case n.content != nil:
		return n.content
	}
	for _, b := range n.branches {
		if b.id == n.selected {
			return b.container
		}
	}
	return nil
}

func (n *Node) attach(parent *Node, rel relation) {
	n.mu.Lock()
	n.parent = parent
	n.relation = rel
	n.mu.Unlock()
	n.log.attached.Inc()
}

func (n *Node) detach() {
	n.mu.Lock()
	n.parent = nil
	n.relation = detached
	n.mu.Unlock()
	n.log.detached.Inc()
}

func asNode(c router.Container) (*Node, error) {
	n, ok := c.(*Node)
	if !ok || n == nil {
		return nil, fmt.Errorf("%T: %w", c, ErrForeign)
	}
	return n, nil
}

func suffix(animated bool) string {
	if animated {
		return ""
	}
	return " (" + constants.OptionAnimated + "=false)"
}
