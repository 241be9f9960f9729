// Package layout implements the dashboard layout tree: windows hosted in
// tabbed stacks and grids, arranged by binary splits under a dashboard.
//
// The tree is a single-owner structure and is not safe for concurrent use.
// Mutations are expected to happen on one goroutine (the UI loop); only
// Sync and the change notifications cross goroutines.
package layout

import (
	"errors"

	"github.com/google/uuid"
)

// Type is the discriminant stored in every serialized node.
type Type string

const (
	TypeWindow        Type = "window"
	TypeHSplit        Type = "hsplit"
	TypeVSplit        Type = "vsplit"
	TypeStack         Type = "stack"
	TypeGrid          Type = "grid"
	TypeDashboard     Type = "dashboard"
	TypeDashboardList Type = "dashboardList"
)

var (
	// ErrIllegalState is returned when an operation needs a collaborator
	// (loader, saver, component factory) that is not configured.
	ErrIllegalState = errors.New("ILLEGAL_STATE")
	// ErrCycle is returned when an attach would make a node its own ancestor.
	ErrCycle = errors.New("component cannot be attached below itself")
	// ErrUnsupportedChild is returned when a container cannot hold the given node.
	ErrUnsupportedChild = errors.New("unsupported child component")
)

// Viewport is the rectangle assigned to a node by its parent.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the point lies inside the viewport.
func (v Viewport) Contains(x, y int) bool {
	return x >= v.X && x < v.X+v.Width && y >= v.Y && y < v.Y+v.Height
}

// Empty reports whether the viewport has no area.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Component is a node of the layout tree.
type Component interface {
	ID() string
	Type() Type
	Parent() Component

	Viewport() Viewport
	SetViewport(x, y, width, height int)
	Resize(width, height int)
	Position(x, y int)

	RemoveFromParent()
	Remove(child Component)
	Replace(newItem, oldItem Component) error
	Close()

	Config() Config
	SetConfig(cfg Config) error

	Visit(fn func(Component))
	FindFirst(pred func(Component) bool) Component
	FindAll(pred func(Component) bool) []Component

	Router() Router
	SetRouter(r Router)
	AddApp() AddAppFunc
	SetAddApp(fn AddAppFunc)
	ComponentFactory() ComponentFactory
	SetComponentFactory(f ComponentFactory)
	CloseDisabled() bool
	SetCloseDisabled(v *bool)

	base() *node
	layout()
	eachChild(fn func(Component) bool) bool
}

// node carries the state shared by every component. Concrete types embed it
// and set self so that base methods can dispatch to the outer type.
type node struct {
	id       string
	self     Component
	parent   Component
	viewport Viewport

	router        Router
	addApp        AddAppFunc
	factory       ComponentFactory
	closeDisabled *bool
}

func (n *node) init(self Component) {
	n.self = self
}

func (n *node) base() *node { return n }

// ID returns the node id, generating it on first use.
func (n *node) ID() string {
	if n.id == "" {
		n.id = uuid.NewString()
	}
	return n.id
}

// Parent returns the owning component, or nil for a detached node.
func (n *node) Parent() Component {
	return n.parent
}

func (n *node) Viewport() Viewport {
	return n.viewport
}

// SetViewport assigns position and size. Nothing is recomputed when the
// rectangle is unchanged.
func (n *node) SetViewport(x, y, width, height int) {
	width, height = max(width, 0), max(height, 0)
	vp := Viewport{X: x, Y: y, Width: width, Height: height}
	if vp == n.viewport {
		return
	}
	n.viewport = vp
	n.self.layout()
}

// Resize changes the size and keeps the position.
func (n *node) Resize(width, height int) {
	n.SetViewport(n.viewport.X, n.viewport.Y, width, height)
}

// Position moves the node and keeps the size.
func (n *node) Position(x, y int) {
	n.SetViewport(x, y, n.viewport.Width, n.viewport.Height)
}

// RemoveFromParent detaches the node. It is a no-op for detached nodes.
func (n *node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.Remove(n.self)
	// Containers clear the link themselves; this covers parents that did not
	// know about the child.
	n.parent = nil
}

func (n *node) Remove(Component) {}

func (n *node) Replace(Component, Component) error { return nil }

func (n *node) layout() {}

func (n *node) eachChild(func(Component) bool) bool { return true }

// Visit calls fn for this node and then for every descendant, pre-order.
func (n *node) Visit(fn func(Component)) {
	fn(n.self)
	n.self.eachChild(func(c Component) bool {
		c.Visit(fn)
		return true
	})
}

// FindFirst returns the first node in pre-order matching pred.
func (n *node) FindFirst(pred func(Component) bool) Component {
	if pred(n.self) {
		return n.self
	}
	var found Component
	n.self.eachChild(func(c Component) bool {
		found = c.FindFirst(pred)
		return found == nil
	})
	return found
}

// FindAll returns every node in pre-order matching pred.
func (n *node) FindAll(pred func(Component) bool) []Component {
	var out []Component
	n.Visit(func(c Component) {
		if pred(c) {
			out = append(out, c)
		}
	})
	return out
}

// changed notifies every persisting ancestor that saved state was mutated.
func (n *node) changed() {
	var cur Component = n.self
	for depth := 0; cur != nil && depth < maxResolveDepth; depth++ {
		if o, ok := cur.(changeObserver); ok {
			o.childChanged()
		}
		cur = cur.Parent()
	}
}

type changeObserver interface {
	childChanged()
}

// attach links child under parent after detaching it from its previous
// owner. It refuses links that would create a cycle.
func attach(parent, child Component) error {
	if child == nil {
		return nil
	}
	if isAncestorOrSelf(child, parent) {
		return ErrCycle
	}
	if prev := child.Parent(); prev != nil && prev != parent {
		child.RemoveFromParent()
	}
	child.base().parent = parent
	return nil
}

// detach clears the parent link without notifying the old parent.
func detach(child Component) {
	if child != nil {
		child.base().parent = nil
	}
}

// isAncestorOrSelf reports whether candidate is node or one of its ancestors.
func isAncestorOrSelf(candidate, node Component) bool {
	cur := node
	for depth := 0; cur != nil && depth < maxResolveDepth; depth++ {
		if cur == candidate {
			return true
		}
		cur = cur.Parent()
	}
	return false
}

// Root returns the topmost ancestor of c.
func Root(c Component) Component {
	if c == nil {
		return nil
	}
	cur := c
	for depth := 0; depth < maxResolveDepth; depth++ {
		p := cur.Parent()
		if p == nil {
			return cur
		}
		cur = p
	}
	return cur
}

// DashboardOf returns the nearest Dashboard ancestor of c, including c.
func DashboardOf(c Component) *Dashboard {
	cur := c
	for depth := 0; cur != nil && depth < maxResolveDepth; depth++ {
		if d, ok := cur.(*Dashboard); ok {
			return d
		}
		cur = cur.Parent()
	}
	return nil
}
