package layout

//go:generate mockgen -source=inherit.go -destination=mocks/mock_router.go -package=mock_layout

// maxResolveDepth bounds every upward walk. Real trees are a handful of
// levels deep; hitting the bound means the parent links are corrupt.
const maxResolveDepth = 256

// Router resolves a navigation request into the host that runs the app.
type Router interface {
	Route(req OpenRequest) (AppHost, error)
}

// RouterFunc adapts a function to Router.
type RouterFunc func(req OpenRequest) (AppHost, error)

// Route calls f.
func (f RouterFunc) Route(req OpenRequest) (AppHost, error) { return f(req) }

// AddAppFunc asks the embedding application which app to open next. It
// returns false when the user cancelled or nothing is available.
type AddAppFunc func() (OpenRequest, bool)

// ComponentFactory builds an empty node for a serialized type tag.
type ComponentFactory func(t Type) Component

// resolve walks from c up the parent chain and returns the first override
// reported by pick. The walk stops on a revisited node or at the depth bound.
func resolve[T any](c Component, pick func(*node) (T, bool)) (T, bool) {
	var zero T
	seen := make(map[*node]struct{}, 8)
	cur := c
	for depth := 0; cur != nil && depth < maxResolveDepth; depth++ {
		n := cur.base()
		if _, ok := seen[n]; ok {
			return zero, false
		}
		seen[n] = struct{}{}
		if v, ok := pick(n); ok {
			return v, true
		}
		cur = n.parent
	}
	return zero, false
}

// Router returns the nearest configured router.
func (n *node) Router() Router {
	r, _ := resolve(n.self, func(n *node) (Router, bool) { return n.router, n.router != nil })
	return r
}

// SetRouter overrides the router for this subtree. Nil restores inheritance.
func (n *node) SetRouter(r Router) { n.router = r }

// AddApp returns the nearest configured app chooser.
func (n *node) AddApp() AddAppFunc {
	fn, _ := resolve(n.self, func(n *node) (AddAppFunc, bool) { return n.addApp, n.addApp != nil })
	return fn
}

// SetAddApp overrides the app chooser for this subtree.
func (n *node) SetAddApp(fn AddAppFunc) { n.addApp = fn }

// ComponentFactory returns the nearest configured factory.
func (n *node) ComponentFactory() ComponentFactory {
	f, _ := resolve(n.self, func(n *node) (ComponentFactory, bool) { return n.factory, n.factory != nil })
	return f
}

// SetComponentFactory overrides the factory for this subtree.
func (n *node) SetComponentFactory(f ComponentFactory) { n.factory = f }

// CloseDisabled reports whether closing is disabled here or on the nearest
// ancestor that decides it.
func (n *node) CloseDisabled() bool {
	v, _ := resolve(n.self, func(n *node) (bool, bool) {
		if n.closeDisabled == nil {
			return false, false
		}
		return *n.closeDisabled, true
	})
	return v
}

// SetCloseDisabled sets the override. Nil restores inheritance.
func (n *node) SetCloseDisabled(v *bool) {
	if v != nil {
		b := *v
		v = &b
	}
	n.closeDisabled = v
	n.changed()
}

func (n *node) ownCloseDisabled() *bool {
	if n.closeDisabled == nil {
		return nil
	}
	b := *n.closeDisabled
	return &b
}
