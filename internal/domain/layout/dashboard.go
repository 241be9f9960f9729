package layout

import (
	"context"
	"slices"
)

// Dashboard is the top of a layout tree. It owns a single root component
// and the load/save lifecycle of its configuration.
type Dashboard struct {
	node
	persistence

	title       string
	component   Component
	blockSource Component
	listeners   []func()
}

// NewDashboard creates an empty dashboard using the default factory.
func NewDashboard() *Dashboard {
	d := &Dashboard{}
	d.init(d)
	d.persistence.sync = NewSync()
	d.factory = NewComponent
	return d
}

func (d *Dashboard) Type() Type { return TypeDashboard }

func (d *Dashboard) Title() string { return d.title }

// SetTitle renames the dashboard.
func (d *Dashboard) SetTitle(title string) {
	if d.title == title {
		return
	}
	d.title = title
	d.changed()
}

// Component returns the root of the layout.
func (d *Dashboard) Component() Component { return d.component }

// SetComponent installs c as the root, detaching it from its previous
// owner. The previous root is detached, not closed.
func (d *Dashboard) SetComponent(c Component) error {
	if c == d.component {
		return nil
	}
	if c != nil {
		if err := attach(d, c); err != nil {
			return err
		}
	}
	if old := d.component; old != nil && old.Parent() == Component(d) {
		detach(old)
	}
	d.component = c
	d.changed()
	d.layout()
	return nil
}

// BlockSource returns the descendant that holds exclusive pointer focus
// (a split being dragged, a manager with a drag or resize in progress).
func (d *Dashboard) BlockSource() Component { return d.blockSource }

// SetBlockSource hands exclusive pointer focus to c; nil releases it.
func (d *Dashboard) SetBlockSource(c Component) { d.blockSource = c }

// Blocked reports whether a component other than c holds pointer focus.
func (d *Dashboard) Blocked(c Component) bool {
	return d.blockSource != nil && d.blockSource != c
}

// Windows returns every window of the layout in pre-order.
func (d *Dashboard) Windows() []*Window {
	return collect[*Window](d)
}

// Managers returns every stack and grid of the layout in pre-order.
func (d *Dashboard) Managers() []WindowManager {
	return collect[WindowManager](d)
}

func collect[T any](root Component) []T {
	var out []T
	root.Visit(func(c Component) {
		if v, ok := c.(T); ok {
			out = append(out, v)
		}
	})
	return out
}

// ActiveManager returns the manager that owns the block source, or the
// first manager of the layout.
func (d *Dashboard) ActiveManager() WindowManager {
	if m, ok := d.blockSource.(WindowManager); ok {
		return m
	}
	if ms := d.Managers(); len(ms) > 0 {
		return ms[0]
	}
	return nil
}

// Open opens req in the active manager. A dashboard without a manager gets
// a stack first; a bare window root is wrapped into it.
func (d *Dashboard) Open(req OpenRequest) (*Window, error) {
	m := d.ActiveManager()
	if m == nil {
		st := Create[*Stack](d, TypeStack)
		prev := d.component
		if err := d.SetComponent(st); err != nil {
			return nil, err
		}
		if w, ok := prev.(*Window); ok {
			st.Add(w, AddOptions{MakeActive: true})
		}
		m = st
	}
	return m.Open(req)
}

// layout hands the full viewport to the root component.
func (d *Dashboard) layout() {
	if d.component != nil {
		vp := d.viewport
		d.component.SetViewport(vp.X, vp.Y, vp.Width, vp.Height)
	}
}

func (d *Dashboard) eachChild(fn func(Component) bool) bool {
	if d.component == nil {
		return true
	}
	return fn(d.component)
}

// Remove drops the root component.
func (d *Dashboard) Remove(c Component) {
	if c == nil || c != d.component {
		return
	}
	detach(c)
	d.component = nil
	if d.blockSource != nil && isAncestorOrSelf(c, d.blockSource) {
		d.blockSource = nil
	}
	d.changed()
}

// Replace swaps the root component.
func (d *Dashboard) Replace(newItem, oldItem Component) error {
	if oldItem == nil || oldItem != d.component {
		return nil
	}
	return d.SetComponent(newItem)
}

// Close closes the layout, then detaches the dashboard.
func (d *Dashboard) Close() {
	if d.CloseDisabled() {
		return
	}
	if d.component != nil {
		d.component.Close()
	}
	d.RemoveFromParent()
}

// OnChange registers fn to run after every persisted-state mutation.
func (d *Dashboard) OnChange(fn func()) {
	d.listeners = append(d.listeners, fn)
}

func (d *Dashboard) childChanged() {
	for _, fn := range slices.Clone(d.listeners) {
		fn()
	}
	d.changedSnapshot(d.ID(), d.Config)
}

// Load fetches the configuration through the loader and applies it. On
// success, auto-save is armed when a saver is configured.
func (d *Dashboard) Load(ctx context.Context) error {
	return d.load(ctx, d.SetConfig)
}

// Save persists the current configuration immediately.
func (d *Dashboard) Save(ctx context.Context) error {
	return d.save(ctx, d.Config())
}

// Config returns the persisted snapshot.
func (d *Dashboard) Config() Config {
	cfg := Config{
		Type:          TypeDashboard,
		Title:         d.title,
		CloseDisabled: d.ownCloseDisabled(),
	}
	if d.component != nil {
		c := d.component.Config()
		cfg.Component = &c
	}
	return cfg
}

// SetConfig restores the snapshot. The new root is attached before its own
// SetConfig runs, since it resolves the factory and router through us.
func (d *Dashboard) SetConfig(cfg Config) error {
	d.title = cfg.Title
	d.closeDisabled = clonePtr(cfg.CloseDisabled)
	if old := d.component; old != nil {
		detach(old)
		d.component = nil
	}
	d.blockSource = nil
	if cfg.Component != nil {
		c, err := d.build(*cfg.Component)
		if err != nil {
			return err
		}
		if err := d.SetComponent(c); err != nil {
			return err
		}
		if err := c.SetConfig(*cfg.Component); err != nil {
			return err
		}
	}
	d.changed()
	d.layout()
	return nil
}
