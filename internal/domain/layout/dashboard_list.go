package layout

import (
	"context"
	"slices"
)

// DefaultDashboardTitle names the dashboard created for an empty list.
const DefaultDashboardTitle = "Dashboard"

// DashboardList holds the dashboards of a workspace, one of them active.
type DashboardList struct {
	node
	persistence

	dashboards    []*Dashboard
	activeIndex   int
	createDefault bool
	defaultTitle  string
	listeners     []func()
}

// NewDashboardList creates an empty list using the default factory. It
// creates a default dashboard when emptied.
func NewDashboardList() *DashboardList {
	l := &DashboardList{createDefault: true, defaultTitle: DefaultDashboardTitle}
	l.init(l)
	l.persistence.sync = NewSync()
	l.factory = NewComponent
	return l
}

func (l *DashboardList) Type() Type { return TypeDashboardList }

// Dashboards returns the dashboards in order.
func (l *DashboardList) Dashboards() []*Dashboard { return slices.Clone(l.dashboards) }

func (l *DashboardList) DashboardCount() int { return len(l.dashboards) }

// IndexOf returns the position of d, or -1.
func (l *DashboardList) IndexOf(d *Dashboard) int { return slices.Index(l.dashboards, d) }

// CreateDefault reports whether an empty list gets a default dashboard.
func (l *DashboardList) CreateDefault() bool { return l.createDefault }

// SetCreateDefault toggles default dashboard creation.
func (l *DashboardList) SetCreateDefault(v bool) { l.createDefault = v }

// SetDefaultTitle sets the title of created default dashboards.
func (l *DashboardList) SetDefaultTitle(title string) { l.defaultTitle = title }

// ActiveIndex returns the stored index clamped to the dashboard range.
func (l *DashboardList) ActiveIndex() int {
	if len(l.dashboards) == 0 || l.activeIndex < 0 {
		return 0
	}
	if l.activeIndex >= len(l.dashboards) {
		return len(l.dashboards) - 1
	}
	return l.activeIndex
}

// SetActiveIndex stores i as is; reads clamp it.
func (l *DashboardList) SetActiveIndex(i int) {
	if l.activeIndex == i {
		return
	}
	l.activeIndex = i
	l.changed()
	l.layout()
}

// ActiveDashboard returns the active dashboard, or nil when empty.
func (l *DashboardList) ActiveDashboard() *Dashboard {
	if len(l.dashboards) == 0 {
		return nil
	}
	return l.dashboards[l.ActiveIndex()]
}

// Activate makes d active when it belongs to the list.
func (l *DashboardList) Activate(d *Dashboard) {
	if i := l.IndexOf(d); i >= 0 {
		l.SetActiveIndex(i)
	}
}

// Add appends d. A dashboard already in the list is moved to the end.
func (l *DashboardList) Add(d *Dashboard, opts AddOptions) error {
	if d == nil {
		return nil
	}
	active := l.ActiveDashboard()
	if d.parent == Component(l) {
		l.dashboards = slices.DeleteFunc(l.dashboards, func(x *Dashboard) bool { return x == d })
	} else if err := attach(l, d); err != nil {
		return err
	}
	l.dashboards = append(l.dashboards, d)
	if i := l.IndexOf(active); active != nil && i >= 0 {
		l.activeIndex = i
	}
	if opts.MakeActive || len(l.dashboards) == 1 {
		l.activeIndex = len(l.dashboards) - 1
	}
	l.changed()
	l.layout()
	return nil
}

// NewDashboard appends an empty dashboard and makes it active.
func (l *DashboardList) NewDashboard(title string) (*Dashboard, error) {
	d := NewDashboard()
	d.SetComponentFactory(nil)
	d.SetTitle(title)
	if err := l.Add(d, AddOptions{MakeActive: true}); err != nil {
		return nil, err
	}
	return d, nil
}

// Remove drops a dashboard. An emptied list creates its default dashboard.
func (l *DashboardList) Remove(c Component) {
	d, ok := c.(*Dashboard)
	if !ok {
		return
	}
	i := l.IndexOf(d)
	if i < 0 {
		return
	}
	l.dashboards = slices.Delete(l.dashboards, i, i+1)
	detach(d)
	if i < l.activeIndex {
		l.activeIndex--
	}
	l.changed()
	// An app host error leaves the default dashboard in place with an
	// errored window; there is nobody to report it to here.
	_, _ = l.EnsureDefault()
	l.layout()
}

// Replace swaps oldItem for newItem in place.
func (l *DashboardList) Replace(newItem, oldItem Component) error {
	nd, ok1 := newItem.(*Dashboard)
	od, ok2 := oldItem.(*Dashboard)
	if !ok1 || !ok2 {
		return ErrUnsupportedChild
	}
	i := l.IndexOf(od)
	if i < 0 || nd == od {
		return nil
	}
	if err := attach(l, nd); err != nil {
		return err
	}
	if i = l.IndexOf(od); i < 0 {
		return nil
	}
	l.dashboards[i] = nd
	detach(od)
	l.changed()
	l.layout()
	return nil
}

// EnsureDefault creates the default dashboard when the list is empty,
// default creation is enabled and an app chooser is configured. The new
// dashboard holds a stack filled through AddNew.
func (l *DashboardList) EnsureDefault() (*Dashboard, error) {
	if len(l.dashboards) > 0 || !l.createDefault || l.AddApp() == nil {
		return nil, nil
	}
	d, err := l.NewDashboard(l.defaultTitle)
	if err != nil {
		return nil, err
	}
	st := Create[*Stack](d, TypeStack)
	if err := d.SetComponent(st); err != nil {
		return d, err
	}
	if _, err := st.AddNew(); err != nil {
		return d, err
	}
	return d, nil
}

// Open opens req in the active dashboard, creating the default one first
// when the list is empty.
func (l *DashboardList) Open(req OpenRequest) (*Window, error) {
	d := l.ActiveDashboard()
	if d == nil {
		var err error
		if d, err = l.NewDashboard(l.defaultTitle); err != nil {
			return nil, err
		}
	}
	return d.Open(req)
}

// layout gives the active dashboard the full viewport and collapses the rest.
func (l *DashboardList) layout() {
	vp := l.viewport
	active := l.ActiveDashboard()
	for _, d := range l.dashboards {
		if d == active {
			d.SetViewport(vp.X, vp.Y, vp.Width, vp.Height)
			continue
		}
		d.SetViewport(vp.X, vp.Y, 0, 0)
	}
}

func (l *DashboardList) eachChild(fn func(Component) bool) bool {
	for _, d := range slices.Clone(l.dashboards) {
		if !fn(d) {
			return false
		}
	}
	return true
}

// Close closes every dashboard without recreating a default one.
func (l *DashboardList) Close() {
	if l.CloseDisabled() {
		return
	}
	createDefault := l.createDefault
	l.createDefault = false
	defer func() { l.createDefault = createDefault }()
	for _, d := range slices.Clone(l.dashboards) {
		d.Close()
		if l.IndexOf(d) >= 0 {
			l.Remove(d)
		}
	}
	l.RemoveFromParent()
}

// OnChange registers fn to run after every persisted-state mutation.
func (l *DashboardList) OnChange(fn func()) {
	l.listeners = append(l.listeners, fn)
}

func (l *DashboardList) childChanged() {
	for _, fn := range slices.Clone(l.listeners) {
		fn()
	}
	l.changedSnapshot(l.ID(), l.Config)
}

// Load fetches the configuration through the loader and applies it.
func (l *DashboardList) Load(ctx context.Context) error {
	return l.load(ctx, l.SetConfig)
}

// Save persists the current configuration immediately.
func (l *DashboardList) Save(ctx context.Context) error {
	return l.save(ctx, l.Config())
}

// Config returns the persisted snapshot.
func (l *DashboardList) Config() Config {
	cfg := Config{
		Type:          TypeDashboardList,
		ActiveIndex:   intPtr(l.ActiveIndex()),
		CloseDisabled: l.ownCloseDisabled(),
	}
	for _, d := range l.dashboards {
		cfg.Dashboards = append(cfg.Dashboards, d.Config())
	}
	return cfg
}

// SetConfig restores the snapshot. Restored dashboards inherit the list's
// factory and router.
func (l *DashboardList) SetConfig(cfg Config) error {
	l.closeDisabled = clonePtr(cfg.CloseDisabled)
	for _, d := range l.dashboards {
		detach(d)
	}
	l.dashboards = nil
	for _, dc := range cfg.Dashboards {
		c, err := l.build(Config{Type: TypeDashboard})
		if err != nil {
			return err
		}
		d, ok := c.(*Dashboard)
		if !ok {
			return ErrUnsupportedChild
		}
		d.SetComponentFactory(nil)
		l.dashboards = append(l.dashboards, d)
		d.parent = l
		if err := d.SetConfig(dc); err != nil {
			return err
		}
	}
	l.activeIndex = 0
	if cfg.ActiveIndex != nil {
		l.activeIndex = *cfg.ActiveIndex
	}
	if _, err := l.EnsureDefault(); err != nil {
		return err
	}
	l.changed()
	l.layout()
	return nil
}
