package layout

import "slices"

// WindowManager is a container of windows: a Stack or a Grid.
type WindowManager interface {
	Component

	Windows() []*Window
	WindowCount() int
	IndexOf(w *Window) int
	ActiveIndex() int
	SetActiveIndex(i int)
	ActiveWindow() *Window
	Activate(w *Window)
	MaximizedIndex() int
	SetMaximizedIndex(i int)
	WindowDefaults() WindowSettings

	Add(w *Window, opts AddOptions)
	InsertAt(w *Window, index int)
	InsertBefore(w, ref *Window)
	Open(req OpenRequest) (*Window, error)
	AddNew() (*Window, error)

	Drag() *Window
	Resizing() (*Window, ResizeHandle)

	setDrag(w *Window)
	clearDrag(w *Window)
	setResizing(w *Window, handle ResizeHandle)
	clearResizing(w *Window)
	manager() *windowManager
}

// AddOptions tunes WindowManager.Add.
type AddOptions struct {
	MakeActive bool
}

// windowManager holds the ordered windows shared by Stack and Grid.
type windowManager struct {
	node

	windows        []*Window
	activeIndex    int
	maximizedIndex int

	drag         *Window
	resizing     *Window
	resizeHandle ResizeHandle

	defaults WindowSettings

	// afterAdd lets the concrete manager place a window it just received.
	afterAdd func(w *Window)
}

func (m *windowManager) initManager(self WindowManager) {
	m.init(self)
	m.maximizedIndex = -1
}

func (m *windowManager) manager() *windowManager { return m }

func (m *windowManager) mgr() WindowManager { return m.self.(WindowManager) }

// Windows returns the windows in display order.
func (m *windowManager) Windows() []*Window { return slices.Clone(m.windows) }

func (m *windowManager) WindowCount() int { return len(m.windows) }

// IndexOf returns the position of w, or -1.
func (m *windowManager) IndexOf(w *Window) int {
	return slices.Index(m.windows, w)
}

// ActiveIndex returns the stored index clamped to the window range.
func (m *windowManager) ActiveIndex() int {
	if len(m.windows) == 0 || m.activeIndex < 0 {
		return 0
	}
	if m.activeIndex >= len(m.windows) {
		return len(m.windows) - 1
	}
	return m.activeIndex
}

// SetActiveIndex stores i as is; reads clamp it.
func (m *windowManager) SetActiveIndex(i int) {
	if m.activeIndex == i {
		return
	}
	m.activeIndex = i
	m.changed()
	m.self.layout()
}

// ActiveWindow returns the active window, or nil when empty.
func (m *windowManager) ActiveWindow() *Window {
	if len(m.windows) == 0 {
		return nil
	}
	return m.windows[m.ActiveIndex()]
}

// Activate makes w active when it belongs to this manager.
func (m *windowManager) Activate(w *Window) {
	if i := m.IndexOf(w); i >= 0 {
		m.SetActiveIndex(i)
	}
}

// MaximizedIndex returns the maximized window index, or -1.
func (m *windowManager) MaximizedIndex() int {
	if m.maximizedIndex < 0 || m.maximizedIndex >= len(m.windows) {
		return -1
	}
	return m.maximizedIndex
}

// SetMaximizedIndex stores i; -1 clears it.
func (m *windowManager) SetMaximizedIndex(i int) {
	if m.maximizedIndex == i {
		return
	}
	m.maximizedIndex = i
	m.changed()
	m.self.layout()
}

// WindowDefaults returns the settings windows inherit when unset.
func (m *windowManager) WindowDefaults() WindowSettings { return m.defaults.Clone() }

// SetWindowDefaults replaces the inherited window settings.
func (m *windowManager) SetWindowDefaults(s WindowSettings) {
	m.defaults = s.Clone()
	m.self.layout()
}

// Add appends w. A window already in this manager is moved to the end.
func (m *windowManager) Add(w *Window, opts AddOptions) {
	if w == nil {
		return
	}
	active := m.ActiveWindow()
	if w.parent == m.self {
		m.windows = slices.DeleteFunc(m.windows, func(x *Window) bool { return x == w })
	} else if w.parent != nil {
		w.RemoveFromParent()
	}
	m.windows = append(m.windows, w)
	w.parent = m.self
	m.restoreActive(active)
	if opts.MakeActive || len(m.windows) == 1 {
		m.activeIndex = len(m.windows) - 1
	}
	if m.afterAdd != nil {
		m.afterAdd(w)
	}
	m.changed()
	m.self.layout()
}

// InsertAt moves or inserts w at index, keeping the order of the other
// windows. An index outside [0, len] falls back to Add.
func (m *windowManager) InsertAt(w *Window, index int) {
	if w == nil {
		return
	}
	if index < 0 || index > len(m.windows) {
		m.mgr().Add(w, AddOptions{})
		return
	}
	active := m.ActiveWindow()
	if w.parent == m.self {
		from := m.IndexOf(w)
		m.windows = slices.Delete(m.windows, from, from+1)
		if from < index {
			index--
		}
	} else {
		if w.parent != nil {
			w.RemoveFromParent()
		}
		w.parent = m.self
	}
	m.windows = slices.Insert(m.windows, index, w)
	if active == nil {
		m.activeIndex = index
	} else {
		m.restoreActive(active)
	}
	if m.afterAdd != nil {
		m.afterAdd(w)
	}
	m.changed()
	m.self.layout()
}

// InsertBefore inserts w before ref, or appends when ref is not here.
func (m *windowManager) InsertBefore(w, ref *Window) {
	i := -1
	if ref != nil && ref != w {
		i = m.IndexOf(ref)
	}
	if i < 0 {
		m.mgr().Add(w, AddOptions{})
		return
	}
	m.InsertAt(w, i)
}

func (m *windowManager) restoreActive(active *Window) {
	if active == nil {
		return
	}
	if i := m.IndexOf(active); i >= 0 {
		m.activeIndex = i
	}
}

// Open reuses the named window of the dashboard when req.Replace is set,
// otherwise opens a new active window. The returned error comes from the
// app host; the window is kept either way.
func (m *windowManager) Open(req OpenRequest) (*Window, error) {
	if req.Replace && req.Name != "" {
		var scope Component = DashboardOf(m.self)
		if scope == nil {
			scope = Root(m.self)
		}
		if found, ok := scope.FindFirst(func(c Component) bool {
			w, ok := c.(*Window)
			return ok && w.name == req.Name
		}).(*Window); ok {
			err := found.Load(req)
			found.Activate()
			return found, err
		}
	}
	w := NewWindow()
	w.applyRequest(req)
	m.mgr().Add(w, AddOptions{MakeActive: true})
	return w, w.ensureHost()
}

// AddNew asks the inherited AddApp for a request and opens it. It returns
// nil without error when no chooser is configured or the user cancelled.
func (m *windowManager) AddNew() (*Window, error) {
	addApp := m.AddApp()
	if addApp == nil {
		return nil, nil
	}
	req, ok := addApp()
	if !ok {
		return nil, nil
	}
	return m.mgr().Open(req)
}

// Remove detaches a window. An emptied manager removes itself as well.
func (m *windowManager) Remove(c Component) {
	w, ok := c.(*Window)
	if !ok {
		return
	}
	i := m.IndexOf(w)
	if i < 0 {
		return
	}
	m.windows = slices.Delete(m.windows, i, i+1)
	detach(w)
	if m.drag == w {
		m.clearDrag(w)
	}
	if m.resizing == w {
		m.clearResizing(w)
	}
	if i < m.activeIndex {
		m.activeIndex--
	}
	switch {
	case m.maximizedIndex == i:
		m.maximizedIndex = -1
	case i < m.maximizedIndex:
		m.maximizedIndex--
	}
	m.changed()
	if len(m.windows) == 0 {
		m.RemoveFromParent()
		return
	}
	m.self.layout()
}

// Replace swaps oldItem for newItem in place.
func (m *windowManager) Replace(newItem, oldItem Component) error {
	nw, ok1 := newItem.(*Window)
	ow, ok2 := oldItem.(*Window)
	if !ok1 || !ok2 {
		return ErrUnsupportedChild
	}
	i := m.IndexOf(ow)
	if i < 0 || nw == ow {
		return nil
	}
	if nw.parent != nil {
		nw.RemoveFromParent()
		i = m.IndexOf(ow)
		if i < 0 {
			return nil
		}
	}
	m.windows[i] = nw
	nw.parent = m.self
	detach(ow)
	if m.afterAdd != nil {
		m.afterAdd(nw)
	}
	m.changed()
	m.self.layout()
	return nil
}

// Close closes every window and then detaches the manager. Nothing happens
// when closing is disabled.
func (m *windowManager) Close() {
	if m.CloseDisabled() {
		return
	}
	for len(m.windows) > 0 {
		w := m.windows[0]
		w.Close()
		if len(m.windows) > 0 && m.windows[0] == w {
			m.Remove(w)
		}
	}
	m.RemoveFromParent()
}

func (m *windowManager) eachChild(fn func(Component) bool) bool {
	for _, w := range slices.Clone(m.windows) {
		if !fn(w) {
			return false
		}
	}
	return true
}

// Drag returns the window being dragged, if any.
func (m *windowManager) Drag() *Window { return m.drag }

// Resizing returns the window being resized and the handle in use.
func (m *windowManager) Resizing() (*Window, ResizeHandle) { return m.resizing, m.resizeHandle }

func (m *windowManager) setDrag(w *Window) {
	m.drag = w
	if d := DashboardOf(m.self); d != nil {
		d.SetBlockSource(m.self)
	}
}

func (m *windowManager) clearDrag(w *Window) {
	if m.drag != w {
		return
	}
	m.drag = nil
	m.releaseBlock()
}

func (m *windowManager) setResizing(w *Window, handle ResizeHandle) {
	m.resizing = w
	m.resizeHandle = handle
	if d := DashboardOf(m.self); d != nil {
		d.SetBlockSource(m.self)
	}
}

func (m *windowManager) clearResizing(w *Window) {
	if m.resizing != w {
		return
	}
	m.resizing = nil
	m.resizeHandle = ResizeNone
	m.releaseBlock()
}

func (m *windowManager) releaseBlock() {
	if m.drag != nil || m.resizing != nil {
		return
	}
	if d := DashboardOf(m.self); d != nil && d.BlockSource() == m.self {
		d.SetBlockSource(nil)
	}
}

// windowConfigs snapshots the persisted windows and maps the active and
// maximized indexes onto the filtered list.
func (m *windowManager) windowConfigs() (cfgs []Config, active, maximized int) {
	active, maximized = 0, -1
	activeWin := m.ActiveWindow()
	var maxWin *Window
	if i := m.MaximizedIndex(); i >= 0 {
		maxWin = m.windows[i]
	}
	for _, w := range m.windows {
		if w.transient {
			continue
		}
		if w == activeWin {
			active = len(cfgs)
		}
		if w == maxWin {
			maximized = len(cfgs)
		}
		cfgs = append(cfgs, w.Config())
	}
	return cfgs, active, maximized
}

// setWindowConfigs replaces the windows with freshly built ones. Each
// window is attached before its own SetConfig runs.
func (m *windowManager) setWindowConfigs(cfgs []Config) error {
	for _, w := range slices.Clone(m.windows) {
		detach(w)
	}
	m.windows = nil
	m.drag, m.resizing = nil, nil
	factory := m.ComponentFactory()
	for _, wc := range cfgs {
		var w *Window
		if factory != nil {
			if fw, ok := factory(TypeWindow).(*Window); ok {
				w = fw
			}
		}
		if w == nil {
			w = NewWindow()
		}
		m.windows = append(m.windows, w)
		w.parent = m.self
		if err := w.SetConfig(wc); err != nil {
			return err
		}
	}
	return nil
}
