package layout

import "maps"

//go:generate mockgen -source=window.go -destination=mocks/mock_apphost.go -package=mock_layout

// Host bus events emitted while a window closes, in order.
const (
	EventBeforeUnload = "beforeunload"
	EventBeforeClose  = "beforeclose"
	EventUnload       = "unload"
	EventClose        = "close"
)

// AppState is the lifecycle state reported by an app host.
type AppState string

const (
	AppStateIdle    AppState = "idle"
	AppStateLoading AppState = "loading"
	AppStateReady   AppState = "ready"
	AppStateError   AppState = "error"
)

// AppHost is the contract of the embedded application running in a window.
// Emit is expected to deliver synchronously and in order.
type AppHost interface {
	Emit(event string, payload any)
	Load(req OpenRequest) error
	Title() string
	Icon() string
	State() AppState
}

// OpenRequest carries the navigation payload used to open or load a window.
type OpenRequest struct {
	Path      string
	Params    map[string]string
	Query     map[string]string
	Name      string
	Title     string
	Transient bool
	// Replace reuses the dashboard window with the same Name instead of
	// opening a new one.
	Replace bool
}

// WindowSettings are per-window presentation flags. Nil fields are unset
// and fall back to the owning manager's defaults.
type WindowSettings struct {
	BorderWidth     *int        `json:"borderWidth,omitempty" yaml:"borderWidth,omitempty" toml:"borderWidth,omitempty"`
	HeaderHeight    *int        `json:"headerHeight,omitempty" yaml:"headerHeight,omitempty" toml:"headerHeight,omitempty"`
	Resizable       *bool       `json:"resizable,omitempty" yaml:"resizable,omitempty" toml:"resizable,omitempty"`
	Draggable       *bool       `json:"draggable,omitempty" yaml:"draggable,omitempty" toml:"draggable,omitempty"`
	AnimatePosition *bool       `json:"animatePosition,omitempty" yaml:"animatePosition,omitempty" toml:"animatePosition,omitempty"`
	Data            *WindowData `json:"data,omitempty" yaml:"data,omitempty" toml:"data,omitempty"`
}

// WindowData is the out-of-band bag managers use to store placement.
type WindowData struct {
	Grid *GridBounds `json:"grid,omitempty" yaml:"grid,omitempty" toml:"grid,omitempty"`
}

// Clone returns a deep copy.
func (s WindowSettings) Clone() WindowSettings {
	out := WindowSettings{
		BorderWidth:     clonePtr(s.BorderWidth),
		HeaderHeight:    clonePtr(s.HeaderHeight),
		Resizable:       clonePtr(s.Resizable),
		Draggable:       clonePtr(s.Draggable),
		AnimatePosition: clonePtr(s.AnimatePosition),
	}
	if s.Data != nil {
		out.Data = &WindowData{Grid: clonePtr(s.Data.Grid)}
	}
	return out
}

func (s WindowSettings) isZero() bool {
	return s.BorderWidth == nil && s.HeaderHeight == nil && s.Resizable == nil &&
		s.Draggable == nil && s.AnimatePosition == nil && (s.Data == nil || s.Data.Grid == nil)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// DragState is the ephemeral state of a drag gesture. Updates are merged
// key by key.
type DragState map[string]any

// CloseOptions tunes Window.Close.
type CloseOptions struct {
	// NoRemove keeps the window attached after the close events.
	NoRemove bool
}

// Window is a leaf hosting one application instance.
type Window struct {
	node

	path   string
	params map[string]string
	query  map[string]string
	name   string
	title  string

	appHost       AppHost
	contentHidden bool
	transient     bool
	settings      WindowSettings
	dragState     DragState

	// OnClose runs between the beforeclose and unload events.
	OnClose func(w *Window)
}

// NewWindow creates a detached window.
func NewWindow() *Window {
	w := &Window{}
	w.init(w)
	return w
}

func (w *Window) Type() Type { return TypeWindow }

func (w *Window) Path() string                 { return w.path }
func (w *Window) Params() map[string]string    { return maps.Clone(w.params) }
func (w *Window) Query() map[string]string     { return maps.Clone(w.query) }
func (w *Window) Name() string                 { return w.name }
func (w *Window) AppHost() AppHost             { return w.appHost }
func (w *Window) ContentHidden() bool          { return w.contentHidden }
func (w *Window) Transient() bool              { return w.transient }
func (w *Window) Settings() WindowSettings     { return w.settings.Clone() }
func (w *Window) DragState() DragState         { return maps.Clone(w.dragState) }
func (w *Window) SetAppHost(h AppHost)         { w.appHost = h }
func (w *Window) SetTransient(transient bool)  { w.transient = transient }
func (w *Window) SetName(name string)          { w.name = name; w.changed() }
func (w *Window) SetContentHidden(hidden bool) { w.contentHidden = hidden; w.changed() }

// SetTitle overrides the title reported by the app host.
func (w *Window) SetTitle(title string) {
	w.title = title
	w.changed()
}

// Title returns the explicit title, then the host title, then the path.
func (w *Window) Title() string {
	if w.title != "" {
		return w.title
	}
	if w.appHost != nil {
		if t := w.appHost.Title(); t != "" {
			return t
		}
	}
	return w.path
}

// Icon returns the host icon, if any.
func (w *Window) Icon() string {
	if w.appHost == nil {
		return ""
	}
	return w.appHost.Icon()
}

// State returns the host state, or idle without a host.
func (w *Window) State() AppState {
	if w.appHost == nil {
		return AppStateIdle
	}
	return w.appHost.State()
}

// SetSettings replaces the settings.
func (w *Window) SetSettings(s WindowSettings) {
	w.settings = s.Clone()
	w.changed()
	if p := w.parent; p != nil {
		p.layout()
	}
}

// Manager returns the owning window manager, if any.
func (w *Window) Manager() WindowManager {
	m, _ := w.parent.(WindowManager)
	return m
}

// Active reports whether this is the active window of its manager.
func (w *Window) Active() bool {
	m := w.Manager()
	return m != nil && m.ActiveWindow() == w
}

// Activate makes this window the active one of its manager.
func (w *Window) Activate() {
	if m := w.Manager(); m != nil {
		m.Activate(w)
	}
}

// Maximized reports whether the owning manager maximizes this window.
func (w *Window) Maximized() bool {
	m := w.Manager()
	if m == nil {
		return false
	}
	i := m.MaximizedIndex()
	return i >= 0 && m.Windows()[i] == w
}

func (w *Window) defaults() WindowSettings {
	if m := w.Manager(); m != nil {
		return m.WindowDefaults()
	}
	return WindowSettings{}
}

// BorderWidth resolves the border width against the manager defaults.
func (w *Window) BorderWidth() int {
	return pick(w.settings.BorderWidth, w.defaults().BorderWidth, 0)
}

// HeaderHeight resolves the header height against the manager defaults.
func (w *Window) HeaderHeight() int {
	return pick(w.settings.HeaderHeight, w.defaults().HeaderHeight, 0)
}

// Resizable resolves the flag against the manager defaults.
func (w *Window) Resizable() bool {
	return pick(w.settings.Resizable, w.defaults().Resizable, false)
}

// Draggable resolves the flag against the manager defaults.
func (w *Window) Draggable() bool {
	return pick(w.settings.Draggable, w.defaults().Draggable, false)
}

// AnimatePosition resolves the flag against the manager defaults.
func (w *Window) AnimatePosition() bool {
	return pick(w.settings.AnimatePosition, w.defaults().AnimatePosition, false)
}

func pick[T any](own, inherited *T, fallback T) T {
	if own != nil {
		return *own
	}
	if inherited != nil {
		return *inherited
	}
	return fallback
}

// applyRequest copies the navigation payload onto the window.
func (w *Window) applyRequest(req OpenRequest) {
	w.path = req.Path
	w.params = copyStrings(req.Params)
	w.query = copyStrings(req.Query)
	if req.Name != "" {
		w.name = req.Name
	}
	if req.Title != "" {
		w.title = req.Title
	}
	if req.Transient {
		w.transient = true
	}
}

func (w *Window) request() OpenRequest {
	return OpenRequest{
		Path:   w.path,
		Params: copyStrings(w.params),
		Query:  copyStrings(w.query),
		Name:   w.name,
		Title:  w.title,
	}
}

// Load navigates the window. Without a host, one is created through the
// inherited router; without a router the host is left for later.
func (w *Window) Load(req OpenRequest) error {
	w.applyRequest(req)
	w.changed()
	if w.appHost != nil {
		return w.appHost.Load(w.request())
	}
	return w.ensureHost()
}

// Connect creates the app host through the inherited router when the
// window has none. Restored windows stay unconnected until then.
func (w *Window) Connect() error {
	return w.ensureHost()
}

func (w *Window) ensureHost() error {
	if w.appHost != nil {
		return nil
	}
	router := w.Router()
	if router == nil {
		return nil
	}
	host, err := router.Route(w.request())
	if err != nil {
		return err
	}
	w.appHost = host
	return nil
}

// Emit forwards an event to the host.
func (w *Window) Emit(event string, payload any) {
	if w.appHost != nil {
		w.appHost.Emit(event, payload)
	}
}

// Close runs the close event sequence and detaches the window unless
// opts.NoRemove is set.
func (w *Window) Close() {
	w.CloseWith(CloseOptions{})
}

// CloseWith is Close with options.
func (w *Window) CloseWith(opts CloseOptions) {
	w.Emit(EventBeforeUnload, nil)
	w.Emit(EventBeforeClose, nil)
	if w.OnClose != nil {
		w.OnClose(w)
	}
	w.Emit(EventUnload, nil)
	w.Emit(EventClose, nil)
	if !opts.NoRemove {
		w.RemoveFromParent()
	}
}

// DragStart merges state into the drag state and makes this window the
// drag of its manager.
func (w *Window) DragStart(state DragState) {
	w.mergeDrag(state)
	if m := w.Manager(); m != nil {
		m.setDrag(w)
	}
}

// DragUpdate merges state into the drag state.
func (w *Window) DragUpdate(state DragState) {
	w.mergeDrag(state)
}

// DragEnd clears the drag state and releases the manager drag.
func (w *Window) DragEnd() {
	w.dragState = nil
	if m := w.Manager(); m != nil {
		m.clearDrag(w)
	}
}

// Dragging reports whether this window is the drag of its manager.
func (w *Window) Dragging() bool {
	m := w.Manager()
	return m != nil && m.Drag() == w
}

func (w *Window) mergeDrag(state DragState) {
	if w.dragState == nil {
		w.dragState = make(DragState, len(state))
	}
	maps.Copy(w.dragState, state)
}

// ResizeStart makes this window the resize session of its manager.
func (w *Window) ResizeStart(handle ResizeHandle) {
	if m := w.Manager(); m != nil {
		m.setResizing(w, handle)
	}
}

// ResizeEnd releases the manager resize session.
func (w *Window) ResizeEnd() {
	if m := w.Manager(); m != nil {
		m.clearResizing(w)
	}
}

// Config returns the persisted snapshot.
func (w *Window) Config() Config {
	cfg := Config{
		Type:          TypeWindow,
		Path:          w.path,
		Params:        copyStrings(w.params),
		Query:         copyStrings(w.query),
		Name:          w.name,
		Title:         w.title,
		CloseDisabled: w.ownCloseDisabled(),
		ContentHidden: w.contentHidden,
	}
	if !w.settings.isZero() {
		s := w.settings.Clone()
		cfg.Settings = &s
	}
	return cfg
}

// SetConfig restores the snapshot.
func (w *Window) SetConfig(cfg Config) error {
	w.path = cfg.Path
	w.params = copyStrings(cfg.Params)
	w.query = copyStrings(cfg.Query)
	w.name = cfg.Name
	w.title = cfg.Title
	w.closeDisabled = clonePtr(cfg.CloseDisabled)
	w.contentHidden = cfg.ContentHidden
	w.settings = WindowSettings{}
	if cfg.Settings != nil {
		w.settings = cfg.Settings.Clone()
	}
	w.changed()
	return nil
}
