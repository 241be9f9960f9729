// Package model provides the bubbletea models of the interactive view.
package model

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tiledash/internal/application/usecase"
	"github.com/bnema/tiledash/internal/cli/styles"
	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/bnema/tiledash/internal/infrastructure/apphost"
	"github.com/bnema/tiledash/internal/infrastructure/config"
	"github.com/bnema/tiledash/internal/logging"
)

const tickInterval = time.Second

// HostChangedMsg reports that an app host changed what it shows.
type HostChangedMsg struct{}

// ConfigReloadedMsg carries the configuration after the file changed.
type ConfigReloadedMsg struct {
	Config *config.Config
}

type tickMsg time.Time

// ViewModelConfig holds what the view edits.
type ViewModelConfig struct {
	List      *layout.DashboardList
	Layout    *usecase.ManageLayoutUseCase
	Workspace string
	// DefaultTitle names dashboards created from the view.
	DefaultTitle string
}

// ViewModel is the interactive dashboard view. It owns the layout tree for
// the lifetime of the program: every mutation happens in Update.
type ViewModel struct {
	ctx      context.Context
	theme    *styles.Theme
	keys     styles.ViewKeyMap
	help     help.Model
	paints   [paintCount]lipgloss.Style
	list     *layout.DashboardList
	layoutUC *usecase.ManageLayoutUseCase

	workspace    string
	defaultTitle string
	focus        *layout.Window

	width, height int
	status        string
	err           error
}

// NewViewModel creates the dashboard view.
func NewViewModel(ctx context.Context, theme *styles.Theme, cfg ViewModelConfig) ViewModel {
	m := ViewModel{
		ctx:          ctx,
		theme:        theme,
		keys:         styles.DefaultViewKeyMap(),
		help:         styles.NewStyledHelp(theme),
		list:         cfg.List,
		layoutUC:     cfg.Layout,
		workspace:    cfg.Workspace,
		defaultTitle: cfg.DefaultTitle,
	}
	m.paints = [paintCount]lipgloss.Style{
		paintNormal:      theme.Normal,
		paintSubtle:      theme.Subtle,
		paintPane:        theme.Pane,
		paintPaneActive:  theme.PaneActive,
		paintTitle:       theme.Title,
		paintTabActive:   theme.ActiveTab,
		paintTabInactive: theme.InactiveTab,
		paintSplitter:    theme.Splitter,
		paintError:       theme.ErrorStyle,
	}
	if m.layoutUC == nil {
		m.layoutUC = usecase.NewManageLayoutUseCase()
	}
	if m.defaultTitle == "" {
		m.defaultTitle = layout.DefaultDashboardTitle
	}
	return m
}

// Init starts the tick that lets apps refresh.
func (m ViewModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles messages.
func (m ViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		m.emitVisible("tick", time.Time(msg))
		cmd = tick()

	case HostChangedMsg:
		// Redraw only.

	case ConfigReloadedMsg:
		if msg.Config != nil {
			m.list.SetComponentFactory(msg.Config.LayoutDefaults().Factory())
			m.setStatus("configuration reloaded")
		}

	case tea.KeyMsg:
		var quit bool
		m, quit = m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}
	}

	m.relayout()
	m.connectVisible()
	m.resolveFocus()
	return m, cmd
}

func (m ViewModel) handleKey(msg tea.KeyMsg) (ViewModel, bool) {
	d := m.list.ActiveDashboard()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, true

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.FocusLeft):
		m.moveFocus(d, usecase.NavLeft)
	case key.Matches(msg, m.keys.FocusRight):
		m.moveFocus(d, usecase.NavRight)
	case key.Matches(msg, m.keys.FocusUp):
		m.moveFocus(d, usecase.NavUp)
	case key.Matches(msg, m.keys.FocusDown):
		m.moveFocus(d, usecase.NavDown)

	case key.Matches(msg, m.keys.NextWindow):
		m.setFocus(m.layoutUC.CycleWindow(m.focus, 1))
	case key.Matches(msg, m.keys.PrevWindow):
		m.setFocus(m.layoutUC.CycleWindow(m.focus, -1))

	case key.Matches(msg, m.keys.NextDashboard):
		m.cycleDashboard(1)
	case key.Matches(msg, m.keys.PrevDashboard):
		m.cycleDashboard(-1)
	case key.Matches(msg, m.keys.NewDashboard):
		m.newDashboard()

	case key.Matches(msg, m.keys.OpenApp):
		m.openApp(d)
	case key.Matches(msg, m.keys.SplitRight):
		m.split(usecase.SplitRight)
	case key.Matches(msg, m.keys.SplitDown):
		m.split(usecase.SplitDown)
	case key.Matches(msg, m.keys.Close):
		if m.focus != nil {
			m.setFocus(m.layoutUC.CloseWindow(m.ctx, d, m.focus))
		}
	case key.Matches(msg, m.keys.Maximize):
		m.toggleMaximize()

	case key.Matches(msg, m.keys.PresetTabs):
		m.applyPreset(d, usecase.Preset{Kind: usecase.PresetTabs})
	case key.Matches(msg, m.keys.PresetColumns):
		m.applyPreset(d, usecase.Preset{Kind: usecase.PresetColumns, Count: 2})
	case key.Matches(msg, m.keys.PresetRows):
		m.applyPreset(d, usecase.Preset{Kind: usecase.PresetRows, Count: 2})
	case key.Matches(msg, m.keys.PresetGrid):
		m.applyPreset(d, usecase.Preset{Kind: usecase.PresetGrid})

	case key.Matches(msg, m.keys.Save):
		if err := m.list.Save(m.ctx); err != nil {
			m.setError(fmt.Errorf("save workspace %q: %w", m.workspace, err))
		} else {
			m.setStatus("workspace saved")
		}
	}
	return m, false
}

func (m *ViewModel) setStatus(s string) {
	m.status, m.err = s, nil
}

func (m *ViewModel) setError(err error) {
	logging.FromContext(m.ctx).Warn().Err(err).Msg("view action failed")
	m.status, m.err = "", err
}

func (m *ViewModel) setFocus(w *layout.Window) {
	if w == nil {
		return
	}
	w.Activate()
	m.focus = w
}

func (m *ViewModel) moveFocus(d *layout.Dashboard, dir usecase.NavigateDirection) {
	if w, ok := m.layoutUC.FocusDirection(m.ctx, d, m.focus, dir); ok {
		m.focus = w
	}
}

func (m *ViewModel) cycleDashboard(delta int) {
	n := m.list.DashboardCount()
	if n == 0 {
		return
	}
	m.list.SetActiveIndex(((m.list.ActiveIndex()+delta)%n + n) % n)
	m.focus = nil
}

func (m *ViewModel) newDashboard() {
	title := fmt.Sprintf("%s %d", m.defaultTitle, m.list.DashboardCount()+1)
	d, err := m.list.NewDashboard(title)
	if err != nil {
		m.setError(err)
		return
	}
	m.focus = nil
	m.openApp(d)
}

// openApp adds a window through the inherited app chooser, in the focused
// manager or in the dashboard's active one.
func (m *ViewModel) openApp(d *layout.Dashboard) {
	if d == nil {
		var err error
		if d, err = m.list.NewDashboard(m.defaultTitle); err != nil {
			m.setError(err)
			return
		}
	}
	var mgr layout.WindowManager
	if m.focus != nil && slices.Contains(d.Windows(), m.focus) {
		mgr = m.focus.Manager()
	}
	if mgr == nil {
		mgr = d.ActiveManager()
	}
	if mgr == nil {
		st := layout.Create[*layout.Stack](d, layout.TypeStack)
		if err := d.SetComponent(st); err != nil {
			m.setError(err)
			return
		}
		mgr = st
	}
	w, err := mgr.AddNew()
	if err != nil {
		m.setError(err)
	}
	if w == nil {
		if err == nil {
			m.setStatus("no app configured")
		}
		return
	}
	m.focus = w
}

func (m *ViewModel) split(dir usecase.SplitDirection) {
	sibling, err := m.layoutUC.SplitWindow(m.ctx, m.focus, dir, false)
	if err != nil {
		m.setError(err)
	}
	if sibling != nil {
		m.setFocus(sibling.ActiveWindow())
	}
}

func (m *ViewModel) toggleMaximize() {
	if m.focus == nil {
		return
	}
	g, ok := m.focus.Manager().(*layout.Grid)
	if !ok {
		m.setStatus("only grid windows can be maximized")
		return
	}
	if m.focus.Maximized() {
		g.Restore()
	} else {
		g.Maximize(m.focus)
	}
}

func (m *ViewModel) applyPreset(d *layout.Dashboard, p usecase.Preset) {
	if err := m.layoutUC.Apply(m.ctx, d, p); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("layout " + p.String())
}

// Lines used by the dashboard tabs above and the status line below the body.
func (m ViewModel) chromeHeight() int {
	return 2 + lipgloss.Height(m.helpView())
}

func (m ViewModel) body() layout.Viewport {
	return layout.Viewport{Width: m.width, Height: max(m.height-m.chromeHeight(), 0)}
}

func (m ViewModel) relayout() {
	b := m.body()
	m.list.SetViewport(b.X, b.Y, b.Width, b.Height)
}

// connectVisible routes restored windows once they get screen space.
func (m ViewModel) connectVisible() {
	d := m.list.ActiveDashboard()
	if d == nil {
		return
	}
	for _, w := range d.Windows() {
		if w.AppHost() != nil || w.Viewport().Empty() {
			continue
		}
		if err := w.Connect(); err != nil {
			logging.FromContext(m.ctx).Warn().Err(err).Str("path", w.Path()).Msg("connect window")
		}
	}
}

func (m ViewModel) emitVisible(event string, payload any) {
	d := m.list.ActiveDashboard()
	if d == nil {
		return
	}
	for _, w := range d.Windows() {
		if !w.Viewport().Empty() {
			w.Emit(event, payload)
		}
	}
}

// resolveFocus keeps the focus on a visible window of the active dashboard.
func (m *ViewModel) resolveFocus() {
	d := m.list.ActiveDashboard()
	if d == nil {
		m.focus = nil
		return
	}
	windows := d.Windows()
	if m.focus != nil && slices.Contains(windows, m.focus) && !m.focus.Viewport().Empty() {
		return
	}
	if mgr := d.ActiveManager(); mgr != nil {
		if w := mgr.ActiveWindow(); w != nil && !w.Viewport().Empty() {
			m.focus = w
			return
		}
	}
	m.focus = nil
	for _, w := range windows {
		if !w.Viewport().Empty() {
			m.focus = w
			return
		}
	}
}

// View renders the dashboard tabs, the active dashboard and the status line.
func (m ViewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	parts := []string{m.dashboardTabs(), m.renderBody(), m.statusLine()}
	if h := m.helpView(); h != "" {
		parts = append(parts, h)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m ViewModel) helpView() string {
	return m.help.View(m.keys)
}

func (m ViewModel) dashboardTabs() string {
	active := m.list.ActiveDashboard()
	tabs := make([]string, 0, m.list.DashboardCount())
	for i, d := range m.list.Dashboards() {
		label := fmt.Sprintf(" %d %s ", i+1, d.Title())
		if d == active {
			tabs = append(tabs, m.theme.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.theme.InactiveTab.Render(label))
		}
	}
	if len(tabs) == 0 {
		tabs = append(tabs, m.theme.InactiveTab.Render(" no dashboards, press n "))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return m.theme.TabBar.Width(m.width).MaxWidth(m.width).MaxHeight(1).Render(row)
}

func (m ViewModel) statusLine() string {
	left := fmt.Sprintf(" %s %s", styles.IconDashboard, m.workspace)
	var right string
	switch {
	case m.err != nil:
		right = m.theme.ErrorStyle.Render(m.err.Error())
	case m.status != "":
		right = m.status
	}
	sync := m.list.Sync()
	state := string(sync.State())
	if sync.State() == layout.SyncError {
		state = m.theme.ErrorStyle.Render("save failed")
	}
	line := fmt.Sprintf("%s  %s %s  %s", left, styles.IconDatabase, state, right)
	return m.theme.StatusBar.Width(m.width).MaxWidth(m.width).MaxHeight(1).Render(line)
}

func (m ViewModel) renderBody() string {
	b := m.body()
	c := newCanvas(b.Width, b.Height)
	d := m.list.ActiveDashboard()
	if d != nil {
		d.Visit(func(comp layout.Component) {
			switch v := comp.(type) {
			case *layout.Split:
				m.drawSplitter(c, v)
			case *layout.Stack:
				m.drawTabBar(c, v)
			case *layout.Window:
				m.drawWindow(c, v)
			}
		})
	}
	return c.render(m.paints)
}

func (m ViewModel) drawSplitter(c *canvas, s *layout.Split) {
	r := '│'
	if s.Orientation() == layout.Vertical {
		r = '─'
	}
	c.fill(s.SplitterRect(), r, paintSplitter)
}

func (m ViewModel) drawTabBar(c *canvas, s *layout.Stack) {
	bar := s.TabBar()
	if bar.Empty() {
		return
	}
	c.fill(bar, ' ', paintTabInactive)
	x := bar.X
	active := s.ActiveWindow()
	for _, w := range s.Windows() {
		p := paintTabInactive
		if w == active {
			p = paintTabActive
		}
		label := " " + tabLabel(w) + " "
		x += c.text(x, bar.Y, bar.X+bar.Width-x, label, p)
		if x >= bar.X+bar.Width {
			return
		}
	}
}

func tabLabel(w *layout.Window) string {
	if icon := w.Icon(); icon != "" {
		return icon + " " + w.Title()
	}
	return w.Title()
}

func (m ViewModel) drawWindow(c *canvas, w *layout.Window) {
	vp := w.Viewport()
	if vp.Empty() {
		return
	}
	frame := paintPane
	if w == m.focus {
		frame = paintPaneActive
	}
	inner := c.box(vp, frame)
	if vp.Width > 4 {
		c.text(vp.X+2, vp.Y, vp.Width-4, " "+w.Title()+" ", paintTitle)
	}
	if inner.Empty() || w.ContentHidden() {
		return
	}

	switch w.State() {
	case layout.AppStateError:
		c.text(inner.X, inner.Y, inner.Width, "app failed: "+w.Path(), paintError)
		return
	case layout.AppStateLoading:
		c.text(inner.X, inner.Y, inner.Width, "loading...", paintSubtle)
		return
	}

	content := ""
	if cp, ok := w.AppHost().(apphost.ContentProvider); ok {
		content = cp.Content()
	}
	if content == "" {
		c.text(inner.X, inner.Y, inner.Width, w.Path(), paintSubtle)
		return
	}
	for i, line := range strings.Split(content, "\n") {
		if i >= inner.Height {
			break
		}
		c.text(inner.X, inner.Y+i, inner.Width, line, paintNormal)
	}
}
