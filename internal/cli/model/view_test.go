package model

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tiledash/internal/application/usecase"
	"github.com/bnema/tiledash/internal/cli/styles"
	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/bnema/tiledash/internal/infrastructure/apphost"
)

func newTestList(t *testing.T) (*layout.DashboardList, *[]*apphost.FrameHost) {
	t.Helper()
	var hosts []*apphost.FrameHost
	list := layout.NewDashboardList()
	list.SetComponentFactory(layout.Defaults{TabHeight: 1, SplitterSize: 1, MinItemSize: 3, CellSize: 4}.Factory())
	list.SetAddApp(func() (layout.OpenRequest, bool) {
		return layout.OpenRequest{Path: "/clock"}, true
	})
	list.SetRouter(layout.RouterFunc(func(layout.OpenRequest) (layout.AppHost, error) {
		h := apphost.NewFrameHost(nil)
		hosts = append(hosts, h)
		return h, nil
	}))
	_, err := list.EnsureDefault()
	require.NoError(t, err)
	return list, &hosts
}

func newTestView(t *testing.T, list *layout.DashboardList) ViewModel {
	t.Helper()
	m := NewViewModel(context.Background(), styles.NewTheme(), ViewModelConfig{
		List:      list,
		Layout:    usecase.NewManageLayoutUseCase(),
		Workspace: "test",
	})
	return send(m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func send(m ViewModel, msg tea.Msg) ViewModel {
	next, _ := m.Update(msg)
	return next.(ViewModel)
}

func press(m ViewModel, r rune) ViewModel {
	return send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func TestViewModel_RendersActiveDashboard(t *testing.T) {
	list, _ := newTestList(t)
	m := newTestView(t, list)

	view := m.View()
	assert.Contains(t, view, "Dashboard")
	assert.Contains(t, view, "/clock")
	assert.Contains(t, view, "test")
	assert.Equal(t, 24, lipgloss.Height(view))

	d := list.ActiveDashboard()
	require.NotNil(t, d)
	vp := d.Viewport()
	assert.Equal(t, 80, vp.Width)
	assert.Equal(t, 24-m.chromeHeight(), vp.Height)
	assert.Same(t, d.Windows()[0], m.focus)
}

func TestViewModel_SplitAndClose(t *testing.T) {
	list, hosts := newTestList(t)
	m := newTestView(t, list)
	d := list.ActiveDashboard()

	m = press(m, 'v')
	require.Len(t, d.Windows(), 2)
	sp, ok := d.Component().(*layout.Split)
	require.True(t, ok)
	assert.Equal(t, layout.Horizontal, sp.Orientation())
	assert.Same(t, d.Windows()[1], m.focus)
	assert.Len(t, *hosts, 2)

	m = press(m, 'x')
	require.Len(t, d.Windows(), 1)
	assert.Same(t, d.Windows()[0], m.focus)
	_, ok = d.Component().(*layout.Stack)
	assert.True(t, ok)
}

func TestViewModel_FocusMovesAcrossSplit(t *testing.T) {
	list, _ := newTestList(t)
	m := newTestView(t, list)
	d := list.ActiveDashboard()
	m = press(m, 'v')
	left, right := d.Windows()[0], d.Windows()[1]
	require.Same(t, right, m.focus)

	m = press(m, 'h')
	assert.Same(t, left, m.focus)
	m = press(m, 'l')
	assert.Same(t, right, m.focus)
}

func TestViewModel_DashboardsCycle(t *testing.T) {
	list, _ := newTestList(t)
	m := newTestView(t, list)

	m = press(m, 'n')
	require.Equal(t, 2, list.DashboardCount())
	assert.Equal(t, 1, list.ActiveIndex())
	require.Len(t, list.ActiveDashboard().Windows(), 1)
	assert.Same(t, list.ActiveDashboard().Windows()[0], m.focus)

	m = press(m, ']')
	assert.Equal(t, 0, list.ActiveIndex())
	assert.Same(t, list.ActiveDashboard().Windows()[0], m.focus)

	press(m, '[')
	assert.Equal(t, 1, list.ActiveIndex())
}

func TestViewModel_PresetAndMaximize(t *testing.T) {
	list, _ := newTestList(t)
	m := newTestView(t, list)
	m = press(m, 'o')
	require.Len(t, list.ActiveDashboard().Windows(), 2)

	m = press(m, '4')
	g, ok := list.ActiveDashboard().Component().(*layout.Grid)
	require.True(t, ok)
	require.NotNil(t, m.focus)

	m = press(m, 'z')
	assert.True(t, m.focus.Maximized())
	assert.Equal(t, g.IndexOf(m.focus), g.MaximizedIndex())

	m = press(m, 'z')
	assert.False(t, m.focus.Maximized())

	m = press(m, '1')
	_, ok = list.ActiveDashboard().Component().(*layout.Stack)
	assert.True(t, ok)
	assert.Equal(t, "layout tabs", m.status)
}

func TestViewModel_SaveWithoutSaverReportsError(t *testing.T) {
	list, _ := newTestList(t)
	m := newTestView(t, list)

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Error(t, m.err)
	assert.ErrorIs(t, m.err, layout.ErrIllegalState)
	assert.Contains(t, m.View(), "save failed")
}

func TestViewModel_TickReachesVisibleHosts(t *testing.T) {
	list, hosts := newTestList(t)
	m := newTestView(t, list)

	send(m, tickMsg{})
	require.Len(t, *hosts, 1)
	assert.Contains(t, (*hosts)[0].Events(), "tick")
}

func TestViewModel_Quit(t *testing.T) {
	list, _ := newTestList(t)
	m := newTestView(t, list)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestCanvas_BoxAndText(t *testing.T) {
	c := newCanvas(6, 3)
	inner := c.box(layout.Viewport{Width: 6, Height: 3}, paintPane)
	assert.Equal(t, layout.Viewport{X: 1, Y: 1, Width: 4, Height: 1}, inner)

	n := c.text(inner.X, inner.Y, inner.Width, "abcdef", paintNormal)
	assert.Equal(t, 4, n)

	var plain [paintCount]lipgloss.Style
	for i := range plain {
		plain[i] = lipgloss.NewStyle()
	}
	lines := strings.Split(c.render(plain), "\n")
	assert.Equal(t, []string{"╭────╮", "│abcd│", "╰────╯"}, lines)
}
