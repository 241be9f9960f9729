package layout_test

import (
	"testing"

	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addApp(path string) layout.AddAppFunc {
	return func() (layout.OpenRequest, bool) {
		return layout.OpenRequest{Path: path}, true
	}
}

func TestStack_AddNewOnDashboard(t *testing.T) {
	d := layout.NewDashboard()
	d.SetAddApp(addApp("/app1"))
	st := layout.NewStack()
	require.NoError(t, d.SetComponent(st))

	w, err := st.AddNew()
	require.NoError(t, err)

	require.Len(t, d.Windows(), 1)
	assert.Same(t, w, d.Windows()[0])
	assert.True(t, w.Active())
	assert.Equal(t, "/app1", w.Path())
}

func TestStack_AddNewWithoutChooser(t *testing.T) {
	st := layout.NewStack()

	w, err := st.AddNew()

	require.NoError(t, err)
	assert.Nil(t, w)
	assert.Zero(t, st.WindowCount())
}

func TestStack_AddIsIdempotent(t *testing.T) {
	st := layout.NewStack()
	w1, w2 := newWindow(t, "/one"), newWindow(t, "/two")

	st.Add(w1, layout.AddOptions{})
	st.Add(w2, layout.AddOptions{MakeActive: true})
	st.Add(w1, layout.AddOptions{})

	assert.Equal(t, []*layout.Window{w2, w1}, st.Windows())
	assert.Same(t, w2, st.ActiveWindow())
	assert.Equal(t, 0, st.ActiveIndex())
}

func TestStack_AddMovesWindowBetweenManagers(t *testing.T) {
	a, b := layout.NewStack(), layout.NewStack()
	keep := newWindow(t, "/keep")
	moved := newWindow(t, "/moved")
	a.Add(keep, layout.AddOptions{})
	a.Add(moved, layout.AddOptions{})

	b.Add(moved, layout.AddOptions{})

	assert.Equal(t, []*layout.Window{keep}, a.Windows())
	assert.Equal(t, []*layout.Window{moved}, b.Windows())
	assert.Same(t, b, moved.Parent())
}

func TestStack_ActiveIndexClamped(t *testing.T) {
	st := layout.NewStack()
	assert.Equal(t, 0, st.ActiveIndex())
	assert.Nil(t, st.ActiveWindow())

	st.Add(newWindow(t, "/one"), layout.AddOptions{})
	last := newWindow(t, "/two")
	st.Add(last, layout.AddOptions{})

	st.SetActiveIndex(10)
	assert.Equal(t, 1, st.ActiveIndex())
	assert.Same(t, last, st.ActiveWindow())

	st.SetActiveIndex(-3)
	assert.Equal(t, 0, st.ActiveIndex())
}

func TestStack_RemoveKeepsActiveWindow(t *testing.T) {
	st := layout.NewStack()
	a, b, c := newWindow(t, "/a"), newWindow(t, "/b"), newWindow(t, "/c")
	st.Add(a, layout.AddOptions{})
	st.Add(b, layout.AddOptions{})
	st.Add(c, layout.AddOptions{MakeActive: true})

	st.Remove(a)

	assert.Same(t, c, st.ActiveWindow())
	assert.Nil(t, a.Parent())
}

func TestStack_InsertAt(t *testing.T) {
	st := layout.NewStack()
	a, b, c := newWindow(t, "/a"), newWindow(t, "/b"), newWindow(t, "/c")
	st.Add(a, layout.AddOptions{})
	st.Add(b, layout.AddOptions{})

	st.InsertAt(c, 1)
	assert.Equal(t, []*layout.Window{a, c, b}, st.Windows())

	st.InsertAt(a, 3)
	assert.Equal(t, []*layout.Window{c, b, a}, st.Windows())

	st.InsertAt(b, 99)
	assert.Equal(t, []*layout.Window{c, a, b}, st.Windows())
	assert.Same(t, a, st.ActiveWindow())
}

func TestStack_DropWindow(t *testing.T) {
	st := layout.NewStack()
	a, b := newWindow(t, "/a"), newWindow(t, "/b")
	st.Add(a, layout.AddOptions{})
	st.Add(b, layout.AddOptions{})
	other := layout.NewStack()
	dropped := newWindow(t, "/dropped")
	other.Add(dropped, layout.AddOptions{})

	st.DropWindow(dropped, b)

	assert.Equal(t, []*layout.Window{a, dropped, b}, st.Windows())
	assert.True(t, dropped.Active())
	assert.Nil(t, other.Parent())
	assert.Zero(t, other.WindowCount())
}

func TestStack_CloseClosesEveryWindow(t *testing.T) {
	d := layout.NewDashboard()
	st := layout.NewStack()
	require.NoError(t, d.SetComponent(st))
	var closed []string
	for _, p := range []string{"/a", "/b", "/c"} {
		w := newWindow(t, p)
		w.OnClose = func(w *layout.Window) { closed = append(closed, w.Path()) }
		st.Add(w, layout.AddOptions{})
	}

	st.Close()

	assert.Equal(t, []string{"/a", "/b", "/c"}, closed)
	assert.Zero(t, st.WindowCount())
	assert.Nil(t, st.Parent())
	assert.Nil(t, d.Component())
}

func TestStack_CloseDisabled(t *testing.T) {
	d := layout.NewDashboard()
	st := layout.NewStack()
	require.NoError(t, d.SetComponent(st))
	w := newWindow(t, "/a")
	st.Add(w, layout.AddOptions{})
	disabled := true

	d.SetCloseDisabled(&disabled)
	st.Close()

	assert.Equal(t, 1, st.WindowCount())
	assert.Same(t, st, d.Component())
	assert.True(t, w.CloseDisabled())

	enabled := false
	st.SetCloseDisabled(&enabled)
	assert.False(t, w.CloseDisabled())
	assert.True(t, d.CloseDisabled())
}

func TestStack_LayoutShowsOnlyActiveWindow(t *testing.T) {
	st := layout.NewStack()
	a, b := newWindow(t, "/a"), newWindow(t, "/b")
	st.Add(a, layout.AddOptions{})
	st.Add(b, layout.AddOptions{MakeActive: true})

	st.SetViewport(0, 0, 640, 480)

	assert.Equal(t, layout.Viewport{X: 0, Y: 28, Width: 640, Height: 452}, b.Viewport())
	assert.True(t, a.Viewport().Empty())
	assert.Equal(t, layout.Viewport{Width: 640, Height: 28}, st.TabBar())

	a.Activate()
	assert.True(t, b.Viewport().Empty())
	assert.Equal(t, 640, a.Viewport().Width)
}

func TestStack_OpenReplacesNamedWindow(t *testing.T) {
	d := layout.NewDashboard()
	sp := layout.NewHSplit()
	left, right := layout.NewStack(), layout.NewStack()
	require.NoError(t, d.SetComponent(sp))
	require.NoError(t, sp.SetFirst(left))
	require.NoError(t, sp.SetSecond(right))
	named, err := left.Open(layout.OpenRequest{Path: "/docs", Name: "help"})
	require.NoError(t, err)
	_, err = right.Open(layout.OpenRequest{Path: "/other"})
	require.NoError(t, err)

	got, err := right.Open(layout.OpenRequest{Path: "/docs/intro", Name: "help", Replace: true})
	require.NoError(t, err)

	assert.Same(t, named, got)
	assert.Equal(t, "/docs/intro", got.Path())
	assert.Len(t, d.Windows(), 2)
}

func TestStack_TransientWindowsAreNotPersisted(t *testing.T) {
	st := layout.NewStack()
	_, err := st.Open(layout.OpenRequest{Path: "/kept"})
	require.NoError(t, err)
	_, err = st.Open(layout.OpenRequest{Path: "/preview", Transient: true})
	require.NoError(t, err)

	cfg := st.Config()

	require.Len(t, cfg.Windows, 1)
	assert.Equal(t, "/kept", cfg.Windows[0].Path)
	require.NotNil(t, cfg.ActiveIndex)
	assert.Equal(t, 0, *cfg.ActiveIndex)
}

func TestStack_SplitRightCreatesFilledSibling(t *testing.T) {
	d := layout.NewDashboard()
	d.SetAddApp(addApp("/new"))
	st := layout.NewStack()
	require.NoError(t, d.SetComponent(st))
	st.Add(newWindow(t, "/existing"), layout.AddOptions{})

	sibling, err := st.SplitRight(nil)
	require.NoError(t, err)

	sp, ok := d.Component().(*layout.Split)
	require.True(t, ok)
	assert.Equal(t, layout.TypeHSplit, sp.Type())
	assert.Same(t, st, sp.Left())
	assert.Same(t, sibling, sp.Right())
	require.Equal(t, 1, sibling.WindowCount())
	assert.Equal(t, "/new", sibling.ActiveWindow().Path())
}

func TestStack_SplitBottomWithWindow(t *testing.T) {
	d := layout.NewDashboard()
	st := layout.NewStack()
	require.NoError(t, d.SetComponent(st))
	a, b := newWindow(t, "/a"), newWindow(t, "/b")
	st.Add(a, layout.AddOptions{})
	st.Add(b, layout.AddOptions{})

	sibling, err := st.SplitTop(b)
	require.NoError(t, err)

	sp, ok := d.Component().(*layout.Split)
	require.True(t, ok)
	assert.Equal(t, layout.TypeVSplit, sp.Type())
	assert.Same(t, sibling, sp.Top())
	assert.Same(t, st, sp.Bottom())
	assert.Equal(t, []*layout.Window{a}, st.Windows())
	assert.Equal(t, []*layout.Window{b}, sibling.Windows())
}

func TestStack_SplitByOnlyWindowKeepsTree(t *testing.T) {
	tests := []struct {
		name  string
		split func(*layout.Stack, layout.Component) (*layout.Stack, error)
	}{
		{"left", (*layout.Stack).SplitLeft},
		{"right", (*layout.Stack).SplitRight},
		{"top", (*layout.Stack).SplitTop},
		{"bottom", (*layout.Stack).SplitBottom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := layout.NewDashboard()
			st := layout.NewStack()
			require.NoError(t, d.SetComponent(st))
			w := newWindow(t, "/only")
			st.Add(w, layout.AddOptions{})

			got, err := tt.split(st, w)

			require.NoError(t, err)
			assert.Same(t, st, got)
			assert.Same(t, st, d.Component())
			assert.Same(t, st, w.Parent())
			assert.Equal(t, []*layout.Window{w}, d.Windows())
		})
	}
}

func TestStack_SplitWithoutParent(t *testing.T) {
	st := layout.NewStack()

	_, err := st.SplitLeft(nil)

	assert.ErrorIs(t, err, layout.ErrIllegalState)
}

func TestWindow_SettingsInheritFromStack(t *testing.T) {
	st := layout.NewStack()
	w := newWindow(t, "/a")
	st.Add(w, layout.AddOptions{})

	assert.Equal(t, 0, w.BorderWidth())
	assert.False(t, w.Resizable())
	assert.True(t, w.Draggable())

	border := 3
	w.SetSettings(layout.WindowSettings{BorderWidth: &border})
	assert.Equal(t, 3, w.BorderWidth())
}

func TestWindow_DragStateMerges(t *testing.T) {
	st := layout.NewStack()
	w := newWindow(t, "/a")
	st.Add(w, layout.AddOptions{})

	w.DragStart(layout.DragState{"x": 1, "y": 2})
	w.DragUpdate(layout.DragState{"y": 5})

	assert.Equal(t, layout.DragState{"x": 1, "y": 5}, w.DragState())
	assert.True(t, w.Dragging())
	assert.Same(t, w, st.Drag())

	w.DragEnd()
	assert.Nil(t, w.DragState())
	assert.Nil(t, st.Drag())
}

func TestStack_SplitUsesInheritedFactory(t *testing.T) {
	d := layout.NewDashboard()
	d.SetAddApp(addApp("/app"))
	d.SetComponentFactory(layout.Defaults{TabHeight: 1, SplitterSize: 1}.Factory())
	d.SetViewport(0, 0, 80, 24)

	w, err := d.Open(layout.OpenRequest{Path: "/first"})
	require.NoError(t, err)
	st, ok := w.Manager().(*layout.Stack)
	require.True(t, ok)
	assert.Equal(t, 1, st.TabHeight())

	sibling, err := st.SplitRight(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sibling.TabHeight())

	sp, ok := d.Component().(*layout.Split)
	require.True(t, ok)
	assert.Equal(t, 1, sp.SplitterSize())
}

func TestCreate_FallsBackWithoutFactory(t *testing.T) {
	st := layout.Create[*layout.Stack](nil, layout.TypeStack)
	require.NotNil(t, st)
	assert.Equal(t, layout.DefaultTabHeight, st.TabHeight())

	sp := layout.Create[*layout.Split](layout.NewDashboard(), layout.SplitType(layout.Vertical))
	require.NotNil(t, sp)
	assert.Equal(t, layout.TypeVSplit, sp.Type())
}
