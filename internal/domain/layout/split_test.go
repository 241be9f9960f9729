package layout_test

import (
	"testing"

	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_OffsetClampedToMinItemSize(t *testing.T) {
	sp := layout.NewHSplit()
	sp.SetViewport(0, 0, 400, 300)
	sp.SetMinItemSize(50)

	sp.SetOffset(0.1)

	assert.Equal(t, 50, sp.LeftWidth())
	assert.Equal(t, 400-layout.DefaultSplitterSize-50, sp.RightWidth())
}

func TestSplit_SizesFillExtent(t *testing.T) {
	offsets := []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1}
	extents := []int{104, 200, 401, 1000}

	for _, o := range []layout.Orientation{layout.Horizontal, layout.Vertical} {
		for _, extent := range extents {
			for _, offset := range offsets {
				sp := layout.NewSplit(o)
				sp.SetViewport(0, 0, extent, extent)
				sp.SetOffset(offset)

				lead, trail := sp.LeadingSize(), sp.TrailingSize()
				assert.Equal(t, extent, lead+sp.SplitterSize()+trail, "extent=%d offset=%v", extent, offset)
				assert.GreaterOrEqual(t, lead, sp.MinItemSize(), "extent=%d offset=%v", extent, offset)
				assert.GreaterOrEqual(t, trail, sp.MinItemSize(), "extent=%d offset=%v", extent, offset)
			}
		}
	}
}

func TestSplit_PinnedSizeClearsOffset(t *testing.T) {
	sp := layout.NewHSplit()
	sp.SetViewport(0, 0, 400, 300)

	sp.SetLeftWidth(120)
	assert.Equal(t, 120, sp.LeftWidth())

	cfg := sp.Config()
	require.NotNil(t, cfg.LeftWidth)
	assert.Equal(t, 120, *cfg.LeftWidth)
	assert.Nil(t, cfg.Offset)

	sp.SetOffset(0.5)
	cfg = sp.Config()
	assert.Nil(t, cfg.LeftWidth)
	require.NotNil(t, cfg.Offset)
	assert.InDelta(t, 0.5, *cfg.Offset, 1e-9)
	assert.Equal(t, 200, sp.LeftWidth())
	assert.Equal(t, 400-layout.DefaultSplitterSize-200, sp.RightWidth())
}

func TestSplit_SetRightWidthPinsLeadingPane(t *testing.T) {
	sp := layout.NewHSplit()
	sp.SetViewport(0, 0, 404, 300)

	sp.SetRightWidth(100)

	assert.Equal(t, 100, sp.RightWidth())
	assert.Equal(t, 300, sp.LeftWidth())
}

func TestSplit_OffsetBounds(t *testing.T) {
	sp := layout.NewVSplit()
	sp.SetOffset(0.3)

	sp.SetOffset(-1)
	assert.InDelta(t, 0.3, sp.Offset(), 1e-9)

	sp.SetOffset(3)
	assert.InDelta(t, 1.0, sp.Offset(), 1e-9)
}

func TestSplit_LayoutAssignsPaneViewports(t *testing.T) {
	d := layout.NewDashboard()
	sp := layout.NewHSplit()
	left, right := layout.NewStack(), layout.NewStack()
	require.NoError(t, d.SetComponent(sp))
	require.NoError(t, sp.SetFirst(left))
	require.NoError(t, sp.SetSecond(right))
	w := newWindow(t, "/left")
	left.Add(w, layout.AddOptions{})

	d.SetViewport(0, 0, 800, 600)

	assert.Equal(t, layout.Viewport{X: 0, Y: 0, Width: 400, Height: 600}, left.Viewport())
	assert.Equal(t, layout.Viewport{X: 404, Y: 0, Width: 396, Height: 600}, right.Viewport())
	assert.Equal(t, layout.Viewport{X: 0, Y: 0 + layout.DefaultTabHeight, Width: 400, Height: 600 - layout.DefaultTabHeight}, w.Viewport())
	assert.Equal(t, layout.Viewport{X: 400, Y: 0, Width: 4, Height: 600}, sp.SplitterRect())
}

func TestSplit_MoveSplitter(t *testing.T) {
	sp := layout.NewHSplit()
	sp.SetViewport(100, 0, 500, 300)

	sp.MoveSplitter(100 + 125)

	assert.InDelta(t, 0.25, sp.Offset(), 1e-9)
	assert.Equal(t, 125, sp.LeftWidth())
}

func TestSplit_RemoveCollapsesIntoParent(t *testing.T) {
	d := layout.NewDashboard()
	sp := layout.NewHSplit()
	a, b := layout.NewStack(), layout.NewStack()
	require.NoError(t, d.SetComponent(sp))
	require.NoError(t, sp.SetFirst(a))
	require.NoError(t, sp.SetSecond(b))

	sp.Remove(a)

	assert.Same(t, b, d.Component())
	assert.Same(t, d, b.Parent())
	assert.Nil(t, sp.Parent())
	assert.Nil(t, a.Parent())
}

func TestSplit_LastWindowClosedCollapsesSplit(t *testing.T) {
	d := layout.NewDashboard()
	sp := layout.NewVSplit()
	top, bottom := layout.NewStack(), layout.NewStack()
	require.NoError(t, d.SetComponent(sp))
	require.NoError(t, sp.SetFirst(top))
	require.NoError(t, sp.SetSecond(bottom))
	w := newWindow(t, "/top")
	top.Add(w, layout.AddOptions{})
	bottom.Add(newWindow(t, "/bottom"), layout.AddOptions{})

	w.Close()

	assert.Same(t, bottom, d.Component())
	assert.Len(t, d.Windows(), 1)
}

func TestSplit_NestedCollapseKeepsSiblings(t *testing.T) {
	d := layout.NewDashboard()
	outer, inner := layout.NewHSplit(), layout.NewHSplit()
	a, b, c := layout.NewStack(), layout.NewStack(), layout.NewStack()
	require.NoError(t, d.SetComponent(outer))
	require.NoError(t, outer.SetFirst(a))
	require.NoError(t, outer.SetSecond(inner))
	require.NoError(t, inner.SetFirst(b))
	require.NoError(t, inner.SetSecond(c))
	a.Add(newWindow(t, "/a"), layout.AddOptions{})
	wb := newWindow(t, "/b")
	b.Add(wb, layout.AddOptions{})
	c.Add(newWindow(t, "/c"), layout.AddOptions{})

	wb.Close()

	assert.Same(t, outer, d.Component())
	assert.Same(t, a, outer.First())
	assert.Same(t, c, outer.Second())
	assert.Same(t, outer, c.Parent())
	assert.Nil(t, inner.Parent())
	assert.Nil(t, inner.First())
	assert.Nil(t, inner.Second())
	assert.Len(t, d.Windows(), 2)
}

func TestSplit_RemoveLeadingPaneOfNestedSplit(t *testing.T) {
	d := layout.NewDashboard()
	outer, inner := layout.NewVSplit(), layout.NewHSplit()
	top, left, right := layout.NewStack(), layout.NewStack(), layout.NewStack()
	require.NoError(t, d.SetComponent(outer))
	require.NoError(t, outer.SetFirst(inner))
	require.NoError(t, outer.SetSecond(top))
	require.NoError(t, inner.SetFirst(left))
	require.NoError(t, inner.SetSecond(right))

	inner.Remove(left)

	assert.Same(t, outer, d.Component())
	assert.Same(t, right, outer.First())
	assert.Same(t, top, outer.Second())
	assert.Same(t, outer, right.Parent())
}

func TestSplit_PaneOwnershipIsExclusive(t *testing.T) {
	sp := layout.NewHSplit()
	st := layout.NewStack()
	require.NoError(t, sp.SetFirst(st))

	require.NoError(t, sp.SetSecond(st))

	assert.Nil(t, sp.First())
	assert.Same(t, st, sp.Second())
	assert.Same(t, sp, st.Parent())
}

func TestSplit_RejectsCycles(t *testing.T) {
	outer := layout.NewHSplit()
	inner := layout.NewVSplit()
	require.NoError(t, outer.SetFirst(inner))

	assert.ErrorIs(t, inner.SetFirst(outer), layout.ErrCycle)
	assert.ErrorIs(t, outer.SetSecond(outer), layout.ErrCycle)
	assert.Nil(t, outer.Parent())
}

func TestSplit_ColumnAndRowCount(t *testing.T) {
	root := layout.NewHSplit()
	nested := layout.NewHSplit()
	rows := layout.NewVSplit()
	require.NoError(t, root.SetFirst(layout.NewStack()))
	require.NoError(t, root.SetSecond(nested))
	require.NoError(t, nested.SetFirst(layout.NewStack()))
	require.NoError(t, nested.SetSecond(rows))
	require.NoError(t, rows.SetFirst(layout.NewStack()))
	require.NoError(t, rows.SetSecond(layout.NewStack()))

	assert.Equal(t, 3, root.ColumnCount())
	assert.Equal(t, 1, root.RowCount())
	assert.Equal(t, 2, rows.RowCount())
}

func TestSplit_SplitActiveClaimsBlockSource(t *testing.T) {
	d := layout.NewDashboard()
	sp := layout.NewHSplit()
	require.NoError(t, d.SetComponent(sp))

	sp.SetSplitActive(true)
	assert.Same(t, sp, d.BlockSource())
	assert.True(t, d.Blocked(layout.NewStack()))

	sp.SetSplitActive(false)
	assert.Nil(t, d.BlockSource())
}

func newWindow(t *testing.T, path string) *layout.Window {
	t.Helper()
	w := layout.NewWindow()
	require.NoError(t, w.Load(layout.OpenRequest{Path: path}))
	return w
}
