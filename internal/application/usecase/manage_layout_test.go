package usecase_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tiledash/internal/application/usecase"
	"github.com/bnema/tiledash/internal/domain/layout"
)

func dashboardWithWindows(t *testing.T, n int) *layout.Dashboard {
	t.Helper()
	d := layout.NewDashboard()
	d.SetViewport(0, 0, 1200, 800)
	for i := 0; i < n; i++ {
		_, err := d.Open(layout.OpenRequest{Path: fmt.Sprintf("/w%d", i)})
		require.NoError(t, err)
	}
	return d
}

func paths(ws []*layout.Window) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Path()
	}
	return out
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    usecase.Preset
		wantErr bool
	}{
		{in: "tabs", want: usecase.Preset{Kind: usecase.PresetTabs}},
		{in: " Grid ", want: usecase.Preset{Kind: usecase.PresetGrid}},
		{in: "columns-3", want: usecase.Preset{Kind: usecase.PresetColumns, Count: 3}},
		{in: "rows-2", want: usecase.Preset{Kind: usecase.PresetRows, Count: 2}},
		{in: "rows-0", wantErr: true},
		{in: "columns", wantErr: true},
		{in: "custom", wantErr: true},
		{in: "diagonal-2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := usecase.ParsePreset(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, usecase.ErrInvalidPreset)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestManageLayoutUseCase_ApplyColumnsKeepsWindowOrder(t *testing.T) {
	d := dashboardWithWindows(t, 5)
	uc := usecase.NewManageLayoutUseCase()

	require.NoError(t, uc.Apply(testContext(), d, usecase.Preset{Kind: usecase.PresetColumns, Count: 3}))

	assert.Equal(t, []string{"/w0", "/w1", "/w2", "/w3", "/w4"}, paths(d.Windows()))
	managers := d.Managers()
	require.Len(t, managers, 3)
	assert.Equal(t, []int{2, 2, 1}, []int{managers[0].WindowCount(), managers[1].WindowCount(), managers[2].WindowCount()})
	assert.Equal(t, "columns-3", uc.Detect(d).String())

	first := managers[0].ActiveWindow().Viewport()
	last := managers[2].ActiveWindow().Viewport()
	assert.InDelta(t, first.Width, last.Width, 10)
}

func TestManageLayoutUseCase_ApplyCapsCountAtWindowCount(t *testing.T) {
	d := dashboardWithWindows(t, 2)
	uc := usecase.NewManageLayoutUseCase()

	require.NoError(t, uc.Apply(testContext(), d, usecase.Preset{Kind: usecase.PresetRows, Count: 4}))

	assert.Equal(t, usecase.Preset{Kind: usecase.PresetRows, Count: 2}, uc.Detect(d))
}

func TestManageLayoutUseCase_ApplyRoundTrip(t *testing.T) {
	d := dashboardWithWindows(t, 4)
	uc := usecase.NewManageLayoutUseCase()
	ctx := testContext()

	require.NoError(t, uc.Apply(ctx, d, usecase.Preset{Kind: usecase.PresetGrid}))
	assert.Equal(t, usecase.PresetGrid, uc.Detect(d).Kind)
	g, ok := d.Component().(*layout.Grid)
	require.True(t, ok)
	wins := g.Windows()
	for i := range wins {
		for j := i + 1; j < len(wins); j++ {
			assert.False(t, layout.IsCollision(g.Bounds(wins[i]), g.Bounds(wins[j])))
		}
	}

	require.NoError(t, uc.Apply(ctx, d, usecase.Preset{Kind: usecase.PresetTabs}))
	assert.Equal(t, usecase.PresetTabs, uc.Detect(d).Kind)
	assert.Len(t, d.Windows(), 4)
}

func TestManageLayoutUseCase_ApplyRejectsCustom(t *testing.T) {
	d := dashboardWithWindows(t, 1)

	err := usecase.NewManageLayoutUseCase().Apply(testContext(), d, usecase.Preset{Kind: usecase.PresetCustom})

	assert.ErrorIs(t, err, usecase.ErrInvalidPreset)
}

func TestManageLayoutUseCase_DetectCustom(t *testing.T) {
	d := layout.NewDashboard()
	outer, inner := layout.NewHSplit(), layout.NewVSplit()
	require.NoError(t, d.SetComponent(outer))
	require.NoError(t, outer.SetFirst(layout.NewStack()))
	require.NoError(t, outer.SetSecond(inner))
	require.NoError(t, inner.SetFirst(layout.NewStack()))
	require.NoError(t, inner.SetSecond(layout.NewStack()))

	assert.Equal(t, usecase.PresetCustom, usecase.NewManageLayoutUseCase().Detect(d).Kind)
}

func TestManageLayoutUseCase_SplitWindowMovesWindow(t *testing.T) {
	d := dashboardWithWindows(t, 2)
	uc := usecase.NewManageLayoutUseCase()
	moved := d.Windows()[1]

	sibling, err := uc.SplitWindow(testContext(), moved, usecase.SplitDown, true)
	require.NoError(t, err)

	sp, ok := d.Component().(*layout.Split)
	require.True(t, ok)
	assert.Equal(t, layout.Vertical, sp.Orientation())
	assert.Same(t, sibling, sp.Bottom())
	assert.Equal(t, []*layout.Window{moved}, sibling.Windows())
}

func TestManageLayoutUseCase_SplitLastWindowOpensNewApp(t *testing.T) {
	d := dashboardWithWindows(t, 1)
	d.SetAddApp(func() (layout.OpenRequest, bool) { return layout.OpenRequest{Path: "/picked"}, true })
	uc := usecase.NewManageLayoutUseCase()

	sibling, err := uc.SplitWindow(testContext(), d.Windows()[0], usecase.SplitLeft, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"/picked", "/w0"}, paths(d.Windows()))
	assert.Equal(t, "/picked", sibling.ActiveWindow().Path())
}

func TestManageLayoutUseCase_CycleWindowWraps(t *testing.T) {
	d := dashboardWithWindows(t, 3)
	uc := usecase.NewManageLayoutUseCase()
	ws := d.Windows()

	assert.Same(t, ws[0], uc.CycleWindow(ws[2], 1))
	assert.True(t, ws[0].Active())
	assert.Same(t, ws[2], uc.CycleWindow(ws[0], -1))
}

func TestManageLayoutUseCase_FocusDirection(t *testing.T) {
	d := dashboardWithWindows(t, 2)
	uc := usecase.NewManageLayoutUseCase()
	ctx := testContext()
	require.NoError(t, uc.Apply(ctx, d, usecase.Preset{Kind: usecase.PresetColumns, Count: 2}))
	left, right := d.Windows()[0], d.Windows()[1]

	got, ok := uc.FocusDirection(ctx, d, left, usecase.NavRight)
	require.True(t, ok)
	assert.Same(t, right, got)

	_, ok = uc.FocusDirection(ctx, d, left, usecase.NavLeft)
	assert.False(t, ok)
	_, ok = uc.FocusDirection(ctx, d, left, usecase.NavDown)
	assert.False(t, ok)
}

func TestManageLayoutUseCase_CloseWindowPicksNextFocus(t *testing.T) {
	d := dashboardWithWindows(t, 2)
	uc := usecase.NewManageLayoutUseCase()
	ws := d.Windows()

	next := uc.CloseWindow(testContext(), d, ws[1])

	assert.Same(t, ws[0], next)
	assert.Len(t, d.Windows(), 1)

	assert.Nil(t, uc.CloseWindow(testContext(), d, ws[0]))
	assert.Empty(t, d.Windows())
}
