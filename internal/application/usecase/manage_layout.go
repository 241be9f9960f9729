package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/bnema/tiledash/internal/logging"
)

// PresetKind names a family of generated layouts.
type PresetKind string

const (
	PresetTabs    PresetKind = "tabs"
	PresetColumns PresetKind = "columns"
	PresetRows    PresetKind = "rows"
	PresetGrid    PresetKind = "grid"
	// PresetCustom is only reported by Detect; it cannot be applied.
	PresetCustom PresetKind = "custom"
)

// Preset is a layout that can be generated from a flat list of windows.
// Count is the number of columns or rows and is ignored otherwise.
type Preset struct {
	Kind  PresetKind
	Count int
}

func (p Preset) String() string {
	if p.Kind == PresetColumns || p.Kind == PresetRows {
		return fmt.Sprintf("%s-%d", p.Kind, p.Count)
	}
	return string(p.Kind)
}

// ErrInvalidPreset is returned for preset names that cannot be applied.
var ErrInvalidPreset = errors.New("invalid layout preset")

// ParsePreset parses "tabs", "grid", "columns-N" and "rows-N".
func ParsePreset(s string) (Preset, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch PresetKind(s) {
	case PresetTabs, PresetGrid:
		return Preset{Kind: PresetKind(s)}, nil
	}
	kind, count, ok := strings.Cut(s, "-")
	if !ok || (PresetKind(kind) != PresetColumns && PresetKind(kind) != PresetRows) {
		return Preset{}, fmt.Errorf("%w: %q", ErrInvalidPreset, s)
	}
	n, err := strconv.Atoi(count)
	if err != nil || n < 1 {
		return Preset{}, fmt.Errorf("%w: %q needs a positive count", ErrInvalidPreset, s)
	}
	return Preset{Kind: PresetKind(kind), Count: n}, nil
}

// SplitDirection indicates where a new pane goes relative to a window.
type SplitDirection string

const (
	SplitLeft  SplitDirection = "left"
	SplitRight SplitDirection = "right"
	SplitUp    SplitDirection = "up"
	SplitDown  SplitDirection = "down"
)

// NavigateDirection indicates the direction for focus navigation.
type NavigateDirection string

const (
	NavLeft  NavigateDirection = "left"
	NavRight NavigateDirection = "right"
	NavUp    NavigateDirection = "up"
	NavDown  NavigateDirection = "down"
)

// ManageLayoutUseCase rearranges the windows of a dashboard.
type ManageLayoutUseCase struct{}

// NewManageLayoutUseCase creates a new layout management use case.
func NewManageLayoutUseCase() *ManageLayoutUseCase {
	return &ManageLayoutUseCase{}
}

// Apply rebuilds the dashboard as p, keeping every window and its app.
// The new containers are attached first so that grid placement sees the
// dashboard viewport.
func (uc *ManageLayoutUseCase) Apply(ctx context.Context, d *layout.Dashboard, p Preset) error {
	log := logging.FromContext(ctx)
	if d == nil {
		return fmt.Errorf("apply %s: %w", p, layout.ErrIllegalState)
	}

	windows := d.Windows()
	var managers []layout.WindowManager
	var root layout.Component

	switch p.Kind {
	case PresetTabs:
		st := layout.Create[*layout.Stack](d, layout.TypeStack)
		managers, root = []layout.WindowManager{st}, st
	case PresetGrid:
		g := layout.Create[*layout.Grid](d, layout.TypeGrid)
		managers, root = []layout.WindowManager{g}, g
	case PresetColumns, PresetRows:
		if p.Count < 1 {
			return fmt.Errorf("%w: %s", ErrInvalidPreset, p)
		}
		n := p.Count
		if len(windows) > 0 {
			n = min(n, len(windows))
		}
		o := layout.Horizontal
		if p.Kind == PresetRows {
			o = layout.Vertical
		}
		var err error
		managers, root, err = chain(d, n, o)
		if err != nil {
			return fmt.Errorf("apply %s: %w", p, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidPreset, p)
	}

	if err := d.SetComponent(root); err != nil {
		return fmt.Errorf("apply %s: %w", p, err)
	}
	for i, w := range windows {
		// Contiguous runs keep neighbouring windows together.
		managers[i*len(managers)/len(windows)].Add(w, layout.AddOptions{})
	}

	log.Debug().
		Str("preset", p.String()).
		Int("window_count", len(windows)).
		Int("manager_count", len(managers)).
		Msg("applied layout preset")
	return nil
}

// chain builds n stacks joined by nested splits along o, each stack
// getting an equal share.
func chain(d *layout.Dashboard, n int, o layout.Orientation) ([]layout.WindowManager, layout.Component, error) {
	stacks := make([]layout.WindowManager, n)
	for i := range stacks {
		stacks[i] = layout.Create[*layout.Stack](d, layout.TypeStack)
	}
	var node layout.Component = stacks[n-1]
	for i := n - 2; i >= 0; i-- {
		sp := layout.Create[*layout.Split](d, layout.SplitType(o))
		if err := sp.SetFirst(stacks[i]); err != nil {
			return nil, nil, err
		}
		if err := sp.SetSecond(node); err != nil {
			return nil, nil, err
		}
		sp.SetOffset(1 / float64(n-i))
		node = sp
	}
	return stacks, node, nil
}

// Detect reports which preset the dashboard currently matches.
func (uc *ManageLayoutUseCase) Detect(d *layout.Dashboard) Preset {
	if d == nil {
		return Preset{Kind: PresetCustom}
	}
	switch root := d.Component().(type) {
	case nil, *layout.Stack:
		return Preset{Kind: PresetTabs}
	case *layout.Grid:
		return Preset{Kind: PresetGrid}
	case *layout.Split:
		if !uniformSplit(root, root.Orientation()) {
			return Preset{Kind: PresetCustom}
		}
		if root.Orientation() == layout.Horizontal {
			return Preset{Kind: PresetColumns, Count: root.ColumnCount()}
		}
		return Preset{Kind: PresetRows, Count: root.RowCount()}
	default:
		return Preset{Kind: PresetCustom}
	}
}

// uniformSplit reports whether every split below c runs along o and every
// leaf is a stack.
func uniformSplit(c layout.Component, o layout.Orientation) bool {
	switch v := c.(type) {
	case *layout.Stack:
		return true
	case *layout.Split:
		return v.Orientation() == o &&
			v.First() != nil && v.Second() != nil &&
			uniformSplit(v.First(), o) && uniformSplit(v.Second(), o)
	default:
		return false
	}
}

// SplitWindow opens a new pane next to the stack holding w. With move set
// and other windows left behind, w itself goes to the new pane; otherwise
// the pane is filled through the inherited AddApp.
func (uc *ManageLayoutUseCase) SplitWindow(
	ctx context.Context,
	w *layout.Window,
	dir SplitDirection,
	move bool,
) (*layout.Stack, error) {
	log := logging.FromContext(ctx)
	if w == nil {
		return nil, fmt.Errorf("split: %w", layout.ErrIllegalState)
	}
	st, ok := w.Manager().(*layout.Stack)
	if !ok {
		return nil, fmt.Errorf("split: window is not in a stack: %w", layout.ErrIllegalState)
	}

	var c layout.Component
	if move && st.WindowCount() > 1 {
		c = w
	}

	var sibling *layout.Stack
	var err error
	switch dir {
	case SplitLeft:
		sibling, err = st.SplitLeft(c)
	case SplitRight:
		sibling, err = st.SplitRight(c)
	case SplitUp:
		sibling, err = st.SplitTop(c)
	case SplitDown:
		sibling, err = st.SplitBottom(c)
	default:
		return nil, fmt.Errorf("split: unknown direction %q", dir)
	}
	if err != nil {
		return sibling, fmt.Errorf("split %s: %w", dir, err)
	}

	log.Debug().
		Str("direction", string(dir)).
		Bool("moved", c != nil).
		Int("sibling_windows", sibling.WindowCount()).
		Msg("split window")
	return sibling, nil
}

// CycleWindow activates the window delta positions away from w in its
// manager, wrapping around, and returns it.
func (uc *ManageLayoutUseCase) CycleWindow(w *layout.Window, delta int) *layout.Window {
	if w == nil {
		return nil
	}
	m := w.Manager()
	if m == nil || m.WindowCount() == 0 {
		return w
	}
	n := m.WindowCount()
	i := ((m.IndexOf(w)+delta)%n + n) % n
	m.SetActiveIndex(i)
	return m.ActiveWindow()
}

// CloseWindow closes w and returns the window that should take focus: the
// active window of the same manager, or the first visible window of the
// dashboard.
func (uc *ManageLayoutUseCase) CloseWindow(ctx context.Context, d *layout.Dashboard, w *layout.Window) *layout.Window {
	if w == nil {
		return nil
	}
	m := w.Manager()
	w.Close()
	logging.FromContext(ctx).Debug().Str("window_id", w.ID()).Bool("closed", w.Parent() == nil).Msg("close window")

	if w.Parent() != nil {
		return w
	}
	if m != nil && m.Parent() != nil {
		if next := m.ActiveWindow(); next != nil {
			return next
		}
	}
	if d == nil {
		return nil
	}
	for _, cand := range d.Windows() {
		if !cand.Viewport().Empty() {
			return cand
		}
	}
	if ws := d.Windows(); len(ws) > 0 {
		return ws[0]
	}
	return nil
}

// FocusDirection finds the nearest visible window in the given direction
// using geometry:
//  1. Filter candidates whose center lies in the direction
//  2. Prefer candidates overlapping on the perpendicular axis
//  3. Score by primary distance * 1000 + perpendicular distance
func (uc *ManageLayoutUseCase) FocusDirection(
	ctx context.Context,
	d *layout.Dashboard,
	from *layout.Window,
	dir NavigateDirection,
) (*layout.Window, bool) {
	log := logging.FromContext(ctx)
	if d == nil || from == nil || from.Viewport().Empty() {
		return nil, false
	}

	candidates := scoreNavigationCandidates(from, d.Windows(), dir)
	if len(candidates) == 0 {
		log.Debug().Str("direction", string(dir)).Msg("no window in direction")
		return nil, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score < candidates[j].score
	})

	target := candidates[0].window
	target.Activate()
	log.Debug().
		Str("direction", string(dir)).
		Str("target", target.ID()).
		Int("score", candidates[0].score).
		Msg("focus moved")
	return target, true
}

type navCandidate struct {
	window *layout.Window
	score  int
}

func scoreNavigationCandidates(from *layout.Window, windows []*layout.Window, dir NavigateDirection) []navCandidate {
	const noOverlapPenalty = 10_000_000

	active := from.Viewport()
	acx, acy := center(active)
	var out []navCandidate
	for _, w := range windows {
		vp := w.Viewport()
		if w == from || vp.Empty() {
			continue
		}
		cx, cy := center(vp)
		dx, dy := cx-acx, cy-acy

		var inDirection, overlap bool
		var primary, perp int
		switch dir {
		case NavLeft:
			inDirection, primary, perp, overlap = dx < 0, abs(dx), abs(dy), overlapsY(active, vp)
		case NavRight:
			inDirection, primary, perp, overlap = dx > 0, abs(dx), abs(dy), overlapsY(active, vp)
		case NavUp:
			inDirection, primary, perp, overlap = dy < 0, abs(dy), abs(dx), overlapsX(active, vp)
		case NavDown:
			inDirection, primary, perp, overlap = dy > 0, abs(dy), abs(dx), overlapsX(active, vp)
		}
		if !inDirection {
			continue
		}
		score := primary*1000 + perp
		if !overlap {
			score += noOverlapPenalty
		}
		out = append(out, navCandidate{window: w, score: score})
	}
	return out
}

func center(v layout.Viewport) (int, int) {
	return v.X + v.Width/2, v.Y + v.Height/2
}

func overlapsX(a, b layout.Viewport) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width
}

func overlapsY(a, b layout.Viewport) bool {
	return a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
