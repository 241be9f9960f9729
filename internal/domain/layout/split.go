package layout

import "math"

// Orientation selects the axis a Split divides.
type Orientation int

const (
	// Horizontal places the panes side by side (left | right).
	Horizontal Orientation = iota
	// Vertical stacks the panes (top over bottom).
	Vertical
)

const (
	DefaultSplitOffset  = 0.5
	DefaultSplitterSize = 4
	DefaultMinItemSize  = 50
)

// Split divides its viewport between two panes at a movable divider.
//
// The divider position is either a fractional offset or a pinned pixel size
// for the leading pane. Setting one clears the other; once an offset has
// been set the split stays proportional.
type Split struct {
	node

	orientation Orientation
	first       Component
	second      Component

	offset    float64
	offsetSet bool
	pinned    int

	minItemSize  int
	splitterSize int
	active       bool
}

// NewSplit creates an empty split along o.
func NewSplit(o Orientation) *Split {
	s := &Split{
		orientation:  o,
		offset:       DefaultSplitOffset,
		minItemSize:  DefaultMinItemSize,
		splitterSize: DefaultSplitterSize,
	}
	s.init(s)
	return s
}

// NewHSplit creates a left/right split.
func NewHSplit() *Split { return NewSplit(Horizontal) }

// NewVSplit creates a top/bottom split.
func NewVSplit() *Split { return NewSplit(Vertical) }

func (s *Split) Type() Type { return SplitType(s.orientation) }

func (s *Split) Orientation() Orientation { return s.orientation }
func (s *Split) First() Component         { return s.first }
func (s *Split) Second() Component        { return s.second }
func (s *Split) Left() Component          { return s.first }
func (s *Split) Right() Component         { return s.second }
func (s *Split) Top() Component           { return s.first }
func (s *Split) Bottom() Component        { return s.second }
func (s *Split) MinItemSize() int         { return s.minItemSize }
func (s *Split) SplitterSize() int        { return s.splitterSize }

// SetFirst places c in the leading pane, detaching it from its previous
// owner and dropping the current occupant.
func (s *Split) SetFirst(c Component) error {
	return s.setPane(&s.first, c)
}

// SetSecond places c in the trailing pane.
func (s *Split) SetSecond(c Component) error {
	return s.setPane(&s.second, c)
}

func (s *Split) setPane(slot *Component, c Component) error {
	if *slot == c {
		return nil
	}
	if c != nil {
		if err := attach(s, c); err != nil {
			return err
		}
		if s.first == c {
			s.first = nil
		}
		if s.second == c {
			s.second = nil
		}
	}
	if old := *slot; old != nil && old.Parent() == Component(s) {
		detach(old)
	}
	*slot = c
	s.changed()
	s.layout()
	return nil
}

// Offset returns the divider position as a fraction of the extent.
func (s *Split) Offset() float64 { return s.offset }

// SetOffset moves the divider. Negative values are ignored, values above
// one are clamped. Any pinned pixel size is dropped.
func (s *Split) SetOffset(o float64) {
	if o < 0 || math.IsNaN(o) {
		return
	}
	o = min(o, 1)
	if s.offsetSet && s.offset == o && s.pinned == 0 {
		return
	}
	s.offset = o
	s.offsetSet = true
	s.pinned = 0
	s.changed()
	s.layout()
}

// SetMinItemSize sets the minimum pane extent.
func (s *Split) SetMinItemSize(v int) {
	if v < 0 || v == s.minItemSize {
		return
	}
	s.minItemSize = v
	s.changed()
	s.layout()
}

// SetSplitterSize sets the divider thickness.
func (s *Split) SetSplitterSize(v int) {
	if v < 0 || v == s.splitterSize {
		return
	}
	s.splitterSize = v
	s.layout()
}

func (s *Split) extent() int {
	if s.orientation == Vertical {
		return s.viewport.Height
	}
	return s.viewport.Width
}

func (s *Split) available() int {
	return max(s.extent()-s.splitterSize, 0)
}

// LeadingSize returns the extent of the first pane: leftWidth for an
// HSplit, topHeight for a VSplit. The offset applies to the whole extent
// and the trailing pane absorbs the splitter.
func (s *Split) LeadingSize() int {
	avail := s.available()
	upper := max(avail-s.minItemSize, s.minItemSize)
	var size int
	if s.pinned > 0 && !s.offsetSet {
		size = min(max(s.pinned, s.minItemSize), upper)
	} else {
		size = int(math.Floor(s.offset * float64(s.extent())))
		size = max(size, s.minItemSize)
		if avail >= 2*s.minItemSize {
			size = min(size, upper)
		}
	}
	return min(size, avail)
}

// TrailingSize returns the extent of the second pane.
func (s *Split) TrailingSize() int {
	return s.available() - s.LeadingSize()
}

// LeftWidth is LeadingSize for horizontal splits.
func (s *Split) LeftWidth() int { return s.LeadingSize() }

// RightWidth is TrailingSize for horizontal splits.
func (s *Split) RightWidth() int { return s.TrailingSize() }

// TopHeight is LeadingSize for vertical splits.
func (s *Split) TopHeight() int { return s.LeadingSize() }

// BottomHeight is TrailingSize for vertical splits.
func (s *Split) BottomHeight() int { return s.TrailingSize() }

// SetLeadingSize pins the first pane to px and drops the offset.
func (s *Split) SetLeadingSize(px int) {
	if px <= 0 {
		return
	}
	s.pinned = px
	s.offsetSet = false
	s.changed()
	s.layout()
}

// SetTrailingSize pins the second pane to px. Without a known extent the
// request is ignored.
func (s *Split) SetTrailingSize(px int) {
	avail := s.available()
	if px <= 0 || avail == 0 {
		return
	}
	s.SetLeadingSize(max(avail-px, 1))
}

func (s *Split) SetLeftWidth(px int)    { s.SetLeadingSize(px) }
func (s *Split) SetRightWidth(px int)   { s.SetTrailingSize(px) }
func (s *Split) SetTopHeight(px int)    { s.SetLeadingSize(px) }
func (s *Split) SetBottomHeight(px int) { s.SetTrailingSize(px) }

// MoveSplitter places the divider at an absolute coordinate along the split
// axis, as a drag of the splitter does.
func (s *Split) MoveSplitter(pos int) {
	total := s.extent()
	if s.available() <= 0 {
		return
	}
	origin := s.viewport.X
	if s.orientation == Vertical {
		origin = s.viewport.Y
	}
	s.SetOffset(float64(max(pos-origin, 0)) / float64(total))
}

// SplitterRect returns the divider rectangle.
func (s *Split) SplitterRect() Viewport {
	vp := s.viewport
	lead := s.LeadingSize()
	if s.orientation == Vertical {
		return Viewport{X: vp.X, Y: vp.Y + lead, Width: vp.Width, Height: s.splitterSize}
	}
	return Viewport{X: vp.X + lead, Y: vp.Y, Width: s.splitterSize, Height: vp.Height}
}

// SplitActive reports whether the divider is being dragged.
func (s *Split) SplitActive() bool { return s.active }

// SetSplitActive starts or ends a divider drag. While active the split owns
// the dashboard block source.
func (s *Split) SetSplitActive(active bool) {
	s.active = active
	d := DashboardOf(s)
	if d == nil {
		return
	}
	if active {
		d.SetBlockSource(s)
	} else if d.BlockSource() == Component(s) {
		d.SetBlockSource(nil)
	}
}

// ColumnCount returns the number of side-by-side columns, flattening
// nested horizontal splits.
func (s *Split) ColumnCount() int {
	if s.orientation != Horizontal {
		return 1
	}
	return s.countAlong(s.first) + s.countAlong(s.second)
}

// RowCount returns the number of stacked rows, flattening nested vertical
// splits.
func (s *Split) RowCount() int {
	if s.orientation != Vertical {
		return 1
	}
	return s.countAlong(s.first) + s.countAlong(s.second)
}

func (s *Split) countAlong(c Component) int {
	if c == nil {
		return 0
	}
	child, ok := c.(*Split)
	if !ok || child.orientation != s.orientation {
		return 1
	}
	if s.orientation == Horizontal {
		return child.ColumnCount()
	}
	return child.RowCount()
}

// layout is layoutSplit: it assigns both pane rectangles.
func (s *Split) layout() {
	vp := s.viewport
	lead, trail := s.LeadingSize(), s.TrailingSize()
	if s.orientation == Vertical {
		if s.first != nil {
			s.first.SetViewport(vp.X, vp.Y, vp.Width, lead)
		}
		if s.second != nil {
			s.second.SetViewport(vp.X, vp.Y+lead+s.splitterSize, vp.Width, trail)
		}
		return
	}
	if s.first != nil {
		s.first.SetViewport(vp.X, vp.Y, lead, vp.Height)
	}
	if s.second != nil {
		s.second.SetViewport(vp.X+lead+s.splitterSize, vp.Y, trail, vp.Height)
	}
}

func (s *Split) eachChild(fn func(Component) bool) bool {
	for _, c := range []Component{s.first, s.second} {
		if c != nil && !fn(c) {
			return false
		}
	}
	return true
}

// Remove drops a pane and collapses the split: the remaining pane takes
// the split's place in the parent.
func (s *Split) Remove(c Component) {
	var slot *Component
	switch c {
	case s.first:
		s.first, slot = nil, &s.second
	case s.second:
		s.second, slot = nil, &s.first
	default:
		return
	}
	detach(c)
	s.changed()
	other := *slot
	if other == nil {
		s.RemoveFromParent()
		return
	}
	parent := s.parent
	if parent == nil {
		s.layout()
		return
	}
	// The survivor leaves the split before the parent adopts it, otherwise
	// attach would re-enter Remove on an empty split.
	*slot = nil
	detach(other)
	if err := parent.Replace(other, s); err != nil {
		*slot = other
		other.base().parent = s
		s.layout()
	}
}

// Replace swaps oldItem for newItem in whichever pane holds it.
func (s *Split) Replace(newItem, oldItem Component) error {
	switch oldItem {
	case nil:
		return nil
	case s.first:
		return s.SetFirst(newItem)
	case s.second:
		return s.SetSecond(newItem)
	}
	return nil
}

// Close closes both panes, then detaches the split.
func (s *Split) Close() {
	if s.CloseDisabled() {
		return
	}
	first, second := s.first, s.second
	if first != nil {
		first.Close()
	}
	if second != nil {
		second.Close()
	}
	s.RemoveFromParent()
}

// Config returns the persisted snapshot.
func (s *Split) Config() Config {
	cfg := Config{
		Type:          s.Type(),
		CloseDisabled: s.ownCloseDisabled(),
	}
	if s.offsetSet || s.pinned == 0 {
		cfg.Offset = floatPtr(s.offset)
	}
	var pinned *int
	if s.pinned > 0 && !s.offsetSet {
		pinned = intPtr(s.pinned)
	}
	first, second := paneConfig(s.first), paneConfig(s.second)
	if s.orientation == Vertical {
		cfg.Top, cfg.Bottom = first, second
		cfg.TopHeight = pinned
		cfg.MinItemHeight = intPtr(s.minItemSize)
	} else {
		cfg.Left, cfg.Right = first, second
		cfg.LeftWidth = pinned
		cfg.MinItemWidth = intPtr(s.minItemSize)
	}
	return cfg
}

func paneConfig(c Component) *Pane {
	if c == nil {
		return nil
	}
	cfg := c.Config()
	return &Pane{Component: &cfg}
}

// SetConfig restores the snapshot. Each pane is attached before its own
// SetConfig runs so it can resolve the factory and router.
func (s *Split) SetConfig(cfg Config) error {
	switch cfg.Type {
	case TypeVSplit:
		s.orientation = Vertical
	case TypeHSplit:
		s.orientation = Horizontal
	}
	s.closeDisabled = clonePtr(cfg.CloseDisabled)

	first, second, pinned, minSize := cfg.Left, cfg.Right, cfg.LeftWidth, cfg.MinItemWidth
	if s.orientation == Vertical {
		first, second, pinned, minSize = cfg.Top, cfg.Bottom, cfg.TopHeight, cfg.MinItemHeight
	}
	if minSize != nil && *minSize >= 0 {
		s.minItemSize = *minSize
	}
	s.offset, s.offsetSet, s.pinned = DefaultSplitOffset, false, 0
	if cfg.Offset != nil && *cfg.Offset >= 0 {
		s.offset = min(*cfg.Offset, 1)
		s.offsetSet = pinned == nil
	}
	if pinned != nil && *pinned > 0 {
		s.pinned = *pinned
	}

	for _, side := range []struct {
		slot *Component
		pane *Pane
	}{{&s.first, first}, {&s.second, second}} {
		if old := *side.slot; old != nil {
			detach(old)
			*side.slot = nil
		}
		if side.pane == nil || side.pane.Component == nil {
			continue
		}
		child, err := s.build(*side.pane.Component)
		if err != nil {
			return err
		}
		*side.slot = child
		child.base().parent = s
		if err := child.SetConfig(*side.pane.Component); err != nil {
			return err
		}
	}
	s.changed()
	s.layout()
	return nil
}

// build creates an empty node for cfg through the inherited factory.
func (n *node) build(cfg Config) (Component, error) {
	factory := n.ComponentFactory()
	if factory == nil {
		return nil, errIllegalState("component factory not configured")
	}
	c := factory(cfg.Type)
	if c == nil {
		return nil, errIllegalState("component factory returned nil for " + string(cfg.Type))
	}
	return c, nil
}
