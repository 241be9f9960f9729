package layout

import "fmt"

const (
	DefaultCellSize       = 50
	DefaultCellMargin     = 10
	DefaultWindowColSpan  = 6
	DefaultWindowRowSpan  = 4
	defaultGridHeaderSize = 24
)

// GridBounds is the cell rectangle of a window: half-open intervals
// [ColIndex, ColIndex+ColSpan) x [RowIndex, RowIndex+RowSpan).
type GridBounds struct {
	ColIndex int `json:"colIndex" yaml:"colIndex" toml:"colIndex"`
	RowIndex int `json:"rowIndex" yaml:"rowIndex" toml:"rowIndex"`
	ColSpan  int `json:"colSpan" yaml:"colSpan" toml:"colSpan"`
	RowSpan  int `json:"rowSpan" yaml:"rowSpan" toml:"rowSpan"`
}

func (b GridBounds) normalized() GridBounds {
	b.ColIndex = max(b.ColIndex, 0)
	b.RowIndex = max(b.RowIndex, 0)
	b.ColSpan = max(b.ColSpan, 1)
	b.RowSpan = max(b.RowSpan, 1)
	return b
}

func (b GridBounds) String() string {
	return fmt.Sprintf("{col:%d row:%d span:%dx%d}", b.ColIndex, b.RowIndex, b.ColSpan, b.RowSpan)
}

// IsCollision reports whether two cell rectangles overlap.
func IsCollision(a, b GridBounds) bool {
	return !(a.ColIndex+a.ColSpan <= b.ColIndex ||
		b.ColIndex+b.ColSpan <= a.ColIndex ||
		a.RowIndex+a.RowSpan <= b.RowIndex ||
		b.RowIndex+b.RowSpan <= a.RowIndex)
}

// ResizeHandle identifies the edge or corner being dragged.
type ResizeHandle int

const (
	ResizeNone ResizeHandle = iota
	ResizeTop
	ResizeRight
	ResizeBottom
	ResizeLeft
	ResizeTopLeft
	ResizeTopRight
	ResizeBottomLeft
	ResizeBottomRight
)

var resizeHandleNames = map[ResizeHandle]string{
	ResizeNone:        "none",
	ResizeTop:         "top",
	ResizeRight:       "right",
	ResizeBottom:      "bottom",
	ResizeLeft:        "left",
	ResizeTopLeft:     "top-left",
	ResizeTopRight:    "top-right",
	ResizeBottomLeft:  "bottom-left",
	ResizeBottomRight: "bottom-right",
}

func (h ResizeHandle) String() string {
	if s, ok := resizeHandleNames[h]; ok {
		return s
	}
	return fmt.Sprintf("ResizeHandle(%d)", int(h))
}

func (h ResizeHandle) movesLeft() bool {
	return h == ResizeLeft || h == ResizeTopLeft || h == ResizeBottomLeft
}

func (h ResizeHandle) movesRight() bool {
	return h == ResizeRight || h == ResizeTopRight || h == ResizeBottomRight
}

func (h ResizeHandle) movesTop() bool {
	return h == ResizeTop || h == ResizeTopLeft || h == ResizeTopRight
}

func (h ResizeHandle) movesBottom() bool {
	return h == ResizeBottom || h == ResizeBottomLeft || h == ResizeBottomRight
}

// Grid places windows on a cell grid and pushes overlapping windows aside.
type Grid struct {
	windowManager

	cellSize       int
	cellMargin     int
	defaultColSpan int
	defaultRowSpan int
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	g := &Grid{
		cellSize:       DefaultCellSize,
		cellMargin:     DefaultCellMargin,
		defaultColSpan: DefaultWindowColSpan,
		defaultRowSpan: DefaultWindowRowSpan,
	}
	g.initManager(g)
	g.defaults = WindowSettings{
		BorderWidth:  intPtr(1),
		HeaderHeight: intPtr(defaultGridHeaderSize),
		Resizable:    boolPtr(true),
		Draggable:    boolPtr(true),
	}
	g.afterAdd = g.place
	return g
}

func (g *Grid) Type() Type { return TypeGrid }

func (g *Grid) CellSize() int       { return g.cellSize }
func (g *Grid) CellMargin() int     { return g.cellMargin }
func (g *Grid) DefaultColSpan() int { return g.defaultColSpan }
func (g *Grid) DefaultRowSpan() int { return g.defaultRowSpan }

// SetCellSize changes the cell edge length.
func (g *Grid) SetCellSize(v int) {
	if v <= 0 || v == g.cellSize {
		return
	}
	g.cellSize = v
	g.changed()
	g.layout()
}

// SetCellMargin changes the gap between cells.
func (g *Grid) SetCellMargin(v int) {
	if v < 0 || v == g.cellMargin {
		return
	}
	g.cellMargin = v
	g.changed()
	g.layout()
}

// SetDefaultSpans changes the size given to windows without bounds.
func (g *Grid) SetDefaultSpans(colSpan, rowSpan int) {
	g.defaultColSpan = max(colSpan, 1)
	g.defaultRowSpan = max(rowSpan, 1)
	g.changed()
}

// Bounds returns the cell rectangle of w, or the default one.
func (g *Grid) Bounds(w *Window) GridBounds {
	if w != nil && w.settings.Data != nil && w.settings.Data.Grid != nil {
		return w.settings.Data.Grid.normalized()
	}
	return GridBounds{ColSpan: g.defaultColSpan, RowSpan: g.defaultRowSpan}.normalized()
}

func hasBounds(w *Window) bool {
	return w.settings.Data != nil && w.settings.Data.Grid != nil
}

// SetBounds stores b on w without resolving collisions.
func (g *Grid) SetBounds(w *Window, b GridBounds) {
	b = b.normalized()
	if hasBounds(w) && *w.settings.Data.Grid == b {
		return
	}
	if w.settings.Data == nil {
		w.settings.Data = &WindowData{}
	}
	w.settings.Data.Grid = &b
	w.changed()
}

// ViewportColumns returns how many cells fit the viewport width.
func (g *Grid) ViewportColumns() int {
	return fitCells(g.viewport.Width, g.cellSize, g.cellMargin)
}

// ViewportRows returns how many cells fit the viewport height.
func (g *Grid) ViewportRows() int {
	return fitCells(g.viewport.Height, g.cellSize, g.cellMargin)
}

func fitCells(extent, cell, margin int) int {
	step := cell + margin
	if step <= 0 {
		return 1
	}
	return max((extent-margin)/step, 1)
}

// Columns returns the grid width in cells: the occupied width or the
// viewport width, whichever is larger.
func (g *Grid) Columns() int {
	n := 0
	for _, w := range g.windows {
		b := g.Bounds(w)
		n = max(n, b.ColIndex+b.ColSpan)
	}
	return max(n, g.ViewportColumns())
}

// Rows returns the grid height in cells.
func (g *Grid) Rows() int {
	n := 0
	for _, w := range g.windows {
		b := g.Bounds(w)
		n = max(n, b.RowIndex+b.RowSpan)
	}
	return max(n, g.ViewportRows())
}

// ViewportX returns the left edge of column index.
func (g *Grid) ViewportX(index int) int {
	return g.viewport.X + g.cellMargin + index*(g.cellSize+g.cellMargin)
}

// ViewportY returns the top edge of row index.
func (g *Grid) ViewportY(index int) int {
	return g.viewport.Y + g.cellMargin + index*(g.cellSize+g.cellMargin)
}

// ViewportWidth returns the width covered by span columns.
func (g *Grid) ViewportWidth(span int) int {
	return span*g.cellSize + (span-1)*g.cellMargin
}

// ViewportHeight returns the height covered by span rows.
func (g *Grid) ViewportHeight(span int) int {
	return span*g.cellSize + (span-1)*g.cellMargin
}

// CellAt converts a point to the cell under it.
func (g *Grid) CellAt(x, y int) (col, row int) {
	step := g.cellSize + g.cellMargin
	if step <= 0 {
		return 0, 0
	}
	col = max((x-g.viewport.X-g.cellMargin)/step, 0)
	row = max((y-g.viewport.Y-g.cellMargin)/step, 0)
	return col, row
}

// Collisions returns the windows overlapping w.
func (g *Grid) Collisions(w *Window) []*Window {
	b := g.Bounds(w)
	var out []*Window
	for _, other := range g.windows {
		if other != w && IsCollision(b, g.Bounds(other)) {
			out = append(out, other)
		}
	}
	return out
}

// place gives a freshly added window bounds and moves it off the windows
// already on the grid, which keep their cells.
func (g *Grid) place(w *Window) {
	if !hasBounds(w) {
		g.SetBounds(w, g.Bounds(w))
	}
	others := make(map[*Window]bool, len(g.windows))
	for _, o := range g.windows {
		if o != w {
			others[o] = true
		}
	}
	for range g.windows {
		hits := g.Collisions(w)
		if len(hits) == 0 {
			return
		}
		g.dontMessWith(hits[0], w)
	}
	if g.collidesWithAny(w, others) {
		g.placeFree(w, others)
	}
}

// MoveTo moves w to a cell and pushes overlapping windows aside.
func (g *Grid) MoveTo(w *Window, col, row int) {
	if g.IndexOf(w) < 0 {
		return
	}
	b := g.Bounds(w)
	b.ColIndex, b.RowIndex = col, row
	g.SetBounds(w, b)
	g.MakeWayFor(w)
	g.layout()
}

// ResizeTo drags the given handle of w to the target cell. Spans never go
// below one cell.
func (g *Grid) ResizeTo(w *Window, handle ResizeHandle, col, row int) {
	if g.IndexOf(w) < 0 {
		return
	}
	col, row = max(col, 0), max(row, 0)
	b := g.Bounds(w)
	right, bottom := b.ColIndex+b.ColSpan, b.RowIndex+b.RowSpan
	switch {
	case handle.movesRight():
		b.ColSpan = max(col-b.ColIndex+1, 1)
	case handle.movesLeft():
		left := min(col, right-1)
		b.ColIndex, b.ColSpan = left, right-left
	}
	switch {
	case handle.movesBottom():
		b.RowSpan = max(row-b.RowIndex+1, 1)
	case handle.movesTop():
		top := min(row, bottom-1)
		b.RowIndex, b.RowSpan = top, bottom-top
	}
	g.SetBounds(w, b)
	g.MakeWayFor(w)
	g.layout()
}

// DragTo moves the window being dragged to the cell under the point.
func (g *Grid) DragTo(x, y int) {
	if g.drag == nil {
		return
	}
	col, row := g.CellAt(x, y)
	g.MoveTo(g.drag, col, row)
}

// ResizeOver drags the active resize handle to the cell under the point.
func (g *Grid) ResizeOver(x, y int) {
	if g.resizing == nil {
		return
	}
	col, row := g.CellAt(x, y)
	g.ResizeTo(g.resizing, g.resizeHandle, col, row)
}

// MakeWayFor pushes every window overlapping win out of its way, then does
// the same for each displaced window in turn. A window is the pusher at
// most once; windows that already pushed never move again, and a displaced
// window that would land on one of them goes to the first free slot.
func (g *Grid) MakeWayFor(win *Window) {
	if g.IndexOf(win) < 0 {
		return
	}
	settled := make(map[*Window]bool, len(g.windows))
	queued := map[*Window]bool{win: true}
	queue := []*Window{win}
	for len(queue) > 0 {
		boss := queue[0]
		queue = queue[1:]
		settled[boss] = true
		bossBounds := g.Bounds(boss)
		for _, w := range g.windows {
			if settled[w] || !IsCollision(bossBounds, g.Bounds(w)) {
				continue
			}
			g.dontMessWith(boss, w)
			if g.collidesWithAny(w, settled) {
				g.placeFree(w, settled)
			}
			if !queued[w] {
				queued[w] = true
				queue = append(queue, w)
			}
		}
	}
}

// ResolveCollisions makes the whole grid collision free, in display order.
func (g *Grid) ResolveCollisions() {
	for _, w := range g.Windows() {
		if len(g.Collisions(w)) > 0 {
			g.MakeWayFor(w)
		}
	}
	g.layout()
}

// dontMessWith moves w right next to boss when it still fits the viewport
// columns, otherwise to column zero below boss.
func (g *Grid) dontMessWith(boss, w *Window) {
	bb, wb := g.Bounds(boss), g.Bounds(w)
	if bb.ColIndex+bb.ColSpan+wb.ColSpan <= g.ViewportColumns() {
		wb.ColIndex = bb.ColIndex + bb.ColSpan
	} else {
		wb.ColIndex = 0
		wb.RowIndex = bb.RowIndex + bb.RowSpan
	}
	g.SetBounds(w, wb)
}

func (g *Grid) collidesWithAny(w *Window, set map[*Window]bool) bool {
	b := g.Bounds(w)
	for other := range set {
		if other != w && IsCollision(b, g.Bounds(other)) {
			return true
		}
	}
	return false
}

// placeFree moves w to the first row-major slot free of the given windows.
// A free slot always exists below the lowest of them.
func (g *Grid) placeFree(w *Window, avoid map[*Window]bool) {
	b := g.Bounds(w)
	lastRow := 0
	for other := range avoid {
		ob := g.Bounds(other)
		lastRow = max(lastRow, ob.RowIndex+ob.RowSpan)
	}
	lastCol := max(g.ViewportColumns()-b.ColSpan, 0)
	for row := 0; row <= lastRow; row++ {
		for col := 0; col <= lastCol; col++ {
			b.ColIndex, b.RowIndex = col, row
			g.SetBounds(w, b)
			if !g.collidesWithAny(w, avoid) {
				return
			}
		}
	}
}

// Maximize makes w fill the grid.
func (g *Grid) Maximize(w *Window) {
	if i := g.IndexOf(w); i >= 0 {
		g.SetMaximizedIndex(i)
	}
}

// Restore leaves the maximized state.
func (g *Grid) Restore() {
	g.SetMaximizedIndex(-1)
}

// layout is layoutGrid.
func (g *Grid) layout() {
	vp := g.viewport
	maximized := g.MaximizedIndex()
	for i, w := range g.windows {
		if maximized >= 0 {
			if i == maximized {
				w.SetViewport(vp.X, vp.Y, vp.Width, vp.Height)
			} else {
				w.SetViewport(vp.X, vp.Y, 0, 0)
			}
			continue
		}
		b := g.Bounds(w)
		w.SetViewport(g.ViewportX(b.ColIndex), g.ViewportY(b.RowIndex),
			g.ViewportWidth(b.ColSpan), g.ViewportHeight(b.RowSpan))
	}
}

// Config returns the persisted snapshot.
func (g *Grid) Config() Config {
	wins, active, maximized := g.windowConfigs()
	return Config{
		Type:                 TypeGrid,
		CellSize:             intPtr(g.cellSize),
		CellMargin:           intPtr(g.cellMargin),
		DefaultWindowColSpan: intPtr(g.defaultColSpan),
		DefaultWindowRowSpan: intPtr(g.defaultRowSpan),
		Windows:              wins,
		CloseDisabled:        g.ownCloseDisabled(),
		MaximizedIndex:       intPtr(maximized),
		ActiveIndex:          intPtr(active),
	}
}

// SetConfig restores the snapshot. Stored bounds are kept as they are.
func (g *Grid) SetConfig(cfg Config) error {
	g.closeDisabled = clonePtr(cfg.CloseDisabled)
	if cfg.CellSize != nil && *cfg.CellSize > 0 {
		g.cellSize = *cfg.CellSize
	}
	if cfg.CellMargin != nil && *cfg.CellMargin >= 0 {
		g.cellMargin = *cfg.CellMargin
	}
	if cfg.DefaultWindowColSpan != nil {
		g.defaultColSpan = max(*cfg.DefaultWindowColSpan, 1)
	}
	if cfg.DefaultWindowRowSpan != nil {
		g.defaultRowSpan = max(*cfg.DefaultWindowRowSpan, 1)
	}
	if err := g.setWindowConfigs(cfg.Windows); err != nil {
		return err
	}
	g.activeIndex, g.maximizedIndex = 0, -1
	if cfg.ActiveIndex != nil {
		g.activeIndex = *cfg.ActiveIndex
	}
	if cfg.MaximizedIndex != nil {
		g.maximizedIndex = *cfg.MaximizedIndex
	}
	g.changed()
	g.layout()
	return nil
}
