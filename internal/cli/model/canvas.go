package model

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tiledash/internal/domain/layout"
)

// paint selects the style of a canvas cell.
type paint uint8

const (
	paintNormal paint = iota
	paintSubtle
	paintPane
	paintPaneActive
	paintTitle
	paintTabActive
	paintTabInactive
	paintSplitter
	paintError
	paintCount
)

// canvas is a cell grid the layout is drawn on before styling. One rune
// fills one cell.
type canvas struct {
	width, height int
	cells         [][]rune
	paints        [][]paint
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: max(width, 0), height: max(height, 0)}
	c.cells = make([][]rune, c.height)
	c.paints = make([][]paint, c.height)
	for y := range c.cells {
		c.cells[y] = []rune(strings.Repeat(" ", c.width))
		c.paints[y] = make([]paint, c.width)
	}
	return c
}

func (c *canvas) set(x, y int, r rune, p paint) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y][x] = r
	c.paints[y][x] = p
}

// text writes s from (x, y), clipped to maxWidth cells.
func (c *canvas) text(x, y, maxWidth int, s string, p paint) int {
	n := 0
	for _, r := range s {
		if n >= maxWidth {
			break
		}
		if r == '\n' || r == '\t' {
			r = ' '
		}
		c.set(x+n, y, r, p)
		n++
	}
	return n
}

func (c *canvas) fill(v layout.Viewport, r rune, p paint) {
	for y := v.Y; y < v.Y+v.Height; y++ {
		for x := v.X; x < v.X+v.Width; x++ {
			c.set(x, y, r, p)
		}
	}
}

// box draws a rounded frame on the edge of v and returns the inner area.
func (c *canvas) box(v layout.Viewport, p paint) layout.Viewport {
	if v.Width < 2 || v.Height < 2 {
		return layout.Viewport{X: v.X, Y: v.Y}
	}
	right, bottom := v.X+v.Width-1, v.Y+v.Height-1
	for x := v.X + 1; x < right; x++ {
		c.set(x, v.Y, '─', p)
		c.set(x, bottom, '─', p)
	}
	for y := v.Y + 1; y < bottom; y++ {
		c.set(v.X, y, '│', p)
		c.set(right, y, '│', p)
	}
	c.set(v.X, v.Y, '╭', p)
	c.set(right, v.Y, '╮', p)
	c.set(v.X, bottom, '╰', p)
	c.set(right, bottom, '╯', p)
	return layout.Viewport{X: v.X + 1, Y: v.Y + 1, Width: v.Width - 2, Height: v.Height - 2}
}

// render styles runs of equally painted cells and joins the rows.
func (c *canvas) render(styles [paintCount]lipgloss.Style) string {
	var b strings.Builder
	for y := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= c.width; x++ {
			if x < c.width && c.paints[y][x] == c.paints[y][start] {
				continue
			}
			b.WriteString(styles[c.paints[y][start]].Render(string(c.cells[y][start:x])))
			start = x
		}
	}
	return b.String()
}
