package textview

import (
	"github.com/dshills/textview/internal/renderer/backend"
	"github.com/dshills/textview/internal/renderer/core"
)

// Canvas is the surface Draw paints on. Coordinates are viewport-relative
// pixels: (0, 0) is the top-left corner of the visible band.
type Canvas interface {
	// FillRect paints r with a solid color.
	FillRect(r core.Rect, c core.Color)

	// DrawText paints one cell per rune starting at (x, y), each cell
	// CellWidth wide. Cells take style's background unless it is default.
	DrawText(x, y int, text []rune, style core.Style)
}

// Theme holds the colors used when a source does not override them.
type Theme struct {
	// Text is the base style for every row.
	Text core.Style

	// Selection styles selected characters. Nil means Text.Highlight().
	Selection *core.Style
}

// DefaultTheme returns a theme using the surface defaults.
func DefaultTheme() Theme {
	return Theme{Text: core.DefaultStyle()}
}

func (t Theme) selectionStyle() core.Style {
	if t.Selection != nil {
		return *t.Selection
	}
	return t.Text.Highlight()
}

// BackendCanvas adapts a cell-grid backend to Canvas. Pixel coordinates are
// divided by the cell size; Origin offsets everything on the backend.
type BackendCanvas struct {
	Backend   backend.Backend
	CellWidth int
	RowHeight int
	Origin    core.Point
}

// NewBackendCanvas creates a canvas over b for cells of the given pixel size.
func NewBackendCanvas(b backend.Backend, cellWidth, rowHeight int) *BackendCanvas {
	return &BackendCanvas{
		Backend:   b,
		CellWidth: max(cellWidth, 1),
		RowHeight: max(rowHeight, 1),
	}
}

func (c *BackendCanvas) FillRect(r core.Rect, col core.Color) {
	cells := core.Rect{
		Top:    floorDiv(r.Top, c.RowHeight) + c.Origin.Y,
		Left:   floorDiv(r.Left, c.CellWidth) + c.Origin.X,
		Bottom: ceilDiv(r.Bottom, c.RowHeight) + c.Origin.Y,
		Right:  ceilDiv(r.Right, c.CellWidth) + c.Origin.X,
	}
	c.Backend.Fill(cells, core.NewStyledCell(' ', core.DefaultStyle().WithBackground(col)))
}

func (c *BackendCanvas) DrawText(x, y int, text []rune, style core.Style) {
	col := floorDiv(x, c.CellWidth) + c.Origin.X
	row := floorDiv(y, c.RowHeight) + c.Origin.Y
	for i, r := range text {
		c.Backend.SetCell(col+i, row, core.NewStyledCell(r, style))
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
