package textview

// Geometry is the per-call view configuration, in pixels. A terminal uses
// RowHeight = CellWidth = 1 so pixels and cells coincide.
type Geometry struct {
	// RowHeight is the pixel height of one display row.
	RowHeight int

	// CellWidth is the pixel width of one fixed character cell.
	CellWidth int

	// Columns is the character capacity used for wrapping. Values below 1
	// are treated as 1.
	Columns int

	// WidthPixels is the viewport width, used to size row backgrounds.
	WidthPixels int

	// YMin and YMax bound the visible band [YMin, YMax) in content space.
	// Content y = 0 is the top edge of the first entry's first row.
	YMin, YMax int
}

// NewGeometry builds a geometry for a viewport of the given pixel size
// scrolled down by scroll pixels. Columns is derived from the width.
func NewGeometry(widthPx, heightPx, cellWidth, rowHeight, scroll int) Geometry {
	g := Geometry{
		RowHeight:   rowHeight,
		CellWidth:   cellWidth,
		WidthPixels: widthPx,
		YMin:        scroll,
		YMax:        scroll + max(heightPx, 0),
	}
	if cellWidth > 0 {
		g.Columns = widthPx / cellWidth
	}
	g.Columns = max(g.Columns, 1)
	return g
}

// Valid reports whether layout is possible at all.
func (g Geometry) Valid() bool {
	return g.RowHeight > 0 && g.CellWidth > 0
}

// ViewHeight returns the height of the visible band.
func (g Geometry) ViewHeight() int {
	return max(g.YMax-g.YMin, 0)
}

func (g Geometry) columns() int {
	return max(g.Columns, 1)
}

// visible reports whether the band [top, bottom) intersects [YMin, YMax).
func (g Geometry) visible(top, bottom int) bool {
	return top < g.YMax && bottom > g.YMin
}
