package textview

import (
	"log/slog"

	"github.com/dshills/textview/internal/renderer/core"
)

// ViewOptions configure a View.
type ViewOptions struct {
	CellWidth int
	RowHeight int
	Theme     Theme

	// Follow keeps the view pinned to the end of the content as it grows.
	Follow bool

	Logger *slog.Logger
}

// View keeps the state that survives between Draw calls: the viewport size,
// the scroll offset, the selection and whether it tracks the end of the
// stream. It is not safe for concurrent use.
type View struct {
	cellWidth int
	rowHeight int
	width     int
	height    int

	scroll     int
	content    int
	follow     bool
	autoFollow bool

	sel       Selection
	anchor    int
	selecting bool

	theme Theme
	log   *slog.Logger
}

// NewView creates a view with no size. Call Resize before drawing.
func NewView(opts ViewOptions) *View {
	v := &View{
		cellWidth:  max(opts.CellWidth, 1),
		rowHeight:  max(opts.RowHeight, 1),
		theme:      opts.Theme,
		follow:     opts.Follow,
		autoFollow: opts.Follow,
		log:        opts.Logger,
	}
	if v.log == nil {
		v.log = slog.Default()
	}
	return v
}

// Resize sets the viewport size in pixels.
func (v *View) Resize(width, height int) {
	v.width = max(width, 0)
	v.height = max(height, 0)
	v.clamp()
}

// Size returns the viewport size in pixels.
func (v *View) Size() (width, height int) {
	return v.width, v.height
}

// Geometry returns the layout geometry at the current scroll offset.
func (v *View) Geometry() Geometry {
	return NewGeometry(v.width, v.height, v.cellWidth, v.rowHeight, v.scroll)
}

// SetTheme replaces the theme used by Render.
func (v *View) SetTheme(t Theme) {
	v.theme = t
}

// Measure lays out the whole source and records its height.
func (v *View) Measure(it Iterator) int {
	res := Draw(v.Geometry(), it, Options{Mode: ModeHeight, Logger: v.log})
	v.setContent(res.Height)
	return res.Height
}

// Render measures, settles the scroll offset against the new height, then
// paints the visible rows on c. The returned Result is the paint pass.
func (v *View) Render(it Iterator, c Canvas) Result {
	v.Measure(it)
	res := Draw(v.Geometry(), it, Options{
		Mode:      ModePaint | ModeHeight,
		Canvas:    c,
		Selection: v.sel,
		Theme:     v.theme,
		Logger:    v.log,
	})
	if res.Height != v.content {
		v.log.Debug("textview: content changed between measure and paint",
			"measured", v.content, "painted", res.Height)
		v.setContent(res.Height)
	}
	return res
}

// PickAt hit-tests a viewport-relative position.
func (v *View) PickAt(it Iterator, x, y int) (Pick, bool) {
	if y < 0 || y >= v.height {
		return Pick{}, false
	}
	res := Draw(v.Geometry(), it, Options{Pointer: &core.Point{X: x, Y: y}, Logger: v.log})
	if res.Pick == nil {
		return Pick{}, false
	}
	return *res.Pick, true
}

func (v *View) setContent(h int) {
	v.content = h
	if v.follow {
		v.scroll = v.maxScroll()
	}
	v.clamp()
}

// ContentHeight returns the height recorded by the last Measure or Render.
func (v *View) ContentHeight() int {
	return v.content
}

// Scroll returns the current scroll offset in pixels.
func (v *View) Scroll() int {
	return v.scroll
}

func (v *View) maxScroll() int {
	return max(v.content-v.height, 0)
}

func (v *View) clamp() {
	v.scroll = min(max(v.scroll, 0), v.maxScroll())
}

// ScrollTo moves the top of the viewport to y. Scrolling away from the end
// stops following; a view created with Follow resumes when it gets back.
func (v *View) ScrollTo(y int) {
	v.scroll = y
	v.clamp()
	v.follow = v.scroll == v.maxScroll() && (v.follow || v.autoFollow)
}

// ScrollBy moves the viewport by dy pixels.
func (v *View) ScrollBy(dy int) {
	v.ScrollTo(v.scroll + dy)
}

// ScrollRows moves the viewport by n rows.
func (v *View) ScrollRows(n int) {
	v.ScrollBy(n * v.rowHeight)
}

// PageDown scrolls forward by one viewport less one row.
func (v *View) PageDown() {
	v.ScrollBy(max(v.height-v.rowHeight, v.rowHeight))
}

// PageUp scrolls back by one viewport less one row.
func (v *View) PageUp() {
	v.ScrollBy(-max(v.height-v.rowHeight, v.rowHeight))
}

// ScrollToStart scrolls to the top.
func (v *View) ScrollToStart() {
	v.ScrollTo(0)
}

// ScrollToEnd scrolls to the bottom and resumes following.
func (v *View) ScrollToEnd() {
	v.scroll = v.maxScroll()
	v.follow = true
}

// Following reports whether the view tracks the end of the content.
func (v *View) Following() bool {
	return v.follow
}

// ScrollFraction returns how far through the content the view is, 0..1.
func (v *View) ScrollFraction() float64 {
	ms := v.maxScroll()
	if ms == 0 {
		return 0
	}
	return float64(v.scroll) / float64(ms)
}

// Selection returns the current selection.
func (v *View) Selection() Selection {
	return v.sel
}

// SetSelection replaces the selection.
func (v *View) SetSelection(s Selection) {
	v.sel = s.Normalize()
	v.selecting = false
}

// ClearSelection drops the selection.
func (v *View) ClearSelection() {
	v.sel = Selection{}
	v.selecting = false
}

// BeginSelect anchors a selection at the character under (x, y).
func (v *View) BeginSelect(it Iterator, x, y int) bool {
	p, ok := v.PickAt(it, x, y)
	if !ok {
		v.ClearSelection()
		return false
	}
	v.anchor = p.Offset
	v.sel = Selection{Start: p.Offset, End: p.Offset}
	v.selecting = true
	return true
}

// ExtendSelect moves the free end of an active selection to (x, y).
func (v *View) ExtendSelect(it Iterator, x, y int) bool {
	if !v.selecting {
		return false
	}
	p, ok := v.PickAt(it, x, y)
	if !ok {
		return false
	}
	v.sel = Span(v.anchor, p.Offset)
	return true
}

// SelectWordAt selects the word under (x, y).
func (v *View) SelectWordAt(it Iterator, x, y int) bool {
	return v.selectAt(it, x, y, WordAt)
}

// SelectEntryAt selects the whole entry under (x, y).
func (v *View) SelectEntryAt(it Iterator, x, y int) bool {
	return v.selectAt(it, x, y, EntrySpan)
}

func (v *View) selectAt(it Iterator, x, y int, span func(Iterator, int) Selection) bool {
	p, ok := v.PickAt(it, x, y)
	if !ok {
		return false
	}
	v.sel = span(it, p.Offset)
	v.selecting = false
	return !v.sel.IsEmpty()
}

// EndSelect finishes a drag. The selection is kept.
func (v *View) EndSelect() {
	v.selecting = false
}

// Selecting reports whether a drag is in progress.
func (v *View) Selecting() bool {
	return v.selecting
}

// SelectedText returns the characters in the current selection.
func (v *View) SelectedText(it Iterator) string {
	return SelectedText(it, v.sel)
}
