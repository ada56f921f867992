package textview

import (
	"context"
	"log/slog"

	"github.com/dshills/textview/internal/renderer/core"
)

// Mode selects what Draw does besides laying rows out.
type Mode uint8

// ModeMeasure lays out only. With a Pointer it is a pure hit test and may
// stop as soon as the pointer's row is found.
const ModeMeasure Mode = 0

const (
	// ModePaint renders visible rows on Options.Canvas.
	ModePaint Mode = 1 << iota

	// ModeHeight asks for the full content height even when a pick could
	// end the walk early.
	ModeHeight
)

// Has returns true if the mode contains the given flag.
func (m Mode) Has(flag Mode) bool {
	return m&flag != 0
}

// Options parameterize one Draw call.
type Options struct {
	Mode Mode

	// Pointer is a viewport-relative device position to hit-test, or nil.
	Pointer *core.Point

	// Selection is highlighted when painting.
	Selection Selection

	Theme Theme

	// Canvas receives painted rows. Painting is skipped when nil.
	Canvas Canvas

	// Observe, when set, sees every laid-out row in order.
	Observe func(Row)

	// Logger receives traversal diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

// Row is one wrapped display row. It only lives for the duration of the
// Observe callback.
type Row struct {
	Cursor Cursor

	// SubRow is the row's index within its entry.
	SubRow int

	// Start is the entry column of Text[0].
	Start int
	Text  []rune

	Fg, Bg core.Color
	Mask   ColorMask

	// Top and Bottom bound the row's band in content space.
	Top, Bottom int

	Visible bool
}

// Pick locates a pointer in the text stream.
type Pick struct {
	// Handle is the Cursor.Handle of the entry under the pointer.
	Handle any

	// Index is the Cursor.Index of that entry.
	Index int

	// Offset is the flattened character offset under the pointer.
	Offset int
}

// Result is what a Draw call reports back.
type Result struct {
	// Height is the content height in pixels. It covers every row unless the
	// walk stopped early, in which case it ends at the picked row.
	Height int

	// Pick is set when Options.Pointer landed on a row.
	Pick *Pick

	// Complete is false when a hit test ended the walk early.
	Complete bool

	// Err is the source's fault, if it implements FaultReporter.
	Err error
}

// phase tracks how far a traversal got before End; it is reported with
// source faults.
type phase uint8

const (
	phaseBegun phase = iota
	phaseTraversing
	phaseDrained
)

func (p phase) String() string {
	switch p {
	case phaseBegun:
		return "begun"
	case phaseTraversing:
		return "traversing"
	case phaseDrained:
		return "drained"
	default:
		return "unknown"
	}
}

// Draw walks the source once, laying out every entry as wrapped rows from
// the top of content space down. Depending on opts it paints the rows that
// intersect [g.YMin, g.YMax), hit-tests opts.Pointer, or only measures.
//
// Invalid geometry returns the zero Result without touching it. Otherwise
// Begin is called once and End is deferred immediately, so it runs exactly
// once on every path, including a failed Begin and an early hit-test exit.
func Draw(g Geometry, it Iterator, opts Options) (res Result) {
	if !g.Valid() || it == nil {
		return Result{}
	}

	d := drawer{
		g:     g,
		it:    it,
		opts:  opts,
		cols:  g.columns(),
		paint: opts.Mode.Has(ModePaint) && opts.Canvas != nil,
		early: opts.Pointer != nil && !opts.Mode.Has(ModePaint) && !opts.Mode.Has(ModeHeight),
		log:   opts.Logger,
	}
	if d.log == nil {
		d.log = slog.Default()
	}
	if opts.Pointer != nil {
		d.px = opts.Pointer.X
		d.py = opts.Pointer.Y + g.YMin
	}
	d.sel = opts.Selection.Normalize()

	ok := it.Begin()
	defer it.End()
	defer d.collectFault(&res)

	if !ok {
		return Result{Complete: true}
	}

	return d.run()
}

type drawer struct {
	g    Geometry
	it   Iterator
	opts Options
	cols int
	sel  Selection

	paint  bool
	// early is set for pure hit tests, which may stop at the first hit.
	early  bool
	px, py int

	phase phase
	log   *slog.Logger
}

func (d *drawer) run() Result {
	var res Result
	y := 0
	rh := d.g.RowHeight
	d.phase = phaseTraversing

	for {
		text := d.it.LineGet()
		fg, bg, mask := d.it.LineColor()
		cur := d.it.Cursor()
		n := RowCount(len(text), d.cols)
		bottom := y + n*rh

		// Entries that are neither visible nor under the pointer only
		// advance the cursor.
		touched := d.paint && d.g.visible(y, bottom)
		hit := d.opts.Pointer != nil && res.Pick == nil && d.py >= y && d.py < bottom
		if !touched && !hit && d.opts.Observe == nil {
			y = bottom
			if !d.it.Step() {
				break
			}
			continue
		}

		for sub := 0; sub < n; sub++ {
			start, end := RowSpan(len(text), d.cols, sub)
			row := Row{
				Cursor: cur,
				SubRow: sub,
				Start:  start,
				Text:   text[start:end:end],
				Fg:     fg,
				Bg:     bg,
				Mask:   mask,
				Top:    y,
				Bottom: y + rh,
			}
			row.Visible = d.g.visible(row.Top, row.Bottom)

			if d.paint && row.Visible {
				d.paintRow(row)
			}
			if d.opts.Observe != nil {
				d.opts.Observe(row)
			}
			if hit && res.Pick == nil && d.py >= row.Top && d.py < row.Bottom {
				res.Pick = d.pick(row)
				if d.early {
					res.Height = row.Bottom
					d.log.Debug("textview: hit test ended walk early",
						"index", cur.Index, "offset", res.Pick.Offset)
					return res
				}
			}
			y += rh
		}

		if !d.it.Step() {
			break
		}
	}

	d.phase = phaseDrained
	res.Height = y
	res.Complete = true
	return res
}

// pick maps the pointer's x onto a column of row, clamped to its text.
func (d *drawer) pick(row Row) *Pick {
	col := 0
	if d.px > 0 {
		col = d.px / d.g.CellWidth
	}
	col = min(col, len(row.Text))
	return &Pick{
		Handle: row.Cursor.Handle,
		Index:  row.Cursor.Index,
		Offset: row.Cursor.EntryStart + row.Start + col,
	}
}

func (d *drawer) paintRow(row Row) {
	c := d.opts.Canvas
	y := row.Top - d.g.YMin

	style := d.opts.Theme.Text
	if row.Mask.Has(ColorFg) {
		style.Foreground = row.Fg
	}
	if row.Mask.Has(ColorBg) {
		style.Background = row.Bg
		c.FillRect(core.Rect{Top: y, Left: 0, Bottom: y + d.g.RowHeight, Right: d.g.WidthPixels}, row.Bg)
	}

	base := row.Cursor.EntryStart + row.Start
	from, to, ok := d.sel.clip(base, len(row.Text))
	if !ok {
		if len(row.Text) > 0 {
			c.DrawText(0, y, row.Text, style)
		}
		return
	}

	cw := d.g.CellWidth
	if from > 0 {
		c.DrawText(0, y, row.Text[:from], style)
	}
	c.DrawText(from*cw, y, row.Text[from:to], d.opts.Theme.selectionStyle())
	if to < len(row.Text) {
		c.DrawText(to*cw, y, row.Text[to:], style)
	}
}

func (d *drawer) collectFault(res *Result) {
	fr, ok := d.it.(FaultReporter)
	if !ok {
		return
	}
	if err := fr.Err(); err != nil {
		res.Err = err
		if d.log.Enabled(context.Background(), slog.LevelDebug) {
			d.log.Debug("textview: source reported a fault", "phase", d.phase.String(), "err", err)
		}
	}
}
