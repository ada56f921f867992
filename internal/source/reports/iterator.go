package reports

import (
	"github.com/dshills/textview/internal/renderer/core"
	"github.com/dshills/textview/internal/textview"
)

var _ textview.Iterator = (*Iterator)(nil)

// Iterator walks the lines of the reports that pass the list's filter. Each
// line is one entry; lines of the same report share the report's handle and
// index. Offsets count the newline between lines and one separator between
// reports.
type Iterator struct {
	l      *List
	locked bool

	// ri indexes l.reports; line is the position inside that report.
	ri     int
	line   int
	index  int
	offset int
}

// Begin locks the list and positions on the first line of the first visible
// report.
func (it *Iterator) Begin() bool {
	if !it.locked {
		it.l.mu.RLock()
		it.locked = true
	}
	it.line = 0
	it.index = 0
	it.offset = 0
	it.ri = it.next(0)
	return it.ri < len(it.l.reports)
}

// End releases the read lock.
func (it *Iterator) End() {
	if it.locked {
		it.locked = false
		it.l.mu.RUnlock()
	}
}

// next returns the first visible report at or after i.
func (it *Iterator) next(i int) int {
	for i < len(it.l.reports) && it.l.reports[i].Level&it.l.filter == 0 {
		i++
	}
	return i
}

func (it *Iterator) Step() bool {
	r := it.l.reports[it.ri]
	adv := len(r.lines[it.line]) + 1

	if it.line+1 < len(r.lines) {
		it.line++
		it.offset += adv
		return true
	}

	n := it.next(it.ri + 1)
	if n >= len(it.l.reports) {
		return false
	}
	it.ri = n
	it.line = 0
	it.index++
	it.offset += adv
	return true
}

func (it *Iterator) LineGet() []rune {
	return it.l.reports[it.ri].lines[it.line]
}

func (it *Iterator) LineColor() (fg, bg core.Color, mask textview.ColorMask) {
	c, ok := it.l.palette[it.l.reports[it.ri].Level]
	if !ok {
		return core.ColorDefault, core.ColorDefault, 0
	}
	if !c.Fg.IsDefault() {
		mask |= textview.ColorFg
	}
	if !c.Bg.IsDefault() {
		mask |= textview.ColorBg
	}
	return c.Fg, c.Bg, mask
}

// Cursor describes the current line. Handle is the *Report.
func (it *Iterator) Cursor() textview.Cursor {
	r := it.l.reports[it.ri]
	return textview.Cursor{
		Handle:     r,
		Index:      it.index,
		EntryStart: it.offset,
		EntryEnd:   it.offset + len(r.lines[it.line]),
	}
}
