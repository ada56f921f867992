package scrollback

import (
	"github.com/dshills/textview/internal/renderer/core"
	"github.com/dshills/textview/internal/textview"
)

var _ textview.Iterator = (*Iterator)(nil)

// Iterator walks a Buffer for the textview driver. Begin takes the buffer's
// read lock and End releases it, so writers wait while a traversal is open.
// An Iterator may be reused across Draw calls but not shared between them.
type Iterator struct {
	b      *Buffer
	locked bool
	pos    int
	offset int
}

// Begin locks the buffer and positions on the oldest line. It reports false
// when the buffer is empty; End must still be called.
func (it *Iterator) Begin() bool {
	if !it.locked {
		it.b.mu.RLock()
		it.locked = true
	}
	it.pos = 0
	it.offset = 0
	return it.b.n > 0
}

// End releases the read lock taken by Begin.
func (it *Iterator) End() {
	if it.locked {
		it.locked = false
		it.b.mu.RUnlock()
	}
}

// Step moves to the next line. Offsets advance by the line's length plus one
// separator.
func (it *Iterator) Step() bool {
	if it.pos+1 >= it.b.n {
		return false
	}
	it.offset += len(it.b.at(it.pos).Text) + 1
	it.pos++
	return true
}

// LineGet returns the current line's text. The slice is owned by the buffer.
func (it *Iterator) LineGet() []rune {
	return it.b.at(it.pos).Text
}

// LineColor returns the kind color of the current line.
func (it *Iterator) LineColor() (fg, bg core.Color, mask textview.ColorMask) {
	c := it.b.palette.color(it.b.at(it.pos).Kind)
	if c.IsDefault() {
		return core.ColorDefault, core.ColorDefault, 0
	}
	return c, core.ColorDefault, textview.ColorFg
}

// Cursor describes the current line. The handle is the line's *Line, valid
// until End.
func (it *Iterator) Cursor() textview.Cursor {
	l := it.b.at(it.pos)
	return textview.Cursor{
		Handle:     l,
		Index:      it.pos,
		EntryStart: it.offset,
		EntryEnd:   it.offset + len(l.Text),
	}
}
