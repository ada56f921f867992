package textview

import "github.com/dshills/textview/internal/renderer/core"

// ColorMask reports which of the colors returned by LineColor are set.
type ColorMask uint8

// Color mask flags.
const (
	ColorFg ColorMask = 1 << 0
	ColorBg ColorMask = 1 << 1
)

// Has returns true if the mask contains the given flag.
func (m ColorMask) Has(flag ColorMask) bool {
	return m&flag != 0
}

// Cursor identifies the current logical entry of a traversal.
type Cursor struct {
	// Handle is the source's identity for the entry. It is returned verbatim
	// in a Pick and never inspected by the driver.
	Handle any

	// Index never decreases during a traversal.
	Index int

	// EntryStart and EntryEnd bracket the entry in the flattened character
	// stream. EntryStart <= EntryEnd.
	EntryStart int
	EntryEnd   int
}

// Iterator is the capability a text source hands to Draw.
//
// A traversal is Begin, then LineGet/LineColor/Cursor for the current entry,
// then Step, repeated until Step returns false, then End. End is called
// exactly once for every Begin, including when Begin fails and when the
// driver stops early after a hit. Sources must not be traversed reentrantly.
type Iterator interface {
	// Begin acquires traversal resources and positions on the first entry.
	// It returns false when nothing can be traversed.
	Begin() bool

	// End releases whatever Begin acquired.
	End()

	// Step advances to the next entry. False ends the traversal; it does not
	// distinguish exhaustion from a fault.
	Step() bool

	// LineGet returns the current entry's characters. An empty slice is a
	// blank line. The driver does not retain or modify it.
	LineGet() []rune

	// LineColor returns the entry's colors and which of them are set.
	// Unset colors inherit the theme.
	LineColor() (fg, bg core.Color, mask ColorMask)

	// Cursor returns the current entry's position.
	Cursor() Cursor
}

// FaultReporter is implemented by sources that can tell a failed traversal
// from an exhausted one. Draw consults it after the walk.
type FaultReporter interface {
	Err() error
}
