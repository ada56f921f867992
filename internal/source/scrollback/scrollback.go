// Package scrollback provides a bounded console scrollback that can be drawn
// by the textview driver.
//
// Lines are kept in a fixed-capacity ring; once it is full, appending a line
// evicts the oldest one. Each line carries a Kind that selects its color.
// The buffer is safe for concurrent use: writers take the write lock, and an
// Iterator holds the read lock from Begin until End.
package scrollback

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/textview/internal/renderer/core"
	"github.com/dshills/textview/internal/textview"
)

// DefaultCapacity is the number of lines kept when no capacity is configured.
const DefaultCapacity = 10000

// Kind classifies a scrollback line.
type Kind uint8

const (
	// KindOutput is ordinary program output.
	KindOutput Kind = iota
	// KindInput echoes what the user typed.
	KindInput
	// KindInfo is an informational message.
	KindInfo
	// KindError is an error message.
	KindError
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindOutput:
		return "output"
	case KindInput:
		return "input"
	case KindInfo:
		return "info"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrUnknownKind is returned by ParseKind for an unrecognized name.
var ErrUnknownKind = errors.New("unknown line kind")

// ParseKind parses a kind name as returned by Kind.String.
func ParseKind(name string) (Kind, error) {
	for k := KindOutput; k <= KindError; k++ {
		if strings.EqualFold(strings.TrimSpace(name), k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Palette maps kinds to foreground colors. A default color leaves the
// theme's text color in place.
type Palette struct {
	Output core.Color
	Input  core.Color
	Info   core.Color
	Error  core.Color
}

// DefaultPalette returns the built-in kind colors.
func DefaultPalette() Palette {
	return Palette{
		Output: core.ColorDefault,
		Input:  core.ColorFromIndex(6),
		Info:   core.ColorFromIndex(4),
		Error:  core.ColorFromIndex(1),
	}
}

func (p Palette) color(k Kind) core.Color {
	switch k {
	case KindInput:
		return p.Input
	case KindInfo:
		return p.Info
	case KindError:
		return p.Error
	default:
		return p.Output
	}
}

// Line is one stored line.
type Line struct {
	Kind Kind
	Text []rune
}

// String returns the line's text.
func (l Line) String() string {
	return string(l.Text)
}

// Buffer is a bounded ring of lines.
type Buffer struct {
	mu      sync.RWMutex
	lines   []Line
	head    int
	n       int
	evicted int
	palette Palette
	tabs    textview.Tabs
}

// New creates a buffer holding at most capacity lines. A capacity below one
// uses DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		lines:   make([]Line, capacity),
		palette: DefaultPalette(),
	}
}

// SetPalette replaces the kind colors.
func (b *Buffer) SetPalette(p Palette) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.palette = p
}

// SetTabWidth sets the tab stop distance used to expand tabs in lines
// appended from now on.
func (b *Buffer) SetTabWidth(width int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tabs = textview.NewTabs(width)
}

// Append adds text as one or more lines of the given kind. Text is split on
// '\n' and a trailing carriage return is dropped from each line.
func (b *Buffer) Append(kind Kind, text string) {
	parts := strings.Split(text, "\n")

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range parts {
		b.push(Line{Kind: kind, Text: []rune(strings.TrimSuffix(p, "\r"))})
	}
}

// AppendLines adds each element of lines as a single line. Lines must not
// contain '\n'.
func (b *Buffer) AppendLines(kind Kind, lines []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, l := range lines {
		b.push(Line{Kind: kind, Text: []rune(l)})
	}
}

func (b *Buffer) push(l Line) {
	if b.n == len(b.lines) {
		b.evicted++
	} else {
		b.n++
	}
	l.Text = b.tabs.Expand(l.Text)
	b.lines[b.head] = l
	b.head = (b.head + 1) % len(b.lines)
}

// at returns the i-th oldest line. The caller holds the lock.
func (b *Buffer) at(i int) *Line {
	idx := (b.head - b.n + i) % len(b.lines)
	if idx < 0 {
		idx += len(b.lines)
	}
	return &b.lines[idx]
}

// Len returns the number of stored lines.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.n
}

// Cap returns the buffer's capacity.
func (b *Buffer) Cap() int {
	return len(b.lines)
}

// Evicted returns how many lines have been dropped to make room.
func (b *Buffer) Evicted() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.evicted
}

// Line returns a copy of the i-th oldest line.
func (b *Buffer) Line(i int) (Line, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if i < 0 || i >= b.n {
		return Line{}, false
	}
	l := *b.at(i)
	l.Text = append([]rune(nil), l.Text...)
	return l, true
}

// Clear removes every line. The capacity is kept.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.lines)
	b.head = 0
	b.n = 0
	b.evicted = 0
}

// Iterator returns a new traversal over the buffer, oldest line first.
func (b *Buffer) Iterator() *Iterator {
	return &Iterator{b: b}
}
