package textview

import (
	"strings"

	"github.com/dshills/textview/internal/renderer/core"
)

type testEntry struct {
	text   string
	fg, bg core.Color
	mask   ColorMask
}

type callCounts struct {
	begin, end, step, lineGet, lineColor int
}

// sliceSource serves entries from a slice. Each entry is followed by one
// separator character in the flattened stream.
type sliceSource struct {
	entries   []testEntry
	failBegin bool
	fault     error

	pos    int
	offset int
	calls  callCounts
}

func newSliceSource(lines ...string) *sliceSource {
	s := &sliceSource{}
	for _, l := range lines {
		s.entries = append(s.entries, testEntry{text: l})
	}
	return s
}

func repeatSource(n int, line string) *sliceSource {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = line
	}
	return newSliceSource(lines...)
}

func (s *sliceSource) Begin() bool {
	s.calls.begin++
	if s.failBegin || len(s.entries) == 0 {
		return false
	}
	s.pos = 0
	s.offset = 0
	return true
}

func (s *sliceSource) End() { s.calls.end++ }

func (s *sliceSource) Step() bool {
	s.calls.step++
	if s.pos+1 >= len(s.entries) {
		return false
	}
	s.offset += len([]rune(s.entries[s.pos].text)) + 1
	s.pos++
	return true
}

func (s *sliceSource) LineGet() []rune {
	s.calls.lineGet++
	return []rune(s.entries[s.pos].text)
}

func (s *sliceSource) LineColor() (core.Color, core.Color, ColorMask) {
	s.calls.lineColor++
	e := s.entries[s.pos]
	return e.fg, e.bg, e.mask
}

func (s *sliceSource) Cursor() Cursor {
	n := len([]rune(s.entries[s.pos].text))
	return Cursor{
		Handle:     &s.entries[s.pos],
		Index:      s.pos,
		EntryStart: s.offset,
		EntryEnd:   s.offset + n,
	}
}

// entryStart returns the flattened offset of entry i.
func (s *sliceSource) entryStart(i int) int {
	off := 0
	for _, e := range s.entries[:i] {
		off += len([]rune(e.text)) + 1
	}
	return off
}

type faultySource struct {
	*sliceSource
}

func (f faultySource) Err() error { return f.fault }

type textOp struct {
	x, y  int
	text  string
	style core.Style
}

type fillOp struct {
	rect  core.Rect
	color core.Color
}

type recordingCanvas struct {
	texts []textOp
	fills []fillOp
}

func (c *recordingCanvas) FillRect(r core.Rect, col core.Color) {
	c.fills = append(c.fills, fillOp{rect: r, color: col})
}

func (c *recordingCanvas) DrawText(x, y int, text []rune, style core.Style) {
	c.texts = append(c.texts, textOp{x: x, y: y, text: string(text), style: style})
}

// rowsAt returns the distinct y positions painted, in order.
func (c *recordingCanvas) rowsAt() []int {
	var ys []int
	for _, op := range c.texts {
		if len(ys) == 0 || ys[len(ys)-1] != op.y {
			ys = append(ys, op.y)
		}
	}
	return ys
}

// line concatenates the text painted at y.
func (c *recordingCanvas) line(y int) string {
	var sb strings.Builder
	for _, op := range c.texts {
		if op.y == y {
			sb.WriteString(op.text)
		}
	}
	return sb.String()
}
