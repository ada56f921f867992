package textview

// DefaultTabWidth is the tab stop distance used when none is configured.
const DefaultTabWidth = 4

// Tabs expands tab characters to spaces. The driver draws one rune per cell,
// so sources expand tabs before handing lines out.
type Tabs struct {
	width int
}

// NewTabs returns an expander with stops every width columns. A width below
// one uses DefaultTabWidth.
func NewTabs(width int) Tabs {
	if width < 1 {
		width = DefaultTabWidth
	}
	return Tabs{width: width}
}

// Width returns the distance between tab stops.
func (t Tabs) Width() int {
	if t.width < 1 {
		return DefaultTabWidth
	}
	return t.width
}

// NextStop returns the first tab stop after col.
func (t Tabs) NextStop(col int) int {
	w := t.Width()
	return col + w - col%w
}

// Expand returns text with every tab replaced by spaces up to the next stop.
// Text without tabs is returned as is.
func (t Tabs) Expand(text []rune) []rune {
	n := 0
	for _, r := range text {
		if r == '\t' {
			n++
		}
	}
	if n == 0 {
		return text
	}

	out := make([]rune, 0, len(text)+n*(t.Width()-1))
	for _, r := range text {
		if r != '\t' {
			out = append(out, r)
			continue
		}
		stop := t.NextStop(len(out))
		for len(out) < stop {
			out = append(out, ' ')
		}
	}
	return out
}
