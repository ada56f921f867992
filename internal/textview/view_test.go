package textview

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textview/internal/renderer/backend"
)

func numberedSource(n int) *sliceSource {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %02d", i)
	}
	return newSliceSource(lines...)
}

func newTerminalView(follow bool) *View {
	v := NewView(ViewOptions{CellWidth: 1, RowHeight: 1, Theme: DefaultTheme(), Follow: follow})
	v.Resize(20, 5)
	return v
}

func TestViewRenderToBackend(t *testing.T) {
	src := numberedSource(12)
	b := backend.NewNullBackend(20, 5)
	require.NoError(t, b.Init())
	v := newTerminalView(false)

	res := v.Render(src, NewBackendCanvas(b, 1, 1))

	assert.Equal(t, 12, res.Height)
	assert.Equal(t, 12, v.ContentHeight())
	assert.True(t, strings.HasPrefix(b.RowText(0), "line 00"))
	assert.True(t, strings.HasPrefix(b.RowText(4), "line 04"))

	v.ScrollRows(3)
	b.Clear()
	v.Render(src, NewBackendCanvas(b, 1, 1))
	assert.True(t, strings.HasPrefix(b.RowText(0), "line 03"))
}

func TestViewScrollClamps(t *testing.T) {
	src := numberedSource(12)
	v := newTerminalView(false)
	v.Measure(src)

	v.ScrollBy(-10)
	assert.Equal(t, 0, v.Scroll())

	v.ScrollBy(100)
	assert.Equal(t, 7, v.Scroll(), "max scroll is content minus viewport")
	assert.InDelta(t, 1.0, v.ScrollFraction(), 1e-9)

	v.PageUp()
	assert.Equal(t, 3, v.Scroll())
	v.PageDown()
	assert.Equal(t, 7, v.Scroll())

	v.ScrollToStart()
	assert.Equal(t, 0, v.Scroll())
	assert.Equal(t, 0.0, v.ScrollFraction())
}

func TestViewShortContentDoesNotScroll(t *testing.T) {
	src := numberedSource(2)
	v := newTerminalView(false)
	v.Measure(src)

	v.ScrollBy(3)

	assert.Equal(t, 0, v.Scroll())
	assert.Equal(t, 0.0, v.ScrollFraction())
}

func TestViewFollowTracksGrowth(t *testing.T) {
	src := numberedSource(6)
	v := newTerminalView(true)
	v.Measure(src)
	assert.Equal(t, 1, v.Scroll())

	src.entries = append(src.entries, testEntry{text: "more"}, testEntry{text: "and more"})
	v.Measure(src)
	assert.Equal(t, 3, v.Scroll())
	assert.True(t, v.Following())

	v.ScrollRows(-2)
	assert.False(t, v.Following(), "scrolling back stops following")

	src.entries = append(src.entries, testEntry{text: "ignored"})
	v.Measure(src)
	assert.Equal(t, 1, v.Scroll())

	v.ScrollRows(50)
	assert.True(t, v.Following(), "returning to the end resumes following")
}

func TestViewWithoutFollowStaysPut(t *testing.T) {
	src := numberedSource(6)
	v := newTerminalView(false)
	v.Measure(src)
	assert.Equal(t, 0, v.Scroll())

	v.ScrollToEnd()
	assert.True(t, v.Following())
	assert.Equal(t, 1, v.Scroll())
}

func TestViewPickAt(t *testing.T) {
	src := numberedSource(12)
	v := newTerminalView(false)
	v.Measure(src)
	v.ScrollRows(2)

	p, ok := v.PickAt(src, 5, 1)
	require.True(t, ok)
	assert.Equal(t, 3, p.Index)
	assert.Equal(t, src.entryStart(3)+5, p.Offset)

	_, ok = v.PickAt(src, 0, 5)
	assert.False(t, ok, "below the viewport")
	_, ok = v.PickAt(src, 0, -1)
	assert.False(t, ok, "above the viewport")
}

func TestViewDragSelection(t *testing.T) {
	src := newSliceSource("alpha", "beta", "gamma")
	v := newTerminalView(false)
	v.Measure(src)

	require.True(t, v.BeginSelect(src, 2, 0))
	assert.True(t, v.Selecting())
	assert.True(t, v.Selection().IsEmpty())

	require.True(t, v.ExtendSelect(src, 3, 2))
	v.EndSelect()
	assert.False(t, v.Selecting())

	assert.Equal(t, Selection{Start: 2, End: src.entryStart(2) + 3}, v.Selection())
	assert.Equal(t, "pha\nbeta\ngam", v.SelectedText(src))

	// Dragging backwards past the anchor flips the range.
	require.True(t, v.BeginSelect(src, 2, 1))
	require.True(t, v.ExtendSelect(src, 1, 0))
	assert.Equal(t, "lpha\nbe", v.SelectedText(src))
}

func TestViewSelectionOutsideContent(t *testing.T) {
	src := newSliceSource("only")
	v := newTerminalView(false)
	v.Measure(src)
	v.SetSelection(Selection{Start: 3, End: 1})
	assert.Equal(t, Selection{Start: 1, End: 3}, v.Selection())

	assert.False(t, v.BeginSelect(src, 0, 3), "no row under the pointer")
	assert.True(t, v.Selection().IsEmpty())
	assert.False(t, v.ExtendSelect(src, 0, 0), "extend needs an active drag")
}

func TestViewSelectWordAndEntry(t *testing.T) {
	src := numberedSource(3)
	v := newTerminalView(false)
	v.Measure(src)

	require.True(t, v.SelectWordAt(src, 6, 2))
	assert.Equal(t, "02", v.SelectedText(src))
	assert.False(t, v.Selecting())

	require.True(t, v.SelectEntryAt(src, 0, 1))
	assert.Equal(t, "line 01", v.SelectedText(src))

	assert.False(t, v.SelectWordAt(src, 12, 2), "past the end of the entry")
	assert.False(t, v.SelectWordAt(src, 0, 4), "below the content")
}

func TestViewRenderHighlightsSelection(t *testing.T) {
	src := newSliceSource("abcdef")
	b := backend.NewNullBackend(10, 2)
	require.NoError(t, b.Init())
	v := newTerminalView(false)
	v.SetSelection(Selection{Start: 1, End: 3})

	v.Render(src, NewBackendCanvas(b, 1, 1))

	assert.False(t, b.GetCell(0, 0).Style.Attributes.Has(DefaultTheme().Text.Highlight().Attributes))
	assert.Equal(t, DefaultTheme().Text.Highlight(), b.GetCell(1, 0).Style)
	assert.Equal(t, DefaultTheme().Text.Highlight(), b.GetCell(2, 0).Style)
	assert.Equal(t, DefaultTheme().Text, b.GetCell(3, 0).Style)
}

func TestViewResizeRewraps(t *testing.T) {
	src := newSliceSource(strings.Repeat("w", 30))
	v := newTerminalView(false)

	assert.Equal(t, 2, v.Measure(src))

	v.Resize(10, 5)
	assert.Equal(t, 3, v.Measure(src))
	w, h := v.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 5, h)
	assert.Equal(t, 10, v.Geometry().Columns)
}

func TestViewPixelCells(t *testing.T) {
	src := repeatSource(5, strings.Repeat("x", 250))
	v := NewView(ViewOptions{CellWidth: 8, RowHeight: 14, Theme: DefaultTheme()})
	v.Resize(800, 140)

	assert.Equal(t, 210, v.Measure(src))

	p, ok := v.PickAt(src, 50, 100)
	require.True(t, ok)
	assert.Equal(t, src.entryStart(2)+106, p.Offset)

	v.ScrollToEnd()
	assert.Equal(t, 70, v.Scroll())
}
