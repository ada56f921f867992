package reports

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textview/internal/renderer/core"
	"github.com/dshills/textview/internal/textview"
)

type entry struct {
	text   string
	report *Report
	cursor textview.Cursor
	mask   textview.ColorMask
}

func walk(t *testing.T, it *Iterator) []entry {
	t.Helper()
	if !it.Begin() {
		it.End()
		return nil
	}
	defer it.End()

	var out []entry
	for {
		cur := it.Cursor()
		_, _, mask := it.LineColor()
		out = append(out, entry{
			text:   string(it.LineGet()),
			report: cur.Handle.(*Report),
			cursor: cur,
			mask:   mask,
		})
		if !it.Step() {
			return out
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" operator ", LevelOperator},
		{"warn", LevelWarning},
		{"warning", LevelWarning},
		{"error", LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("fatal")
	assert.True(t, errors.Is(err, ErrUnknownLevel))
}

func TestParseFilter(t *testing.T) {
	mask, err := ParseFilter([]string{"info", "error"})
	require.NoError(t, err)
	assert.Equal(t, LevelInfo|LevelError, mask)

	mask, err = ParseFilter(nil)
	require.NoError(t, err)
	assert.Equal(t, LevelAll, mask)

	_, err = ParseFilter([]string{"info", "nope"})
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "Level(96)", Level(96).String())
}

func TestAddAssignsIdentity(t *testing.T) {
	l := New()
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return stamp }

	a := l.Add(LevelInfo, "first")
	b := l.Addf(LevelError, "failed %d times", 3)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, stamp, a.Time)
	assert.Equal(t, "failed 3 times", b.Message)
	assert.Equal(t, 2, l.Len())

	found, ok := l.Find(b.ID)
	require.True(t, ok)
	assert.Same(t, b, found)

	_, ok = l.Find(uuid.New())
	assert.False(t, ok)
}

func TestIteratorMultiLineReports(t *testing.T) {
	l := New()
	first := l.Add(LevelInfo, "ab\ncde")
	second := l.Add(LevelWarning, "f")

	got := walk(t, l.Iterator())
	require.Len(t, got, 3)

	assert.Equal(t, "ab", got[0].text)
	assert.Equal(t, "cde", got[1].text)
	assert.Equal(t, "f", got[2].text)

	assert.Same(t, first, got[0].report)
	assert.Same(t, first, got[1].report)
	assert.Same(t, second, got[2].report)
	assert.Equal(t, 2, first.Lines())

	assert.Equal(t, []int{0, 0, 1}, []int{got[0].cursor.Index, got[1].cursor.Index, got[2].cursor.Index})
	assert.Equal(t, 0, got[0].cursor.EntryStart)
	assert.Equal(t, 2, got[0].cursor.EntryEnd)
	assert.Equal(t, 3, got[1].cursor.EntryStart, "the newline inside a report counts")
	assert.Equal(t, 7, got[2].cursor.EntryStart)
}

func TestIteratorFilter(t *testing.T) {
	l := New()
	l.Add(LevelDebug, "noise")
	l.Add(LevelError, "bad")
	l.Add(LevelDebug, "more noise")
	l.Add(LevelError, "worse")

	l.SetFilter(LevelError)
	assert.Equal(t, LevelError, l.Filter())

	got := walk(t, l.Iterator())
	require.Len(t, got, 2)
	assert.Equal(t, "bad", got[0].text)
	assert.Equal(t, "worse", got[1].text)
	assert.Equal(t, 1, got[1].cursor.Index)
	assert.Equal(t, 4, got[1].cursor.EntryStart)

	l.SetFilter(LevelInfo)
	assert.Empty(t, walk(t, l.Iterator()))
}

func TestIteratorEmptyList(t *testing.T) {
	l := New()
	it := l.Iterator()
	assert.False(t, it.Begin())
	it.End()

	require.True(t, l.mu.TryLock())
	l.mu.Unlock()
}

func TestIteratorColors(t *testing.T) {
	l := New()
	l.SetPalette(Palette{
		LevelError: {Fg: core.ColorWhite, Bg: core.ColorRed},
		LevelInfo:  {Fg: core.ColorDefault, Bg: core.ColorDefault},
	})
	l.Add(LevelError, "e")
	l.Add(LevelInfo, "i")
	l.Add(LevelDebug, "d")

	got := walk(t, l.Iterator())
	require.Len(t, got, 3)
	assert.Equal(t, textview.ColorFg|textview.ColorBg, got[0].mask)
	assert.Equal(t, textview.ColorMask(0), got[1].mask)
	assert.Equal(t, textview.ColorMask(0), got[2].mask, "levels missing from the palette use the theme")
}

func TestEmptyMessageIsBlankLine(t *testing.T) {
	l := New()
	l.Add(LevelInfo, "")

	got := walk(t, l.Iterator())
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].text)
}

func TestDrawPicksReport(t *testing.T) {
	l := New()
	l.Add(LevelInfo, "hello")
	target := l.Add(LevelError, "line one\nline two")
	g := textview.NewGeometry(40, 10, 1, 1, 0)

	res := textview.Draw(g, l.Iterator(), textview.Options{Pointer: &core.Point{X: 5, Y: 2}})

	require.NotNil(t, res.Pick)
	assert.Same(t, target, res.Pick.Handle)
	assert.Equal(t, 1, res.Pick.Index)
	assert.Equal(t, 6+9+5, res.Pick.Offset)

	c := &recorder{}
	textview.Draw(g, l.Iterator(), textview.Options{Mode: textview.ModePaint, Canvas: c, Theme: textview.DefaultTheme()})
	assert.Equal(t, 2, c.fills, "error lines fill their background")
}

func TestClear(t *testing.T) {
	l := New()
	l.Add(LevelInfo, "x")
	l.Clear()
	assert.Equal(t, 0, l.Len())
}

type recorder struct {
	fills int
}

func (r *recorder) FillRect(core.Rect, core.Color) { r.fills++ }
func (r *recorder) DrawText(x, y int, text []rune, style core.Style) {}
