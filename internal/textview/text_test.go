package textview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectedText(t *testing.T) {
	src := newSliceSource("hello", "", "world", "tail")

	tests := []struct {
		name string
		sel  Selection
		want string
	}{
		{"within one entry", Selection{Start: 1, End: 4}, "ell"},
		{"across blank line", Selection{Start: 3, End: 10}, "lo\n\nwor"},
		{"reversed", Selection{Start: 10, End: 3}, "lo\n\nwor"},
		{"whole stream", Selection{Start: 0, End: 100}, "hello\n\nworld\ntail"},
		{"empty", Selection{Start: 4, End: 4}, ""},
		{"separator only", Selection{Start: 5, End: 6}, "\n"},
		{"starts on separator", Selection{Start: 4, End: 8}, "o\n\nw"},
		{"ends on separator", Selection{Start: 12, End: 13}, "\n"},
		{"last separator", Selection{Start: 16, End: 18}, "l"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectedText(src, tt.sel))
		})
	}
}

func TestSelectedTextLeadingSeparator(t *testing.T) {
	src := newSliceSource("a", "bc")

	assert.Equal(t, "\nbc", SelectedText(src, Selection{Start: 1, End: 4}))
	assert.Equal(t, "a\n", SelectedText(src, Selection{Start: 0, End: 2}))
}

func TestSelectedTextStopsAfterSelection(t *testing.T) {
	src := repeatSource(100, "abc")

	assert.Equal(t, "bc", SelectedText(src, Selection{Start: 1, End: 3}))
	assert.Equal(t, 1, src.calls.step, "walk stops at the first entry past the selection")
	assert.Equal(t, 1, src.calls.end)
}

func TestSelectedTextBeginFailure(t *testing.T) {
	src := newSliceSource("abc")
	src.failBegin = true

	assert.Equal(t, "", SelectedText(src, Selection{Start: 0, End: 3}))
	assert.Equal(t, 1, src.calls.end)
}

func TestEntryAt(t *testing.T) {
	src := newSliceSource("hello", "", "world")

	cur, text, ok := EntryAt(src, 8)
	assert.True(t, ok)
	assert.Equal(t, 7, cur.EntryStart)
	assert.Equal(t, "world", string(text))

	cur, _, ok = EntryAt(src, 5)
	assert.True(t, ok, "separator belongs to the entry before it")
	assert.Equal(t, 0, cur.EntryStart)

	_, _, ok = EntryAt(src, 13)
	assert.False(t, ok)
	_, _, ok = EntryAt(src, -1)
	assert.False(t, ok)
}

func TestWordAt(t *testing.T) {
	src := newSliceSource("foo bar_9, baz", "x")

	tests := []struct {
		name   string
		offset int
		want   Selection
	}{
		{"start of word", 0, Selection{Start: 0, End: 3}},
		{"inside word", 6, Selection{Start: 4, End: 9}},
		{"punctuation", 9, Selection{Start: 9, End: 10}},
		{"space", 3, Selection{Start: 3, End: 4}},
		{"past end", 14, Selection{Start: 14, End: 14}},
		{"next entry", 15, Selection{Start: 15, End: 16}},
		{"out of range", 40, Selection{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WordAt(src, tt.offset))
		})
	}
}

func TestEntrySpan(t *testing.T) {
	src := newSliceSource("hello", "world")

	assert.Equal(t, Selection{Start: 6, End: 11}, EntrySpan(src, 9))
	assert.Equal(t, Selection{}, EntrySpan(src, 99))
}
