package textview

import (
	"slices"
	"strings"
	"unicode"
)

// SelectedText walks it once and returns the characters covered by sel.
// A selected separator becomes '\n', except the one after the last entry.
// The walk stops at the first entry that starts past the selection.
func SelectedText(it Iterator, sel Selection) string {
	sel = sel.Normalize()
	if it == nil || sel.IsEmpty() {
		return ""
	}

	ok := it.Begin()
	defer it.End()
	if !ok {
		return ""
	}

	var sb strings.Builder
	newline := false
	for {
		if newline {
			sb.WriteByte('\n')
			newline = false
		}
		cur := it.Cursor()
		if cur.EntryStart >= sel.End {
			break
		}
		text := it.LineGet()
		if from, to, hit := sel.clip(cur.EntryStart, len(text)); hit {
			sb.WriteString(string(text[from:to]))
		}
		newline = sel.Contains(cur.EntryStart + len(text))
		if !it.Step() {
			break
		}
	}
	return sb.String()
}

// EntryAt walks it to the entry holding offset and returns its cursor and a
// copy of its text. The separator after an entry counts as part of it.
func EntryAt(it Iterator, offset int) (Cursor, []rune, bool) {
	if it == nil || offset < 0 {
		return Cursor{}, nil, false
	}

	ok := it.Begin()
	defer it.End()
	if !ok {
		return Cursor{}, nil, false
	}

	for {
		cur := it.Cursor()
		if cur.EntryStart > offset {
			return Cursor{}, nil, false
		}
		if offset <= cur.EntryEnd {
			return cur, slices.Clone(it.LineGet()), true
		}
		if !it.Step() {
			return Cursor{}, nil, false
		}
	}
}

// WordAt returns the selection covering the word around offset. A word is a
// run of letters, digits and underscores; any other character is selected on
// its own. An offset past the end of the entry selects nothing.
func WordAt(it Iterator, offset int) Selection {
	cur, text, ok := EntryAt(it, offset)
	if !ok {
		return Selection{}
	}
	i := offset - cur.EntryStart
	if i >= len(text) {
		return Selection{Start: offset, End: offset}
	}
	if !isWordRune(text[i]) {
		return Selection{Start: offset, End: offset + 1}
	}

	from, to := i, i+1
	for from > 0 && isWordRune(text[from-1]) {
		from--
	}
	for to < len(text) && isWordRune(text[to]) {
		to++
	}
	return Selection{Start: cur.EntryStart + from, End: cur.EntryStart + to}
}

// EntrySpan returns the selection covering the whole entry around offset,
// without its separator.
func EntrySpan(it Iterator, offset int) Selection {
	cur, _, ok := EntryAt(it, offset)
	if !ok {
		return Selection{}
	}
	return Selection{Start: cur.EntryStart, End: cur.EntryEnd}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
