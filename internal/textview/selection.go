package textview

// Selection is a half-open range [Start, End) of flattened character offsets.
// Start == End selects nothing.
type Selection struct {
	Start int
	End   int
}

// IsEmpty returns true if the selection covers no characters.
func (s Selection) IsEmpty() bool {
	return s.Start >= s.End
}

// Normalize returns the selection with Start <= End.
func (s Selection) Normalize() Selection {
	if s.Start > s.End {
		return Selection{Start: s.End, End: s.Start}
	}
	return s
}

// Contains returns true if offset is selected.
func (s Selection) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// clip returns the selected part of [base, base+n) relative to base.
func (s Selection) clip(base, n int) (from, to int, ok bool) {
	if s.IsEmpty() || n <= 0 {
		return 0, 0, false
	}
	from = max(s.Start, base) - base
	to = min(s.End, base+n) - base
	if from >= to {
		return 0, 0, false
	}
	return from, to, true
}

// Span returns the selection covering anchor and offset, whichever order
// they come in.
func Span(anchor, offset int) Selection {
	return Selection{Start: anchor, End: offset}.Normalize()
}
