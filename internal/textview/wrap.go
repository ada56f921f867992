package textview

// RowCount returns how many display rows an entry of length characters needs
// at the given column capacity. Empty entries take one row; an exact multiple
// of columns does not add a trailing empty row.
func RowCount(length, columns int) int {
	if columns < 1 {
		columns = 1
	}
	if length <= 0 {
		return 1
	}
	return (length + columns - 1) / columns
}

// RowSpan returns the [start, end) character window of row sub.
func RowSpan(length, columns, sub int) (start, end int) {
	if columns < 1 {
		columns = 1
	}
	start = min(sub*columns, max(length, 0))
	end = min(start+columns, max(length, 0))
	return start, end
}

// WrapRows splits text into its display rows. The returned slices alias text.
func WrapRows(text []rune, columns int) [][]rune {
	n := RowCount(len(text), columns)
	rows := make([][]rune, n)
	for i := range rows {
		start, end := RowSpan(len(text), columns, i)
		rows[i] = text[start:end:end]
	}
	return rows
}
