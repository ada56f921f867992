package main

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// maxLineBytes bounds a single line read from a stream. Longer lines are
// split into pieces of at most this size.
const maxLineBytes = 1 << 20

// newLineScanner returns a scanner over r that never fails on long lines.
func newLineScanner(r io.Reader) *bufio.Scanner {
	return lineScanner(r, maxLineBytes)
}

func lineScanner(r io.Reader, limit int) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(limit, 64*1024)), limit+2)
	sc.Split(splitLines(limit))
	return sc
}

// splitLines works like bufio.ScanLines, but when the buffer fills up
// without a line ending it hands out the first limit bytes as a line, cut on
// a rune boundary. The buffer holds limit+2 bytes so that a line of exactly
// limit bytes still ends with its "\r\n".
func splitLines(limit int) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		advance, token, err := bufio.ScanLines(data, atEOF)
		if advance > 0 || token != nil || err != nil || len(data) < limit+2 {
			return advance, token, err
		}

		n := limit
		i := n - 1
		for i > 0 && !utf8.RuneStart(data[i]) {
			i--
		}
		if i > 0 && !utf8.FullRune(data[i:n]) {
			n = i
		}
		return n, data[:n], nil
	}
}
