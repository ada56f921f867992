package main

import (
	"io"
	"strings"

	"github.com/dshills/textview/internal/source/reports"
)

// parseReports reads "level: message" lines into list. A line without a
// known level prefix continues the previous report; before the first report
// it becomes an info report of its own.
func parseReports(r io.Reader, list *reports.List) error {
	var (
		level   reports.Level
		message []string
	)
	flush := func() {
		if message != nil {
			list.Add(level, strings.Join(message, "\n"))
			message = nil
		}
	}

	sc := newLineScanner(r)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if l, text, ok := splitLevel(line); ok {
			flush()
			level, message = l, []string{text}
			continue
		}
		if message == nil {
			level = reports.LevelInfo
		}
		message = append(message, line)
	}
	flush()
	return sc.Err()
}

func splitLevel(line string) (reports.Level, string, bool) {
	prefix, text, found := strings.Cut(line, ":")
	if !found || strings.ContainsAny(prefix, " \t") {
		return 0, "", false
	}
	l, err := reports.ParseLevel(prefix)
	if err != nil {
		return 0, "", false
	}
	return l, strings.TrimPrefix(text, " "), true
}
