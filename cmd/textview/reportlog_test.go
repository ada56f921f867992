package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textview/internal/source/reports"
)

func TestParseReports(t *testing.T) {
	in := strings.Join([]string{
		"preamble",
		"warning: disk at 91%",
		"ERROR: build failed",
		"  main.go:3: undefined: x",
		"debug:no space",
		"note: not a level",
	}, "\n")

	list := reports.New()
	require.NoError(t, parseReports(strings.NewReader(in), list))
	require.Equal(t, 4, list.Len())

	var got []string
	it := list.Iterator()
	require.True(t, it.Begin())
	for {
		r := it.Cursor().Handle.(*reports.Report)
		got = append(got, r.Level.String()+"|"+string(it.LineGet()))
		if !it.Step() {
			break
		}
	}
	it.End()

	assert.Equal(t, []string{
		"info|preamble",
		"warning|disk at 91%",
		"error|build failed",
		"error|  main.go:3: undefined: x",
		"debug|no space",
		"debug|note: not a level",
	}, got)
}

func TestSplitLevel(t *testing.T) {
	l, text, ok := splitLevel("warn: low")
	assert.True(t, ok)
	assert.Equal(t, reports.LevelWarning, l)
	assert.Equal(t, "low", text)

	_, _, ok = splitLevel("see: here")
	assert.False(t, ok)
	_, _, ok = splitLevel("main.go:3: error")
	assert.False(t, ok)
	_, _, ok = splitLevel("no colon")
	assert.False(t, ok)
}
