// Package reports keeps a list of timestamped, leveled messages and exposes
// them to the textview driver, one entry per message line.
package reports

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/textview/internal/renderer/core"
)

// ErrUnknownLevel is returned when a level name cannot be parsed.
var ErrUnknownLevel = errors.New("unknown report level")

// Level is a report severity. Levels are bit flags so that a filter can be a
// set of them.
type Level uint8

const (
	LevelDebug Level = 1 << iota
	LevelInfo
	LevelOperator
	LevelWarning
	LevelError

	// LevelAll matches every level.
	LevelAll = LevelDebug | LevelInfo | LevelOperator | LevelWarning | LevelError
)

// String returns the level's name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelOperator:
		return "operator"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("Level(%d)", uint8(l))
	}
}

// ParseLevel parses a level name.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "operator":
		return LevelOperator, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
}

// ParseFilter combines level names into a filter mask. An empty list
// matches every level.
func ParseFilter(names []string) (Level, error) {
	if len(names) == 0 {
		return LevelAll, nil
	}
	var mask Level
	for _, n := range names {
		l, err := ParseLevel(n)
		if err != nil {
			return 0, err
		}
		mask |= l
	}
	return mask, nil
}

// Report is one message.
type Report struct {
	ID      uuid.UUID
	Level   Level
	Message string
	Time    time.Time

	lines [][]rune
}

// Lines returns the number of display entries the report occupies.
func (r *Report) Lines() int {
	return len(r.lines)
}

// Colors is the pair of colors used for one level. Default colors are left
// to the theme.
type Colors struct {
	Fg, Bg core.Color
}

// Palette maps levels to colors.
type Palette map[Level]Colors

// DefaultPalette returns the built-in level colors.
func DefaultPalette() Palette {
	return Palette{
		LevelDebug:    {Fg: core.ColorFromIndex(8), Bg: core.ColorDefault},
		LevelInfo:     {Fg: core.ColorDefault, Bg: core.ColorDefault},
		LevelOperator: {Fg: core.ColorFromIndex(2), Bg: core.ColorDefault},
		LevelWarning:  {Fg: core.ColorFromIndex(0), Bg: core.ColorFromIndex(3)},
		LevelError:    {Fg: core.ColorFromIndex(15), Bg: core.ColorFromIndex(1)},
	}
}

// List is an append-only list of reports with a level filter. It is safe
// for concurrent use; an Iterator holds the read lock from Begin until End.
type List struct {
	mu      sync.RWMutex
	reports []*Report
	filter  Level
	palette Palette
	now     func() time.Time
}

// New creates an empty list showing every level.
func New() *List {
	return &List{
		filter:  LevelAll,
		palette: DefaultPalette(),
		now:     time.Now,
	}
}

// Add appends a report and returns it.
func (l *List) Add(level Level, message string) *Report {
	r := &Report{
		ID:      uuid.New(),
		Level:   level,
		Message: message,
	}
	for _, line := range strings.Split(message, "\n") {
		r.lines = append(r.lines, []rune(line))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	r.Time = l.now()
	l.reports = append(l.reports, r)
	return r
}

// Addf appends a formatted report.
func (l *List) Addf(level Level, format string, args ...any) *Report {
	return l.Add(level, fmt.Sprintf(format, args...))
}

// Find returns the report with the given ID.
func (l *List) Find(id uuid.UUID) (*Report, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, r := range l.reports {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// Len returns the number of reports, including filtered ones.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.reports)
}

// Clear removes every report.
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reports = nil
}

// SetFilter limits traversal to reports whose level is in mask.
func (l *List) SetFilter(mask Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filter = mask
}

// Filter returns the current filter mask.
func (l *List) Filter() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.filter
}

// SetPalette replaces the level colors.
func (l *List) SetPalette(p Palette) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.palette = p
}

// Iterator returns a new traversal over the visible reports, oldest first.
func (l *List) Iterator() *Iterator {
	return &Iterator{l: l}
}
