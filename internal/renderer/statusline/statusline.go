// Package statusline draws the one-row status bar under the text view.
package statusline

import (
	"strconv"

	"github.com/dshills/textview/internal/renderer/backend"
	"github.com/dshills/textview/internal/renderer/core"
)

// Mode is the viewer state shown at the left of the bar.
type Mode int

const (
	ModeView Mode = iota
	ModeFollow
	ModeSelect
)

// String returns the label drawn for the mode.
func (m Mode) String() string {
	switch m {
	case ModeFollow:
		return "FOLLOW"
	case ModeSelect:
		return "SELECT"
	default:
		return "VIEW"
	}
}

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine renders the bottom status line.
type StatusLine struct {
	mode     Mode
	name     string
	selected int

	// scroll is the position through the content, 0..1; atTop and atBottom
	// override the percentage.
	scroll   float64
	atTop    bool
	atBottom bool

	message     string
	messageType MessageType

	modeStyles map[Mode]core.Style
	barStyle   core.Style

	width int
}

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{
		modeStyles: defaultModeStyles(),
		barStyle:   core.DefaultStyle().WithBackground(core.ColorGray).WithForeground(core.ColorWhite),
		atTop:      true,
		atBottom:   true,
	}
}

func defaultModeStyles() map[Mode]core.Style {
	bold := core.DefaultStyle()
	bold.Attributes |= core.AttrBold
	return map[Mode]core.Style{
		ModeView:   bold.WithBackground(core.ColorBlue).WithForeground(core.ColorWhite),
		ModeFollow: bold.WithBackground(core.ColorGreen).WithForeground(core.ColorBlack),
		ModeSelect: bold.WithBackground(core.ColorYellow).WithForeground(core.ColorBlack),
	}
}

// SetMode updates the displayed mode.
func (s *StatusLine) SetMode(m Mode) {
	s.mode = m
}

// SetName updates the displayed source name.
func (s *StatusLine) SetName(name string) {
	s.name = name
}

// SetSelected updates the selected character count. Zero hides it.
func (s *StatusLine) SetSelected(n int) {
	s.selected = n
}

// SetScroll updates the scroll indicator. fraction is ignored when the view
// is at the top or bottom.
func (s *StatusLine) SetScroll(fraction float64, atTop, atBottom bool) {
	s.scroll = fraction
	s.atTop = atTop
	s.atBottom = atBottom
}

// SetMessage displays a status message instead of the bar.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message.
func (s *StatusLine) Message() string {
	return s.message
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Render draws the status line to the backend at the given row.
func (s *StatusLine) Render(b backend.Backend, row int) {
	if s.message != "" {
		s.renderMessage(b, row)
		return
	}
	s.renderStatusBar(b, row)
}

func (s *StatusLine) renderStatusBar(b backend.Backend, row int) {
	b.Fill(core.Rect{Top: row, Left: 0, Bottom: row + 1, Right: s.width}, core.NewStyledCell(' ', s.barStyle))

	modeStyle, ok := s.modeStyles[s.mode]
	if !ok {
		modeStyle = s.barStyle
	}
	col := s.put(b, 0, row, " "+s.mode.String()+" ", modeStyle, s.width)
	col++

	info := s.formatPosition()
	infoStart := s.width - len(info) - 1

	name := s.name
	if name == "" {
		name = "[stdin]"
	}
	s.put(b, col, row, name, s.barStyle, infoStart-1)

	if infoStart > col {
		s.put(b, infoStart, row, info, s.barStyle, s.width)
	}
}

func (s *StatusLine) renderMessage(b backend.Backend, row int) {
	var msgStyle core.Style
	switch s.messageType {
	case MessageError:
		msgStyle = core.DefaultStyle().WithForeground(core.ColorRed)
		msgStyle.Attributes |= core.AttrBold
	case MessageWarning:
		msgStyle = core.DefaultStyle().WithForeground(core.ColorYellow)
	default:
		msgStyle = core.DefaultStyle()
	}

	b.Fill(core.Rect{Top: row, Left: 0, Bottom: row + 1, Right: s.width}, core.NewStyledCell(' ', msgStyle))
	s.put(b, 0, row, s.message, msgStyle, s.width)
}

// put draws text from col, stopping before limit, and returns the next
// column.
func (s *StatusLine) put(b backend.Backend, col, row int, text string, style core.Style, limit int) int {
	for _, r := range text {
		if col >= limit {
			break
		}
		b.SetCell(col, row, core.NewStyledCell(backend.CellRune(r), style))
		col++
	}
	return col
}

// formatPosition formats the right side: "12 sel | 50%".
func (s *StatusLine) formatPosition() string {
	var result string
	if s.selected > 0 {
		result = strconv.Itoa(s.selected) + " sel | "
	}

	switch {
	case s.atTop && s.atBottom:
		result += "All"
	case s.atTop:
		result += "Top"
	case s.atBottom:
		result += "Bot"
	default:
		result += strconv.Itoa(int(s.scroll*100)) + "%"
	}
	return result
}
