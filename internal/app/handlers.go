package app

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/textview/internal/renderer/backend"
	"github.com/dshills/textview/internal/renderer/statusline"
)

// wheelRows is how far one wheel notch scrolls.
const wheelRows = 3

// HandleEvent applies one surface event to the view. It returns ErrQuit
// when the user asked to leave.
func (app *Application) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.resize(ev.Width, ev.Height)
		return nil
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		app.handleMouseEvent(ev)
		return nil
	default:
		return nil
	}
}

func (app *Application) handleKeyEvent(ev backend.Event) error {
	v := app.view
	app.status.ClearMessage()

	switch ev.Key {
	case backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyEscape:
		v.ClearSelection()
	case backend.KeyUp:
		v.ScrollRows(-1)
	case backend.KeyDown, backend.KeyEnter:
		v.ScrollRows(1)
	case backend.KeyPageUp:
		v.PageUp()
	case backend.KeyPageDown:
		v.PageDown()
	case backend.KeyHome:
		v.ScrollToStart()
	case backend.KeyEnd:
		v.ScrollToEnd()
	case backend.KeyCtrlL:
		app.log.Debug("app: full redraw requested")
	case backend.KeyCtrlY:
		app.copySelection()
	case backend.KeyRune:
		return app.handleRune(ev.Rune)
	}
	return nil
}

func (app *Application) handleRune(r rune) error {
	v := app.view
	switch r {
	case 'q':
		return ErrQuit
	case 'j':
		v.ScrollRows(1)
	case 'k':
		v.ScrollRows(-1)
	case ' ', 'f':
		v.PageDown()
	case 'b':
		v.PageUp()
	case 'g':
		v.ScrollToStart()
	case 'G', 'F':
		v.ScrollToEnd()
	case 'y':
		app.copySelection()
	}
	return nil
}

// handleMouseEvent drives selection and wheel scrolling. A press starts a
// drag, a double click selects a word and a triple click a whole entry.
// Coordinates arrive in cells and are converted to view pixels.
func (app *Application) handleMouseEvent(ev backend.Event) {
	v := app.view

	switch ev.MouseButton {
	case backend.MouseWheelUp:
		v.ScrollRows(-wheelRows)

	case backend.MouseWheelDown:
		v.ScrollRows(wheelRows)

	case backend.MouseLeft:
		row := ev.MouseY
		if app.pressed {
			if !v.Selecting() {
				return
			}
			// Dragging past an edge scrolls and keeps extending.
			if row < 0 {
				v.ScrollRows(-1)
				row = 0
			} else if row >= app.textRows {
				v.ScrollRows(1)
				row = app.textRows - 1
			}
			v.ExtendSelect(app.source, ev.MouseX*app.cellWidth, row*app.rowHeight)
			return
		}

		app.pressed = true
		if row < 0 || row >= app.textRows {
			app.clicks.reset()
			return
		}
		x, y := ev.MouseX*app.cellWidth, row*app.rowHeight
		switch app.clicks.record(ev.MouseX, row, app.now()) {
		case 2:
			v.SelectWordAt(app.source, x, y)
		case 3:
			v.SelectEntryAt(app.source, x, y)
		default:
			v.BeginSelect(app.source, x, y)
		}

	case backend.MouseNone:
		app.pressed = false
		if v.Selecting() {
			v.EndSelect()
			if v.Selection().IsEmpty() {
				v.ClearSelection()
			}
		}
	}
}

// copySelection puts the selected text on the clipboard, if the backend has
// one, and reports the outcome in the status line.
func (app *Application) copySelection() {
	text := app.view.SelectedText(app.source)
	if text == "" {
		app.status.SetMessage("nothing selected", statusline.MessageWarning)
		return
	}

	clip, ok := app.backend.(backend.Clipboard)
	if !ok {
		app.status.SetMessage("clipboard not available", statusline.MessageWarning)
		return
	}
	clip.SetClipboard(text)

	n := utf8.RuneCountInString(text)
	app.log.Debug("app: copied selection", "chars", n)
	app.status.SetMessage(fmt.Sprintf("copied %d characters", n), statusline.MessageInfo)
}
