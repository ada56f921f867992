// Package app runs the interactive viewer. It owns the backend, the text
// view and the status line, and turns surface events into view operations.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/dshills/textview/internal/renderer/backend"
	"github.com/dshills/textview/internal/renderer/statusline"
	"github.com/dshills/textview/internal/textview"
)

// Options configures the application.
type Options struct {
	// Name is shown in the status line.
	Name string

	// Source is the text being viewed. It is only traversed from the
	// goroutine running Run.
	Source textview.Iterator

	// View configures the text view. Its logger is replaced by Logger.
	View textview.ViewOptions

	Logger *slog.Logger
}

// Application is the viewer's main loop.
type Application struct {
	backend backend.Backend
	source  textview.Iterator
	view    *textview.View
	canvas  *textview.BackendCanvas
	status  *statusline.StatusLine
	log     *slog.Logger

	cellWidth int
	rowHeight int
	textRows  int

	clicks  *clickTracker
	pressed bool
	now     func() time.Time

	running   atomic.Bool
	started   chan struct{}
	startOnce sync.Once
	done      chan struct{}
	closeOnce sync.Once
}

// New creates an application drawing on b.
func New(b backend.Backend, opts Options) (*Application, error) {
	if b == nil {
		return nil, ErrNoBackend
	}
	if opts.Source == nil {
		return nil, ErrNoSource
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	vo := opts.View
	vo.Logger = log

	app := &Application{
		backend:   b,
		source:    opts.Source,
		view:      textview.NewView(vo),
		status:    statusline.New(),
		log:       log,
		cellWidth: max(vo.CellWidth, 1),
		rowHeight: max(vo.RowHeight, 1),
		clicks:    newClickTracker(multiClickTime, multiClickDistance),
		now:       time.Now,
		started:   make(chan struct{}),
		done:      make(chan struct{}),
	}
	app.canvas = textview.NewBackendCanvas(b, app.cellWidth, app.rowHeight)
	app.status.SetName(opts.Name)
	return app, nil
}

// View returns the text view.
func (app *Application) View() *textview.View {
	return app.view
}

// Status returns the status line.
func (app *Application) Status() *statusline.StatusLine {
	return app.status
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// RequestRedraw wakes the main loop so that it repaints. It is safe to call
// from any goroutine.
func (app *Application) RequestRedraw() {
	app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
}

// Started is closed once Run has initialized the backend. From then on
// RequestRedraw reaches the event loop.
func (app *Application) Started() <-chan struct{} {
	return app.started
}

// Quit asks Run to return. It is safe to call from any goroutine and more
// than once.
func (app *Application) Quit() {
	app.closeOnce.Do(func() { close(app.done) })
	app.RequestRedraw()
}

// Run initializes the backend and processes events until the user quits,
// Quit is called, or ctx is done. A normal exit returns nil.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()
	app.startOnce.Do(func() { close(app.started) })

	app.resize(app.backend.Size())
	app.Render()

	stop := make(chan struct{})
	defer close(stop)
	events := make(chan backend.Event)
	go app.poll(events, stop)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-app.done:
			return nil
		case ev := <-events:
			if ev.Type == backend.EventClosed {
				return nil
			}
			if err := app.HandleEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
			app.Render()
		}
	}
}

// poll forwards backend events until the surface closes or stop is closed.
func (app *Application) poll(events chan<- backend.Event, stop <-chan struct{}) {
	for {
		ev := app.backend.PollEvent()
		select {
		case events <- ev:
		case <-stop:
			return
		}
		if ev.Type == backend.EventClosed {
			return
		}
	}
}

// resize fits the view to a surface of w x h cells, keeping the last row for
// the status line.
func (app *Application) resize(w, h int) {
	app.textRows = max(h-1, 0)
	app.view.Resize(w*app.cellWidth, app.textRows*app.rowHeight)
	app.status.Resize(w)
	app.log.Debug("app: resized", "cols", w, "rows", h)
}

// Render repaints the whole surface.
func (app *Application) Render() {
	_, h := app.backend.Size()

	app.backend.Clear()
	res := app.view.Render(app.source, app.canvas)
	if res.Err != nil {
		app.log.Warn("app: source fault", "err", res.Err)
		app.status.SetMessage(res.Err.Error(), statusline.MessageError)
	}

	app.updateStatus()
	if h > 0 {
		app.status.Render(app.backend, h-1)
	}
	app.backend.Show()
}

func (app *Application) updateStatus() {
	v := app.view
	switch {
	case v.Selecting():
		app.status.SetMode(statusline.ModeSelect)
	case v.Following():
		app.status.SetMode(statusline.ModeFollow)
	default:
		app.status.SetMode(statusline.ModeView)
	}

	// The figure matches what a copy would put on the clipboard.
	selected := 0
	if !v.Selection().IsEmpty() {
		selected = utf8.RuneCountInString(v.SelectedText(app.source))
	}
	app.status.SetSelected(selected)

	_, vh := v.Size()
	app.status.SetScroll(v.ScrollFraction(), v.Scroll() == 0, v.Scroll()+vh >= v.ContentHeight())
}
