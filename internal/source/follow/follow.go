// Package follow tails a file into a scrollback buffer.
//
// A Follower watches the file's directory with fsnotify so that it notices
// writes as well as truncation and replacement (log rotation). Complete
// lines are appended to the buffer as they arrive; a trailing partial line
// is held back until its newline shows up.
package follow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/textview/internal/source/scrollback"
)

// Errors returned by Follower.
var (
	ErrClosed     = errors.New("follower closed")
	ErrNotRegular = errors.New("not a regular file")
)

// Option configures a Follower.
type Option func(*Follower)

// WithKind sets the scrollback kind of appended lines.
func WithKind(k scrollback.Kind) Option {
	return func(f *Follower) { f.kind = k }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Follower) {
		if l != nil {
			f.log = l
		}
	}
}

// WithOnChange registers a callback run after new lines were appended. It is
// called from the goroutine running Run and must not block.
func WithOnChange(fn func()) Option {
	return func(f *Follower) { f.onChange = fn }
}

// Follower appends the lines of a growing file to a scrollback buffer.
type Follower struct {
	path     string
	buf      *scrollback.Buffer
	kind     scrollback.Kind
	log      *slog.Logger
	onChange func()

	mu      sync.Mutex
	offset  int64
	partial []byte
	watcher *fsnotify.Watcher
	closed  bool
}

// New creates a follower for path. The file does not have to exist yet.
func New(path string, buf *scrollback.Buffer, opts ...Option) (*Follower, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("follow %s: %w", path, err)
	}
	f := &Follower{
		path: abs,
		buf:  buf,
		kind: scrollback.KindOutput,
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Path returns the absolute path being followed.
func (f *Follower) Path() string {
	return f.path
}

// Sync reads whatever was appended since the last call and returns the
// number of complete lines added to the buffer. A file that shrank is read
// again from the start; a missing file is not an error.
func (f *Follower) Sync() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, ErrClosed
	}
	return f.syncLocked()
}

func (f *Follower) syncLocked() (int, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("follow %s: %w", f.path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, fmt.Errorf("follow %s: %w", f.path, err)
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("follow %s: %w", f.path, ErrNotRegular)
	}

	if info.Size() < f.offset {
		f.log.Info("follow: file truncated, rereading", "path", f.path,
			"offset", f.offset, "size", info.Size())
		f.buf.Append(scrollback.KindInfo, fmt.Sprintf("-- %s truncated --", filepath.Base(f.path)))
		f.offset = 0
		f.partial = nil
	}
	if info.Size() == f.offset {
		return 0, nil
	}

	if _, err := file.Seek(f.offset, io.SeekStart); err != nil {
		return 0, fmt.Errorf("follow %s: %w", f.path, err)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return 0, fmt.Errorf("follow %s: %w", f.path, err)
	}
	f.offset += int64(len(data))

	lines := f.split(data)
	if len(lines) > 0 {
		f.buf.AppendLines(f.kind, lines)
		f.log.Debug("follow: appended lines", "path", f.path, "lines", len(lines))
	}
	return len(lines), nil
}

// split joins data to the held-back partial line and returns the complete
// lines, keeping the new remainder.
func (f *Follower) split(data []byte) []string {
	data = append(f.partial, data...)
	var lines []string
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		lines = append(lines, string(bytes.TrimSuffix(data[:i], []byte{'\r'})))
		data = data[i+1:]
	}
	f.partial = append([]byte(nil), data...)
	return lines
}

// Flush appends the held-back partial line, if any.
func (f *Follower) Flush() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.partial) == 0 {
		return false
	}
	f.buf.AppendLines(f.kind, []string{string(bytes.TrimSuffix(f.partial, []byte{'\r'}))})
	f.partial = nil
	return true
}

// Run reads the current contents, then appends new lines as the file
// changes. It returns ctx.Err() when ctx is done and ErrClosed after Close.
func (f *Follower) Run(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("follow %s: %w", f.path, err)
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		_ = w.Close()
		return ErrClosed
	}
	f.watcher = w
	f.mu.Unlock()
	defer func() { _ = w.Close() }()

	// The directory is watched so that a replaced file keeps being followed.
	if err := w.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("follow %s: %w", f.path, err)
	}
	f.update()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return ErrClosed
			}
			if filepath.Clean(ev.Name) != f.path {
				continue
			}
			f.handle(ev)

		case err, ok := <-w.Errors:
			if !ok {
				return ErrClosed
			}
			f.log.Warn("follow: watcher error", "path", f.path, "err", err)
		}
	}
}

func (f *Follower) handle(ev fsnotify.Event) {
	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		f.mu.Lock()
		f.offset = 0
		f.partial = nil
		f.mu.Unlock()
		f.log.Info("follow: file went away, waiting for it to return", "path", f.path)

	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		f.update()
	}
}

func (f *Follower) update() {
	n, err := f.Sync()
	if err != nil {
		if !errors.Is(err, ErrClosed) {
			f.log.Warn("follow: read failed", "path", f.path, "err", err)
		}
		return
	}
	if n > 0 && f.onChange != nil {
		f.onChange()
	}
}

// Close stops Run. It is safe to call more than once.
func (f *Follower) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	w := f.watcher
	f.mu.Unlock()

	if w != nil {
		return w.Close()
	}
	return nil
}
