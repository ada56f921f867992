package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/textview/internal/app"
	"github.com/dshills/textview/internal/config"
	"github.com/dshills/textview/internal/renderer/backend"
	"github.com/dshills/textview/internal/source/follow"
	"github.com/dshills/textview/internal/source/reports"
	"github.com/dshills/textview/internal/source/scrollback"
	"github.com/dshills/textview/internal/textview"
)

func run(ctx context.Context, opts cliOptions, path string) error {
	log, closeLog, err := openLog(opts.LogFile, opts.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(log)

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}

	s, err := openSession(term, opts, cfg, log, path)
	if err != nil {
		return err
	}
	return s.Run(ctx)
}

// session is one viewer run: the application and, when following, the
// follower feeding its buffer.
type session struct {
	app      *app.Application
	buf      *scrollback.Buffer
	follower *follow.Follower
	log      *slog.Logger
}

// openSession loads the input named by path (standard input when empty) and
// creates the application drawing on b.
func openSession(b backend.Backend, opts cliOptions, cfg *config.Config, log *slog.Logger, path string) (*session, error) {
	if opts.Follow && path == "" {
		return nil, errors.New("--follow needs a file")
	}

	name := "[stdin]"
	if path != "" {
		name = filepath.Base(path)
	}

	s := &session{log: log}
	var source textview.Iterator
	switch {
	case opts.Reports:
		list, err := readReports(path, cfg)
		if err != nil {
			return nil, err
		}
		log.Info("loaded reports", "count", list.Len(), "filter", list.Filter())
		source = list.Iterator()

	default:
		kind, err := scrollback.ParseKind(opts.Kind)
		if err != nil {
			return nil, err
		}
		s.buf = scrollback.New(cfg.Scrollback.Capacity)
		s.buf.SetPalette(cfg.ScrollbackPalette())
		s.buf.SetTabWidth(cfg.View.TabWidth)

		if path == "" {
			if err := readLines(os.Stdin, s.buf, kind); err != nil {
				return nil, fmt.Errorf("reading stdin: %w", err)
			}
		} else {
			f, err := follow.New(path, s.buf,
				follow.WithKind(kind),
				follow.WithLogger(log),
				follow.WithOnChange(s.redraw),
			)
			if err != nil {
				return nil, err
			}
			if opts.Follow {
				s.follower = f
			} else {
				n, err := f.Sync()
				f.Flush()
				_ = f.Close()
				if err != nil {
					return nil, err
				}
				log.Info("loaded file", "path", f.Path(), "lines", n)
			}
		}
		source = s.buf.Iterator()
	}

	application, err := app.New(b, app.Options{
		Name:   name,
		Source: source,
		View:   cfg.ViewOptions(opts.Follow),
		Logger: log,
	})
	if err != nil {
		if s.follower != nil {
			_ = s.follower.Close()
		}
		return nil, err
	}
	s.app = application
	return s, nil
}

// redraw wakes the application after the follower appended lines. It is only
// registered with the follower, which starts after the application exists.
func (s *session) redraw() {
	s.app.RequestRedraw()
}

// Run runs the application until it exits. A follower is started once the
// backend is up and stopped when Run returns.
func (s *session) Run(ctx context.Context) error {
	if s.follower == nil {
		return s.app.Run(ctx)
	}
	defer s.follower.Close()

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-s.app.Started():
		case <-ctx.Done():
			return
		}
		f := s.follower
		if err := f.Run(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, follow.ErrClosed) {
			s.log.Error("follow stopped", "path", f.Path(), "err", err)
			s.buf.Append(scrollback.KindError, "follow stopped: "+err.Error())
			s.redraw()
		}
	}()
	return s.app.Run(ctx)
}

// openLog returns the logger for the run. Without a log file nothing is
// logged, since the terminal belongs to the viewer.
func openLog(path, level string) (*slog.Logger, func(), error) {
	if path == "" {
		return app.NewLogger(nil, 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return app.NewLogger(f, app.ParseLogLevel(level)), func() { _ = f.Close() }, nil
}

// loadConfig reads an explicit config file, or the per-user one if present.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(config.WithFile(path, true))
	}
	return config.Load(config.WithFile(config.DefaultPath(), false))
}

// readLines appends every line of r to buf.
func readLines(r io.Reader, buf *scrollback.Buffer, kind scrollback.Kind) error {
	sc := newLineScanner(r)
	for sc.Scan() {
		buf.Append(kind, sc.Text())
	}
	return sc.Err()
}

// readReports parses a report log from path, or standard input when path is
// empty.
func readReports(path string, cfg *config.Config) (*reports.List, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	filter, err := cfg.ReportFilter()
	if err != nil {
		return nil, err
	}
	list := reports.New()
	list.SetPalette(cfg.ReportPalette())
	list.SetFilter(filter)

	if err := parseReports(r, list); err != nil {
		return nil, fmt.Errorf("reading reports: %w", err)
	}
	return list, nil
}
