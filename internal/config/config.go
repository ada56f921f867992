// Package config loads textview settings.
//
// Settings come from three layers, lowest priority first: built-in
// defaults, a TOML or YAML file, and TEXTVIEW_* environment variables. The
// merged result is decoded into Config and validated.
//
// Example config file:
//
//	[view]
//	row_height = 1
//	cell_width = 1
//	tab_width = 4
//
//	[theme]
//	foreground = "#d0d0d0"
//	selection_bg = "#264f78"
//	error = "#f44747"
//
//	[scrollback]
//	capacity = 10000
//
//	[reports]
//	filter = ["info", "warning", "error"]
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/textview/internal/config/loader"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "TEXTVIEW_"

// Config is the complete set of settings.
type Config struct {
	View       ViewConfig       `toml:"view"`
	Theme      ThemeConfig      `toml:"theme"`
	Scrollback ScrollbackConfig `toml:"scrollback"`
	Reports    ReportsConfig    `toml:"reports"`
}

// ViewConfig sizes the text grid. On a terminal a cell is 1x1.
type ViewConfig struct {
	RowHeight int `toml:"row_height"`
	CellWidth int `toml:"cell_width"`
	TabWidth  int `toml:"tab_width"`
}

// ThemeConfig holds colors as hex strings. Empty means the terminal default.
type ThemeConfig struct {
	Foreground  string `toml:"foreground"`
	Background  string `toml:"background"`
	SelectionFg string `toml:"selection_fg"`
	SelectionBg string `toml:"selection_bg"`
	Info        string `toml:"info"`
	Error       string `toml:"error"`
	Input       string `toml:"input"`
}

// ScrollbackConfig bounds the scrollback ring.
type ScrollbackConfig struct {
	Capacity int `toml:"capacity"`
}

// ReportsConfig selects which report levels are shown.
type ReportsConfig struct {
	Filter []string `toml:"filter"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		View: ViewConfig{
			RowHeight: 1,
			CellWidth: 1,
			TabWidth:  4,
		},
		Theme: ThemeConfig{
			Info:  "#569cd6",
			Error: "#f44747",
			Input: "#4ec9b0",
		},
		Scrollback: ScrollbackConfig{
			Capacity: 10000,
		},
		Reports: ReportsConfig{
			Filter: []string{"info", "operator", "warning", "error"},
		},
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs        loader.FileSystem
	path      string
	required  bool
	envPrefix string
	env       bool
}

// WithFile reads settings from path. A missing file is an error only when
// required is set.
func WithFile(path string, required bool) Option {
	return func(o *options) {
		o.path = path
		o.required = required
	}
}

// WithFS reads config files through fsys instead of the OS.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnv enables or disables environment overrides.
func WithEnv(enable bool) Option {
	return func(o *options) {
		o.env = enable
	}
}

// WithEnvPrefix changes the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "textview", "config.toml")
	}
	return ""
}

// Load builds a Config from the defaults, the config file and the
// environment, then validates it.
func Load(opts ...Option) (*Config, error) {
	o := options{
		fs:        loader.DefaultFS(),
		envPrefix: EnvPrefix,
		env:       true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	merged := make(map[string]any)

	if o.path != "" {
		fileConfig, err := loader.ForPath(o.fs, o.path).Load()
		if err != nil {
			return nil, err
		}
		if fileConfig == nil && o.required {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, o.path)
		}
		merged = loader.DeepMerge(merged, fileConfig)
	}

	if o.env {
		envConfig, err := loader.NewEnvLoader(o.envPrefix).Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, envConfig)
	}

	cfg, err := decode(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode lays the merged map over the defaults. The map is re-encoded so
// that go-toml applies its own type conversions and rejects unknown keys.
func decode(merged map[string]any) (*Config, error) {
	cfg := Default()
	if len(merged) == 0 {
		return cfg, nil
	}

	data, err := toml.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encoding merged config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, &ValidationError{
				Path:    "config",
				Message: "unknown setting",
				Value:   strict.String(),
			}
		}
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	var errs []error

	if c.View.RowHeight < 1 {
		errs = append(errs, invalid("view.row_height", c.View.RowHeight, "must be at least 1"))
	}
	if c.View.CellWidth < 1 {
		errs = append(errs, invalid("view.cell_width", c.View.CellWidth, "must be at least 1"))
	}
	if c.View.TabWidth < 1 || c.View.TabWidth > 16 {
		errs = append(errs, invalid("view.tab_width", c.View.TabWidth, "must be between 1 and 16"))
	}
	if c.Scrollback.Capacity < 1 {
		errs = append(errs, invalid("scrollback.capacity", c.Scrollback.Capacity, "must be at least 1"))
	}

	for _, f := range c.Theme.fields() {
		if f.value == "" {
			continue
		}
		if _, err := parseColor(f.value); err != nil {
			errs = append(errs, invalid("theme."+f.name, f.value, "not a hex color"))
		}
	}

	if _, err := c.ReportFilter(); err != nil {
		errs = append(errs, invalid("reports.filter", c.Reports.Filter, "%v", err))
	}

	return errors.Join(errs...)
}

type themeField struct {
	name  string
	value string
}

func (t ThemeConfig) fields() []themeField {
	return []themeField{
		{"foreground", t.Foreground},
		{"background", t.Background},
		{"selection_fg", t.SelectionFg},
		{"selection_bg", t.SelectionBg},
		{"info", t.Info},
		{"error", t.Error},
		{"input", t.Input},
	}
}
