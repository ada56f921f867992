package config

import (
	"github.com/dshills/textview/internal/renderer/core"
	"github.com/dshills/textview/internal/source/reports"
	"github.com/dshills/textview/internal/source/scrollback"
	"github.com/dshills/textview/internal/textview"
)

// parseColor parses a hex color. The empty string is the default color.
func parseColor(hex string) (core.Color, error) {
	if hex == "" {
		return core.ColorDefault, nil
	}
	return core.ColorFromHex(hex)
}

// mustColor is for values Validate has already accepted.
func mustColor(hex string) core.Color {
	c, err := parseColor(hex)
	if err != nil {
		return core.ColorDefault
	}
	return c
}

// TextTheme returns the text and selection styles.
func (c *Config) TextTheme() textview.Theme {
	t := textview.Theme{
		Text: core.Style{
			Foreground: mustColor(c.Theme.Foreground),
			Background: mustColor(c.Theme.Background),
		},
	}
	if c.Theme.SelectionFg == "" && c.Theme.SelectionBg == "" {
		return t
	}

	sel := t.Text.Highlight()
	if c.Theme.SelectionFg != "" {
		sel.Foreground = mustColor(c.Theme.SelectionFg)
		sel.Attributes &^= core.AttrReverse
	}
	if c.Theme.SelectionBg != "" {
		sel.Background = mustColor(c.Theme.SelectionBg)
		sel.Attributes &^= core.AttrReverse
	}
	t.Selection = &sel
	return t
}

// ViewOptions returns the view settings, without a logger.
func (c *Config) ViewOptions(follow bool) textview.ViewOptions {
	return textview.ViewOptions{
		CellWidth: c.View.CellWidth,
		RowHeight: c.View.RowHeight,
		Theme:     c.TextTheme(),
		Follow:    follow,
	}
}

// ScrollbackPalette returns the line kind colors.
func (c *Config) ScrollbackPalette() scrollback.Palette {
	return scrollback.Palette{
		Output: mustColor(c.Theme.Foreground),
		Input:  mustColor(c.Theme.Input),
		Info:   mustColor(c.Theme.Info),
		Error:  mustColor(c.Theme.Error),
	}
}

// ReportPalette overrides the info and error levels of the built-in report
// colors with the theme's.
func (c *Config) ReportPalette() reports.Palette {
	p := reports.DefaultPalette()
	if c.Theme.Info != "" {
		p[reports.LevelInfo] = reports.Colors{Fg: mustColor(c.Theme.Info), Bg: core.ColorDefault}
	}
	if c.Theme.Error != "" {
		fg := mustColor(c.Theme.Error)
		p[reports.LevelError] = reports.Colors{Fg: fg, Bg: fg.Blend(core.ColorBlack, 0.75)}
	}
	return p
}

// ReportFilter returns the report level mask.
func (c *Config) ReportFilter() (reports.Level, error) {
	return reports.ParseFilter(c.Reports.Filter)
}
