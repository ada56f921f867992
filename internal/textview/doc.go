// Package textview lays out, paints and hit-tests a line-oriented text stream
// inside a fixed-size viewport.
//
// The stream is never held by this package. A text source exposes it through
// the Iterator capability; Draw walks the entries once per call, wraps each
// into fixed-width rows, and for every row decides whether it is visible,
// whether to paint it, and whether a pointer lands on it. Measuring, painting
// and picking share the same walk, so the three can never disagree about where
// a character is.
//
// Architecture:
//
//	┌──────────────────────────────────────────┐
//	│        View (scroll, selection)          │
//	├──────────────────────────────────────────┤
//	│  Draw: wrap │ clip │ paint │ hit test    │
//	├─────────────────────┬────────────────────┤
//	│  Iterator (source)  │  Canvas (surface)  │
//	└─────────────────────┴────────────────────┘
//
// Usage:
//
//	g := textview.Geometry{RowHeight: 1, CellWidth: 1, Columns: 80, WidthPixels: 80, YMax: 24}
//	res := textview.Draw(g, buf.Iterator(), textview.Options{Mode: textview.ModePaint | textview.ModeHeight, Canvas: canvas})
//	_ = res.Height
package textview
