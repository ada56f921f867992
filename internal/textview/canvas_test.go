package textview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textview/internal/renderer/backend"
	"github.com/dshills/textview/internal/renderer/core"
)

func TestBackendCanvasMapsPixelsToCells(t *testing.T) {
	b := backend.NewNullBackend(10, 4)
	require.NoError(t, b.Init())
	c := NewBackendCanvas(b, 8, 14)

	style := core.DefaultStyle().WithForeground(core.ColorRed)
	c.DrawText(16, 14, []rune("ab"), style)

	assert.Equal(t, 'a', b.GetCell(2, 1).Rune)
	assert.Equal(t, 'b', b.GetCell(3, 1).Rune)
	assert.True(t, b.GetCell(3, 1).Style.Foreground.Equals(core.ColorRed))
}

func TestBackendCanvasFillRoundsOutward(t *testing.T) {
	b := backend.NewNullBackend(10, 4)
	require.NoError(t, b.Init())
	c := NewBackendCanvas(b, 8, 14)

	c.FillRect(core.Rect{Top: 14, Left: 0, Bottom: 28, Right: 20}, core.ColorBlue)

	for x := 0; x < 3; x++ {
		assert.True(t, b.GetCell(x, 1).Style.Background.Equals(core.ColorBlue), "cell %d", x)
	}
	assert.True(t, b.GetCell(3, 1).Style.Background.IsDefault())
	assert.True(t, b.GetCell(0, 2).Style.Background.IsDefault())
}

func TestBackendCanvasOrigin(t *testing.T) {
	b := backend.NewNullBackend(10, 4)
	require.NoError(t, b.Init())
	c := NewBackendCanvas(b, 1, 1)
	c.Origin = core.Point{X: 2, Y: 1}

	c.DrawText(0, 0, []rune("z"), core.DefaultStyle())

	assert.Equal(t, 'z', b.GetCell(2, 1).Rune)
}

func TestBackendCanvasNegativeRowsClip(t *testing.T) {
	b := backend.NewNullBackend(4, 2)
	require.NoError(t, b.Init())
	c := NewBackendCanvas(b, 1, 10)

	c.DrawText(0, -5, []rune("q"), core.DefaultStyle())

	assert.NotEqual(t, 'q', b.GetCell(0, 0).Rune, "a row starting above the surface is clipped")
}

func TestDivHelpers(t *testing.T) {
	assert.Equal(t, -1, floorDiv(-5, 10))
	assert.Equal(t, 0, floorDiv(5, 10))
	assert.Equal(t, 1, ceilDiv(5, 10))
	assert.Equal(t, 2, ceilDiv(20, 10))
	assert.Equal(t, 0, ceilDiv(-5, 10))
}
