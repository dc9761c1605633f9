package heatmap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctaque/weather-app-challenge-sub002/internal/field"
	"github.com/ctaque/weather-app-challenge-sub002/internal/geo"
)

func testPainter(t *testing.T) *Painter {
	t.Helper()
	bounds := geo.Bounds{MinLat: 47, MaxLat: 49, MinLon: 1, MaxLon: 3}
	p := NewPainter(64, 64)
	p.SetProjection(geo.NewMercator(bounds, 64, 64))
	p.UpdateBounds(bounds)
	// Short influence radius so the painted disk has visible edges; cell
	// size and smoothing differences show up there.
	p.SetInfluenceRadius(0.5)
	p.SetSamples([]field.Sample{{Lat: 48, Lon: 2, Rate: 10}})
	return p
}

func hasPaintedPixel(pix []uint8) bool {
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 0 {
			return true
		}
	}
	return false
}

func TestDrawWithoutProjectionIsNoOp(t *testing.T) {
	p := NewPainter(16, 16)
	p.SetSamples([]field.Sample{{Lat: 0, Lon: 0, Rate: 50}})
	p.Draw()
	assert.False(t, hasPaintedPixel(p.Image().Pix), "draw without projection must paint nothing")
}

func TestDrawPaintsAroundSample(t *testing.T) {
	p := testPainter(t)
	p.Draw()
	require.True(t, hasPaintedPixel(p.Image().Pix), "expected painted cells near the sample")
}

func TestDrawWithNoSamplesClearsBuffer(t *testing.T) {
	p := testPainter(t)
	p.Draw()
	require.True(t, hasPaintedPixel(p.Image().Pix))

	p.SetSamples(nil)
	p.Draw()
	assert.False(t, hasPaintedPixel(p.Image().Pix), "stale pixels must be cleared on redraw")
}

func TestDrawIdempotent(t *testing.T) {
	p := testPainter(t)
	p.SetMoving(false)

	p.Draw()
	first := make([]uint8, len(p.Image().Pix))
	copy(first, p.Image().Pix)

	p.Draw()
	assert.True(t, bytes.Equal(first, p.Image().Pix), "unchanged state must produce pixel-identical output")
}

func TestMovingSkipsSmoothing(t *testing.T) {
	p := testPainter(t)
	p.Draw()
	static := make([]uint8, len(p.Image().Pix))
	copy(static, p.Image().Pix)

	p.SetMoving(true)
	p.Draw()
	moving := p.Image().Pix

	assert.False(t, bytes.Equal(static, moving), "moving draw should differ: coarser cells, no blur")
	require.True(t, hasPaintedPixel(moving))
}

func TestSettersDoNotRepaint(t *testing.T) {
	p := testPainter(t)
	p.Draw()
	before := make([]uint8, len(p.Image().Pix))
	copy(before, p.Image().Pix)

	// Setters record state only; the buffer must be untouched until Draw.
	p.SetOpacity(0.2)
	p.SetMoving(true)
	p.UpdateBounds(geo.Bounds{MinLat: 0, MaxLat: 1, MinLon: 0, MaxLon: 1})
	assert.True(t, bytes.Equal(before, p.Image().Pix))
}

func TestOpacityClamped(t *testing.T) {
	p := testPainter(t)
	p.SetOpacity(4)
	assert.Equal(t, 1.0, p.opacity)
	p.SetOpacity(-1)
	assert.Equal(t, 0.0, p.opacity)
}

func TestOffViewportCellsNotPainted(t *testing.T) {
	// Sample far outside the viewport: filtered out, nothing painted.
	p := testPainter(t)
	p.SetSamples([]field.Sample{{Lat: 20, Lon: 20, Rate: 100}})
	p.Draw()
	assert.False(t, hasPaintedPixel(p.Image().Pix))
}
