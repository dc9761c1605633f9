package wind

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctaque/weather-app-challenge-sub002/internal/geo"
)

func testGrid(t *testing.T) *Grid {
	t.Helper()
	bounds := geo.Bounds{MinLat: 41, MaxLat: 51, MinLon: -5, MaxLon: 10}
	return BuildGrid(Measurement{Speed: 12, DirectionFrom: 240, Gust: 18}, bounds, 0.5)
}

func TestEncodeRoundTripWithinQuantizationError(t *testing.T) {
	g := testGrid(t)
	tex := EncodeTexture(g)

	uTol := (g.UMax - g.UMin) / 255
	vTol := (g.VMax - g.VMin) / 255
	for i := range g.U {
		assert.InDelta(t, g.U[i], tex.DecodeU(i), uTol+1e-12, "cell %d U", i)
		assert.InDelta(t, g.V[i], tex.DecodeV(i), vTol+1e-12, "cell %d V", i)
	}
}

func TestEncodeExtremesHitChannelBounds(t *testing.T) {
	g := testGrid(t)
	tex := EncodeTexture(g)

	var sawZero, sawFull bool
	for _, b := range tex.ChannelU {
		if b == 0 {
			sawZero = true
		}
		if b == 255 {
			sawFull = true
		}
	}
	assert.True(t, sawZero, "UMin cell should encode to 0")
	assert.True(t, sawFull, "UMax cell should encode to 255")
}

func TestEncodeDegenerateRange(t *testing.T) {
	// All-identical components: normalized value is defined as 0, never a
	// division fault.
	g := &Grid{
		Width: 2, Height: 1,
		Lats: []float64{0, 0}, Lons: []float64{0, 1},
		U: []float64{3, 3}, V: []float64{-2, -2},
		UMin: 3, UMax: 3, VMin: -2, VMax: -2,
	}
	tex := EncodeTexture(g)

	for i := range tex.ChannelU {
		assert.Equal(t, uint8(0), tex.ChannelU[i])
		assert.Equal(t, uint8(0), tex.ChannelV[i])
	}
	// Decode stays finite as well.
	assert.Equal(t, 3.0, tex.DecodeU(0))
	assert.Equal(t, -2.0, tex.DecodeV(0))
}

func TestTexturePNGPacking(t *testing.T) {
	g := testGrid(t)
	tex := EncodeTexture(g)

	buf, err := tex.PNG()
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(buf))
	require.NoError(t, err)

	b := img.Bounds()
	require.Equal(t, tex.Width, b.Dx())
	require.Equal(t, tex.Height, b.Dy())

	// Spot-check the packing convention: R=u, G=v, B=0, A=255.
	for _, i := range []int{0, len(tex.ChannelU) / 2, len(tex.ChannelU) - 1} {
		x := b.Min.X + i%tex.Width
		y := b.Min.Y + i/tex.Width
		r, gg, bb, a := img.At(x, y).RGBA()
		assert.Equal(t, uint32(tex.ChannelU[i]), r>>8, "cell %d R", i)
		assert.Equal(t, uint32(tex.ChannelV[i]), gg>>8, "cell %d G", i)
		assert.Equal(t, uint32(0), bb>>8, "cell %d B", i)
		assert.Equal(t, uint32(255), a>>8, "cell %d A", i)
	}
}

func TestMetadataMatchesTexture(t *testing.T) {
	g := testGrid(t)
	tex := EncodeTexture(g)
	md := NewMetadata(tex, "open-meteo", "2026-08-30T12:00:00Z", nil)

	assert.Equal(t, tex.Width, md.Width)
	assert.Equal(t, tex.Height, md.Height)
	assert.Equal(t, g.UMin, md.UMin)
	assert.Equal(t, g.UMax, md.UMax)
	assert.Equal(t, g.VMin, md.VMin)
	assert.Equal(t, g.VMax, md.VMax)
	assert.NotNil(t, md.Tiles, "tiles must marshal as [] not null")
}
