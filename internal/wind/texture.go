package wind

import (
	"bytes"
	"image"
	"image/png"
	"math"
)

// Texture is a wind grid quantized to 8 bits per component: U in one
// channel, V in the other, each rescaled against the grid's own range. The
// min/max metadata is mandatory output — without it the texture cannot be
// decoded. Quantization is lossy by design (round-trip error is at most
// range/255 per channel) in exchange for any-decoder compatibility.
type Texture struct {
	Width, Height int
	ChannelU      []uint8
	ChannelV      []uint8
	UMin, UMax    float64
	VMin, VMax    float64
}

// EncodeTexture packs a grid into a Texture. A degenerate range (all
// values identical) encodes as 0 for every cell rather than dividing by
// zero.
func EncodeTexture(g *Grid) *Texture {
	n := len(g.U)
	t := &Texture{
		Width:    g.Width,
		Height:   g.Height,
		ChannelU: make([]uint8, n),
		ChannelV: make([]uint8, n),
		UMin:     g.UMin,
		UMax:     g.UMax,
		VMin:     g.VMin,
		VMax:     g.VMax,
	}
	for i := 0; i < n; i++ {
		t.ChannelU[i] = quantize(g.U[i], g.UMin, g.UMax)
		t.ChannelV[i] = quantize(g.V[i], g.VMin, g.VMax)
	}
	return t
}

func quantize(value, min, max float64) uint8 {
	if max == min {
		return 0
	}
	q := math.Round((value - min) / (max - min) * 255)
	if q < 0 {
		q = 0
	} else if q > 255 {
		q = 255
	}
	return uint8(q)
}

// DecodeU recovers the U component of cell i within quantization error.
func (t *Texture) DecodeU(i int) float64 {
	return t.UMin + float64(t.ChannelU[i])/255*(t.UMax-t.UMin)
}

// DecodeV recovers the V component of cell i within quantization error.
func (t *Texture) DecodeV(i int) float64 {
	return t.VMin + float64(t.ChannelV[i])/255*(t.VMax-t.VMin)
}

// Image packs the texture into a four-channel raster as the particle
// renderer expects it: RGBA = (u, v, 0, 255).
func (t *Texture) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	for i := range t.ChannelU {
		off := i * 4
		img.Pix[off] = t.ChannelU[i]
		img.Pix[off+1] = t.ChannelV[i]
		img.Pix[off+2] = 0
		img.Pix[off+3] = 255
	}
	return img
}

// PNG encodes the four-channel raster to PNG bytes.
func (t *Texture) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, t.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
