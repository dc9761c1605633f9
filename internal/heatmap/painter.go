package heatmap

import (
	"image"
	"image/draw"

	"github.com/ctaque/weather-app-challenge-sub002/internal/field"
	"github.com/ctaque/weather-app-challenge-sub002/internal/geo"
)

const (
	// Cell edge in pixels for the raster scan. Coarser while the viewport
	// is moving: fewer interpolation queries per frame.
	defaultCellStatic = 8
	defaultCellMoving = 16

	// Influence radius of the interpolator in degrees; doubles as the
	// filter margin so edge cells never lose a contributing sample.
	defaultInfluence = 1.5

	defaultBlurRadius = 2
)

// Painter rasterizes a scalar sample field onto a pixel buffer. One painter
// owns one canvas; all state is explicit on the instance and setters only
// record state — nothing repaints until Draw is called, so callers can
// coalesce a burst of viewport events into a single draw.
//
// A Painter is not safe for concurrent use: Draw must not be re-entered
// while a previous Draw is running, since the scratch buffer is shared.
type Painter struct {
	proj    geo.Projection
	bounds  geo.Bounds
	samples []field.Sample

	opacity   float64
	moving    bool
	influence float64

	cellStatic int
	cellMoving int
	blurRadius int
	ramp       Ramp

	out     *image.NRGBA
	scratch *image.NRGBA
	blurTmp *image.NRGBA
}

// NewPainter creates a painter with a width x height output buffer and
// default tuning.
func NewPainter(width, height int) *Painter {
	p := &Painter{
		opacity:    1,
		influence:  defaultInfluence,
		cellStatic: defaultCellStatic,
		cellMoving: defaultCellMoving,
		blurRadius: defaultBlurRadius,
		ramp:       DefaultRamp,
	}
	p.Resize(width, height)
	return p
}

// SetProjection installs the host map's projection. Draw is a no-op until
// one is set.
func (p *Painter) SetProjection(proj geo.Projection) { p.proj = proj }

// SetSamples replaces the sample collection wholesale. The painter never
// mutates the slice.
func (p *Painter) SetSamples(samples []field.Sample) { p.samples = samples }

// SetOpacity sets the global opacity, clamped to [0, 1]. It scales every
// band's alpha on the next Draw without touching hues or thresholds.
func (p *Painter) SetOpacity(opacity float64) {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	p.opacity = opacity
}

// UpdateBounds records the current viewport bounds.
func (p *Painter) UpdateBounds(bounds geo.Bounds) { p.bounds = bounds }

// SetMoving flags that the viewport is being dragged or zoomed. While set,
// Draw trades fidelity for frame time: coarser cells, no smoothing pass.
func (p *Painter) SetMoving(moving bool) { p.moving = moving }

// SetInfluenceRadius sets the interpolation radius in degrees. The filter
// margin tracks it, which keeps edge cells correct.
func (p *Painter) SetInfluenceRadius(deg float64) {
	if deg > 0 {
		p.influence = deg
	}
}

// SetBlurRadius tunes the smoothing kernel; 0 disables smoothing entirely.
func (p *Painter) SetBlurRadius(r int) {
	if r >= 0 {
		p.blurRadius = r
	}
}

// Resize replaces the pixel buffers with new dimensions. Contents are lost.
func (p *Painter) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	rect := image.Rect(0, 0, width, height)
	p.out = image.NewNRGBA(rect)
	p.scratch = image.NewNRGBA(rect)
	p.blurTmp = image.NewNRGBA(rect)
}

// Clear blanks the output buffer.
func (p *Painter) Clear() {
	clearNRGBA(p.out)
}

// Image exposes the output buffer for display or encoding. Valid until the
// next Draw, Resize or Clear.
func (p *Painter) Image() *image.NRGBA { return p.out }

// Draw repaints the buffer from the current state: filter samples to the
// viewport plus margin, scan the raster cell by cell, unproject each cell
// center, interpolate, color, then smooth. Without a projection it does
// nothing; with no samples in range it leaves a cleared buffer.
func (p *Painter) Draw() {
	if p.proj == nil {
		return
	}

	clearNRGBA(p.out)
	clearNRGBA(p.scratch)

	visible := field.FilterByBounds(p.samples, p.bounds, p.influence)
	if len(visible) == 0 {
		return
	}

	cell := p.cellStatic
	if p.moving {
		cell = p.cellMoving
	}
	if cell < 1 {
		cell = 1
	}

	w := p.out.Rect.Dx()
	h := p.out.Rect.Dy()
	half := float64(cell) / 2

	for y := 0; y < h; y += cell {
		for x := 0; x < w; x += cell {
			lat, lon := p.proj.Unproject(float64(x)+half, float64(y)+half)
			if !p.bounds.Contains(lat, lon) {
				continue
			}

			rate := field.Estimate(lat, lon, visible, p.influence)
			if rate < VisibilityFloor {
				continue
			}

			p.fillCell(x, y, cell, rate)
		}
	}

	if p.moving || p.blurRadius == 0 {
		draw.Draw(p.out, p.out.Rect, p.scratch, image.Point{}, draw.Src)
		return
	}
	boxBlur(p.scratch, p.blurTmp, p.out, p.blurRadius)
}

func (p *Painter) fillCell(x, y, cell int, rate float64) {
	c := p.ramp.ColorFor(rate, p.opacity)
	x1 := x + cell
	y1 := y + cell
	if x1 > p.scratch.Rect.Max.X {
		x1 = p.scratch.Rect.Max.X
	}
	if y1 > p.scratch.Rect.Max.Y {
		y1 = p.scratch.Rect.Max.Y
	}
	for py := y; py < y1; py++ {
		row := p.scratch.PixOffset(x, py)
		for px := x; px < x1; px++ {
			p.scratch.Pix[row] = c.R
			p.scratch.Pix[row+1] = c.G
			p.scratch.Pix[row+2] = c.B
			p.scratch.Pix[row+3] = c.A
			row += 4
		}
	}
}

func clearNRGBA(img *image.NRGBA) {
	for i := range img.Pix {
		img.Pix[i] = 0
	}
}

// boxBlur applies a separable box filter: a horizontal pass from src into
// tmp, then a vertical pass from tmp into dst. The kernel radius is a
// visual tunable, not a correctness requirement.
func boxBlur(src, tmp, dst *image.NRGBA, radius int) {
	w := src.Rect.Dx()
	h := src.Rect.Dy()
	blurPass(src.Pix, tmp.Pix, w, h, radius, true)
	blurPass(tmp.Pix, dst.Pix, w, h, radius, false)
}

func blurPass(src, dst []uint8, w, h, radius int, horizontal bool) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sumR, sumG, sumB, sumA, n int
			for k := -radius; k <= radius; k++ {
				sx, sy := x, y
				if horizontal {
					sx += k
				} else {
					sy += k
				}
				if sx < 0 || sx >= w || sy < 0 || sy >= h {
					continue
				}
				off := (sy*w + sx) * 4
				sumR += int(src[off])
				sumG += int(src[off+1])
				sumB += int(src[off+2])
				sumA += int(src[off+3])
				n++
			}
			off := (y*w + x) * 4
			dst[off] = uint8(sumR / n)
			dst[off+1] = uint8(sumG / n)
			dst[off+2] = uint8(sumB / n)
			dst[off+3] = uint8(sumA / n)
		}
	}
}
