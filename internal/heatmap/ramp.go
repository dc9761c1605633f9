// Package heatmap turns a sparse scalar field into a colored raster: a
// table-driven color ramp plus a cell-scanning painter that interpolates the
// field through the host map's projection.
package heatmap

import "image/color"

// VisibilityFloor is the rate below which nothing is painted. Near-zero
// rates would otherwise wash the whole viewport in faint color.
const VisibilityFloor = 0.1

// ColorStop maps every rate at or above Threshold (and below the next
// stop's threshold) to one color. AlphaScale is multiplied by the painter's
// global opacity to produce the band's alpha.
type ColorStop struct {
	Threshold  float64
	R, G, B    uint8
	AlphaScale float64
}

// Ramp is an ordered step function from rate to color. Stops must be sorted
// by strictly increasing threshold; the first stop catches everything below
// the visibility floor. Keeping this a table rather than a conditional chain
// means bands can be added or retuned without threshold-overlap bugs.
type Ramp []ColorStop

// DefaultRamp is the precipitation ramp: transparent below the visibility
// floor, then eight bands of increasing severity. Alpha multipliers rise
// monotonically with the rate.
var DefaultRamp = Ramp{
	{Threshold: 0, R: 0, G: 0, B: 0, AlphaScale: 0},
	{Threshold: 0.1, R: 140, G: 208, B: 245, AlphaScale: 0.30},
	{Threshold: 0.5, R: 76, G: 166, B: 235, AlphaScale: 0.40},
	{Threshold: 1, R: 52, G: 120, B: 225, AlphaScale: 0.50},
	{Threshold: 2, R: 60, G: 185, B: 90, AlphaScale: 0.60},
	{Threshold: 4, R: 240, G: 215, B: 70, AlphaScale: 0.70},
	{Threshold: 8, R: 245, G: 150, B: 50, AlphaScale: 0.80},
	{Threshold: 16, R: 230, G: 60, B: 50, AlphaScale: 0.90},
	{Threshold: 32, R: 160, G: 35, B: 140, AlphaScale: 0.95},
}

// ColorFor maps a rate to its band color. The band alpha is the product of
// the band's multiplier and the global opacity; hue and thresholds are
// unaffected by opacity changes.
func (r Ramp) ColorFor(rate, opacity float64) color.NRGBA {
	stop := r[0]
	for i := len(r) - 1; i > 0; i-- {
		if rate >= r[i].Threshold {
			stop = r[i]
			break
		}
	}
	alpha := stop.AlphaScale * opacity * 255
	if alpha < 0 {
		alpha = 0
	} else if alpha > 255 {
		alpha = 255
	}
	return color.NRGBA{R: stop.R, G: stop.G, B: stop.B, A: uint8(alpha + 0.5)}
}
