// Package field implements the sample model and the inverse-distance
// weighted interpolation the overlay pipelines are built on. Everything here
// is pure: identical inputs always produce identical outputs, which is what
// lets callers fan queries out per raster cell.
package field

import (
	"github.com/ctaque/weather-app-challenge-sub002/internal/geo"
)

// Sample is a single scalar field reading at a point, e.g. a precipitation
// rate. Samples are immutable once ingested; a refresh replaces the whole
// collection.
type Sample struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Rate float64 `json:"rate"`
}

// VectorSample is a single vector field reading at a point, decomposed into
// eastward (U) and northward (V) components.
type VectorSample struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	U   float64 `json:"u"`
	V   float64 `json:"v"`
}

// FilterByBounds returns the samples falling inside bounds expanded by
// margin degrees on every side. The margin must be at least the
// interpolator's influence radius: a sample just outside the viewport still
// contributes to cells near the edge, and dropping it produces visible seams
// at the bounds. An empty result is valid.
func FilterByBounds(samples []Sample, bounds geo.Bounds, margin float64) []Sample {
	expanded := bounds.Expand(margin)
	out := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if expanded.Contains(s.Lat, s.Lon) {
			out = append(out, s)
		}
	}
	return out
}
