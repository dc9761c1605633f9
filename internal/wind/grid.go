// Package wind synthesizes a dense wind vector grid from a single station
// measurement and packs it into an 8-bit two-channel texture for the
// particle renderer.
package wind

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ctaque/weather-app-challenge-sub002/internal/geo"
)

// Measurement is the authoritative wind reading at a station: speed,
// meteorological direction (degrees, the direction the wind blows FROM) and
// gust speed.
type Measurement struct {
	Speed         float64 `json:"speed"`
	DirectionFrom float64 `json:"direction"`
	Gust          float64 `json:"gust"`
}

// DefaultMeasurement is the pinned fallback when the upstream fetch fails
// or returns garbage: a plausible calm westerly. The overlay degrades to
// this rather than disappearing.
var DefaultMeasurement = Measurement{Speed: 4, DirectionFrom: 270, Gust: 6}

// Usable reports whether the measurement can seed a grid.
func (m Measurement) Usable() bool {
	return !math.IsNaN(m.Speed) && !math.IsInf(m.Speed, 0) &&
		!math.IsNaN(m.DirectionFrom) && !math.IsInf(m.DirectionFrom, 0) &&
		m.Speed >= 0
}

// Components converts the meteorological reading into planar (u, v): the
// math-convention bearing is 270° minus the from-direction, then a standard
// trigonometric decomposition.
func (m Measurement) Components() (u, v float64) {
	θ := (270 - m.DirectionFrom) * math.Pi / 180
	return m.Speed * math.Cos(θ), m.Speed * math.Sin(θ)
}

// Point is one grid cell handed to external consumers, with speed and
// meteorological direction precomputed because the particle renderer
// expects them.
type Point struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	U         float64 `json:"u"`
	V         float64 `json:"v"`
	Speed     float64 `json:"speed"`
	Direction float64 `json:"direction"`
	Gusts     float64 `json:"gusts"`
}

// Grid is a dense lat/lon grid of wind vectors in row-major order, rows
// north to south, plus the component ranges the texture encoder needs.
type Grid struct {
	Width, Height int
	Lats, Lons    []float64
	U, V          []float64
	UMin, UMax    float64
	VMin, VMax    float64
}

// Perturbation tuning for BuildGrid. Amplitudes and frequencies are fixed
// so a rebuild from the same measurement is bit-identical.
const (
	perturbAmp   = 0.3
	perturbFreqU = 3.0
	perturbFreqV = 5.0
	vPerturbAtt  = 0.8
)

// BuildGrid expands one station measurement into a grid covering bounds at
// the given resolution in degrees per cell, both edges inclusive. A pair of
// fixed-frequency sinusoids over the normalized offsets from the box center
// perturbs the base vector per cell, fully on U and attenuated on V.
//
// This manufactures spatial texture from a single reading; it is a visual
// plausibility heuristic, not a forecast.
func BuildGrid(m Measurement, bounds geo.Bounds, resolution float64) *Grid {
	if !m.Usable() {
		m = DefaultMeasurement
	}
	if resolution <= 0 {
		resolution = 1
	}

	baseU, baseV := m.Components()
	center := bounds.Center()

	latSpan := bounds.MaxLat - bounds.MinLat
	if latSpan == 0 {
		latSpan = 1
	}
	lonSpan := bounds.MaxLon - bounds.MinLon
	if lonSpan == 0 {
		lonSpan = 1
	}

	height := int(math.Floor((bounds.MaxLat-bounds.MinLat)/resolution)) + 1
	width := int(math.Floor((bounds.MaxLon-bounds.MinLon)/resolution)) + 1

	g := &Grid{
		Width:  width,
		Height: height,
		Lats:   make([]float64, 0, width*height),
		Lons:   make([]float64, 0, width*height),
		U:      make([]float64, 0, width*height),
		V:      make([]float64, 0, width*height),
	}

	for row := 0; row < height; row++ {
		lat := bounds.MaxLat - float64(row)*resolution
		for col := 0; col < width; col++ {
			lon := bounds.MinLon + float64(col)*resolution

			dLat := (lat - center.Lat) / latSpan
			dLon := (lon - center.Lon) / lonSpan
			perturb := perturbAmp * (math.Sin(dLon*perturbFreqU) + math.Cos(dLat*perturbFreqV)) / 2

			g.Lats = append(g.Lats, lat)
			g.Lons = append(g.Lons, lon)
			g.U = append(g.U, baseU*(1+perturb))
			g.V = append(g.V, baseV*(1+vPerturbAtt*perturb))
		}
	}

	g.UMin = floats.Min(g.U)
	g.UMax = floats.Max(g.U)
	g.VMin = floats.Min(g.V)
	g.VMax = floats.Max(g.V)
	return g
}

// Points materializes the grid as consumer-facing points with derived speed
// and direction, carrying the station gust value through.
func (g *Grid) Points(gust float64) []Point {
	pts := make([]Point, len(g.U))
	for i := range g.U {
		u, v := g.U[i], g.V[i]
		pts[i] = Point{
			Lat:       g.Lats[i],
			Lon:       g.Lons[i],
			U:         u,
			V:         v,
			Speed:     math.Sqrt(u*u + v*v),
			Direction: DirectionFrom(u, v),
			Gusts:     gust,
		}
	}
	return pts
}

// DirectionFrom recovers the meteorological bearing (degrees in [0, 360),
// the direction the wind originates from) of a (u, v) vector.
func DirectionFrom(u, v float64) float64 {
	deg := 270 - math.Atan2(v, u)*180/math.Pi
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
