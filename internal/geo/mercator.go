package geo

import "math"

// mercatorMaxLat is the latitude beyond which the Mercator y coordinate
// blows up; inputs are clamped to it.
const mercatorMaxLat = 85.05112878

// Mercator is a Web-Mercator projection fitted to a viewport: the given
// bounds map exactly onto a width x height pixel surface, x east-positive,
// y growing downward.
type Mercator struct {
	bounds        Bounds
	width, height int
	yTop, ySpan   float64
}

// NewMercator builds a projection mapping bounds onto a width x height
// raster.
func NewMercator(bounds Bounds, width, height int) *Mercator {
	yTop := mercatorY(bounds.MaxLat)
	yBottom := mercatorY(bounds.MinLat)
	span := yBottom - yTop
	if span == 0 {
		span = 1
	}
	return &Mercator{
		bounds: bounds,
		width:  width,
		height: height,
		yTop:   yTop,
		ySpan:  span,
	}
}

// Project maps (lat, lon) to pixel coordinates on the fitted viewport.
func (m *Mercator) Project(lat, lon float64) (x, y float64) {
	lonSpan := m.bounds.MaxLon - m.bounds.MinLon
	if lonSpan == 0 {
		lonSpan = 1
	}
	x = (lon - m.bounds.MinLon) / lonSpan * float64(m.width)
	y = (mercatorY(lat) - m.yTop) / m.ySpan * float64(m.height)
	return x, y
}

// Unproject maps pixel coordinates back to (lat, lon). It is the inverse of
// Project up to floating-point error.
func (m *Mercator) Unproject(x, y float64) (lat, lon float64) {
	lonSpan := m.bounds.MaxLon - m.bounds.MinLon
	lon = m.bounds.MinLon + x/float64(m.width)*lonSpan
	my := m.yTop + y/float64(m.height)*m.ySpan
	lat = toDeg(2*math.Atan(math.Exp(-my)) - math.Pi/2)
	return lat, lon
}

// mercatorY returns the unscaled Mercator ordinate for a latitude, growing
// southward so it lines up with raster row order.
func mercatorY(latDeg float64) float64 {
	lat := math.Max(-mercatorMaxLat, math.Min(mercatorMaxLat, latDeg))
	φ := toRad(lat)
	return -math.Log(math.Tan(math.Pi/4 + φ/2))
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

func toDeg(rad float64) float64 { return rad * 180 / math.Pi }
