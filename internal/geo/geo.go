// Package geo holds the geographic primitives shared by the overlay
// pipelines: bounding boxes in degree space and the projection contract
// supplied by whatever is hosting the map.
package geo

// LngLat is a geographic coordinate in signed degrees.
type LngLat struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds is a geographic bounding box in signed degrees.
// Invariant: MinLat <= MaxLat and MinLon <= MaxLon.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
}

// Contains reports whether (lat, lon) falls inside the box, edges included.
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lon >= b.MinLon && lon <= b.MaxLon
}

// Expand grows the box by margin degrees on every side.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		MinLat: b.MinLat - margin,
		MaxLat: b.MaxLat + margin,
		MinLon: b.MinLon - margin,
		MaxLon: b.MaxLon + margin,
	}
}

// Center returns the midpoint of the box.
func (b Bounds) Center() LngLat {
	return LngLat{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lon: (b.MinLon + b.MaxLon) / 2,
	}
}

// Valid reports whether the box is well formed.
func (b Bounds) Valid() bool {
	return b.MinLat <= b.MaxLat && b.MinLon <= b.MaxLon
}

// Projection maps between geographic coordinates and screen pixels. The host
// map widget owns the real implementation; the painter only ever sees this
// two-method view of it.
type Projection interface {
	// Project maps (lat, lon) to screen pixel coordinates.
	Project(lat, lon float64) (x, y float64)
	// Unproject maps screen pixel coordinates back to (lat, lon).
	Unproject(x, y float64) (lat, lon float64)
}
