// Package ingest fetches raw overlay inputs from upstream weather APIs. It
// owns retries, backoff and circuit breaking; the core pipelines only ever
// see clean sample slices or a fetch error.
package ingest

import (
	"context"

	"github.com/ctaque/weather-app-challenge-sub002/internal/field"
	"github.com/ctaque/weather-app-challenge-sub002/internal/geo"
	"github.com/ctaque/weather-app-challenge-sub002/internal/wind"
)

// PrecipitationProvider fetches a point-sampled precipitation field covering
// bounds at roughly resolution degrees between samples.
type PrecipitationProvider interface {
	Name() string
	FetchSamples(ctx context.Context, bounds geo.Bounds, resolution float64) ([]field.Sample, error)
}

// WindProvider fetches the authoritative wind measurement at a station.
type WindProvider interface {
	Name() string
	FetchMeasurement(ctx context.Context, station geo.LngLat) (wind.Measurement, error)
}
