package field

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ctaque/weather-app-challenge-sub002/internal/geo"
)

func TestFilterByBoundsSubsetAndMargin(t *testing.T) {
	samples := []Sample{
		{Lat: 48, Lon: 2, Rate: 1},    // inside
		{Lat: 50.5, Lon: 2, Rate: 2},  // inside margin only
		{Lat: 53, Lon: 2, Rate: 3},    // outside even with margin
		{Lat: 48, Lon: -7.2, Rate: 4}, // west of margin
		{Lat: 45, Lon: -5.8, Rate: 5}, // inside margin only
	}
	bounds := geo.Bounds{MinLat: 44, MaxLat: 50, MinLon: -5, MaxLon: 8}
	margin := 1.0

	got := FilterByBounds(samples, bounds, margin)

	// Result is a subset of the input.
	for _, s := range got {
		assert.Contains(t, samples, s)
	}

	// Every retained point is within bounds +/- margin.
	expanded := bounds.Expand(margin)
	for _, s := range got {
		assert.True(t, expanded.Contains(s.Lat, s.Lon), "sample %+v outside expanded bounds", s)
	}

	assert.Len(t, got, 3)
	assert.NotContains(t, got, samples[2])
	assert.NotContains(t, got, samples[3])
}

func TestFilterByBoundsEmptyResult(t *testing.T) {
	samples := []Sample{{Lat: 0, Lon: 0, Rate: 1}}
	bounds := geo.Bounds{MinLat: 40, MaxLat: 50, MinLon: 0, MaxLon: 10}

	got := FilterByBounds(samples, bounds, 1.5)
	assert.Empty(t, got)
}
