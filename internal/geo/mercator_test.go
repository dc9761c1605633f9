package geo

import (
	"math"
	"testing"
)

func TestMercatorCorners(t *testing.T) {
	b := Bounds{MinLat: 41, MaxLat: 51.5, MinLon: -5.5, MaxLon: 10}
	m := NewMercator(b, 800, 600)

	x, y := m.Project(b.MaxLat, b.MinLon)
	if math.Abs(x) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Fatalf("north-west corner should project to origin, got (%v, %v)", x, y)
	}

	x, y = m.Project(b.MinLat, b.MaxLon)
	if math.Abs(x-800) > 1e-9 || math.Abs(y-600) > 1e-9 {
		t.Fatalf("south-east corner should project to (800, 600), got (%v, %v)", x, y)
	}
}

func TestMercatorRoundTrip(t *testing.T) {
	b := Bounds{MinLat: 41, MaxLat: 51.5, MinLon: -5.5, MaxLon: 10}
	m := NewMercator(b, 512, 512)

	cases := []struct{ lat, lon float64 }{
		{48.8566, 2.3522},
		{43.3, -1.5},
		{51.0, 9.9},
		{41.1, 0},
	}
	for _, tc := range cases {
		x, y := m.Project(tc.lat, tc.lon)
		lat, lon := m.Unproject(x, y)
		if math.Abs(lat-tc.lat) > 1e-9 || math.Abs(lon-tc.lon) > 1e-9 {
			t.Fatalf("round trip for (%v, %v) gave (%v, %v)", tc.lat, tc.lon, lat, lon)
		}
	}
}

func TestMercatorLatitudeCompression(t *testing.T) {
	// Mercator stretches high latitudes: one degree of latitude near the
	// top of the viewport must span more pixels than one near the bottom.
	b := Bounds{MinLat: 40, MaxLat: 60, MinLon: 0, MaxLon: 20}
	m := NewMercator(b, 1000, 1000)

	_, yTopA := m.Project(59, 10)
	_, yTopB := m.Project(58, 10)
	_, yBotA := m.Project(42, 10)
	_, yBotB := m.Project(41, 10)

	if (yTopB - yTopA) <= (yBotB - yBotA) {
		t.Fatalf("expected top degree span %v > bottom degree span %v", yTopB-yTopA, yBotB-yBotA)
	}
}

func TestBoundsExpandContains(t *testing.T) {
	b := Bounds{MinLat: 10, MaxLat: 20, MinLon: 30, MaxLon: 40}

	if !b.Contains(10, 40) {
		t.Fatal("edges should be inside")
	}
	if b.Contains(9.99, 35) {
		t.Fatal("south of box should be outside")
	}

	e := b.Expand(1)
	if !e.Contains(9.5, 40.5) {
		t.Fatal("expanded box should contain margin points")
	}
	if e.Contains(8.9, 35) {
		t.Fatal("expanded box should still exclude far points")
	}
}
