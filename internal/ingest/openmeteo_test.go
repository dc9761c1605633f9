package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ctaque/weather-app-challenge-sub002/internal/geo"
)

func TestFetchSamplesMultiLocation(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"latitude": 0, "longitude": 0, "current": {"precipitation": 0.4}},
			{"latitude": 0, "longitude": 1, "current": {"precipitation": 1.2}},
			{"latitude": 1, "longitude": 0, "current": {"precipitation": 0}},
			{"longitude": 1, "current": {"precipitation": 9}}
		]`))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), srv.URL)
	bounds := geo.Bounds{MinLat: 0, MaxLat: 1, MinLon: 0, MaxLon: 1}

	samples, err := p.FetchSamples(context.Background(), bounds, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Entry without a latitude is malformed and must be dropped.
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	if samples[1].Rate != 1.2 {
		t.Fatalf("unexpected rate %v", samples[1].Rate)
	}
	if !strings.Contains(gotQuery, "current=precipitation") {
		t.Fatalf("expected precipitation query, got %q", gotQuery)
	}
}

func TestFetchSamplesSingleLocationObject(t *testing.T) {
	// A one-point lattice gets a bare object back, not an array.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"latitude": 48, "longitude": 2, "current": {"precipitation": 2.5}}`))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), srv.URL)
	bounds := geo.Bounds{MinLat: 48, MaxLat: 48, MinLon: 2, MaxLon: 2}

	samples, err := p.FetchSamples(context.Background(), bounds, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 1 || samples[0].Rate != 2.5 {
		t.Fatalf("unexpected samples %+v", samples)
	}
}

func TestFetchMeasurement(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "wind_speed_unit=ms") {
			t.Errorf("expected m/s wind speeds, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"latitude": 48.85, "longitude": 2.35,
			"current": {"wind_speed_10m": 7.5, "wind_direction_10m": 230, "wind_gusts_10m": 12.1}
		}`))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), srv.URL)
	m, err := p.FetchMeasurement(context.Background(), geo.LngLat{Lat: 48.8566, Lon: 2.3522})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Speed != 7.5 || m.DirectionFrom != 230 || m.Gust != 12.1 {
		t.Fatalf("unexpected measurement %+v", m)
	}
}

func TestDecodeLocationsShapes(t *testing.T) {
	arr, err := decodeLocations(strings.NewReader(`[{"latitude":1,"longitude":2,"current":{}}]`))
	if err != nil || len(arr) != 1 {
		t.Fatalf("array decode failed: %v %v", arr, err)
	}

	obj, err := decodeLocations(strings.NewReader(`{"latitude":1,"longitude":2,"current":{}}`))
	if err != nil || len(obj) != 1 {
		t.Fatalf("object decode failed: %v %v", obj, err)
	}

	if _, err := decodeLocations(strings.NewReader(`not json`)); err == nil {
		t.Fatal("expected error for malformed body")
	}
}
