package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ctaque/weather-app-challenge-sub002/internal/field"
	"github.com/ctaque/weather-app-challenge-sub002/internal/geo"
	"github.com/ctaque/weather-app-challenge-sub002/internal/wind"
)

const openMeteoDefaultURL = "https://api.open-meteo.com/v1/forecast"

// maxSamplePoints caps the lat/lon list sent in one request; Open-Meteo
// rejects overly long multi-location queries.
const maxSamplePoints = 200

// OpenMeteoProvider fetches current conditions from the Open-Meteo forecast
// API. It serves both overlay pipelines: multi-location current
// precipitation for the heatmap, and station wind for the vector grid. No
// API key is required.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	rc      *resilientClient
}

// NewOpenMeteoProvider creates the provider. baseURL overrides the API
// endpoint; pass "" for the real service.
func NewOpenMeteoProvider(client *http.Client, baseURL string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = openMeteoDefaultURL
	}
	return &OpenMeteoProvider{
		name:    "open-meteo",
		baseURL: baseURL,
		rc:      newResilientClient(client, "open-meteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// FetchSamples requests current precipitation at a lattice of points
// covering bounds, one point per resolution degrees, and returns them as
// field samples. Malformed entries (missing coordinates) are dropped here
// so the core never sees them.
func (p *OpenMeteoProvider) FetchSamples(ctx context.Context, bounds geo.Bounds, resolution float64) ([]field.Sample, error) {
	if resolution <= 0 {
		resolution = 1
	}

	var lats, lons []string
	for lat := bounds.MinLat; lat <= bounds.MaxLat+1e-9; lat += resolution {
		for lon := bounds.MinLon; lon <= bounds.MaxLon+1e-9; lon += resolution {
			if len(lats) >= maxSamplePoints {
				break
			}
			lats = append(lats, strconv.FormatFloat(lat, 'f', 4, 64))
			lons = append(lons, strconv.FormatFloat(lon, 'f', 4, 64))
		}
	}
	if len(lats) == 0 {
		return nil, fmt.Errorf("empty sample lattice for bounds %+v", bounds)
	}

	values := url.Values{}
	values.Set("latitude", strings.Join(lats, ","))
	values.Set("longitude", strings.Join(lons, ","))
	values.Set("current", "precipitation")

	resp, err := p.rc.get(ctx, p.baseURL+"?"+values.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	entries, err := decodeLocations(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode open-meteo response: %w", err)
	}

	samples := make([]field.Sample, 0, len(entries))
	for _, e := range entries {
		if e.Latitude == nil || e.Longitude == nil {
			continue
		}
		samples = append(samples, field.Sample{
			Lat:  *e.Latitude,
			Lon:  *e.Longitude,
			Rate: e.Current.Precipitation,
		})
	}
	return samples, nil
}

// FetchMeasurement requests the current wind reading at the station point.
func (p *OpenMeteoProvider) FetchMeasurement(ctx context.Context, station geo.LngLat) (wind.Measurement, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(station.Lat, 'f', 4, 64))
	values.Set("longitude", strconv.FormatFloat(station.Lon, 'f', 4, 64))
	values.Set("current", "wind_speed_10m,wind_direction_10m,wind_gusts_10m")
	values.Set("wind_speed_unit", "ms")

	resp, err := p.rc.get(ctx, p.baseURL+"?"+values.Encode())
	if err != nil {
		return wind.Measurement{}, err
	}
	defer resp.Body.Close()

	var payload locationEntry
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return wind.Measurement{}, fmt.Errorf("decode open-meteo response: %w", err)
	}

	return wind.Measurement{
		Speed:         payload.Current.WindSpeed,
		DirectionFrom: payload.Current.WindDirection,
		Gust:          payload.Current.WindGusts,
	}, nil
}

// locationEntry is the per-location shape of an Open-Meteo response.
// Coordinates are pointers so absent fields are detectable.
type locationEntry struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Current   struct {
		Precipitation float64 `json:"precipitation"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		WindDirection float64 `json:"wind_direction_10m"`
		WindGusts     float64 `json:"wind_gusts_10m"`
	} `json:"current"`
}

// decodeLocations handles Open-Meteo's response shape quirk: a JSON array
// for multi-location queries, a bare object for a single location.
func decodeLocations(r io.Reader) ([]locationEntry, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var entries []locationEntry
		if err := json.Unmarshal(body, &entries); err != nil {
			return nil, err
		}
		return entries, nil
	}

	var single locationEntry
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, err
	}
	return []locationEntry{single}, nil
}
