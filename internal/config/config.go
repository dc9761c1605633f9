package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ctaque/weather-app-challenge-sub002/internal/geo"
	"github.com/ctaque/weather-app-challenge-sub002/internal/overlay"
)

// AppConfig is the full service configuration, read from the environment
// with sensible defaults.
type AppConfig struct {
	Port string

	// FetchInterval controls how often overlay data is refreshed.
	FetchInterval time.Duration

	// Outbound HTTP timeout for upstream weather APIs.
	HTTPTimeout time.Duration

	// In-memory store retention.
	StoreMaxHistory int           // max number of snapshots per kind (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)

	// Region the overlays cover.
	Region overlay.Region

	// OpenMeteoURL overrides the upstream endpoint; empty means the real
	// service.
	OpenMeteoURL string
}

// Load reads configuration from environment with sensible defaults. The
// default region is metropolitan France with a station at Paris.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}
	cfg.Port = getenvDefault("PORT", "8080")

	interval, err := time.ParseDuration(getenvDefault("FETCH_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	httpTimeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "20s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = httpTimeout

	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 24)

	maxAge, err := time.ParseDuration(getenvDefault("STORE_MAX_AGE", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.OpenMeteoURL = os.Getenv("OPENMETEO_URL")

	region, err := loadRegion()
	if err != nil {
		return nil, err
	}
	cfg.Region = region

	return cfg, nil
}

func loadRegion() (overlay.Region, error) {
	bounds := geo.Bounds{
		MinLat: getenvFloat("REGION_MIN_LAT", 41.0),
		MaxLat: getenvFloat("REGION_MAX_LAT", 51.5),
		MinLon: getenvFloat("REGION_MIN_LON", -5.5),
		MaxLon: getenvFloat("REGION_MAX_LON", 10.0),
	}
	if !bounds.Valid() {
		return overlay.Region{}, fmt.Errorf("invalid region bounds: %+v", bounds)
	}

	resolution := getenvFloat("REGION_RESOLUTION", 1.0)
	if resolution <= 0 {
		return overlay.Region{}, fmt.Errorf("REGION_RESOLUTION must be positive, got %v", resolution)
	}

	return overlay.Region{
		Name:       getenvDefault("REGION_NAME", "france"),
		Bounds:     bounds,
		Resolution: resolution,
		Station: geo.LngLat{
			Lat: getenvFloat("WIND_STATION_LAT", 48.8566),
			Lon: getenvFloat("WIND_STATION_LON", 2.3522),
		},
	}, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
