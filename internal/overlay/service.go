// Package overlay orchestrates the refresh cycle: fetch raw inputs, run the
// wind grid/texture pipeline, and publish immutable snapshots to the store.
package overlay

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ctaque/weather-app-challenge-sub002/internal/geo"
	"github.com/ctaque/weather-app-challenge-sub002/internal/ingest"
	"github.com/ctaque/weather-app-challenge-sub002/internal/store"
	"github.com/ctaque/weather-app-challenge-sub002/internal/wind"
)

// Region describes the geographic area the service maintains overlays for.
type Region struct {
	Name       string
	Bounds     geo.Bounds
	Resolution float64    // degrees per grid cell
	Station    geo.LngLat // authoritative wind measurement point
}

// Service runs the sample -> interpolate -> encode pipelines once per data
// refresh and exposes the stored snapshots.
type Service struct {
	store  *store.MemoryStore
	precip ingest.PrecipitationProvider
	windp  ingest.WindProvider
	region Region
}

// NewService creates a Service.
func NewService(st *store.MemoryStore, precip ingest.PrecipitationProvider, windp ingest.WindProvider, region Region) *Service {
	return &Service{
		store:  st,
		precip: precip,
		windp:  windp,
		region: region,
	}
}

// Region returns the configured region.
func (s *Service) Region() Region { return s.region }

// Store exposes the snapshot store for read-side consumers.
func (s *Service) Store() *store.MemoryStore { return s.store }

// Refresh fetches fresh inputs and stores one snapshot of each kind. A
// failed precipitation fetch keeps the last good snapshot; a failed wind
// fetch falls back to the pinned default measurement so the wind overlay
// always has something renderable. Refresh itself never fails.
func (s *Service) Refresh(ctx context.Context) {
	now := time.Now().UTC()

	s.refreshPrecipitation(ctx, now)
	s.refreshWind(ctx, now)
}

func (s *Service) refreshPrecipitation(ctx context.Context, now time.Time) {
	samples, err := s.precip.FetchSamples(ctx, s.region.Bounds, s.region.Resolution)
	if err != nil {
		log.Printf("precipitation fetch from %s failed for %s: %v; keeping last good snapshot", s.precip.Name(), s.region.Name, err)
		return
	}

	s.store.SavePrecipitation(store.PrecipitationSnapshot{
		ID:         uuid.NewString(),
		Timestamp:  now,
		Source:     s.precip.Name(),
		Region:     s.region.Name,
		Resolution: s.region.Resolution,
		Bounds:     s.region.Bounds,
		Points:     samples,
	})
	log.Printf("INFO: stored precipitation snapshot for %s (%d points)", s.region.Name, len(samples))
}

func (s *Service) refreshWind(ctx context.Context, now time.Time) {
	source := s.windp.Name()

	m, err := s.windp.FetchMeasurement(ctx, s.region.Station)
	if err != nil || !m.Usable() {
		if err != nil {
			log.Printf("wind fetch from %s failed for %s: %v; using default measurement", source, s.region.Name, err)
		} else {
			log.Printf("wind fetch from %s returned unusable reading for %s; using default measurement", source, s.region.Name)
		}
		m = wind.DefaultMeasurement
		source = "default"
	}

	grid := wind.BuildGrid(m, s.region.Bounds, s.region.Resolution)
	texture := wind.EncodeTexture(grid)

	s.store.SaveWind(store.WindSnapshot{
		ID:         uuid.NewString(),
		Timestamp:  now,
		Source:     source,
		Region:     s.region.Name,
		Resolution: s.region.Resolution,
		Bounds:     s.region.Bounds,
		Points:     grid.Points(m.Gust),
		Texture:    texture,
		Metadata:   wind.NewMetadata(texture, source, now.Format(time.RFC3339), nil),
	})
	log.Printf("INFO: stored wind snapshot for %s (%dx%d grid)", s.region.Name, grid.Width, grid.Height)
}
