package store

import (
	"errors"
	"sync"
	"time"

	"github.com/ctaque/weather-app-challenge-sub002/internal/field"
	"github.com/ctaque/weather-app-challenge-sub002/internal/geo"
	"github.com/ctaque/weather-app-challenge-sub002/internal/wind"
)

var (
	// ErrNotFound is returned when no snapshot is available yet, or the
	// requested index is out of range.
	ErrNotFound = errors.New("no overlay snapshot available")
)

// PrecipitationSnapshot is one refresh's worth of precipitation samples.
// Immutable once saved; a refresh replaces the whole set atomically.
type PrecipitationSnapshot struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"` // always UTC
	Source     string         `json:"source"`
	Region     string         `json:"region"`
	Resolution float64        `json:"resolution"`
	Bounds     geo.Bounds     `json:"bounds"`
	Points     []field.Sample `json:"points"`
}

// WindSnapshot is one refresh's worth of wind data: the consumer-facing
// point grid plus the encoded texture and its decode metadata.
type WindSnapshot struct {
	ID         string        `json:"id"`
	Timestamp  time.Time     `json:"timestamp"` // always UTC
	Source     string        `json:"source"`
	Region     string        `json:"region"`
	Resolution float64       `json:"resolution"`
	Bounds     geo.Bounds    `json:"bounds"`
	Points     []wind.Point  `json:"points"`
	Texture    *wind.Texture `json:"-"`
	Metadata   wind.Metadata `json:"metadata"`
}

// MemoryStore is a concurrency-safe in-memory snapshot store. Snapshots are
// kept newest-last internally and addressed by reverse-chronological index
// (0 = latest) externally.
type MemoryStore struct {
	mu sync.RWMutex

	precip []PrecipitationSnapshot
	wind   []WindSnapshot

	// retention configuration
	maxHistory int           // max snapshots per kind (<= 0 means unlimited)
	maxAge     time.Duration // max snapshot age (0 means unlimited)
}

// NewMemoryStore creates a MemoryStore with optional retention limits.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SavePrecipitation appends a precipitation snapshot and enforces retention.
func (s *MemoryStore) SavePrecipitation(snap PrecipitationSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.precip = append(s.precip, snap)
	s.precip = trimPrecip(s.precip, s.maxHistory, s.maxAge)
}

// SaveWind appends a wind snapshot and enforces retention.
func (s *MemoryStore) SaveWind(snap WindSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wind = append(s.wind, snap)
	s.wind = trimWind(s.wind, s.maxHistory, s.maxAge)
}

// LatestPrecipitation returns the most recent precipitation snapshot.
func (s *MemoryStore) LatestPrecipitation() (PrecipitationSnapshot, error) {
	return s.PrecipitationByIndex(0)
}

// PrecipitationByIndex returns the snapshot index steps back from the
// latest (0 = latest).
func (s *MemoryStore) PrecipitationByIndex(index int) (PrecipitationSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.precip) {
		return PrecipitationSnapshot{}, ErrNotFound
	}
	return s.precip[len(s.precip)-1-index], nil
}

// PrecipitationIndices lists the valid indices, newest first.
func (s *MemoryStore) PrecipitationIndices() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indices(len(s.precip))
}

// LatestWind returns the most recent wind snapshot.
func (s *MemoryStore) LatestWind() (WindSnapshot, error) {
	return s.WindByIndex(0)
}

// WindByIndex returns the snapshot index steps back from the latest
// (0 = latest).
func (s *MemoryStore) WindByIndex(index int) (WindSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.wind) {
		return WindSnapshot{}, ErrNotFound
	}
	return s.wind[len(s.wind)-1-index], nil
}

// WindIndices lists the valid indices, newest first.
func (s *MemoryStore) WindIndices() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indices(len(s.wind))
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func trimPrecip(history []PrecipitationSnapshot, maxHistory int, maxAge time.Duration) []PrecipitationSnapshot {
	if maxHistory > 0 && len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	if maxAge > 0 {
		cutoff := time.Now().Add(-maxAge)
		i := 0
		for ; i < len(history); i++ {
			if !history[i].Timestamp.Before(cutoff) {
				break
			}
		}
		// Always keep at least the newest snapshot.
		if i > 0 && i < len(history) {
			history = history[i:]
		}
	}
	return history
}

func trimWind(history []WindSnapshot, maxHistory int, maxAge time.Duration) []WindSnapshot {
	if maxHistory > 0 && len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	if maxAge > 0 {
		cutoff := time.Now().Add(-maxAge)
		i := 0
		for ; i < len(history); i++ {
			if !history[i].Timestamp.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(history) {
			history = history[i:]
		}
	}
	return history
}
