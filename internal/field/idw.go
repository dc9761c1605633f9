package field

import "math"

const (
	// coincidentEps is the distance below which a sample is treated as
	// coincident with the query point.
	coincidentEps = 1e-6

	// coincidentWeight stands in for the infinite weight of a coincident
	// sample; large enough to dominate any realistic neighbour sum.
	coincidentWeight = 1e12
)

// Estimate interpolates the field value at (lat, lon) from the samples
// within maxDistance, weighting each by the inverse square of its distance.
// Distances are Euclidean in degree space, an acceptable approximation at
// viewport scale. Returns 0 when no sample is in range ("no signal", not an
// error).
func Estimate(lat, lon float64, samples []Sample, maxDistance float64) float64 {
	var weightedSum, totalWeight float64

	for _, s := range samples {
		dLat := s.Lat - lat
		dLon := s.Lon - lon
		dist := math.Sqrt(dLat*dLat + dLon*dLon)
		if dist > maxDistance {
			continue
		}

		var w float64
		if dist < coincidentEps {
			w = coincidentWeight
		} else {
			w = 1 / (dist * dist)
		}

		weightedSum += s.Rate * w
		totalWeight += w
	}

	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}
