package routing

import (
	"math"

	"github.com/atlanticotrips/itinerary-engine/internal/types"
)

// HaversineKm calculates the great-circle distance between two coordinates
// using the Haversine formula. Returns distance in kilometers.
func HaversineKm(a, b types.GeoPoint) float64 {
	const R = 6371 // Earth's radius in kilometers

	lat1Rad := a.Latitude * math.Pi / 180
	lon1Rad := a.Longitude * math.Pi / 180
	lat2Rad := b.Latitude * math.Pi / 180
	lon2Rad := b.Longitude * math.Pi / 180

	dlat := lat2Rad - lat1Rad
	dlon := lon2Rad - lon1Rad

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return R * c
}

// Sequence orders a day's places to reduce backtracking: greedy
// nearest-neighbor from the first place. Not a globally optimal tour, but a
// bounded-time heuristic that is fine for the five or fewer stops a day
// carries. Identity for two or fewer places.
func Sequence(places []types.ScoredPlace) []types.ScoredPlace {
	if len(places) <= 2 {
		return places
	}

	ordered := make([]types.ScoredPlace, 0, len(places))
	remaining := make([]types.ScoredPlace, len(places))
	copy(remaining, places)

	current := remaining[0]
	ordered = append(ordered, current)
	remaining = remaining[1:]

	for len(remaining) > 0 {
		best := 0
		bestDist := HaversineKm(current.Coordinates, remaining[0].Coordinates)
		for i := 1; i < len(remaining); i++ {
			if d := HaversineKm(current.Coordinates, remaining[i].Coordinates); d < bestDist {
				best, bestDist = i, d
			}
		}
		current = remaining[best]
		ordered = append(ordered, current)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return ordered
}
