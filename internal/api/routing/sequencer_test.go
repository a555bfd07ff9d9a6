package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlanticotrips/itinerary-engine/internal/types"
)

func place(id string, lat, lng float64) types.ScoredPlace {
	return types.ScoredPlace{
		CandidatePlace: types.CandidatePlace{
			ID:          id,
			Coordinates: types.GeoPoint{Latitude: lat, Longitude: lng},
		},
	}
}

func TestHaversineKm(t *testing.T) {
	barranquilla := types.GeoPoint{Latitude: 10.9639, Longitude: -74.7964}
	puertoColombia := types.GeoPoint{Latitude: 10.9878, Longitude: -74.9547}

	d := HaversineKm(barranquilla, puertoColombia)

	// Roughly 17 km apart by great circle.
	assert.InDelta(t, 17.4, d, 1.0)
	assert.Zero(t, HaversineKm(barranquilla, barranquilla))
}

func TestSequence_IdentityForTwoOrFewer(t *testing.T) {
	single := []types.ScoredPlace{place("a", 10.96, -74.79)}
	assert.Equal(t, single, Sequence(single))

	pair := []types.ScoredPlace{place("a", 10.96, -74.79), place("b", 10.99, -74.95)}
	assert.Equal(t, pair, Sequence(pair))
}

func TestSequence_NearestNeighborOrder(t *testing.T) {
	// a is the start; b is far, c is near a, d is near c.
	places := []types.ScoredPlace{
		place("a", 10.9600, -74.8000),
		place("b", 10.9900, -74.9500),
		place("c", 10.9610, -74.8010),
		place("d", 10.9650, -74.8100),
	}

	ordered := Sequence(places)

	require.Len(t, ordered, 4)
	ids := []string{ordered[0].ID, ordered[1].ID, ordered[2].ID, ordered[3].ID}
	assert.Equal(t, []string{"a", "c", "d", "b"}, ids)
}

func TestSequence_DoesNotMutateInput(t *testing.T) {
	places := []types.ScoredPlace{
		place("a", 10.9600, -74.8000),
		place("b", 10.9900, -74.9500),
		place("c", 10.9610, -74.8010),
	}
	Sequence(places)

	assert.Equal(t, "a", places[0].ID)
	assert.Equal(t, "b", places[1].ID)
	assert.Equal(t, "c", places[2].ID)
}
