package selection

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlanticotrips/itinerary-engine/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func theme(maxStops int) types.DayTheme {
	return types.DayTheme{
		Day:                  1,
		Municipality:         "Barranquilla",
		RecommendedStartTime: "09:00",
		MaxStops:             maxStops,
	}
}

// near returns a place close to Barranquilla's center with a small offset.
func near(id string, offsetKmApprox float64) types.ScoredPlace {
	return types.ScoredPlace{
		CandidatePlace: types.CandidatePlace{
			ID:           id,
			Name:         id,
			Municipality: "Barranquilla",
			Coordinates: types.GeoPoint{
				Latitude:  10.9639 + offsetKmApprox/111.0,
				Longitude: -74.7964,
			},
			Rating:         4,
			FamilyFriendly: true,
		},
	}
}

func TestSelectForDay_RespectsMaxStops(t *testing.T) {
	s := NewSelector(testLogger())
	profile := types.TravelerProfile{TripType: types.TripTypeSolo, Pace: types.PaceModerate, Interests: []string{"playas"}}

	pool := []types.ScoredPlace{near("a", 0), near("b", 0.5), near("c", 1), near("d", 1.5), near("e", 2)}

	selected := s.SelectForDay(profile, theme(3), pool, nil, map[string]bool{})

	assert.Len(t, selected, 3)
}

func TestSelectForDay_SkipsUsedPlaces(t *testing.T) {
	s := NewSelector(testLogger())
	profile := types.TravelerProfile{TripType: types.TripTypeSolo, Pace: types.PaceModerate, Interests: []string{"playas"}}

	pool := []types.ScoredPlace{near("a", 0), near("b", 0.5), near("c", 1)}
	used := map[string]bool{"a": true}

	selected := s.SelectForDay(profile, theme(4), pool, nil, used)

	for _, p := range selected {
		assert.NotEqual(t, "a", p.ID)
	}
}

func TestSelectForDay_FamilyFilter(t *testing.T) {
	s := NewSelector(testLogger())
	profile := types.TravelerProfile{TripType: types.TripTypeFamily, Pace: types.PaceModerate, Interests: []string{"playas"}}

	bar := near("bar", 0.2)
	bar.FamilyFriendly = false
	pool := []types.ScoredPlace{near("a", 0), bar, near("c", 0.5)}

	selected := s.SelectForDay(profile, theme(4), pool, nil, map[string]bool{})

	require.NotEmpty(t, selected)
	for _, p := range selected {
		assert.True(t, p.FamilyFriendly)
	}
}

func TestSelectForDay_SortOrder(t *testing.T) {
	s := NewSelector(testLogger())
	profile := types.TravelerProfile{TripType: types.TripTypeSolo, Pace: types.PaceModerate, Interests: []string{"playas"}}

	featured := near("featured", 0.3)
	featured.Featured = true
	featured.Rating = 3

	tagged := near("tagged", 0.6)
	tagged.InterestTags = []string{"playas"}
	tagged.Rating = 3.5

	topRated := near("top-rated", 0.9)
	topRated.Rating = 5

	pool := []types.ScoredPlace{topRated, tagged, featured}

	selected := s.SelectForDay(profile, theme(3), pool, nil, map[string]bool{})

	require.Len(t, selected, 3)
	assert.Equal(t, "featured", selected[0].ID)
	assert.Equal(t, "tagged", selected[1].ID)
	assert.Equal(t, "top-rated", selected[2].ID)
}

func TestSelectForDay_GeographicCoherence(t *testing.T) {
	s := NewSelector(testLogger())
	// Moderate pace allows 5 km between any two selected places.
	profile := types.TravelerProfile{TripType: types.TripTypeSolo, Pace: types.PaceModerate, Interests: []string{"playas"}}

	far := near("far", 20)
	far.Rating = 3 // considered after the nearby trio, then rejected on distance
	pool := []types.ScoredPlace{near("a", 0), near("b", 1), far, near("c", 2)}

	selected := s.SelectForDay(profile, theme(4), pool, nil, map[string]bool{})

	ids := make([]string, 0, len(selected))
	for _, p := range selected {
		ids = append(ids, p.ID)
	}
	assert.NotContains(t, ids, "far")
	assert.Len(t, selected, 3)
}

func TestSelectForDay_BackfillWhenSparse(t *testing.T) {
	s := NewSelector(testLogger())
	profile := types.TravelerProfile{TripType: types.TripTypeSolo, Pace: types.PaceModerate, Interests: []string{"playas"}}

	pool := []types.ScoredPlace{near("only", 0)}
	other := near("elsewhere", 1)
	other.Municipality = "Puerto Colombia"

	selected := s.SelectForDay(profile, theme(4), pool, []types.ScoredPlace{other}, map[string]bool{})

	require.Len(t, selected, 2)
}

func TestSelectForDay_RelaxesDistanceWhenSparse(t *testing.T) {
	s := NewSelector(testLogger())
	profile := types.TravelerProfile{TripType: types.TripTypeSolo, Pace: types.PaceRelaxed, Interests: []string{"playas"}}

	// Two places 20 km apart: incompatible under the 3 km relaxed cap, but a
	// one-place day is worse than a loose one.
	pool := []types.ScoredPlace{near("a", 0), near("b", 20)}

	selected := s.SelectForDay(profile, theme(3), pool, nil, map[string]bool{})

	assert.Len(t, selected, 2)
}
