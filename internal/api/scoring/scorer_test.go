package scoring

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

func baseProfile(interests ...string) types.TravelerProfile {
	return types.TravelerProfile{
		Days:      1,
		TripType:  types.TripTypeSolo,
		Interests: interests,
		Pace:      types.PaceModerate,
	}
}

func TestKeywordScorer_Score(t *testing.T) {
	scorer := NewKeywordScorer(testLogger())

	t.Run("keyword matches raise the score", func(t *testing.T) {
		museum := types.CandidatePlace{
			ID:          "museo-1",
			Name:        "Museo del Carnaval",
			Description: "Museo dedicado al arte y la cultura del carnaval",
			Category:    types.CategoryMuseum,
			Rating:      3,
		}
		plain := types.CandidatePlace{
			ID:       "otros-1",
			Name:     "Centro Comercial Norte",
			Category: types.CategoryOther,
			Rating:   3,
		}
		profile := baseProfile("cultura")

		require.Greater(t, scorer.Score(museum, profile), scorer.Score(plain, profile))
	})

	t.Run("rating bonus applies without keyword matches", func(t *testing.T) {
		place := types.CandidatePlace{
			ID:       "mirador-1",
			Name:     "Lugar sin texto relevante",
			Category: types.CategoryOther,
			Rating:   5,
		}
		profile := baseProfile("cultura")

		// No keyword matches: only (5-3)*5 = 10 remains.
		assert.Equal(t, 10, scorer.Score(place, profile))
	})

	t.Run("low rating can drag score to zero", func(t *testing.T) {
		place := types.CandidatePlace{
			ID:       "malo-1",
			Name:     "Sitio cualquiera",
			Category: types.CategoryOther,
			Rating:   1,
		}
		profile := baseProfile("cultura")

		assert.Equal(t, 0, scorer.Score(place, profile))
	})

	t.Run("unknown interest tags are ignored", func(t *testing.T) {
		place := types.CandidatePlace{
			ID:       "p1",
			Name:     "Playa de Salgar",
			Category: types.CategoryBeach,
			Rating:   3,
		}
		with := scorer.Score(place, baseProfile("playas"))
		withUnknown := scorer.Score(place, baseProfile("playas", "astroturismo"))

		assert.Equal(t, with, withUnknown)
	})

	t.Run("score is clamped to 100", func(t *testing.T) {
		place := types.CandidatePlace{
			ID:          "top-1",
			Name:        "Playa del mar con arena y muelle",
			Description: "playa, mar, arena, muelle, malecón, costa",
			Category:    types.CategoryBeach,
			Rating:      5,
		}
		score := scorer.Score(place, baseProfile("playas"))

		assert.Equal(t, 100, score)
	})

	t.Run("crowd penalty for crowd-avoiding travelers", func(t *testing.T) {
		place := types.CandidatePlace{
			ID:        "crowded-1",
			Name:      "Playa popular",
			Category:  types.CategoryBeach,
			Rating:    4,
			HighCrowd: true,
		}
		profile := baseProfile("playas")
		base := scorer.Score(place, profile)

		profile.CrowdTolerance = types.CrowdToleranceAvoid
		penalized := scorer.Score(place, profile)

		assert.Equal(t, base-20, penalized)
	})

	t.Run("immersive bonus for museums and landmarks", func(t *testing.T) {
		place := types.CandidatePlace{
			ID:       "landmark-1",
			Name:     "Edificio antiguo",
			Category: types.CategoryLandmark,
			Rating:   3,
		}
		profile := baseProfile("playas") // no keyword overlap with the place
		base := scorer.Score(place, profile)

		profile.CulturalDepth = types.CulturalDepthImmersive
		boosted := scorer.Score(place, profile)

		assert.Equal(t, base+15, boosted)
	})

	t.Run("empty description scores from rating bonus only", func(t *testing.T) {
		place := types.CandidatePlace{
			ID:       "empty-1",
			Name:     "X",
			Category: types.CategoryOther,
			Rating:   4,
		}
		assert.Equal(t, 5, scorer.Score(place, baseProfile("naturaleza")))
	})
}

func TestScoreAll_PreservesOrder(t *testing.T) {
	scorer := NewKeywordScorer(testLogger())
	places := []types.CandidatePlace{
		{ID: "a", Name: "Playa", Category: types.CategoryBeach, Rating: 4},
		{ID: "b", Name: "Museo", Category: types.CategoryMuseum, Rating: 4},
	}

	scored := ScoreAll(scorer, places, baseProfile("playas"))

	require.Len(t, scored, 2)
	assert.Equal(t, "a", scored[0].ID)
	assert.Equal(t, "b", scored[1].ID)
	assert.GreaterOrEqual(t, scored[0].InterestScore, 0)
	assert.LessOrEqual(t, scored[0].InterestScore, 100)
}
