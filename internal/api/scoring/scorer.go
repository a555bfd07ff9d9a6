package scoring

import (
	"log/slog"
	"math"
	"strings"

	"github.com/atlanticotrips/itinerary-engine/internal/types"
)

// Scorer rates how well a catalog place fits a traveler profile, 0-100.
// The default implementation matches keywords; an embedding-based matcher
// can slot in behind the same interface.
type Scorer interface {
	Score(place types.CandidatePlace, profile types.TravelerProfile) int
}

// Ensure implementation satisfies the interface
var _ Scorer = (*KeywordScorer)(nil)

// KeywordScorer scores places by substring-matching a fixed keyword table
// against the place's free-text fields. Pure; no side effects.
type KeywordScorer struct {
	logger *slog.Logger
	table  map[string]interestKeywords
}

func NewKeywordScorer(logger *slog.Logger) *KeywordScorer {
	return &KeywordScorer{
		logger: logger,
		table:  keywordTable,
	}
}

func (s *KeywordScorer) Score(place types.CandidatePlace, profile types.TravelerProfile) int {
	text := searchableText(place)
	score := 0.0

	for _, interest := range profile.Interests {
		entry, ok := s.table[interest]
		if !ok {
			// Unknown tags are ignored: no match, no penalty.
			continue
		}
		for _, kw := range entry.Positive {
			if strings.Contains(text, kw) {
				score += 20 * entry.Weight
			}
		}
		for _, kw := range entry.Negative {
			if strings.Contains(text, kw) {
				score -= 15
			}
		}
		if score < 0 {
			score = 0
		}
	}

	// Quality bonus centered on a 3-star rating; can be negative.
	score += (place.Rating - 3) * 5

	if profile.CrowdTolerance == types.CrowdToleranceAvoid && place.HighCrowd {
		score -= 20
	}
	if profile.CulturalDepth == types.CulturalDepthImmersive &&
		(place.Category == types.CategoryMuseum || place.Category == types.CategoryLandmark) {
		score += 15
	}

	return clampScore(int(math.Round(score)))
}

func searchableText(place types.CandidatePlace) string {
	parts := []string{place.Name, place.Description, string(place.Category)}
	parts = append(parts, place.InterestTags...)
	return strings.ToLower(strings.Join(parts, " "))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ScoreAll wraps every candidate with its score, preserving input order.
func ScoreAll(scorer Scorer, places []types.CandidatePlace, profile types.TravelerProfile) []types.ScoredPlace {
	scored := make([]types.ScoredPlace, 0, len(places))
	for _, p := range places {
		scored = append(scored, types.ScoredPlace{
			CandidatePlace: p,
			InterestScore:  scorer.Score(p, profile),
		})
	}
	return scored
}
