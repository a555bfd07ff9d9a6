package selection

import (
	"log/slog"
	"sort"

	"github.com/atlanticotrips/itinerary-engine/internal/api/routing"
	"github.com/atlanticotrips/itinerary-engine/internal/types"
)

// minDayPlaces is the smallest set worth scheduling; below it the selector
// backfills from other municipalities and relaxes geographic constraints.
const minDayPlaces = 2

// Selector picks the best-scoring, geographically coherent places for one
// day, respecting the theme's stop cap.
type Selector struct {
	logger *slog.Logger
}

func NewSelector(logger *slog.Logger) *Selector {
	return &Selector{logger: logger}
}

// SelectForDay picks up to theme.MaxStops places from the day's cluster.
// backfill holds other municipalities' places, used only when the cluster
// runs short. used tracks place ids already scheduled on earlier days.
func (s *Selector) SelectForDay(
	profile types.TravelerProfile,
	theme types.DayTheme,
	clusterPlaces []types.ScoredPlace,
	backfill []types.ScoredPlace,
	used map[string]bool,
) []types.ScoredPlace {
	pool := s.eligible(profile, clusterPlaces, used)

	if len(pool) < minDayPlaces {
		shortfall := minDayPlaces - len(pool)
		extra := s.eligible(profile, backfill, used)
		sortByPreference(extra, profile)
		if len(extra) > shortfall {
			extra = extra[:shortfall]
		}
		if len(extra) > 0 {
			s.logger.Debug("backfilled day candidates from other municipalities",
				slog.Int("day", theme.Day), slog.Int("added", len(extra)))
			pool = append(pool, extra...)
		}
	}

	sortByPreference(pool, profile)

	maxDist := maxPairDistanceKm(profile.Pace)
	selected := greedyCoherent(pool, theme.MaxStops, maxDist)

	// Correctness beats geographic tightness when data is sparse.
	if len(selected) < minDayPlaces {
		selected = pool
		if len(selected) > theme.MaxStops {
			selected = selected[:theme.MaxStops]
		}
	}
	return selected
}

// eligible drops used places and, for family trips, anything not
// family-friendly.
func (s *Selector) eligible(profile types.TravelerProfile, places []types.ScoredPlace, used map[string]bool) []types.ScoredPlace {
	var out []types.ScoredPlace
	for _, p := range places {
		if used[p.ID] {
			continue
		}
		if profile.TripType == types.TripTypeFamily && !p.FamilyFriendly {
			continue
		}
		out = append(out, p)
	}
	return out
}

// sortByPreference orders featured first, then by interest-tag matches, then
// rating, then id for stable output.
func sortByPreference(places []types.ScoredPlace, profile types.TravelerProfile) {
	sort.SliceStable(places, func(i, j int) bool {
		if places[i].Featured != places[j].Featured {
			return places[i].Featured
		}
		mi, mj := places[i].MatchingTags(profile.Interests), places[j].MatchingTags(profile.Interests)
		if mi != mj {
			return mi > mj
		}
		if places[i].Rating != places[j].Rating {
			return places[i].Rating > places[j].Rating
		}
		return places[i].ID < places[j].ID
	})
}

// greedyCoherent takes places in preference order, skipping any candidate
// farther than maxDist from one already taken. Disqualified candidates do
// not stop the scan.
func greedyCoherent(pool []types.ScoredPlace, maxStops int, maxDist float64) []types.ScoredPlace {
	var selected []types.ScoredPlace
	for _, candidate := range pool {
		if len(selected) >= maxStops {
			break
		}
		if fitsCluster(candidate, selected, maxDist) {
			selected = append(selected, candidate)
		}
	}
	return selected
}

func fitsCluster(candidate types.ScoredPlace, selected []types.ScoredPlace, maxDist float64) bool {
	for _, p := range selected {
		if routing.HaversineKm(candidate.Coordinates, p.Coordinates) > maxDist {
			return false
		}
	}
	return true
}

func maxPairDistanceKm(pace types.Pace) float64 {
	switch pace {
	case types.PaceRelaxed:
		return 3
	case types.PaceIntensive:
		return 8
	default:
		return 5
	}
}
