package clustering

import (
	"log/slog"
	"sort"

	"github.com/atlanticotrips/itinerary-engine/internal/api/catalog"
	"github.com/atlanticotrips/itinerary-engine/internal/types"
)

const (
	day1StartTime  = "09:00"
	dayNStartTime  = "08:00"
	farAccessMin   = 45
	minStopsPerDay = 2
)

// Clusterer groups scored places by municipality and assigns one themed
// municipality per trip day.
type Clusterer struct {
	logger *slog.Logger
}

func NewClusterer(logger *slog.Logger) *Clusterer {
	return &Clusterer{logger: logger}
}

// Cluster groups candidates by municipality. Places with no municipality are
// attributed to the home municipality.
func (c *Clusterer) Cluster(places []types.ScoredPlace) map[string]types.MunicipalityCluster {
	grouped := make(map[string][]types.ScoredPlace)
	for _, p := range places {
		name := p.Municipality
		if name == "" {
			name = catalog.HomeMunicipality
		}
		grouped[name] = append(grouped[name], p)
	}

	clusters := make(map[string]types.MunicipalityCluster, len(grouped))
	for name, members := range grouped {
		info := catalog.Municipality(name)
		clusters[name] = types.MunicipalityCluster{
			Name:                    name,
			Centroid:                info.Centroid,
			Places:                  members,
			FullExplorationHours:    info.FullExplorationHours,
			TravelMinutesFromOrigin: info.AccessMinutesFromOrigin,
		}
	}
	return clusters
}

// SelectDayThemes assigns a municipality to each trip day. Day 1 is always
// the home municipality for orientation; later days pick the best-scoring
// unused municipality among those that actually have candidate places.
func (c *Clusterer) SelectDayThemes(profile types.TravelerProfile, clusters map[string]types.MunicipalityCluster) []types.DayTheme {
	themes := make([]types.DayTheme, 0, profile.Days)
	used := map[string]bool{}

	for day := 1; day <= profile.Days; day++ {
		var name string
		switch {
		case day == 1 || profile.HomeOnly:
			name = catalog.HomeMunicipality
		default:
			name = c.pickMunicipality(profile, clusters, used)
		}
		used[name] = true
		themes = append(themes, c.buildTheme(day, name, profile))
	}
	return themes
}

// pickMunicipality ranks the unused municipalities that have places.
// Score: +15 per specialty tag matching the profile's interests, -20 when a
// relaxed traveler would face more than 45 minutes of access travel. Ties go
// to the closest municipality, then alphabetical for stable output.
func (c *Clusterer) pickMunicipality(profile types.TravelerProfile, clusters map[string]types.MunicipalityCluster, used map[string]bool) string {
	type ranked struct {
		name   string
		score  int
		access int
	}

	names := make([]string, 0, len(clusters))
	for name := range clusters {
		if !used[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var candidates []ranked
	for _, name := range names {
		info := catalog.Municipality(name)
		score := 0
		for _, tag := range info.SpecialtyTags {
			if profile.HasInterest(tag) {
				score += 15
			}
		}
		if profile.Pace == types.PaceRelaxed && info.AccessMinutesFromOrigin > farAccessMin {
			score -= 20
		}
		candidates = append(candidates, ranked{name: name, score: score, access: info.AccessMinutesFromOrigin})
	}

	if len(candidates) == 0 {
		// Nothing new left to explore; return to base.
		return catalog.HomeMunicipality
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if candidates[i].access != candidates[j].access {
			return candidates[i].access < candidates[j].access
		}
		return candidates[i].name < candidates[j].name
	})

	c.logger.Debug("ranked day municipality",
		slog.String("municipality", candidates[0].name),
		slog.Int("score", candidates[0].score))
	return candidates[0].name
}

func (c *Clusterer) buildTheme(day int, municipality string, profile types.TravelerProfile) types.DayTheme {
	info := catalog.Municipality(municipality)

	start := dayNStartTime
	if day == 1 {
		start = day1StartTime
	}

	return types.DayTheme{
		Day:                  day,
		Municipality:         municipality,
		FocusCategories:      catalog.FocusCategories(info),
		RecommendedStartTime: start,
		MaxStops:             maxStops(profile, info),
	}
}

// MaxStopsFor returns the per-day stop cap for a profile visiting the given
// municipality. The remote path uses it to cap model-produced days the same
// way locally themed days are capped.
func MaxStopsFor(profile types.TravelerProfile, municipality string) int {
	return maxStops(profile, catalog.Municipality(municipality))
}

// maxStops derives the per-day stop cap: pace base, minus one for a long
// access trip, minus one for immersive cultural depth, floored at two.
func maxStops(profile types.TravelerProfile, info catalog.MunicipalityInfo) int {
	stops := 4
	switch profile.Pace {
	case types.PaceRelaxed:
		stops = 3
	case types.PaceIntensive:
		stops = 5
	}
	if info.AccessMinutesFromOrigin > farAccessMin {
		stops--
	}
	if profile.CulturalDepth == types.CulturalDepthImmersive {
		stops--
	}
	if stops < minStopsPerDay {
		stops = minStopsPerDay
	}
	return stops
}
