package itinerary

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/atlanticotrips/itinerary-engine/internal/api/catalog"
	"github.com/atlanticotrips/itinerary-engine/internal/types"
)

// remoteBaselineScore is used when the remote path produced the days and
// per-stop interest matching was not recomputed.
const remoteBaselineScore = 70

// buildDay folds a day's scheduled stops and meals into a DayItinerary.
func buildDay(theme types.DayTheme, stops []types.ScheduledStop, meals types.DayMeals) types.DayItinerary {
	day := types.DayItinerary{
		Day:          theme.Day,
		Title:        fmt.Sprintf("Día %d: %s", theme.Day, theme.Municipality),
		Theme:        themeLabel(theme.Municipality),
		Municipality: theme.Municipality,
		Stops:        stops,
		Meals:        meals,
	}
	for _, stop := range stops {
		day.TotalCost += stop.EstimatedCost
		day.TotalDurationMinutes += stop.DurationMinutes + stop.TravelMinutesFromPrevious
	}
	return day
}

func themeLabel(municipality string) string {
	info := catalog.Municipality(municipality)
	if len(info.SpecialtyTags) == 0 {
		return municipality
	}
	parts := make([]string, 0, len(info.SpecialtyTags))
	for _, tag := range info.SpecialtyTags {
		parts = append(parts, strings.ReplaceAll(tag, "_", " "))
	}
	return strings.Join(parts, " y ")
}

// assemble aggregates the days into the final itinerary with its metadata.
// byID maps each candidate id to its place, used for interest matching.
func assemble(
	days []types.DayItinerary,
	profile types.TravelerProfile,
	byID map[string]types.CandidatePlace,
	remoteUsed bool,
	generatedAt time.Time,
) *types.GeneratedItinerary {
	out := &types.GeneratedItinerary{
		Days:        days,
		GeneratedAt: generatedAt,
		Interests:   profile.Interests,
		TripType:    profile.TripType,
	}
	for _, day := range days {
		out.TotalStops += len(day.Stops)
		out.TotalCost += day.TotalCost
	}
	out.PersonalizationScore = personalizationScore(days, profile, byID, remoteUsed)
	return out
}

// personalizationScore is the share of stops matching at least one requested
// interest, 0-100. The remote path keeps a fixed baseline since the model's
// choices are not re-scored.
func personalizationScore(days []types.DayItinerary, profile types.TravelerProfile, byID map[string]types.CandidatePlace, remoteUsed bool) int {
	if remoteUsed {
		return remoteBaselineScore
	}
	total, matched := 0, 0
	for _, day := range days {
		for _, stop := range day.Stops {
			total++
			if place, ok := byID[stop.PlaceID]; ok && place.MatchingTags(profile.Interests) > 0 {
				matched++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(matched) / float64(total) * 100))
}
