package scheduling

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/atlanticotrips/itinerary-engine/internal/api/catalog"
	"github.com/atlanticotrips/itinerary-engine/internal/api/routing"
	"github.com/atlanticotrips/itinerary-engine/internal/types"
)

const (
	urbanSpeedKmh    = 15
	minTravelMinutes = 10
	bufferMinutes    = 15

	lunchStart = 12 * 60
	lunchEnd   = 14 * 60

	familyCutoff = 19 * 60
	dayEnd       = 24 * 60

	highScoreThreshold  = 70
	highScoreMultiplier = 1.3
)

// Scheduler assigns clock times and meals to a day's ordered places.
type Scheduler struct {
	logger *slog.Logger
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

// ScheduleDay walks the ordered places assigning start/end times, travel
// estimates and meal slots. Places that would start past a traveler-type
// cutoff are dropped rather than scheduled.
func (s *Scheduler) ScheduleDay(ordered []types.ScoredPlace, theme types.DayTheme, profile types.TravelerProfile) ([]types.ScheduledStop, types.DayMeals) {
	info := catalog.Municipality(theme.Municipality)

	current := parseClock(theme.RecommendedStartTime)
	if theme.Municipality != catalog.HomeMunicipality {
		current += info.AccessMinutesFromOrigin
	}

	var stops []types.ScheduledStop
	var meals types.DayMeals
	barChosen := false

	for i, place := range ordered {
		travel := 0
		distance := 0.0
		if i > 0 {
			distance = routing.HaversineKm(ordered[i-1].Coordinates, place.Coordinates)
			travel = travelMinutes(distance)
		}
		start := current + travel
		visit := visitMinutes(place, profile)

		// Keep the lunch window free unless the stop itself is a restaurant.
		if place.Category != types.CategoryRestaurant && overlapsLunch(start, start+visit) {
			start = lunchEnd
		}

		if profile.TripType == types.TripTypeFamily && start >= familyCutoff {
			s.logger.Debug("family cutoff reached, dropping remaining places",
				slog.Int("day", theme.Day), slog.Int("dropped", len(ordered)-i))
			break
		}
		if start+visit >= dayEnd {
			s.logger.Debug("day would run past midnight, dropping remaining places",
				slog.Int("day", theme.Day), slog.Int("dropped", len(ordered)-i))
			break
		}

		stop := types.ScheduledStop{
			PlaceID:                   place.ID,
			Name:                      place.Name,
			StartTime:                 formatClock(start),
			EndTime:                   formatClock(start + visit),
			DurationMinutes:           visit,
			TravelMinutesFromPrevious: travel,
			DistanceFromPreviousKm:    roundKm(distance),
			EstimatedCost:             place.EstimatedCost,
			Category:                  place.Category,
			Rationale:                 rationale(place, profile),
		}
		stops = append(stops, stop)

		if place.IsFood() {
			assignMeal(&meals, place.Name, start/60)
		}
		if place.Category == types.CategoryBar {
			barChosen = true
		}

		current = start + visit + bufferMinutes
	}

	fillMeals(&meals, theme.Municipality, profile, barChosen)
	return stops, meals
}

func travelMinutes(distanceKm float64) int {
	m := int(math.Round(distanceKm / urbanSpeedKmh * 60))
	if m < minTravelMinutes {
		return minTravelMinutes
	}
	return m
}

func overlapsLunch(start, end int) bool {
	return start < lunchEnd && end > lunchStart
}

// visitMinutes derives the visit duration from the place category and the
// profile's depth/pace/activity preferences.
func visitMinutes(place types.ScoredPlace, profile types.TravelerProfile) int {
	var base int
	switch place.Category {
	case types.CategoryMuseum, types.CategoryLandmark, types.CategoryCraft:
		switch profile.CulturalDepth {
		case types.CulturalDepthSurface:
			base = 60
		case types.CulturalDepthImmersive:
			base = 120
		default:
			base = 90
		}
	case types.CategoryBeach:
		base = 120
		if profile.Pace == types.PaceRelaxed {
			base = 180
		}
	case types.CategoryRestaurant, types.CategoryBar:
		base = 90
	case types.CategoryNature, types.CategoryViewpoint:
		base = 90
		if profile.PhysicalActivity == types.PhysicalActivityHigh {
			base = 120
		}
	default:
		base = 75
	}

	if place.InterestScore > highScoreThreshold {
		base = int(math.Round(float64(base) * highScoreMultiplier))
	}
	return base
}

func assignMeal(meals *types.DayMeals, name string, hour int) {
	switch {
	case hour >= 6 && hour < 10 && meals.Breakfast == "":
		meals.Breakfast = name
	case hour >= 11 && hour < 15 && meals.Lunch == "":
		meals.Lunch = name
	case hour >= 18 && meals.Dinner == "":
		meals.Dinner = name
	}
}

// fillMeals completes empty slots from the municipality's static table.
// Family days skip the dinner suggestion unless nightlife was explicitly
// part of the day.
func fillMeals(meals *types.DayMeals, municipality string, profile types.TravelerProfile, barChosen bool) {
	table := catalog.Meals(municipality)
	if meals.Breakfast == "" {
		meals.Breakfast = table.Breakfast
	}
	if meals.Lunch == "" {
		meals.Lunch = table.Lunch
	}
	if meals.Dinner == "" {
		if profile.TripType == types.TripTypeFamily && !barChosen {
			return
		}
		meals.Dinner = table.Dinner
	}
}

func rationale(place types.ScoredPlace, profile types.TravelerProfile) string {
	matched := []string{}
	for _, tag := range profile.Interests {
		if place.HasTag(tag) {
			matched = append(matched, strings.ReplaceAll(tag, "_", " "))
		}
	}
	if len(matched) > 0 {
		return fmt.Sprintf("Seleccionado por tu interés en %s", strings.Join(matched, ", "))
	}
	if place.Featured {
		return "Lugar destacado de la región"
	}
	return "Recomendado por su buena calificación"
}

func parseClock(hhmm string) int {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 9 * 60
	}
	return h*60 + m
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func roundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
