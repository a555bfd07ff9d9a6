package itinerary

import (
	"fmt"

	"github.com/atlanticotrips/itinerary-engine/internal/types"
)

// validate runs the structural and policy checks. Errors mark the itinerary
// invalid; warnings never do. extraWarnings carries conditions absorbed
// earlier in the run (sparse candidates, remote drops).
func validate(
	itinerary *types.GeneratedItinerary,
	profile types.TravelerProfile,
	byID map[string]types.CandidatePlace,
	extraWarnings []string,
) types.ValidationResult {
	result := types.ValidationResult{}
	result.Warnings = append(result.Warnings, extraWarnings...)

	if len(itinerary.Days) == 0 {
		result.Errors = append(result.Errors, "no days were generated")
	}
	for _, day := range itinerary.Days {
		if len(day.Stops) == 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("day %d has no stops", day.Day))
		}
	}

	// Defense-in-depth: both generation paths deduplicate already.
	counts := map[string]int{}
	for _, day := range itinerary.Days {
		for _, stop := range day.Stops {
			counts[stop.PlaceID]++
			if counts[stop.PlaceID] == 2 {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("place %q scheduled more than once", stop.PlaceID))
			}
		}
	}

	// Fewer days than requested is informational, never fatal.
	if n := len(itinerary.Days); n > 0 && n < profile.Days {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("only %d of %d days generated", n, profile.Days))
	}

	// Defense-in-depth: the selector filters these out, but a remote response
	// or a catalog inconsistency could still slip one through.
	if profile.TripType == types.TripTypeFamily {
		for _, day := range itinerary.Days {
			for _, stop := range day.Stops {
				if place, ok := byID[stop.PlaceID]; ok && !place.FamilyFriendly {
					result.Warnings = append(result.Warnings,
						fmt.Sprintf("day %d: %q is not family-friendly", day.Day, stop.Name))
				}
			}
		}
	}

	result.IsValid = len(result.Errors) == 0
	return result
}
