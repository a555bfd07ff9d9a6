package generativeAI

import (
	"fmt"
	"strings"

	"github.com/atlanticotrips/itinerary-engine/internal/types"
)

// BuildItineraryPrompt serializes the profile and candidate list into the
// remote enhancer request. The model may only reference candidate ids.
func BuildItineraryPrompt(profile types.TravelerProfile, candidates []types.CandidatePlace) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`You are a local travel planner for the Atlántico department in Colombia.
Design a %d-day itinerary for this traveler:

TRAVELER PROFILE:
    - Trip Type: %s
    - Interests: [%s]
    - Budget Level: %s
    - Pace: %s`,
		profile.Days, profile.TripType, strings.Join(profile.Interests, ", "),
		profile.Budget, profile.Pace))

	if profile.CulturalDepth != "" {
		sb.WriteString(fmt.Sprintf(`
    - Cultural Depth: %s`, profile.CulturalDepth))
	}
	if profile.TripType == types.TripTypeFamily {
		sb.WriteString(`
    - IMPORTANT: family trip, only include family-friendly places`)
	}

	sb.WriteString("\n\nCANDIDATE PLACES (use ONLY these, referenced by id):\n")
	for _, p := range candidates {
		sb.WriteString(fmt.Sprintf("    - id=%q name=%q municipality=%q category=%s rating=%.1f tags=[%s] family_friendly=%t\n",
			p.ID, p.Name, p.Municipality, p.Category, p.Rating,
			strings.Join(p.InterestTags, ", "), p.FamilyFriendly))
	}

	sb.WriteString(`
Respond with ONLY valid JSON, no markdown fences, in this exact shape:
{
  "days": [
    {
      "day": 1,
      "title": "...",
      "theme": "...",
      "municipality": "...",
      "description": "...",
      "stops": [
        {
          "place_id": "...",
          "start_time": "09:00",
          "end_time": "10:30",
          "personalized_description": "...",
          "why_here": "...",
          "activities": ["..."],
          "travel_time_from_previous": 15
        }
      ],
      "meals": {"breakfast": "...", "lunch": "...", "dinner": "..."}
    }
  ]
}
Every place_id must come from the candidate list. Times are 24h HH:MM.
Group each day inside a single municipality and keep the 12:00-14:00 window
free for lunch unless the stop is a restaurant.`)

	return sb.String()
}
