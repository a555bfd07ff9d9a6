package types

import "time"

// MunicipalityCluster groups the scored places of one municipality for a run.
type MunicipalityCluster struct {
	Name                    string        `json:"name"`
	Centroid                GeoPoint      `json:"centroid"`
	Places                  []ScoredPlace `json:"places"`
	FullExplorationHours    float64       `json:"full_exploration_hours"`
	TravelMinutesFromOrigin int           `json:"travel_minutes_from_origin"`
}

// DayTheme assigns a municipality and focus to one day of the trip.
type DayTheme struct {
	Day                  int             `json:"day"`
	Municipality         string          `json:"municipality"`
	FocusCategories      []PlaceCategory `json:"focus_categories,omitempty"`
	RecommendedStartTime string          `json:"recommended_start_time"`
	MaxStops             int             `json:"max_stops"`
}

// ScheduledStop is one timed visit within a day. Immutable once computed.
type ScheduledStop struct {
	PlaceID                   string        `json:"place_id"`
	Name                      string        `json:"name"`
	StartTime                 string        `json:"start_time"`
	EndTime                   string        `json:"end_time"`
	DurationMinutes           int           `json:"duration_minutes"`
	TravelMinutesFromPrevious int           `json:"travel_minutes_from_previous"`
	DistanceFromPreviousKm    float64       `json:"distance_from_previous_km"`
	EstimatedCost             float64       `json:"estimated_cost"`
	Category                  PlaceCategory `json:"category"`
	Rationale                 string        `json:"rationale,omitempty"`
}

// DayMeals holds the day's meal suggestions. Empty fields are omitted.
type DayMeals struct {
	Breakfast string `json:"breakfast,omitempty"`
	Lunch     string `json:"lunch,omitempty"`
	Dinner    string `json:"dinner,omitempty"`
}

// DayItinerary is one planned day.
type DayItinerary struct {
	Day                  int             `json:"day"`
	Title                string          `json:"title"`
	Theme                string          `json:"theme"`
	Municipality         string          `json:"municipality"`
	Stops                []ScheduledStop `json:"stops"`
	Meals                DayMeals        `json:"meals"`
	TotalCost            float64         `json:"total_cost"`
	TotalDurationMinutes int             `json:"total_duration_minutes"`
}

// ValidationResult reports structural and policy checks on an itinerary.
// Errors mark the itinerary invalid; warnings are informational.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// GeneratedItinerary is the engine's final output.
type GeneratedItinerary struct {
	Days                 []DayItinerary   `json:"days"`
	GeneratedAt          time.Time        `json:"generated_at"`
	TotalStops           int              `json:"total_stops"`
	TotalCost            float64          `json:"total_cost"`
	PersonalizationScore int              `json:"personalization_score"`
	Interests            []string         `json:"interests"`
	TripType             TripType         `json:"trip_type"`
	Validation           ValidationResult `json:"validation"`
}

// GenerateItineraryRequest is the engine's input. When CandidatePlaces is
// empty the orchestrator queries the place catalog itself.
type GenerateItineraryRequest struct {
	Profile         TravelerProfile  `json:"profile"`
	CandidatePlaces []CandidatePlace `json:"candidate_places,omitempty"`
}
