package types

import (
	"errors"
	"fmt"
)

// TripType identifies who is travelling.
type TripType string

const (
	TripTypeSolo    TripType = "solo"
	TripTypeCouple  TripType = "couple"
	TripTypeFamily  TripType = "family"
	TripTypeFriends TripType = "friends"
)

// Budget is the traveler's spending level.
type Budget string

const (
	BudgetLow    Budget = "low"
	BudgetMedium Budget = "medium"
	BudgetHigh   Budget = "high"
)

// Pace drives how many stops fit in a day and how long visits run.
type Pace string

const (
	PaceRelaxed   Pace = "relaxed"
	PaceModerate  Pace = "moderate"
	PaceIntensive Pace = "intensive"
)

// CrowdTolerance, CulturalDepth and PhysicalActivity are optional profile
// refinements; the empty string means unset and no score/duration adjustment.
type CrowdTolerance string

const (
	CrowdToleranceAvoid CrowdTolerance = "avoid"
	CrowdToleranceOkay  CrowdTolerance = "okay"
)

type CulturalDepth string

const (
	CulturalDepthSurface   CulturalDepth = "surface"
	CulturalDepthDeep      CulturalDepth = "deep"
	CulturalDepthImmersive CulturalDepth = "immersive"
)

type PhysicalActivity string

const (
	PhysicalActivityLow      PhysicalActivity = "low"
	PhysicalActivityModerate PhysicalActivity = "moderate"
	PhysicalActivityHigh     PhysicalActivity = "high"
)

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ErrInvalidProfile is returned when a generation request carries a profile
// the engine cannot work with (days < 1 or no interests).
var ErrInvalidProfile = errors.New("invalid traveler profile")

// TravelerProfile is the immutable input describing the trip to plan.
type TravelerProfile struct {
	Days                int              `json:"days"`
	TripType            TripType         `json:"trip_type"`
	Interests           []string         `json:"interests"`
	Budget              Budget           `json:"budget"`
	Pace                Pace             `json:"pace"`
	MaxTravelDistanceKm float64          `json:"max_travel_distance_km,omitempty"`
	StartLocation       *GeoPoint        `json:"start_location,omitempty"`
	CrowdTolerance      CrowdTolerance   `json:"crowd_tolerance,omitempty"`
	CulturalDepth       CulturalDepth    `json:"cultural_depth,omitempty"`
	PhysicalActivity    PhysicalActivity `json:"physical_activity,omitempty"`
	// HomeOnly restricts every day to the home municipality instead of
	// exploring the rest of the department.
	HomeOnly bool `json:"home_only,omitempty"`
}

// Validate rejects profiles the engine must not attempt to plan for.
func (p *TravelerProfile) Validate() error {
	if p.Days < 1 {
		return fmt.Errorf("%w: days must be >= 1, got %d", ErrInvalidProfile, p.Days)
	}
	if len(p.Interests) == 0 {
		return fmt.Errorf("%w: at least one interest is required", ErrInvalidProfile)
	}
	return nil
}

// HasInterest reports whether the profile requested the given interest tag.
func (p *TravelerProfile) HasInterest(tag string) bool {
	for _, t := range p.Interests {
		if t == tag {
			return true
		}
	}
	return false
}
