package types

// PlaceCategory classifies a catalog place.
type PlaceCategory string

const (
	CategoryBeach      PlaceCategory = "beach"
	CategoryMuseum     PlaceCategory = "museum"
	CategoryRestaurant PlaceCategory = "restaurant"
	CategoryBar        PlaceCategory = "bar"
	CategoryNature     PlaceCategory = "nature"
	CategoryCraft      PlaceCategory = "craft"
	CategoryViewpoint  PlaceCategory = "viewpoint"
	CategoryLandmark   PlaceCategory = "landmark"
	CategoryOther      PlaceCategory = "other"
)

// ScheduleWindow is one open/close window, "HH:MM" 24h clock.
type ScheduleWindow struct {
	Opens  string `json:"opens"`
	Closes string `json:"closes"`
}

// CandidatePlace is a catalog entry considered for scheduling. The catalog
// owns these records; the engine never mutates them.
type CandidatePlace struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Municipality        string           `json:"municipality"`
	Coordinates         GeoPoint         `json:"coordinates"`
	Category            PlaceCategory    `json:"category"`
	Description         string           `json:"description,omitempty"`
	InterestTags        []string         `json:"interest_tags,omitempty"`
	TypicalVisitMinutes int              `json:"typical_visit_minutes,omitempty"`
	EstimatedCost       float64          `json:"estimated_cost"`
	Rating              float64          `json:"rating"`
	FamilyFriendly      bool             `json:"family_friendly"`
	RomanticSpot        bool             `json:"romantic_spot,omitempty"`
	Featured            bool             `json:"featured,omitempty"`
	HighCrowd           bool             `json:"high_crowd,omitempty"`
	Schedule            []ScheduleWindow `json:"schedule,omitempty"`
}

// HasTag reports whether the place carries the given interest tag.
func (p *CandidatePlace) HasTag(tag string) bool {
	for _, t := range p.InterestTags {
		if t == tag {
			return true
		}
	}
	return false
}

// MatchingTags counts how many of the requested interests the place carries.
func (p *CandidatePlace) MatchingTags(interests []string) int {
	n := 0
	for _, tag := range interests {
		if p.HasTag(tag) {
			n++
		}
	}
	return n
}

// IsFood reports whether the place serves meals.
func (p *CandidatePlace) IsFood() bool {
	return p.Category == CategoryRestaurant || p.Category == CategoryBar
}

// ScoredPlace pairs a candidate with its per-run interest score. Derived,
// never persisted.
type ScoredPlace struct {
	CandidatePlace
	InterestScore int `json:"interest_score"`
}

// PlaceFilter is the query the engine sends to the catalog collaborator.
type PlaceFilter struct {
	Interests []string `json:"interests,omitempty"`
	TripType  TripType `json:"trip_type,omitempty"`
	Budget    Budget   `json:"budget,omitempty"`
	Days      int      `json:"days,omitempty"`
}
