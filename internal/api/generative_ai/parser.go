package generativeAI

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RemoteItinerary is the parsed remote enhancer response.
type RemoteItinerary struct {
	Days []RemoteDay `json:"days"`
}

type RemoteDay struct {
	Day          int          `json:"day"`
	Title        string       `json:"title"`
	Theme        string       `json:"theme"`
	Municipality string       `json:"municipality"`
	Description  string       `json:"description"`
	Stops        []RemoteStop `json:"stops"`
	Meals        RemoteMeals  `json:"meals"`
}

type RemoteStop struct {
	PlaceID                 string   `json:"place_id"`
	StartTime               string   `json:"start_time"`
	EndTime                 string   `json:"end_time"`
	PersonalizedDescription string   `json:"personalized_description"`
	WhyHere                 string   `json:"why_here"`
	Activities              []string `json:"activities"`
	TravelTimeFromPrevious  int      `json:"travel_time_from_previous"`
}

type RemoteMeals struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

// ParseRemoteItinerary cleans model output (markdown fences, surrounding
// prose) and unmarshals the itinerary JSON.
func ParseRemoteItinerary(response string) (*RemoteItinerary, error) {
	jsonStr := CleanJSONResponse(response)

	var itinerary RemoteItinerary
	if err := json.Unmarshal([]byte(jsonStr), &itinerary); err != nil {
		return nil, fmt.Errorf("failed to parse itinerary JSON: %w", err)
	}
	if len(itinerary.Days) == 0 {
		return nil, fmt.Errorf("remote itinerary contains no days")
	}
	return &itinerary, nil
}

// CleanJSONResponse strips markdown code fences and any explanatory text
// around the first JSON object in the response.
func CleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	if strings.HasSuffix(response, "```") {
		response = strings.TrimSuffix(response, "```")
	}
	response = strings.TrimSpace(response)

	firstBrace := strings.Index(response, "{")
	if firstBrace == -1 {
		return response
	}
	lastBrace := strings.LastIndex(response, "}")
	if lastBrace == -1 || lastBrace <= firstBrace {
		return response
	}
	return strings.TrimSpace(response[firstBrace : lastBrace+1])
}
