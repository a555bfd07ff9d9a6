package catalog

import (
	"sort"

	"github.com/atlanticotrips/itinerary-engine/internal/types"
)

// HomeMunicipality is the arrival/orientation municipality. Places with no
// municipality set are attributed to it.
const HomeMunicipality = "Barranquilla"

// MunicipalityInfo is the static reference record for one municipality of the
// department: where it is, how long it takes to reach from the home base, and
// what it is known for. This is configuration, not computed data.
type MunicipalityInfo struct {
	Name                    string
	Centroid                types.GeoPoint
	AccessMinutesFromOrigin int
	Transport               string
	SpecialtyTags           []string
	FullExplorationHours    float64
}

// MealSuggestions are the fallback meal names used when a day's schedule
// contains no food place.
type MealSuggestions struct {
	Breakfast string
	Lunch     string
	Dinner    string
}

var municipalities = map[string]MunicipalityInfo{
	"Barranquilla": {
		Name:                    "Barranquilla",
		Centroid:                types.GeoPoint{Latitude: 10.9639, Longitude: -74.7964},
		AccessMinutesFromOrigin: 0,
		Transport:               "taxi",
		SpecialtyTags:           []string{"gastronomia_local", "cultura", "vida_nocturna", "historia"},
		FullExplorationHours:    8,
	},
	"Puerto Colombia": {
		Name:                    "Puerto Colombia",
		Centroid:                types.GeoPoint{Latitude: 10.9878, Longitude: -74.9547},
		AccessMinutesFromOrigin: 35,
		Transport:               "bus",
		SpecialtyTags:           []string{"playas", "historia", "deportes_acuaticos"},
		FullExplorationHours:    6,
	},
	"Tubará": {
		Name:                    "Tubará",
		Centroid:                types.GeoPoint{Latitude: 10.8753, Longitude: -74.9786},
		AccessMinutesFromOrigin: 50,
		Transport:               "bus",
		SpecialtyTags:           []string{"playas", "naturaleza", "aventura"},
		FullExplorationHours:    6,
	},
	"Usiacurí": {
		Name:                    "Usiacurí",
		Centroid:                types.GeoPoint{Latitude: 10.7431, Longitude: -74.9772},
		AccessMinutesFromOrigin: 55,
		Transport:               "bus",
		SpecialtyTags:           []string{"artesanias", "cultura", "historia"},
		FullExplorationHours:    5,
	},
	"Galapa": {
		Name:                    "Galapa",
		Centroid:                types.GeoPoint{Latitude: 10.8978, Longitude: -74.8869},
		AccessMinutesFromOrigin: 25,
		Transport:               "bus",
		SpecialtyTags:           []string{"artesanias", "cultura"},
		FullExplorationHours:    4,
	},
	"Juan de Acosta": {
		Name:                    "Juan de Acosta",
		Centroid:                types.GeoPoint{Latitude: 10.8297, Longitude: -75.0414},
		AccessMinutesFromOrigin: 60,
		Transport:               "bus",
		SpecialtyTags:           []string{"playas", "naturaleza"},
		FullExplorationHours:    6,
	},
	"Luruaco": {
		Name:                    "Luruaco",
		Centroid:                types.GeoPoint{Latitude: 10.6103, Longitude: -75.1431},
		AccessMinutesFromOrigin: 75,
		Transport:               "bus",
		SpecialtyTags:           []string{"naturaleza", "gastronomia_local"},
		FullExplorationHours:    5,
	},
}

var mealTable = map[string]MealSuggestions{
	"Barranquilla":    {Breakfast: "Arepa de huevo en el mercado", Lunch: "Almuerzo costeño en el centro", Dinner: "Cena en la Calle 84"},
	"Puerto Colombia": {Breakfast: "Desayuno frente al muelle", Lunch: "Pescado frito en la playa", Dinner: "Cocada y café en el malecón"},
	"Tubará":          {Breakfast: "Café campesino", Lunch: "Sancocho de la región", Dinner: "Asado local"},
	"Usiacurí":        {Breakfast: "Jugos naturales del pueblo", Lunch: "Comida típica junto a la iglesia", Dinner: "Merienda artesanal"},
	"Galapa":          {Breakfast: "Panadería del parque", Lunch: "Almuerzo casero", Dinner: "Picada galapera"},
	"Juan de Acosta":  {Breakfast: "Desayuno playero", Lunch: "Mariscos en Santa Verónica", Dinner: "Cena frente al mar"},
	"Luruaco":         {Breakfast: "Arepa de huevo de Luruaco", Lunch: "Bocachico a la orilla de la laguna", Dinner: "Cena de regreso"},
}

var fallbackMeals = MealSuggestions{
	Breakfast: "Desayuno típico local",
	Lunch:     "Almuerzo en restaurante de la zona",
	Dinner:    "Cena en la plaza principal",
}

// Municipality returns the reference record for a municipality, falling back
// to the home municipality's record under the given name when unknown.
func Municipality(name string) MunicipalityInfo {
	if info, ok := municipalities[name]; ok {
		return info
	}
	info := municipalities[HomeMunicipality]
	info.Name = name
	return info
}

// KnownMunicipality reports whether the name has a real reference record.
func KnownMunicipality(name string) bool {
	_, ok := municipalities[name]
	return ok
}

// MunicipalityNames returns all reference municipality names sorted, so
// callers iterate deterministically.
func MunicipalityNames() []string {
	names := make([]string, 0, len(municipalities))
	for name := range municipalities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Meals returns the static meal suggestions for a municipality.
func Meals(municipality string) MealSuggestions {
	if m, ok := mealTable[municipality]; ok {
		return m
	}
	return fallbackMeals
}

// specialty tag -> categories a themed day should lean towards
var tagCategories = map[string][]types.PlaceCategory{
	"playas":             {types.CategoryBeach, types.CategoryViewpoint},
	"gastronomia_local":  {types.CategoryRestaurant, types.CategoryBar},
	"cultura":            {types.CategoryMuseum, types.CategoryLandmark},
	"historia":           {types.CategoryLandmark, types.CategoryMuseum},
	"artesanias":         {types.CategoryCraft},
	"naturaleza":         {types.CategoryNature, types.CategoryViewpoint},
	"aventura":           {types.CategoryNature, types.CategoryBeach},
	"vida_nocturna":      {types.CategoryBar},
	"deportes_acuaticos": {types.CategoryBeach},
}

// FocusCategories maps a municipality's specialty tags to the place
// categories a day there should focus on, deduplicated in tag order.
func FocusCategories(info MunicipalityInfo) []types.PlaceCategory {
	seen := make(map[types.PlaceCategory]bool)
	var out []types.PlaceCategory
	for _, tag := range info.SpecialtyTags {
		for _, cat := range tagCategories[tag] {
			if !seen[cat] {
				seen[cat] = true
				out = append(out, cat)
			}
		}
	}
	return out
}
