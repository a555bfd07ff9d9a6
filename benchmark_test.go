package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atlanticotrips/itinerary-engine/internal/api/itinerary"
	"github.com/atlanticotrips/itinerary-engine/internal/api/routing"
	"github.com/atlanticotrips/itinerary-engine/internal/api/scoring"
	"github.com/atlanticotrips/itinerary-engine/internal/router"
	"github.com/atlanticotrips/itinerary-engine/internal/types"
)

// BenchmarkSuite wires the real pipeline behind the HTTP router so the
// benchmarks measure the same path production requests take.
type BenchmarkSuite struct {
	router  *chi.Mux
	service itinerary.Service
	logger  *slog.Logger
}

func setupBenchmarkSuite() *BenchmarkSuite {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	scorer := scoring.NewKeywordScorer(logger)
	service := itinerary.NewService(nil, scorer, nil, 5*time.Second, nil, logger)
	handler := itinerary.NewHandler(service, logger)

	mux := chi.NewRouter()
	mux.Mount("/", router.SetupRouter(&router.Config{ItineraryHandler: handler}))

	return &BenchmarkSuite{router: mux, service: service, logger: logger}
}

func benchmarkCandidates(n int) []types.CandidatePlace {
	municipalities := []string{"Barranquilla", "Puerto Colombia", "Usiacurí", "Tubará", "Galapa"}
	categories := []types.PlaceCategory{
		types.CategoryBeach, types.CategoryMuseum, types.CategoryRestaurant,
		types.CategoryNature, types.CategoryCraft, types.CategoryLandmark,
	}
	tags := [][]string{
		{"playas"}, {"cultura", "historia"}, {"gastronomia_local"},
		{"naturaleza"}, {"artesanias", "cultura"}, {"historia", "fotografia"},
	}

	out := make([]types.CandidatePlace, 0, n)
	for i := 0; i < n; i++ {
		k := i % len(categories)
		out = append(out, types.CandidatePlace{
			ID:             fmt.Sprintf("place-%03d", i),
			Name:           fmt.Sprintf("Lugar %03d", i),
			Municipality:   municipalities[i%len(municipalities)],
			Coordinates:    types.GeoPoint{Latitude: 10.9 + float64(i%20)*0.001, Longitude: -74.8 - float64(i%20)*0.001},
			Category:       categories[k],
			Description:    "Un lugar representativo del Atlántico",
			InterestTags:   tags[k],
			EstimatedCost:  float64((i % 5) * 10000),
			Rating:         3.5 + float64(i%3)*0.5,
			FamilyFriendly: i%7 != 0,
		})
	}
	return out
}

func benchmarkRequest(days, candidates int) types.GenerateItineraryRequest {
	return types.GenerateItineraryRequest{
		Profile: types.TravelerProfile{
			Days:      days,
			TripType:  types.TripTypeCouple,
			Interests: []string{"playas", "gastronomia_local", "cultura"},
			Pace:      types.PaceModerate,
		},
		CandidatePlaces: benchmarkCandidates(candidates),
	}
}

func BenchmarkGenerateItinerary(b *testing.B) {
	suite := setupBenchmarkSuite()

	for _, tc := range []struct {
		name       string
		days       int
		candidates int
	}{
		{"1day_10places", 1, 10},
		{"3days_30places", 3, 30},
		{"5days_100places", 5, 100},
	} {
		b.Run(tc.name, func(b *testing.B) {
			req := benchmarkRequest(tc.days, tc.candidates)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := suite.service.GenerateItinerary(context.Background(), req); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkGenerateEndpoint(b *testing.B) {
	suite := setupBenchmarkSuite()
	body, err := json.Marshal(benchmarkRequest(3, 30))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries/generate", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		suite.router.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			b.Fatalf("unexpected status %d: %s", rr.Code, rr.Body.String())
		}
	}
}

func BenchmarkInterestScoring(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	scorer := scoring.NewKeywordScorer(logger)
	candidates := benchmarkCandidates(100)
	profile := types.TravelerProfile{
		Days:      3,
		Interests: []string{"playas", "gastronomia_local", "cultura"},
		Pace:      types.PaceModerate,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scoring.ScoreAll(scorer, candidates, profile)
	}
}

func BenchmarkRouteSequencing(b *testing.B) {
	candidates := benchmarkCandidates(20)
	scored := make([]types.ScoredPlace, len(candidates))
	for i, c := range candidates {
		scored[i] = types.ScoredPlace{CandidatePlace: c, InterestScore: 50}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		routing.Sequence(scored)
	}
}
