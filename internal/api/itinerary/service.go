package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	appmetrics "github.com/atlanticotrips/itinerary-engine/app/observability/metrics"
	"github.com/atlanticotrips/itinerary-engine/internal/api/catalog"
	"github.com/atlanticotrips/itinerary-engine/internal/api/clustering"
	generativeAI "github.com/atlanticotrips/itinerary-engine/internal/api/generative_ai"
	"github.com/atlanticotrips/itinerary-engine/internal/api/routing"
	"github.com/atlanticotrips/itinerary-engine/internal/api/scheduling"
	"github.com/atlanticotrips/itinerary-engine/internal/api/scoring"
	"github.com/atlanticotrips/itinerary-engine/internal/api/selection"
	"github.com/atlanticotrips/itinerary-engine/internal/types"
)

// generationState labels the orchestrator's phases for logging and tracing.
type generationState string

const (
	stateBuildingCandidates generationState = "building_candidates"
	stateTryRemote          generationState = "try_remote"
	stateLocalFallback      generationState = "local_fallback"
	stateValidating         generationState = "validating"
	stateDone               generationState = "done"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service generates a complete itinerary for one request.
type Service interface {
	GenerateItinerary(ctx context.Context, req types.GenerateItineraryRequest) (*types.GeneratedItinerary, error)
}

// ServiceImpl orchestrates the generation pipeline: candidate building, the
// optional remote enhancer, the deterministic local algorithm, and
// validation. Each run works on its own copies; no shared mutable state.
type ServiceImpl struct {
	logger        *slog.Logger
	catalogRepo   catalog.Repository
	scorer        scoring.Scorer
	clusterer     *clustering.Clusterer
	selector      *selection.Selector
	scheduler     *scheduling.Scheduler
	aiClient      generativeAI.Client
	remoteTimeout time.Duration
	metrics       *appmetrics.AppMetrics
	now           func() time.Time
}

// NewService creates the generation orchestrator. aiClient may be nil when
// no remote enhancer credential is configured; metrics may be nil in tests.
func NewService(
	catalogRepo catalog.Repository,
	scorer scoring.Scorer,
	aiClient generativeAI.Client,
	remoteTimeout time.Duration,
	m *appmetrics.AppMetrics,
	logger *slog.Logger,
) *ServiceImpl {
	return &ServiceImpl{
		logger:        logger,
		catalogRepo:   catalogRepo,
		scorer:        scorer,
		clusterer:     clustering.NewClusterer(logger),
		selector:      selection.NewSelector(logger),
		scheduler:     scheduling.NewScheduler(logger),
		aiClient:      aiClient,
		remoteTimeout: remoteTimeout,
		metrics:       m,
		now:           time.Now,
	}
}

func (s *ServiceImpl) GenerateItinerary(ctx context.Context, req types.GenerateItineraryRequest) (*types.GeneratedItinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.Int("profile.days", req.Profile.Days),
		attribute.String("profile.trip_type", string(req.Profile.TripType)),
	))
	defer span.End()

	if err := req.Profile.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid profile")
		return nil, err
	}

	started := time.Now()
	profile := req.Profile
	l := s.logger.With(
		slog.String("trip_type", string(profile.TripType)),
		slog.Int("days", profile.Days),
	)

	s.transition(ctx, l, stateBuildingCandidates)
	candidates, warnings := s.buildCandidates(ctx, l, req)

	byID := make(map[string]types.CandidatePlace, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	var days []types.DayItinerary
	remoteUsed := false
	if s.aiClient != nil {
		s.transition(ctx, l, stateTryRemote)
		remoteDays, err := s.tryRemote(ctx, l, profile, candidates, byID)
		if err != nil {
			// Any remote failure falls straight to the local algorithm; the
			// caller never sees it as an error.
			l.WarnContext(ctx, "remote enhancer failed, falling back to local algorithm",
				slog.Any("error", err))
			if s.metrics != nil {
				s.metrics.RemoteFallbacksTotal.Add(ctx, 1)
			}
		} else {
			days = remoteDays
			remoteUsed = true
		}
	}
	if !remoteUsed {
		s.transition(ctx, l, stateLocalFallback)
		days = s.generateLocal(profile, candidates)
	}

	result := assemble(days, profile, byID, remoteUsed, s.now())

	s.transition(ctx, l, stateValidating)
	result.Validation = validate(result, profile, byID, warnings)

	s.transition(ctx, l, stateDone)
	span.SetAttributes(
		attribute.Int("itinerary.days", len(result.Days)),
		attribute.Int("itinerary.stops", result.TotalStops),
		attribute.Bool("itinerary.remote_used", remoteUsed),
		attribute.Bool("itinerary.valid", result.Validation.IsValid),
	)
	if s.metrics != nil {
		s.metrics.GenerationsTotal.Add(ctx, 1)
		s.metrics.GenerationDurationSeconds.Record(ctx, time.Since(started).Seconds())
	}
	l.InfoContext(ctx, "itinerary generated",
		slog.Int("days_produced", len(result.Days)),
		slog.Int("total_stops", result.TotalStops),
		slog.Bool("remote_used", remoteUsed),
		slog.Bool("valid", result.Validation.IsValid),
	)
	return result, nil
}

func (s *ServiceImpl) transition(ctx context.Context, l *slog.Logger, state generationState) {
	l.DebugContext(ctx, "generation state", slog.String("state", string(state)))
}

// buildCandidates resolves the candidate set: the request's inline list, or
// a catalog query backfilled with featured places when sparse. Catalog
// trouble is absorbed as a warning, never an error.
func (s *ServiceImpl) buildCandidates(ctx context.Context, l *slog.Logger, req types.GenerateItineraryRequest) ([]types.CandidatePlace, []string) {
	profile := req.Profile
	want := 2 * profile.Days
	var warnings []string

	candidates := req.CandidatePlaces
	fromCatalog := len(candidates) == 0

	if fromCatalog {
		if s.catalogRepo == nil {
			return nil, []string{"no candidate places available"}
		}
		fetched, err := s.catalogRepo.GetPlaces(ctx, types.PlaceFilter{
			Interests: profile.Interests,
			TripType:  profile.TripType,
			Budget:    profile.Budget,
			Days:      profile.Days,
		})
		if err != nil {
			l.ErrorContext(ctx, "place catalog query failed", slog.Any("error", err))
			return nil, []string{"place catalog unavailable"}
		}
		candidates = fetched
	}

	if fromCatalog && len(candidates) < want {
		familyOnly := profile.TripType == types.TripTypeFamily
		featured, err := s.catalogRepo.GetFeatured(ctx, want, familyOnly)
		if err != nil {
			l.WarnContext(ctx, "featured backfill failed", slog.Any("error", err))
		} else {
			candidates = mergePlaces(candidates, featured)
			if s.metrics != nil {
				s.metrics.CandidateBackfillsTotal.Add(ctx, 1)
			}
			l.DebugContext(ctx, "backfilled candidates with featured places",
				slog.Int("total", len(candidates)))
		}
	}

	if len(candidates) < want {
		warnings = append(warnings,
			fmt.Sprintf("insufficient candidates: %d available for %d days", len(candidates), profile.Days))
	}
	return candidates, warnings
}

func mergePlaces(base, extra []types.CandidatePlace) []types.CandidatePlace {
	seen := make(map[string]bool, len(base))
	for _, p := range base {
		seen[p.ID] = true
	}
	for _, p := range extra {
		if !seen[p.ID] {
			seen[p.ID] = true
			base = append(base, p)
		}
	}
	return base
}

// tryRemote sends one bounded request to the remote enhancer and maps its
// response onto the candidate set. A single failure is final; there is no
// retry, itinerary freshness matters more than remote resilience.
func (s *ServiceImpl) tryRemote(
	ctx context.Context,
	l *slog.Logger,
	profile types.TravelerProfile,
	candidates []types.CandidatePlace,
	byID map[string]types.CandidatePlace,
) ([]types.DayItinerary, error) {
	interactionID := uuid.New()
	rctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()

	prompt := generativeAI.BuildItineraryPrompt(profile, candidates)
	started := time.Now()
	response, err := s.aiClient.GenerateResponse(rctx, prompt, nil)
	latency := time.Since(started)
	if err != nil {
		l.WarnContext(ctx, "remote enhancer call failed",
			slog.String("interaction_id", interactionID.String()),
			slog.Duration("latency", latency),
			slog.Any("error", err))
		return nil, fmt.Errorf("remote call failed: %w", err)
	}

	remote, err := generativeAI.ParseRemoteItinerary(response)
	if err != nil {
		return nil, fmt.Errorf("malformed remote response: %w", err)
	}
	l.InfoContext(ctx, "remote enhancer responded",
		slog.String("interaction_id", interactionID.String()),
		slog.Duration("latency", latency),
		slog.Int("days", len(remote.Days)))

	return s.mapRemoteDays(ctx, l, remote, profile, byID), nil
}

// mapRemoteDays converts the remote response into DayItinerary records.
// Unknown place ids, repeated place ids and family-unsafe places are dropped
// with a warning log; a day emptied by drops is kept so the validator can
// flag it. Stop times are normalized so each stop starts no earlier than the
// previous one ended. Never more days than requested.
func (s *ServiceImpl) mapRemoteDays(
	ctx context.Context,
	l *slog.Logger,
	remote *generativeAI.RemoteItinerary,
	profile types.TravelerProfile,
	byID map[string]types.CandidatePlace,
) []types.DayItinerary {
	remoteDays := remote.Days
	if len(remoteDays) > profile.Days {
		remoteDays = remoteDays[:profile.Days]
	}

	used := make(map[string]bool)
	days := make([]types.DayItinerary, 0, len(remoteDays))
	for i, rd := range remoteDays {
		municipality := rd.Municipality
		if municipality == "" {
			municipality = catalog.HomeMunicipality
		}
		maxStops := clustering.MaxStopsFor(profile, municipality)

		var stops []types.ScheduledStop
		prevEnd := -1
		for _, rs := range rd.Stops {
			if len(stops) >= maxStops {
				break
			}
			place, ok := byID[rs.PlaceID]
			if !ok {
				l.WarnContext(ctx, "remote stop references unknown place, dropping",
					slog.String("place_id", rs.PlaceID), slog.Int("day", rd.Day))
				continue
			}
			if used[place.ID] {
				l.WarnContext(ctx, "remote stop repeats an already scheduled place, dropping",
					slog.String("place_id", rs.PlaceID), slog.Int("day", rd.Day))
				continue
			}
			if profile.TripType == types.TripTypeFamily && !place.FamilyFriendly {
				l.WarnContext(ctx, "remote stop is not family-friendly, dropping",
					slog.String("place_id", rs.PlaceID), slog.Int("day", rd.Day))
				continue
			}
			used[place.ID] = true

			duration := clockSpanMinutes(rs.StartTime, rs.EndTime, place.TypicalVisitMinutes)
			startTime, endTime := rs.StartTime, rs.EndTime
			if start, ok := parseClockMinutes(rs.StartTime); ok {
				// The model occasionally emits overlapping or reversed times;
				// push the stop forward keeping its span.
				if start < prevEnd {
					l.WarnContext(ctx, "remote stop starts before the previous one ended, shifting",
						slog.String("place_id", rs.PlaceID), slog.Int("day", rd.Day))
					start = prevEnd
				}
				startTime = formatClockMinutes(start)
				endTime = formatClockMinutes(start + duration)
				prevEnd = start + duration
			}

			stops = append(stops, types.ScheduledStop{
				PlaceID:                   place.ID,
				Name:                      place.Name,
				StartTime:                 startTime,
				EndTime:                   endTime,
				DurationMinutes:           duration,
				TravelMinutesFromPrevious: rs.TravelTimeFromPrevious,
				EstimatedCost:             place.EstimatedCost,
				Category:                  place.Category,
				Rationale:                 rs.WhyHere,
			})
		}

		day := types.DayItinerary{
			Day:          i + 1,
			Title:        rd.Title,
			Theme:        rd.Theme,
			Municipality: municipality,
			Stops:        stops,
			Meals: types.DayMeals{
				Breakfast: rd.Meals.Breakfast,
				Lunch:     rd.Meals.Lunch,
				Dinner:    rd.Meals.Dinner,
			},
		}
		if day.Title == "" {
			day.Title = fmt.Sprintf("Día %d: %s", i+1, municipality)
		}
		for _, stop := range stops {
			day.TotalCost += stop.EstimatedCost
			day.TotalDurationMinutes += stop.DurationMinutes + stop.TravelMinutesFromPrevious
		}
		days = append(days, day)
	}
	return days
}

// generateLocal is the deterministic pipeline: score, cluster, pick day
// themes, then select, sequence and schedule each day. Days the data cannot
// fill are skipped, which surfaces later as a fewer-days warning.
func (s *ServiceImpl) generateLocal(profile types.TravelerProfile, candidates []types.CandidatePlace) []types.DayItinerary {
	scored := scoring.ScoreAll(s.scorer, candidates, profile)
	clusters := s.clusterer.Cluster(scored)
	themes := s.clusterer.SelectDayThemes(profile, clusters)

	used := make(map[string]bool)
	var days []types.DayItinerary
	for _, theme := range themes {
		clusterPlaces := clusters[theme.Municipality].Places
		backfill := make([]types.ScoredPlace, 0, len(scored))
		for _, p := range scored {
			if p.Municipality != theme.Municipality {
				backfill = append(backfill, p)
			}
		}

		selected := s.selector.SelectForDay(profile, theme, clusterPlaces, backfill, used)
		if len(selected) == 0 {
			continue
		}
		ordered := routing.Sequence(selected)
		stops, meals := s.scheduler.ScheduleDay(ordered, theme, profile)
		if len(stops) == 0 {
			continue
		}
		for _, stop := range stops {
			used[stop.PlaceID] = true
		}

		// Renumber so skipped days leave no gaps.
		theme.Day = len(days) + 1
		days = append(days, buildDay(theme, stops, meals))
	}
	return days
}

func parseClockMinutes(hhmm string) (int, bool) {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	return h*60 + m, true
}

func formatClockMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func clockSpanMinutes(start, end string, fallback int) int {
	var sh, sm, eh, em int
	if _, err := fmt.Sscanf(start, "%d:%d", &sh, &sm); err != nil {
		return defaultVisit(fallback)
	}
	if _, err := fmt.Sscanf(end, "%d:%d", &eh, &em); err != nil {
		return defaultVisit(fallback)
	}
	span := (eh*60 + em) - (sh*60 + sm)
	if span <= 0 {
		return defaultVisit(fallback)
	}
	return span
}

func defaultVisit(typical int) int {
	if typical > 0 {
		return typical
	}
	return 75
}
