package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/atlanticotrips/itinerary-engine/internal/types"
)

// Ensure implementation satisfies the interface
var _ Repository = (*PostgresRepository)(nil)

// Repository is the read-only place catalog collaborator.
type Repository interface {
	// GetPlaces returns candidates matching the profile-derived filter.
	GetPlaces(ctx context.Context, filter types.PlaceFilter) ([]types.CandidatePlace, error)
	// GetFeatured returns up to limit featured or high-rated places, used to
	// backfill sparse candidate sets.
	GetFeatured(ctx context.Context, limit int, familyOnly bool) ([]types.CandidatePlace, error)
}

// PgxPool is the subset of pgxpool.Pool the repository uses; pgxmock
// satisfies it in tests.
type PgxPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository reads the place catalog from Postgres.
type PostgresRepository struct {
	logger *slog.Logger
	pool   PgxPool
}

func NewPostgresRepository(pool PgxPool, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger: logger,
		pool:   pool,
	}
}

const placeColumns = `
	id, name, municipality, latitude, longitude, category,
	COALESCE(description, ''), COALESCE(interest_tags, '{}'),
	COALESCE(typical_visit_minutes, 0), estimated_cost, rating,
	family_friendly, romantic_spot, featured, high_crowd`

func (r *PostgresRepository) GetPlaces(ctx context.Context, filter types.PlaceFilter) ([]types.CandidatePlace, error) {
	ctx, span := otel.Tracer("CatalogRepository").Start(ctx, "GetPlaces", trace.WithAttributes(
		attribute.Int("filter.days", filter.Days),
		attribute.String("filter.trip_type", string(filter.TripType)),
	))
	defer span.End()

	query := `SELECT ` + placeColumns + `
		FROM places
		WHERE ($1::text[] = '{}' OR interest_tags && $1 OR featured)`
	args := []any{interestsParam(filter.Interests)}

	if filter.TripType == types.TripTypeFamily {
		query += ` AND family_friendly`
	}
	switch filter.Budget {
	case types.BudgetLow:
		query += ` AND estimated_cost <= 50000`
	case types.BudgetMedium:
		query += ` AND estimated_cost <= 150000`
	}
	query += ` ORDER BY featured DESC, rating DESC, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	defer rows.Close()

	places, err := scanPlaces(rows)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("places.count", len(places)))
	r.logger.DebugContext(ctx, "catalog places fetched", slog.Int("count", len(places)))
	return places, nil
}

func (r *PostgresRepository) GetFeatured(ctx context.Context, limit int, familyOnly bool) ([]types.CandidatePlace, error) {
	ctx, span := otel.Tracer("CatalogRepository").Start(ctx, "GetFeatured", trace.WithAttributes(
		attribute.Int("limit", limit),
		attribute.Bool("family_only", familyOnly),
	))
	defer span.End()

	query := `SELECT ` + placeColumns + `
		FROM places
		WHERE (featured OR rating >= 4.0)`
	if familyOnly {
		query += ` AND family_friendly`
	}
	query += ` ORDER BY featured DESC, rating DESC, id LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to query featured places: %w", err)
	}
	defer rows.Close()

	return scanPlaces(rows)
}

func scanPlaces(rows pgx.Rows) ([]types.CandidatePlace, error) {
	var places []types.CandidatePlace
	for rows.Next() {
		var p types.CandidatePlace
		err := rows.Scan(
			&p.ID, &p.Name, &p.Municipality,
			&p.Coordinates.Latitude, &p.Coordinates.Longitude, &p.Category,
			&p.Description, &p.InterestTags,
			&p.TypicalVisitMinutes, &p.EstimatedCost, &p.Rating,
			&p.FamilyFriendly, &p.RomanticSpot, &p.Featured, &p.HighCrowd,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place row: %w", err)
		}
		if p.Municipality == "" {
			p.Municipality = HomeMunicipality
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating place rows: %w", err)
	}
	return places, nil
}

func interestsParam(interests []string) []string {
	if interests == nil {
		return []string{}
	}
	return interests
}
