package itinerary

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/atlanticotrips/itinerary-engine/internal/api"
	"github.com/atlanticotrips/itinerary-engine/internal/types"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Generate handles POST /api/v1/itineraries/generate. A structurally invalid
// profile is a request error; everything else comes back as a (possibly
// invalid) itinerary with its validation block.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GenerateItinerary").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/generate"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateItinerary"))
	l.DebugContext(ctx, "Generate itinerary handler invoked")

	var req types.GenerateItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.GenerateItinerary(ctx, req)
	if err != nil {
		if errors.Is(err, types.ErrInvalidProfile) {
			l.WarnContext(ctx, "Rejected invalid profile", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Itinerary generation failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to generate itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, result)
}
