package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	GenerationsTotal          metric.Int64Counter
	GenerationDurationSeconds metric.Float64Histogram
	RemoteFallbacksTotal      metric.Int64Counter
	CandidateBackfillsTotal   metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("ItineraryEngine")
		var err error
		m := &AppMetrics{}

		m.GenerationsTotal, err = meter.Int64Counter(
			"itinerary_generations_total",
			metric.WithDescription("Total number of itinerary generation requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_generations_total: %v", err)
		}

		m.GenerationDurationSeconds, err = meter.Float64Histogram(
			"itinerary_generation_duration_seconds",
			metric.WithDescription("Duration of itinerary generation in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_generation_duration_seconds: %v", err)
		}

		m.RemoteFallbacksTotal, err = meter.Int64Counter(
			"remote_fallbacks_total",
			metric.WithDescription("Times the remote enhancer failed and the local algorithm took over"),
			metric.WithUnit("{fallback}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create remote_fallbacks_total: %v", err)
		}

		m.CandidateBackfillsTotal, err = meter.Int64Counter(
			"candidate_backfills_total",
			metric.WithDescription("Times the candidate set was backfilled with featured places"),
			metric.WithUnit("{backfill}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create candidate_backfills_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
