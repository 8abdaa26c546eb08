// Package metrics provides Prometheus metrics for the Party Connect service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Store activity
	eventsCreated  prometheus.Counter
	eventJoins     prometheus.Counter
	contributions  prometheus.Counter
	ratings        prometheus.Counter
	eventsTotal    prometheus.Gauge
	storeSaveFails *prometheus.CounterVec
	storeSaveMs    prometheus.Histogram

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// Simulated external collaborators
	authLogins     *prometheus.CounterVec
	geocodeLookups *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry keeps the default Go runtime collectors out of scrapes.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "partyconnect",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initCollectors()
	return m
}

func (m *Manager) initCollectors() {
	factory := promauto.With(m.registry)

	m.eventsCreated = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "events_created_total",
		Help:      "Total number of events added to the event store.",
	})
	m.eventJoins = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "event_joins_total",
		Help:      "Total number of join operations applied to events.",
	})
	m.contributions = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "contributions_total",
		Help:      "Total number of contributions recorded on events.",
	})
	m.ratings = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "ratings_total",
		Help:      "Total number of participant ratings written.",
	})
	m.eventsTotal = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "events_total",
		Help:      "Current number of events held in the store.",
	})
	m.storeSaveFails = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "store_save_failures_total",
		Help:      "Persistence write failures, by store.",
	}, []string{"store"})
	m.storeSaveMs = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "store_save_duration_ms",
		Help:      "Latency of persistence writes in milliseconds.",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests, by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
	m.httpErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_errors_total",
		Help:      "HTTP error responses, by endpoint and error class.",
	}, []string{"endpoint", "class"})

	m.authLogins = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "auth_logins_total",
		Help:      "Simulated login attempts, by provider and outcome.",
	}, []string{"provider", "outcome"})
	m.geocodeLookups = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "geocode_lookups_total",
		Help:      "Mock geocoder lookups, by direction and outcome.",
	}, []string{"direction", "outcome"})
}

// Package-level helpers operating on the global manager.

// RecordEventCreated increments the created-events counter.
func RecordEventCreated() { globalManager.eventsCreated.Inc() }

// RecordEventJoin increments the join counter.
func RecordEventJoin() { globalManager.eventJoins.Inc() }

// RecordContribution increments the contribution counter.
func RecordContribution() { globalManager.contributions.Inc() }

// RecordRating increments the rating counter.
func RecordRating() { globalManager.ratings.Inc() }

// UpdateEventCount sets the current event-store size gauge.
func UpdateEventCount(n int) { globalManager.eventsTotal.Set(float64(n)) }

// RecordStoreSaveFailure counts a failed persistence write for the named store.
func RecordStoreSaveFailure(store string) {
	globalManager.storeSaveFails.WithLabelValues(store).Inc()
}

// RecordStoreSaveLatency observes a persistence write latency in milliseconds.
func RecordStoreSaveLatency(ms float64) { globalManager.storeSaveMs.Observe(ms) }

// RecordHTTPRequest counts a finished HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request latency in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

// RecordHTTPError counts an HTTP error response by class (client_error, not_found, server_error).
func RecordHTTPError(endpoint, class string) {
	globalManager.httpErrors.WithLabelValues(endpoint, class).Inc()
}

// RecordAuthLogin counts a simulated login attempt.
func RecordAuthLogin(provider, outcome string) {
	globalManager.authLogins.WithLabelValues(provider, outcome).Inc()
}

// RecordGeocodeLookup counts a mock geocoder lookup.
func RecordGeocodeLookup(direction, outcome string) {
	globalManager.geocodeLookups.WithLabelValues(direction, outcome).Inc()
}

// GetRegistry returns the custom registry for scrape handlers.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
