// Package metrics provides Prometheus metrics collection for the application.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values for metrics.
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Conversation metrics
	SessionsActive  prometheus.Gauge
	SessionsCreated prometheus.Counter
	SessionsExpired prometheus.Counter
	TurnsTotal      *prometheus.CounterVec
	TurnDuration    prometheus.Histogram

	// Lead capture metrics
	CapturesStartedTotal   *prometheus.CounterVec
	CapturesCompletedTotal *prometheus.CounterVec
	LeadsRecordedTotal     *prometheus.CounterVec

	// Database metrics
	DBConnectionsOpen  prometheus.Gauge
	DBConnectionsInUse prometheus.Gauge
	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec

	// Rate limiting and admin metrics
	RateLimitHitsTotal *prometheus.CounterVec
	AdminAuthTotal     *prometheus.CounterVec

	// Registry used for this metrics instance
	registry prometheus.Gatherer
}

// NewMetrics creates a new Metrics instance with all collectors registered.
func NewMetrics() *Metrics {
	m := newMetricsWithRegistry(prometheus.DefaultRegisterer)
	m.registry = prometheus.DefaultGatherer
	return m
}

// NewMetricsWithRegistry creates metrics using a custom registry (for testing).
func NewMetricsWithRegistry(reg *prometheus.Registry) *Metrics {
	m := newMetricsWithRegistry(reg)
	m.registry = reg
	return m
}

func newMetricsWithRegistry(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradechat_http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status code",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tradechat_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tradechat_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		// Conversation metrics
		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tradechat_sessions_active",
				Help: "Number of active chat sessions",
			},
		),
		SessionsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tradechat_sessions_created_total",
				Help: "Total number of chat sessions created",
			},
		),
		SessionsExpired: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tradechat_sessions_expired_total",
				Help: "Total number of chat sessions expired by idle cleanup",
			},
		),
		TurnsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradechat_turns_total",
				Help: "Total number of conversation turns by matched intent",
			},
			[]string{"intent"},
		),
		TurnDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tradechat_turn_duration_seconds",
				Help:    "Time taken to route a conversation turn",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
		),

		// Lead capture metrics
		CapturesStartedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradechat_captures_started_total",
				Help: "Total number of lead capture flows started by reason",
			},
			[]string{"reason"},
		),
		CapturesCompletedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradechat_captures_completed_total",
				Help: "Total number of lead capture flows completed by reason",
			},
			[]string{"reason"},
		),
		LeadsRecordedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradechat_leads_recorded_total",
				Help: "Total number of lead handoff attempts by outcome",
			},
			[]string{"outcome"}, // "success", "failure"
		),

		// Database metrics
		DBConnectionsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tradechat_db_connections_open",
				Help: "Number of open database connections",
			},
		),
		DBConnectionsInUse: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tradechat_db_connections_in_use",
				Help: "Number of database connections currently in use",
			},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tradechat_db_query_duration_seconds",
				Help:    "Duration of database queries",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation"}, // "select", "insert"
		),
		DBQueryErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradechat_db_query_errors_total",
				Help: "Total number of database query errors",
			},
			[]string{"operation"},
		),

		// Rate limiting and admin metrics
		RateLimitHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradechat_rate_limit_hits_total",
				Help: "Total number of rate limit hits by limiter",
			},
			[]string{"limiter"}, // "general", "message"
		),
		AdminAuthTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradechat_admin_auth_total",
				Help: "Total number of admin authentication attempts by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Handler returns the Prometheus HTTP handler for scraping metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware returns an HTTP middleware that records request metrics.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		start := time.Now()

		// Wrap response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		// Normalize path for metrics (avoid high cardinality)
		path := normalizePath(r.URL.Path)

		m.HTTPRequestsTotal.WithLabelValues(
			r.Method,
			path,
			strconv.Itoa(wrapped.statusCode),
		).Inc()

		m.HTTPRequestDuration.WithLabelValues(
			r.Method,
			path,
		).Observe(duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.statusCode = http.StatusOK
		rw.written = true
	}
	return rw.ResponseWriter.Write(b)
}

// normalizePath normalizes URL paths to prevent high cardinality labels.
func normalizePath(path string) string {
	switch path {
	case "/health", "/ready", "/live", "/metrics", "/api/chat/sessions", "/api/admin/leads", "/admin/log-level":
		return path
	}

	// Session-scoped paths carry a UUID segment
	if strings.HasPrefix(path, "/api/chat/sessions/") {
		if strings.HasSuffix(path, "/messages") {
			return "/api/chat/sessions/:id/messages"
		}
		if strings.HasSuffix(path, "/transcript") {
			return "/api/chat/sessions/:id/transcript"
		}
		return "/api/chat/sessions/:id"
	}
	if strings.HasPrefix(path, "/api/admin/leads/") {
		return "/api/admin/leads/:id"
	}

	return path
}

// Helper methods for recording specific events

// RecordSessionCreated records a new session creation.
func (m *Metrics) RecordSessionCreated() {
	m.SessionsCreated.Inc()
}

// RecordSessionExpired records a session expiration.
func (m *Metrics) RecordSessionExpired() {
	m.SessionsExpired.Inc()
}

// SetActiveSessions sets the number of active sessions.
func (m *Metrics) SetActiveSessions(count int) {
	m.SessionsActive.Set(float64(count))
}

// RecordTurn records a routed conversation turn.
func (m *Metrics) RecordTurn(intent string, duration time.Duration) {
	m.TurnsTotal.WithLabelValues(intent).Inc()
	m.TurnDuration.Observe(duration.Seconds())
}

// RecordCaptureStarted records a lead capture flow starting.
func (m *Metrics) RecordCaptureStarted(reason string) {
	m.CapturesStartedTotal.WithLabelValues(reason).Inc()
}

// RecordCaptureCompleted records a lead capture flow completing.
func (m *Metrics) RecordCaptureCompleted(reason string) {
	m.CapturesCompletedTotal.WithLabelValues(reason).Inc()
}

// RecordLead records a lead handoff attempt.
func (m *Metrics) RecordLead(success bool) {
	outcome := outcomeFailure
	if success {
		outcome = outcomeSuccess
	}
	m.LeadsRecordedTotal.WithLabelValues(outcome).Inc()
}

// UpdateDBConnections updates database connection metrics.
func (m *Metrics) UpdateDBConnections(open, inUse int) {
	m.DBConnectionsOpen.Set(float64(open))
	m.DBConnectionsInUse.Set(float64(inUse))
}

// RecordDBQuery records a database query.
func (m *Metrics) RecordDBQuery(operation string, duration time.Duration, err error) {
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordRateLimitHit records a rate limit hit.
func (m *Metrics) RecordRateLimitHit(limiter string) {
	m.RateLimitHitsTotal.WithLabelValues(limiter).Inc()
}

// RecordAdminAuth records an admin authentication attempt.
func (m *Metrics) RecordAdminAuth(success bool) {
	outcome := outcomeFailure
	if success {
		outcome = outcomeSuccess
	}
	m.AdminAuthTotal.WithLabelValues(outcome).Inc()
}
