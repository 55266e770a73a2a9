package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "devimpact"

var (
	registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route/method/code.",
		},
		[]string{"route", "method", "code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests by route/method/code.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method", "code"},
	)

	teamsScored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "teams_scored_total",
			Help:      "Number of team compatibility scores computed.",
		},
	)

	suggestionRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "team_suggestions_total",
			Help:      "Suggestion requests by outcome (returned, empty).",
		},
		[]string{"outcome"},
	)

	emailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_emails_total",
			Help:      "Status emails by template and result.",
		},
		[]string{"template", "result"},
	)

	registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Registration submissions by result.",
		},
		[]string{"result"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Dashboard cache lookups by key and result (hit, miss, error).",
		},
		[]string{"key", "result"},
	)
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequests,
		httpDuration,
		teamsScored,
		suggestionRequests,
		emailsSent,
		registrations,
		cacheLookups,
	)
}

// Registry exposes the registry our collectors live on
func Registry() *prometheus.Registry {
	return registry
}

// Handler serves the metrics endpoint
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency labelled by the chi route pattern
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		if route == "/metrics" {
			return
		}

		code := strconv.Itoa(sw.status)
		httpRequests.WithLabelValues(route, r.Method, code).Inc()
		httpDuration.WithLabelValues(route, r.Method, code).Observe(time.Since(start).Seconds())
	})
}

// RecordTeamsScored adds n computed compatibility scores
func RecordTeamsScored(n int) {
	teamsScored.Add(float64(n))
}

// RecordSuggestions records a suggestion request and whether it produced candidates
func RecordSuggestions(count int) {
	outcome := "returned"
	if count == 0 {
		outcome = "empty"
	}
	suggestionRequests.WithLabelValues(outcome).Inc()
}

// RecordEmail records a status email attempt
func RecordEmail(template string, err error) {
	emailsSent.WithLabelValues(template, resultLabel(err)).Inc()
}

// RecordRegistration records a registration submission
func RecordRegistration(err error) {
	registrations.WithLabelValues(resultLabel(err)).Inc()
}

// RecordCacheLookup records a cache lookup; result is hit, miss or error
func RecordCacheLookup(key, result string) {
	cacheLookups.WithLabelValues(key, result).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
