/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package metrics

import (
	"context"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/flamego/flamego"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/humaidq/healthlens/analytics"
)

// Cache lookup outcomes for the stored-analysis report.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// Fallback labels that keep HTTP series bounded.
const (
	UnmatchedRoute = "unmatched"
	OtherMethod    = "OTHER"
)

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// Report metrics
	reportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthlens_reports_generated_total",
			Help: "Total number of health reports generated",
		},
		[]string{"risk_level"},
	)

	healthScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "healthlens_health_score",
			Help:    "Distribution of generated health scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		},
	)

	profileLookupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "healthlens_profile_lookup_failures_total",
			Help: "Total number of profile lookups that failed and degraded the report",
		},
	)

	reportCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthlens_report_cache_total",
			Help: "Stored-analysis report cache lookups by result",
		},
		[]string{"result"},
	)
)

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// routeLabel carries the route pattern from Route back to Middleware.
type routeLabel struct {
	pattern string
}

var routeLabelType = reflect.TypeOf((*routeLabel)(nil))

// Middleware records request counts and latency. Requests are labelled by
// the pattern set with Route, so requests that match no route share the
// UnmatchedRoute label.
func Middleware(c flamego.Context) {
	start := time.Now()
	label := &routeLabel{pattern: UnmatchedRoute}
	c.Map(label)

	c.Next()

	status := c.ResponseWriter().Status()
	if status == 0 {
		status = http.StatusOK
	}

	method := c.Request().Method
	if !knownMethods[method] {
		method = OtherMethod
	}

	httpRequestsTotal.WithLabelValues(method, label.pattern, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, label.pattern).Observe(time.Since(start).Seconds())
}

// Route labels the request metrics with pattern. It must be the first
// handler of a route so that requests rejected by later handlers still get
// the pattern.
func Route(pattern string) flamego.Handler {
	return func(c flamego.Context) {
		if v := c.Value(routeLabelType); v.IsValid() {
			if label, ok := v.Interface().(*routeLabel); ok {
				label.pattern = pattern
			}
		}
	}
}

// RecordReport records a generated report.
func RecordReport(report *analytics.HealthReport) {
	if report == nil {
		return
	}

	reportsGenerated.WithLabelValues(string(report.Overview.RiskLevel)).Inc()
	healthScores.Observe(float64(report.Overview.HealthScore))
}

// RecordCacheResult records a report cache lookup.
func RecordCacheResult(result string) {
	reportCache.WithLabelValues(result).Inc()
}

// profileStore counts failed lookups of the wrapped store.
type profileStore struct {
	next analytics.ProfileStore
}

// InstrumentProfileStore wraps a profile store so that lookup failures are
// counted. A nil store stays nil.
func InstrumentProfileStore(next analytics.ProfileStore) analytics.ProfileStore {
	if next == nil {
		return nil
	}

	return profileStore{next: next}
}

func (s profileStore) GetProfile(ctx context.Context, userID string) (*analytics.Profile, error) {
	p, err := s.next.GetProfile(ctx, userID)
	if err != nil {
		profileLookupFailures.Inc()
	}

	return p, err
}
