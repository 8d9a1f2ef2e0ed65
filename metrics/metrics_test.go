// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flamego/flamego"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/humaidq/healthlens/analytics"
)

func TestRecordReport(t *testing.T) {
	before := testutil.ToFloat64(reportsGenerated.WithLabelValues(string(analytics.RiskHigh)))

	RecordReport(&analytics.HealthReport{Overview: analytics.Overview{HealthScore: 42, RiskLevel: analytics.RiskHigh}})
	RecordReport(nil)

	after := testutil.ToFloat64(reportsGenerated.WithLabelValues(string(analytics.RiskHigh)))
	if after-before != 1 {
		t.Fatalf("expected one high risk report recorded, got %v", after-before)
	}
}

func TestRecordCacheResult(t *testing.T) {
	before := testutil.ToFloat64(reportCache.WithLabelValues(CacheHit))

	RecordCacheResult(CacheHit)

	if got := testutil.ToFloat64(reportCache.WithLabelValues(CacheHit)) - before; got != 1 {
		t.Fatalf("expected one cache hit recorded, got %v", got)
	}
}

type failingStore struct{ err error }

func (s failingStore) GetProfile(context.Context, string) (*analytics.Profile, error) {
	return nil, s.err
}

func TestInstrumentProfileStore(t *testing.T) {
	if InstrumentProfileStore(nil) != nil {
		t.Fatal("nil store should stay nil")
	}

	before := testutil.ToFloat64(profileLookupFailures)

	store := InstrumentProfileStore(failingStore{err: errors.New("boom")})
	if _, err := store.GetProfile(context.Background(), "id"); err == nil {
		t.Fatal("expected the wrapped error")
	}

	ok := InstrumentProfileStore(failingStore{})
	if _, err := ok.GetProfile(context.Background(), "id"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := testutil.ToFloat64(profileLookupFailures) - before; got != 1 {
		t.Fatalf("expected one failure recorded, got %v", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	f := flamego.New()
	f.Use(Middleware)
	f.Get("/teapot", Route("/teapot"), func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusTeapot)
	})
	f.Get("/metrics", Route("/metrics"), Handler().ServeHTTP)

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/teapot", "418"))

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/teapot", "418")) - before; got != 1 {
		t.Fatalf("expected request counted once, got %v", got)
	}

	rec = httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Fatal("exposition should include http_requests_total")
	}
}

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	f := flamego.New()
	f.Use(Middleware)
	f.Get("/api/users/{id}/health-analytics", Route("/api/users/{id}/health-analytics"), func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusOK)
	})

	const pattern = "/api/users/{id}/health-analytics"

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, pattern, "200"))
	unmatchedBefore := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, UnmatchedRoute, "404"))
	otherBefore := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(OtherMethod, UnmatchedRoute, "404"))

	for _, path := range []string{
		"/api/users/abc/health-analytics",
		"/api/users/5f0c8f2e-3a8b-4f5e-9d2a-0c1b2a3d4e5f/health-analytics",
	} {
		f.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	for _, path := range []string{"/wp-login.php", "/.env"} {
		f.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	f.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("PROPFIND", "/dav", nil))

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, pattern, "200")) - before; got != 2 {
		t.Fatalf("expected both user ids under the route pattern, got %v", got)
	}

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, UnmatchedRoute, "404")) - unmatchedBefore; got != 2 {
		t.Fatalf("expected unknown paths under %q, got %v", UnmatchedRoute, got)
	}

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(OtherMethod, UnmatchedRoute, "404")) - otherBefore; got != 1 {
		t.Fatalf("expected unknown methods under %q, got %v", OtherMethod, got)
	}
}

func TestRouteWithoutMiddleware(t *testing.T) {
	t.Parallel()

	f := flamego.New()
	f.Get("/plain", Route("/plain"), func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plain", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
