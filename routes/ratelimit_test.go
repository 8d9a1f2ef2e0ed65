// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flamego/flamego"
	"golang.org/x/time/rate"
)

func newRateLimitedApp(rps float64, burst int) *flamego.Flame {
	f := flamego.New()
	f.Use(RateLimit(rps, burst))
	f.Get("/ping", func(c flamego.Context) {
		writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
	})

	return f
}

func pingFrom(f *flamego.Flame, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":1234"

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	return rec
}

func TestRateLimitPerIP(t *testing.T) {
	t.Parallel()

	f := newRateLimitedApp(0.001, 2)

	for i := range 2 {
		if rec := pingFrom(f, "203.0.113.7"); rec.Code != http.StatusOK {
			t.Fatalf("request %d within burst: expected 200, got %d", i, rec.Code)
		}
	}

	rec := pingFrom(f, "203.0.113.7")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d, got %d", http.StatusTooManyRequests, rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
	assertCORSHeaders(t, rec)
	assertErrorMessage(t, rec, errTooManyRequests.Error())

	if rec := pingFrom(f, "198.51.100.4"); rec.Code != http.StatusOK {
		t.Fatalf("other clients should not be limited, got %d", rec.Code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	t.Parallel()

	f := newRateLimitedApp(0, 0)

	for i := range 20 {
		if rec := pingFrom(f, "203.0.113.8"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 with limiting disabled, got %d", i, rec.Code)
		}
	}
}

func TestIPRateLimiterEvictsIdleVisitors(t *testing.T) {
	t.Parallel()

	l := newIPRateLimiter(rate.Limit(1), 1)
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	if ok, _ := l.reserve("a", start); !ok {
		t.Fatal("first request should pass")
	}
	if ok, wait := l.reserve("a", start); ok || wait <= 0 {
		t.Fatalf("second immediate request should wait, got ok=%v wait=%v", ok, wait)
	}

	if ok, _ := l.reserve("b", start.Add(visitorIdleTTL+visitorSweepEvery)); !ok {
		t.Fatal("new visitor should pass")
	}

	if got := l.size(); got != 1 {
		t.Fatalf("expected idle visitor to be evicted, %d visitors left", got)
	}
}

func TestGetClientIP(t *testing.T) {
	t.Parallel()

	withXFF := &flamego.Request{Request: httptest.NewRequest(http.MethodGet, "http://example.test", nil)}
	withXFF.Header.Set("X-Forwarded-For", " 203.0.113.4, 198.51.100.2 ")

	withXFF.RemoteAddr = "10.0.0.1:1234"
	if got := getClientIP(withXFF); got != "203.0.113.4" {
		t.Fatalf("expected X-Forwarded-For IP, got %q", got)
	}

	withRealIP := &flamego.Request{Request: httptest.NewRequest(http.MethodGet, "http://example.test", nil)}
	withRealIP.Header.Set("X-Real-IP", "198.51.100.9")

	withRealIP.RemoteAddr = "10.0.0.2:1234"
	if got := getClientIP(withRealIP); got != "198.51.100.9" {
		t.Fatalf("expected X-Real-IP, got %q", got)
	}

	withRawRemoteAddr := &flamego.Request{Request: httptest.NewRequest(http.MethodGet, "http://example.test", nil)}

	withRawRemoteAddr.RemoteAddr = "not-a-host-port"
	if got := getClientIP(withRawRemoteAddr); got != "not-a-host-port" {
		t.Fatalf("expected raw RemoteAddr fallback, got %q", got)
	}
}
