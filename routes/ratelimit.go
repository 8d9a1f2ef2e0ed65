/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/flamego/flamego"
	"golang.org/x/time/rate"
)

const (
	visitorIdleTTL       = 10 * time.Minute
	visitorSweepEvery    = time.Minute
	maxRetryAfterSeconds = 60
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps one token bucket per client IP.
type ipRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
}

func newIPRateLimiter(limit rate.Limit, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
	}
}

// reserve takes a token for ip at now. When none is available it returns
// false and how long the client should wait.
func (l *ipRateLimiter) reserve(ip string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= visitorSweepEvery {
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) > visitorIdleTTL {
				delete(l.visitors, key)
			}
		}

		l.lastSweep = now
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}

	v.lastSeen = now

	r := v.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Duration(maxRetryAfterSeconds) * time.Second
	}

	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}

	return true, 0
}

func (l *ipRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.visitors)
}

// RateLimit limits each client IP to requestsPerSecond with the given
// burst. A non-positive rate disables limiting.
func RateLimit(requestsPerSecond float64, burst int) flamego.Handler {
	if requestsPerSecond <= 0 {
		return func() {}
	}

	if burst < 1 {
		burst = 1
	}

	limiter := newIPRateLimiter(rate.Limit(requestsPerSecond), burst)

	return func(c flamego.Context) {
		ok, wait := limiter.reserve(getClientIP(c.Request()), time.Now())
		if ok {
			return
		}

		retryAfter := int(math.Ceil(wait.Seconds()))
		retryAfter = min(max(retryAfter, 1), maxRetryAfterSeconds)

		c.ResponseWriter().Header().Set("Retry-After", strconv.Itoa(retryAfter))
		addCORSHeaders(c)
		writeJSONError(c, http.StatusTooManyRequests, errTooManyRequests)
	}
}
