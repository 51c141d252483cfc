// Package middleware wraps http.RoundTripper with client-side rate
// limiting, so a polling loop cannot hammer the repository manager.
package middleware

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/go-kit/kit/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	minLimit  = 0.1
	backOffBy = 2.0
	recoverBy = 1.5
)

// RateLimiters keeps track of per-host rate limiting for an arbitrary
// set of hosts.
//
// Use `*RateLimiters.RoundTripper(rt, host)` to obtain a rate limited
// HTTP transport for an operation. The RoundTripper reacts to an
// `HTTP 429 Too Many Requests` response by halving the limit for that
// host, only once per transport so concurrent requests don't *also*
// reduce it, and nudges the limit back up towards the configured
// ideal whenever a request comes back cleanly.
type RateLimiters struct {
	RPS     float64
	Burst   int
	Logger  log.Logger
	perHost map[string]*rate.Limiter
	mu      sync.Mutex
}

func (limiters *RateLimiters) clip(limit float64) float64 {
	if limit < minLimit {
		return minLimit
	}
	if limit > limiters.RPS {
		return limiters.RPS
	}
	return limit
}

// limiterFor finds or creates the limiter for a host. Callers must
// hold mu.
func (limiters *RateLimiters) limiterFor(host string) *rate.Limiter {
	if limiters.perHost == nil {
		limiters.perHost = map[string]*rate.Limiter{}
	}
	if _, ok := limiters.perHost[host]; !ok {
		limiters.perHost[host] = rate.NewLimiter(rate.Limit(limiters.RPS), limiters.Burst)
	}
	return limiters.perHost[host]
}

// backOff reduces the limit for a host. Usually this isn't called
// directly, since a RoundTripper obtained for the host responds to
// `HTTP 429` by doing it for you.
func (limiters *RateLimiters) backOff(host string) {
	limiters.mu.Lock()
	defer limiters.mu.Unlock()

	limiter := limiters.limiterFor(host)
	oldLimit := float64(limiter.Limit())
	newLimit := limiters.clip(oldLimit / backOffBy)
	if oldLimit != newLimit && limiters.Logger != nil {
		limiters.Logger.Log("info", "reducing rate limit", "host", host, "limit", strconv.FormatFloat(newLimit, 'f', 2, 64))
	}
	limiter.SetLimit(rate.Limit(newLimit))
}

// Recover bumps the limit for a host back up, after an operation has
// succeeded without incident.
func (limiters *RateLimiters) Recover(host string) {
	limiters.mu.Lock()
	defer limiters.mu.Unlock()

	if limiters.perHost == nil {
		return
	}
	limiter, ok := limiters.perHost[host]
	if !ok {
		return
	}
	oldLimit := float64(limiter.Limit())
	newLimit := limiters.clip(oldLimit * recoverBy)
	if newLimit != oldLimit && limiters.Logger != nil {
		limiters.Logger.Log("info", "increasing rate limit", "host", host, "limit", strconv.FormatFloat(newLimit, 'f', 2, 64))
	}
	limiter.SetLimit(rate.Limit(newLimit))
}

// RoundTripper returns a rate-limited RoundTripper for a particular
// host. We expect to do a number of requests to that host over the
// transport's lifetime.
func (limiters *RateLimiters) RoundTripper(rt http.RoundTripper, host string) http.RoundTripper {
	limiters.mu.Lock()
	defer limiters.mu.Unlock()

	limiter := limiters.limiterFor(host)
	var reduceOnce sync.Once
	return &roundTripRateLimiter{
		rl: limiter,
		tx: rt,
		slowDown: func() {
			reduceOnce.Do(func() { limiters.backOff(host) })
		},
		speedUp: func() {
			limiters.Recover(host)
		},
	}
}

type roundTripRateLimiter struct {
	rl       *rate.Limiter
	tx       http.RoundTripper
	slowDown func()
	speedUp  func()
}

func (t *roundTripRateLimiter) RoundTrip(r *http.Request) (*http.Response, error) {
	// Wait errors out if the request cannot be processed within the
	// deadline. This is pre-emptive, instead of waiting the entire
	// duration.
	if err := t.rl.Wait(r.Context()); err != nil {
		return nil, errors.Wrap(err, "rate limited")
	}
	resp, err := t.tx.RoundTrip(r)
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		t.slowDown()
	case resp.StatusCode < 500:
		t.speedUp()
	}
	return resp, err
}
