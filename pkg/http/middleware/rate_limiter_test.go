package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRoundTripperBacksOffOn429(t *testing.T) {
	status := http.StatusTooManyRequests
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()
	host := mustHost(t, server.URL)

	limiters := &RateLimiters{RPS: 100, Burst: 10}
	client := &http.Client{Transport: limiters.RoundTripper(http.DefaultTransport, host)}

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, rate.Limit(50), limiters.perHost[host].Limit())

	// The transport only backs off once, however many 429s it sees.
	resp, err = client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, rate.Limit(50), limiters.perHost[host].Limit())

	// A clean response recovers towards the ideal, clipped at RPS.
	status = http.StatusOK
	for i := 0; i < 3; i++ {
		resp, err = client.Get(server.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}
	assert.Equal(t, rate.Limit(100), limiters.perHost[host].Limit())
}

func TestBackOffNeverDropsBelowFloor(t *testing.T) {
	limiters := &RateLimiters{RPS: 0.2, Burst: 1}
	for i := 0; i < 10; i++ {
		limiters.backOff("nexus.example.com")
	}
	assert.Equal(t, rate.Limit(minLimit), limiters.perHost["nexus.example.com"].Limit())
}

func TestRecoverUnknownHostIsNoop(t *testing.T) {
	limiters := &RateLimiters{RPS: 10, Burst: 1}
	limiters.Recover("never-seen.example.com")
	assert.Empty(t, limiters.perHost)
}

func mustHost(t *testing.T, rawurl string) string {
	u, err := url.Parse(rawurl)
	require.NoError(t, err)
	return u.Host
}
