package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityLoggingMiddleware_RateLimiting(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := SecurityLoggingMiddleware(nil, detector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ip := "192.168.1.100"
	req := httptest.NewRequest(http.MethodGet, "/api/v1/game", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < RateLimitMaxRequests; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, RateLimitMaxRequests+1, detector.Requests(ip))

	// other clients are unaffected
	other := httptest.NewRequest(http.MethodGet, "/api/v1/game", nil)
	other.RemoteAddr = "192.168.1.101:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDetector_WindowResets(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	detector := newDetector(time.Hour, 2, func() time.Time { return now })

	assert.True(t, detector.RecordRequest("10.0.0.1"))
	assert.True(t, detector.RecordRequest("10.0.0.1"))
	assert.False(t, detector.RecordRequest("10.0.0.1"))

	now = now.Add(time.Hour + time.Second)
	assert.Equal(t, 0, detector.Requests("10.0.0.1"))
	assert.True(t, detector.RecordRequest("10.0.0.1"))
	assert.Equal(t, 1, detector.Requests("10.0.0.1"))
}

func TestTrustedProxies_ClientIP(t *testing.T) {
	proxies := parseTrustedProxies([]string{"10.0.0.0/8", "192.168.1.5", "not-an-ip", " "})
	require.Len(t, proxies, 2)

	tests := []struct {
		name      string
		remote    string
		forwarded string
		want      string
	}{
		{"direct client", "203.0.113.9:5000", "", "203.0.113.9"},
		{"untrusted forwarder ignored", "203.0.113.9:5000", "198.51.100.1", "203.0.113.9"},
		{"trusted cidr", "10.1.2.3:5000", "198.51.100.1, 198.51.100.2", "198.51.100.2"},
		{"trusted single host", "192.168.1.5:5000", "198.51.100.7", "198.51.100.7"},
		{"trusted without header", "10.1.2.3:5000", "", "10.1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, proxies.clientIP(req))
		})
	}
}
