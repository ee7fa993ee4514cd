package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/qrhist/internal/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(RateLimitConfig{Burst: 2, RefillPerIPPerMin: 1})(okHandler)

	newReq := func(ip string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/history", nil)
		r.RemoteAddr = ip + ":1234"
		return r
	}

	first := serve(h, newReq("10.0.0.1"))
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, serve(h, newReq("10.0.0.1")).Code)

	limited := serve(h, newReq("10.0.0.1"))
	require.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	// Other clients have their own bucket
	assert.Equal(t, http.StatusOK, serve(h, newReq("10.0.0.2")).Code)
}

func TestAllowOnlyCIDRS(t *testing.T) {
	h := AllowOnlyCIDRS([]string{"10.0.0.0/8"}, false, logger.NewNop())(okHandler)

	r := httptest.NewRequest(http.MethodPost, "/reload", nil)
	r.RemoteAddr = "10.1.1.1:999"
	assert.Equal(t, http.StatusOK, serve(h, r).Code)

	r.RemoteAddr = "192.168.1.1:999"
	assert.Equal(t, http.StatusForbidden, serve(h, r).Code)

	open := AllowOnlyCIDRS(nil, false, logger.NewNop())(okHandler)
	assert.Equal(t, http.StatusOK, serve(open, r).Code)
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"qr.example.com", "*.lan"}, logger.NewNop())(okHandler)

	tests := []struct {
		host string
		want int
	}{
		{host: "qr.example.com", want: http.StatusOK},
		{host: "QR.example.com:8080", want: http.StatusOK},
		{host: "box.lan", want: http.StatusOK},
		{host: "lan", want: http.StatusForbidden},
		{host: "evil.com", want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/infra", nil)
			r.Host = tt.host
			assert.Equal(t, tt.want, serve(h, r).Code)
		})
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://app.example.com"})(okHandler)

	preflight := httptest.NewRequest(http.MethodOptions, "/history", nil)
	preflight.Header.Set("Origin", "https://app.example.com")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := serve(h, preflight)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-Granted-Capabilities")

	foreign := httptest.NewRequest(http.MethodGet, "/history", nil)
	foreign.Header.Set("Origin", "https://evil.example.com")
	rec = serve(h, foreign)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	wildcard := CORS(nil)(okHandler)
	rec = serve(wildcard, foreign)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
